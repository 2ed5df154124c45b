// internal/game/session.go
//
// Session wraps a Game with the one piece of timing the engine itself does
// not own: the deferred pair evaluation. After a second card is selected the
// session arms a single timer (shorter when the pair matches, longer when it
// does not, so the player can see the mismatch) and applies Resolve when it
// fires. Reset cancels any armed timer; a fire that races the cancellation
// is discarded by a generation check, so a stale evaluation can never touch
// the new board.
//
// All methods are safe for concurrent use; HTTP handlers and the timer
// callback serialize on one mutex, which stands in for the original single
// event loop.
package game

import (
	"sync"
	"time"
)

// Default resolve delays. A matched pair flips quickly; a mismatch lingers
// so the second symbol can be perceived before it turns back over.
const (
	DefaultMatchDelay    = 600 * time.Millisecond
	DefaultMismatchDelay = time.Second
)

// CardView is the client-visible shape of a card. Symbols of face-down
// unmatched cards are redacted server-side.
type CardView struct {
	ID      int    `json:"id"`
	Symbol  string `json:"symbol,omitempty"`
	Flipped bool   `json:"isFlipped"`
	Matched bool   `json:"isMatched"`
}

// Snapshot is the read-only observable state a presentation layer polls.
type Snapshot struct {
	GameID string     `json:"gameId"`
	Cards  []CardView `json:"cards"`
	Moves  int        `json:"moveCount"`
	State  Phase      `json:"state"`
}

// ResolveEvent describes one completed two-card turn, delivered to the
// session's resolve hook after the deferred evaluation lands.
type ResolveEvent struct {
	Snapshot
	Matched bool
	Elapsed time.Duration // since game/reset start; used by daily results
}

// Session owns a Game plus its pending-evaluation timer.
type Session struct {
	mu        sync.Mutex
	game      *Game
	reshuffle func() []Card // board factory used by Reset
	timer     *time.Timer
	gen       int // bumped by Reset; stale timer fires check it and bail
	started   time.Time

	matchDelay    time.Duration
	mismatchDelay time.Duration
	onResolve     func(ResolveEvent)
}

// NewSession wraps g. reshuffle supplies a fresh board on Reset; for daily
// games it regenerates the same deterministic layout.
func NewSession(g *Game, reshuffle func() []Card) *Session {
	return &Session{
		game:          g,
		reshuffle:     reshuffle,
		started:       time.Now(),
		matchDelay:    DefaultMatchDelay,
		mismatchDelay: DefaultMismatchDelay,
	}
}

// SetDelays overrides the resolve delays (tests use near-zero values).
func (s *Session) SetDelays(match, mismatch time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matchDelay, s.mismatchDelay = match, mismatch
}

// OnResolve registers a hook invoked after each deferred evaluation, outside
// the session lock. Used by the HTTP layer to persist moves and wins.
func (s *Session) OnResolve(fn func(ResolveEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResolve = fn
}

// ID returns the wrapped game's identifier.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ID
}

// Select forwards a card pick to the engine. When the pick completes a
// pair, the deferred evaluation is armed. Rejected picks return the
// unchanged snapshot; the caller cannot tell a no-op from a UI replay,
// which is the point.
func (s *Session) Select(id int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.game.Select(id) {
		return s.snapshotLocked()
	}
	if s.game.SelectionFull() {
		delay := s.mismatchDelay
		if s.game.PendingMatch() {
			delay = s.matchDelay
		}
		gen := s.gen
		s.timer = time.AfterFunc(delay, func() { s.fire(gen) })
	}
	return s.snapshotLocked()
}

// Reset cancels any pending evaluation and installs a fresh board.
func (s *Session) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++ // invalidate in-flight timer fires
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.game.Reset(s.reshuffle())
	s.started = time.Now()
	return s.snapshotLocked()
}

// Snapshot returns the current client-visible state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// fire applies the deferred evaluation for generation gen. A reset between
// arming and firing bumps s.gen, and the stale fire returns untouched.
func (s *Session) fire(gen int) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	matched, _ := s.game.Resolve()
	s.timer = nil
	ev := ResolveEvent{
		Snapshot: s.snapshotLocked(),
		Matched:  matched,
		Elapsed:  time.Since(s.started),
	}
	hook := s.onResolve
	s.mu.Unlock()

	if hook != nil {
		hook(ev)
	}
}

// snapshotLocked builds a Snapshot; the symbol of a face-down unmatched
// card never leaves the server. Caller holds s.mu.
func (s *Session) snapshotLocked() Snapshot {
	cards := make([]CardView, len(s.game.Cards))
	for i, c := range s.game.Cards {
		v := CardView{ID: c.ID, Flipped: c.Flipped, Matched: c.Matched}
		if c.Flipped || c.Matched {
			v.Symbol = c.Symbol
		}
		cards[i] = v
	}
	return Snapshot{
		GameID: s.game.ID,
		Cards:  cards,
		Moves:  s.game.Moves,
		State:  s.game.Phase(),
	}
}
