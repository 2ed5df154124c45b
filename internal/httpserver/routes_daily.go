// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Board" mode.
// Exposes two endpoints under /daily:
//   - POST /daily/new         -> start today's board (creates or reuses session)
//   - GET  /daily/leaderboard -> fetch top 20 results for today (or a given date)
//
// Every player gets the same layout on a given UTC day: the shuffle seed is
// HMAC(salt, date). Each user can complete the daily once per day (enforced
// by DB). The board itself is played through the normal /game/select and
// /game/state endpoints; the session's resolve hook persists the result
// (moves + elapsed time) when the board is completed.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/soumya2491/memory-game/internal/daily"
	"github.com/soumya2491/memory-game/internal/game"
	"github.com/soumya2491/memory-game/internal/symbols"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]string // userID|date -> gameID of the active session
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]string),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// todayKey returns today's date key and the deterministic shuffle seed.
func (d *dailyServer) todayKey() (date string, seed int64) {
	now := time.Now().UTC()
	return daily.DateKey(now), daily.BoardSeed(now, d.salt)
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If the user already has a completed result for today -> Played=true.
// - Otherwise create/reuse a session and return its GameID; the board is
//   then driven through /game/select like any other game.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)
	date, seed := d.todayKey()

	// Check if already completed (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: "", Date: date, Played: true})
		return
	}

	// Reuse the in-flight session for today, if any.
	key := uid + "|" + date
	d.mu.Lock()
	if id, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: id, Date: date, Played: false})
		return
	}
	d.mu.Unlock()

	g := game.NewSeeded(symbols.Labels(), seed)
	sess := game.NewSession(g, func() []game.Card {
		// Resetting a daily board deals the same layout again.
		return game.NewBoard(symbols.Labels(), seed)
	})
	sess.OnResolve(d.persistDaily(uid, date))

	if err := d.srv.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save daily session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	d.mu.Lock()
	d.sessions[key] = g.ID
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: g.ID, Date: date, Played: false})
}

// persistDaily returns the resolve hook for a daily session: on completion
// it records the result row (once; later inserts for the same user+date are
// ignored by the DB).
func (d *dailyServer) persistDaily(uid, date string) func(game.ResolveEvent) {
	return func(ev game.ResolveEvent) {
		if ev.State != game.PhaseWon {
			return
		}
		err := d.store.InsertResult(context.Background(), daily.Result{
			UserID:    uid,
			Date:      date,
			Moves:     ev.Moves,
			ElapsedMs: int(ev.Elapsed.Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Str("user", uid).Str("date", date).Msg("insert daily result")
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.todayKey()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
