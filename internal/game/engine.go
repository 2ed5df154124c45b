// internal/game/engine.go
//
// Turn machine for a single memory game session.
// Responsibilities:
//   - Accept or silently reject card selections (flip + track up to 2).
//   - Evaluate a completed pair: retain matches, revert mismatches.
//   - Track state transitions: idle -> resolving -> idle/won.
//
// Notes:
//   - Every invalid input is absorbed as a no-op, never an error. The
//     callers are UI click handlers; a stale or duplicate click is normal.
//   - The engine is pure bookkeeping. The deferred timing around Resolve
//     lives in Session; nothing here suspends.
package game

// Select attempts to flip the card with the given id and reports whether
// the selection was accepted.
//
// Rejected (state unchanged) when:
//   - a pair evaluation is pending (Resolving),
//   - two cards are already selected,
//   - the id does not exist on the board,
//   - the card is already face-up or already matched.
//
// On acceptance the card is flipped face-up and its id appended to the
// selection. The caller checks SelectionFull to schedule resolution.
func (g *Game) Select(id int) bool {
	if g.Resolving || len(g.Selection) >= 2 {
		return false
	}
	c := g.card(id)
	if c == nil || c.Flipped || c.Matched {
		return false
	}
	c.Flipped = true
	g.Selection = append(g.Selection, id)
	if len(g.Selection) == 2 {
		g.Resolving = true
	}
	return true
}

// SelectionFull reports whether a second card has been picked and the turn
// is waiting on resolution.
func (g *Game) SelectionFull() bool { return len(g.Selection) == 2 }

// PendingMatch reports whether the two selected cards share a symbol.
// Only meaningful while SelectionFull; used to choose the resolve delay.
func (g *Game) PendingMatch() bool {
	if len(g.Selection) != 2 {
		return false
	}
	a, b := g.card(g.Selection[0]), g.card(g.Selection[1])
	// Selection construction already forbids picking the same card twice;
	// the id check keeps the invariant local all the same.
	return a != nil && b != nil && a.ID != b.ID && a.Symbol == b.Symbol
}

// Resolve applies the outcome of a completed two-card turn.
//
//   - Equal symbols: both cards matched, stay face-up.
//   - Different symbols: both revert face-down.
//   - Either way the move counter advances by one and the selection clears.
//
// Returns whether the pair matched and whether the board is now complete.
// A call without a full selection is a no-op (false, current win state).
func (g *Game) Resolve() (matched, won bool) {
	if len(g.Selection) != 2 {
		return false, g.Won
	}
	a, b := g.card(g.Selection[0]), g.card(g.Selection[1])
	matched = g.PendingMatch()
	if matched {
		a.Matched, b.Matched = true, true
	} else {
		a.Flipped, b.Flipped = false, false
	}
	g.Moves++
	g.Selection = g.Selection[:0]
	g.Resolving = false
	if matched && g.allMatched() {
		g.Won = true
	}
	return matched, g.Won
}

// Reset installs a fresh board and clears all turn state. Valid from any
// phase, including mid-resolve and after a win.
func (g *Game) Reset(cards []Card) {
	g.Cards = cards
	g.Selection = g.Selection[:0]
	g.Moves = 0
	g.Resolving = false
	g.Won = false
}

// Phase reports the coarse state of the turn machine.
func (g *Game) Phase() Phase {
	switch {
	case g.Won:
		return PhaseWon
	case g.Resolving:
		return PhaseResolving
	default:
		return PhaseIdle
	}
}

// card returns a pointer to the card with the given id, or nil.
func (g *Game) card(id int) *Card {
	for i := range g.Cards {
		if g.Cards[i].ID == id {
			return &g.Cards[i]
		}
	}
	return nil
}

// allMatched reports whether every card on the board is matched.
func (g *Game) allMatched() bool {
	for i := range g.Cards {
		if !g.Cards[i].Matched {
			return false
		}
	}
	return true
}
