// internal/game/types.go
//
// Core type definitions for the memory game engine.
// Defines:
//   - Card: one tile on the board (symbol + flip/match flags).
//   - Game: state for a single in-progress or finished board.
//   - Phase: coarse state of the turn machine (idle/resolving/won).

package game

// Phase is the coarse state of the turn machine.
// Possible values:
//   - "idle":      zero or one cards selected, input accepted.
//   - "resolving": two cards face-up, evaluation pending, input rejected.
//   - "won":       every pair matched; only reset is meaningful.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseResolving       = "resolving"
	PhaseWon             = "won"
)

// Card is a single tile on the board.
type Card struct {
	ID      int    `json:"id"`        // Ordinal identity, 0..15, assigned before shuffling.
	Symbol  string `json:"symbol"`    // Pair label; two cards share each symbol.
	Flipped bool   `json:"isFlipped"` // Face-up right now.
	Matched bool   `json:"isMatched"` // Permanently revealed as part of a found pair.
}

// Game holds the state of a single memory game session.
type Game struct {
	ID        string // Unique game identifier (UUID).
	Cards     []Card // 16 cards in board order (shuffled once per game/reset).
	Selection []int  // Ids of the 0-2 face-up unresolved cards, in pick order.
	Moves     int    // Completed two-card turns, match or not.
	Resolving bool   // True between the second pick and the deferred outcome.
	Won       bool   // True once every card is matched.
}
