// internal/game/board.go
//
// Board construction for the memory game.
// Responsibilities:
//   - Duplicate the 8-symbol set into 16 cards with stable ordinal ids.
//   - Shuffle card positions with an explicit Fisher-Yates pass.
//   - Offer both a crypto-seeded shuffle (normal games) and a caller-seeded
//     one (deterministic daily boards).
//
// Notes:
//   - Ids are assigned in duplication order before the shuffle, so id k and
//     id k+pairCount always carry the same symbol regardless of position.
//   - The shuffle permutes whole cards; ids travel with their symbols.

package game

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/google/uuid"
)

const (
	pairCount = 8
	boardSize = 2 * pairCount
)

// New constructs a game with a crypto-seeded shuffle of the given symbols.
// symbols must hold exactly pairCount labels; callers validate via the
// symbols package before reaching here.
func New(symbols []string) *Game {
	return NewSeeded(symbols, cryptoSeed())
}

// NewSeeded constructs a game whose layout is fully determined by seed.
// Two games built from the same symbols and seed have identical boards.
func NewSeeded(symbols []string, seed int64) *Game {
	return &Game{
		ID:        uuid.NewString(),
		Cards:     NewBoard(symbols, seed),
		Selection: []int{},
	}
}

// NewBoard builds the 16-card deck: each symbol appears twice, ids are
// 0..15 in duplication order, all cards start face-down and unmatched,
// then positions are permuted by Fisher-Yates.
func NewBoard(symbols []string, seed int64) []Card {
	cards := make([]Card, 0, boardSize)
	for copyIdx := 0; copyIdx < 2; copyIdx++ {
		for i, sym := range symbols {
			cards = append(cards, Card{ID: copyIdx*len(symbols) + i, Symbol: sym})
		}
	}

	// Fisher-Yates: for i from last index down to 1, swap with a uniform
	// j in [0, i]. Uniform over all 16! orderings given a fair source.
	rng := rand.New(rand.NewSource(seed))
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards
}

// cryptoSeed draws a shuffle seed from the OS entropy source.
func cryptoSeed() int64 {
	var b [8]byte
	_, _ = cryptorand.Read(b[:])
	return int64(binary.BigEndian.Uint64(b[:]))
}
