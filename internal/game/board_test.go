package game

import "testing"

var testSymbols = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}

func TestNewBoardComposition(t *testing.T) {
	cards := NewBoard(testSymbols, 42)

	if len(cards) != 16 {
		t.Fatalf("expected 16 cards, got %d", len(cards))
	}

	ids := map[int]int{}
	bySymbol := map[string]int{}
	for _, c := range cards {
		ids[c.ID]++
		bySymbol[c.Symbol]++
		if c.Flipped || c.Matched {
			t.Errorf("card %d should start face-down and unmatched", c.ID)
		}
	}

	for id := 0; id < 16; id++ {
		if ids[id] != 1 {
			t.Errorf("expected id %d exactly once, got %d", id, ids[id])
		}
	}
	if len(bySymbol) != 8 {
		t.Errorf("expected 8 distinct symbols, got %d", len(bySymbol))
	}
	for sym, n := range bySymbol {
		if n != 2 {
			t.Errorf("symbol %q should appear twice, got %d", sym, n)
		}
	}
}

func TestNewBoardPairIdentity(t *testing.T) {
	// Ids are assigned in duplication order before the shuffle, so id k and
	// id k+8 must always share a symbol.
	cards := NewBoard(testSymbols, 7)
	symByID := map[int]string{}
	for _, c := range cards {
		symByID[c.ID] = c.Symbol
	}
	for k := 0; k < 8; k++ {
		if symByID[k] != symByID[k+8] {
			t.Errorf("ids %d and %d should pair: %q vs %q", k, k+8, symByID[k], symByID[k+8])
		}
	}
}

func TestNewBoardSeededDeterminism(t *testing.T) {
	a := NewBoard(testSymbols, 12345)
	b := NewBoard(testSymbols, 12345)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different boards at position %d", i)
		}
	}

	c := NewBoard(testSymbols, 54321)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical boards")
	}
}

func TestNewBoardShuffleUniformity(t *testing.T) {
	// Track where card id 0 lands over many shuffles. Each of the 16
	// positions should be hit about trials/16 times; a heavy bias toward
	// the original order would concentrate mass at position 0.
	const trials = 4800
	counts := make([]int, 16)
	for seed := int64(0); seed < trials; seed++ {
		for pos, c := range NewBoard(testSymbols, seed) {
			if c.ID == 0 {
				counts[pos]++
				break
			}
		}
	}

	expected := float64(trials) / 16
	for pos, n := range counts {
		// Loose statistical bound: within 25% of expectation. With 4800
		// trials the standard deviation per cell is ~17, so this allows
		// over 4 sigma of slack.
		if float64(n) < expected*0.75 || float64(n) > expected*1.25 {
			t.Errorf("position %d hit %d times, expected about %.0f", pos, n, expected)
		}
	}
}
