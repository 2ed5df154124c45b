// internal/symbols/symbols.go
//
// Provides the pair-label set for the game engine.
//
// Responsibilities:
//   - Load the 8 symbol labels from an environment-provided file or fall
//     back to the embedded defaults (roman numerals I..VIII).
//   - Validate the set: exactly 8 labels, all distinct and non-empty.
//   - Supply utility functions: Labels, Count.
//
// Initialization behavior (Init):
//   1. If SYMBOLS_FILE is set, load one label per line from that file.
//   2. Otherwise use the embedded assets/symbols.txt.
//
// Constraints:
//   - The board is fixed at 16 cards / 8 pairs, so the label count is a
//     hard requirement, not a suggestion.
//   - Initialization is run once (sync.Once).

package symbols

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/soumya2491/memory-game/assets"
)

const required = 8

var (
	initOnce   sync.Once
	labels     []string
	initialErr error
)

// Init loads and validates the symbol set exactly once.
func Init() error {
	initOnce.Do(func() {
		var list []string
		var err error

		if path := os.Getenv("SYMBOLS_FILE"); path != "" {
			list, err = readSymbolFile(path)
		} else {
			list, err = assets.SymbolsList()
		}
		if err != nil {
			initialErr = err
			return
		}
		if err := validate(list); err != nil {
			initialErr = err
			return
		}
		labels = list
	})
	return initialErr
}

// readSymbolFile loads one label per line, trimming whitespace and
// skipping blanks and #-comments.
func readSymbolFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// validate enforces the fixed-board constraint: 8 distinct labels.
func validate(list []string) error {
	if len(list) != required {
		return fmt.Errorf("symbols: need exactly %d labels, got %d", required, len(list))
	}
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		if _, dup := seen[s]; dup {
			return fmt.Errorf("symbols: duplicate label %q", s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// Labels returns the validated label set. Init must have succeeded.
func Labels() []string { return labels }

// Count returns the number of loaded labels.
func Count() int { return len(labels) }
