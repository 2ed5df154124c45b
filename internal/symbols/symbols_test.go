package symbols

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	good := []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}
	if err := validate(good); err != nil {
		t.Errorf("valid set rejected: %v", err)
	}

	if err := validate(good[:7]); err == nil {
		t.Error("seven labels should be rejected")
	}
	if err := validate(append(good[:7], "I")); err == nil {
		t.Error("duplicate label should be rejected")
	}
}

func TestReadSymbolFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.txt")
	data := "# comment\nA\n\n  B \nC\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readSymbolFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInitEmbeddedDefaults(t *testing.T) {
	if os.Getenv("SYMBOLS_FILE") != "" {
		t.Skip("SYMBOLS_FILE set in environment")
	}
	if err := Init(); err != nil {
		t.Fatalf("Init with embedded defaults: %v", err)
	}
	if Count() != 8 {
		t.Errorf("expected 8 embedded labels, got %d", Count())
	}
}
