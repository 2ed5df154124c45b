package daily

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	at := time.Date(2025, 3, 1, 23, 30, 0, 0, loc)
	if got := DateKey(at); got != "2025-03-02" {
		t.Errorf("DateKey = %q, want 2025-03-02", got)
	}
}

func TestBoardSeedDeterministic(t *testing.T) {
	day := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	a := BoardSeed(day, "salt")
	b := BoardSeed(day.Add(3*time.Hour), "salt") // same UTC day
	if a != b {
		t.Error("same day and salt should give the same seed")
	}

	if BoardSeed(day.AddDate(0, 0, 1), "salt") == a {
		t.Error("next day should give a different seed")
	}
	if BoardSeed(day, "other") == a {
		t.Error("different salt should give a different seed")
	}
}
