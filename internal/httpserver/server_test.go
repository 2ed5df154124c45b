package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/soumya2491/memory-game/internal/game"
	"github.com/soumya2491/memory-game/internal/store"
	"github.com/soumya2491/memory-game/internal/symbols"
)

const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE COLLATE NOCASE,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL,
    games_played INTEGER NOT NULL DEFAULT 0,
    completions INTEGER NOT NULL DEFAULT 0,
    best_moves INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE games (
    id TEXT PRIMARY KEY,
    user_id TEXT REFERENCES users(id),
    anonymous_id TEXT,
    status TEXT NOT NULL DEFAULT 'playing',
    moves INTEGER NOT NULL DEFAULT 0,
    matched_pairs INTEGER NOT NULL DEFAULT 0,
    started_at TEXT NOT NULL,
    finished_at TEXT
);
CREATE TABLE daily_results (
    user_id TEXT NOT NULL,
    date TEXT NOT NULL,
    moves INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
    UNIQUE(user_id, date)
);
`

// newTestServer spins up the full router over a throwaway sqlite file.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	if err := symbols.Init(); err != nil {
		t.Fatalf("symbols: %v", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("schema: %v", err)
	}

	srv := New(store.NewMemoryStore(), db)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, _ := cookiejar.New(nil)
	return ts, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, url string, body any, out any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	res, err := c.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res
}

func getJSON(t *testing.T, c *http.Client, url string, out any) *http.Response {
	t.Helper()
	res, err := c.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res
}

func TestHealth(t *testing.T) {
	ts, c := newTestServer(t)
	var out map[string]bool
	res := getJSON(t, c, ts.URL+"/health", &out)
	if res.StatusCode != http.StatusOK || !out["ok"] {
		t.Errorf("health: status=%d body=%v", res.StatusCode, out)
	}
}

func TestNewGameAndState(t *testing.T) {
	ts, c := newTestServer(t)

	var created struct {
		GameID string `json:"gameId"`
	}
	postJSON(t, c, ts.URL+"/game/new", map[string]any{}, &created)
	if created.GameID == "" {
		t.Fatal("expected a game id")
	}

	var snap game.Snapshot
	getJSON(t, c, ts.URL+"/game/state?gameId="+created.GameID, &snap)
	if len(snap.Cards) != 16 {
		t.Fatalf("expected 16 cards, got %d", len(snap.Cards))
	}
	if snap.State != game.PhaseIdle || snap.Moves != 0 {
		t.Errorf("fresh game should be idle with 0 moves, got %s/%d", snap.State, snap.Moves)
	}
	for _, card := range snap.Cards {
		if card.Symbol != "" || card.Flipped || card.Matched {
			t.Errorf("card %d should start face-down with redacted symbol", card.ID)
		}
	}
}

func TestStateUnknownGame(t *testing.T) {
	ts, c := newTestServer(t)
	res := getJSON(t, c, ts.URL+"/game/state?gameId=nope", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", res.StatusCode)
	}
}

func TestSelectAndResolveTurn(t *testing.T) {
	ts, c := newTestServer(t)

	var created struct {
		GameID string `json:"gameId"`
	}
	postJSON(t, c, ts.URL+"/game/new", map[string]any{}, &created)

	var snap game.Snapshot
	postJSON(t, c, ts.URL+"/game/select",
		map[string]any{"gameId": created.GameID, "cardId": 0}, &snap)
	found := false
	for _, card := range snap.Cards {
		if card.ID == 0 {
			found = true
			if !card.Flipped || card.Symbol == "" {
				t.Error("selected card should be face-up with its symbol visible")
			}
		}
	}
	if !found {
		t.Fatal("card id 0 missing from snapshot")
	}

	postJSON(t, c, ts.URL+"/game/select",
		map[string]any{"gameId": created.GameID, "cardId": 1}, &snap)
	if snap.State != game.PhaseResolving {
		t.Fatalf("second pick should enter resolving, got %s", snap.State)
	}

	// Poll until the deferred evaluation lands (up to 1s mismatch delay).
	deadline := time.Now().Add(3 * time.Second)
	for {
		getJSON(t, c, ts.URL+"/game/state?gameId="+created.GameID, &snap)
		if snap.State != game.PhaseResolving {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("turn never resolved")
		}
		time.Sleep(25 * time.Millisecond)
	}
	if snap.Moves != 1 {
		t.Errorf("one completed turn should count one move, got %d", snap.Moves)
	}
}

func TestResetReturnsFreshBoard(t *testing.T) {
	ts, c := newTestServer(t)

	var created struct {
		GameID string `json:"gameId"`
	}
	postJSON(t, c, ts.URL+"/game/new", map[string]any{}, &created)

	var snap game.Snapshot
	postJSON(t, c, ts.URL+"/game/select",
		map[string]any{"gameId": created.GameID, "cardId": 3}, &snap)

	postJSON(t, c, ts.URL+"/game/reset",
		map[string]any{"gameId": created.GameID}, &snap)
	if snap.Moves != 0 || snap.State != game.PhaseIdle {
		t.Errorf("reset should zero the board, got %s/%d", snap.State, snap.Moves)
	}
	for _, card := range snap.Cards {
		if card.Flipped || card.Matched {
			t.Errorf("card %d should be face-down after reset", card.ID)
		}
	}
}

func TestDailyNewReusesSession(t *testing.T) {
	ts, c := newTestServer(t)

	var first, second struct {
		GameID string `json:"gameId"`
		Date   string `json:"date"`
		Played bool   `json:"played"`
	}
	postJSON(t, c, ts.URL+"/daily/new", map[string]any{}, &first)
	if first.GameID == "" || first.Played {
		t.Fatalf("first daily/new should start a session: %+v", first)
	}
	postJSON(t, c, ts.URL+"/daily/new", map[string]any{}, &second)
	if second.GameID != first.GameID {
		t.Errorf("same day should reuse the session: %q vs %q", first.GameID, second.GameID)
	}
}

func TestDailyLeaderboardEmpty(t *testing.T) {
	ts, c := newTestServer(t)
	var out struct {
		Date string `json:"date"`
	}
	res := getJSON(t, c, ts.URL+"/daily/leaderboard?date=2025-01-01", &out)
	if res.StatusCode != http.StatusOK || out.Date != "2025-01-01" {
		t.Errorf("leaderboard: status=%d date=%q", res.StatusCode, out.Date)
	}
}

func TestSignupLoginAndStats(t *testing.T) {
	ts, c := newTestServer(t)

	res := postJSON(t, c, ts.URL+"/auth/signup",
		map[string]string{"username": "player_one", "password": "letmein-123"}, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("signup: status=%d", res.StatusCode)
	}

	var me authUser
	getJSON(t, c, ts.URL+"/auth/me", &me)
	if me.Username != "player_one" {
		t.Errorf("auth/me username = %q", me.Username)
	}

	// Starting a game while logged in bumps gamesPlayed.
	postJSON(t, c, ts.URL+"/game/new", map[string]any{}, nil)

	var stats struct {
		GamesPlayed int `json:"gamesPlayed"`
		Completions int `json:"completions"`
		BestMoves   int `json:"bestMoves"`
	}
	getJSON(t, c, ts.URL+"/stats/me", &stats)
	if stats.GamesPlayed != 1 {
		t.Errorf("gamesPlayed = %d, want 1", stats.GamesPlayed)
	}
	if stats.Completions != 0 || stats.BestMoves != 0 {
		t.Errorf("fresh account stats should be zero: %+v", stats)
	}

	// Duplicate username is rejected.
	res = postJSON(t, c, ts.URL+"/auth/signup",
		map[string]string{"username": "player_one", "password": "letmein-123"}, nil)
	if res.StatusCode != http.StatusConflict {
		t.Errorf("duplicate signup: status=%d, want 409", res.StatusCode)
	}
}

func TestRequireAuthRejectsGuests(t *testing.T) {
	ts, c := newTestServer(t)
	for _, path := range []string{"/auth/me", "/stats/me", "/games/mine"} {
		res := getJSON(t, c, ts.URL+path, nil)
		if res.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: status=%d, want 401", path, res.StatusCode)
		}
	}
}

func TestGamesMine(t *testing.T) {
	ts, c := newTestServer(t)

	postJSON(t, c, ts.URL+"/auth/signup",
		map[string]string{"username": "collector", "password": "letmein-123"}, nil)
	for i := 0; i < 3; i++ {
		postJSON(t, c, ts.URL+"/game/new", map[string]any{}, nil)
	}

	var mine []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	getJSON(t, c, ts.URL+"/games/mine", &mine)
	if len(mine) != 3 {
		t.Fatalf("expected 3 games, got %d", len(mine))
	}
	for _, g := range mine {
		if g.Status != "playing" {
			t.Errorf("game %s status = %q, want playing", g.ID, g.Status)
		}
	}
}
