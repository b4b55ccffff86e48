package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hailam/mailboxchess/internal/game"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestPreferences(t *testing.T) {
	s := openTemp(t)

	t.Run("Defaults", func(t *testing.T) {
		prefs, err := s.LoadPreferences()
		if err != nil {
			t.Fatal(err)
		}
		if !prefs.SoundEnabled || !prefs.ShowHighlights || !prefs.Animate {
			t.Errorf("Expected sound, highlights and animation on by default: %+v", prefs)
		}
		if prefs.Flipped {
			t.Error("Board must not start flipped")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		prefs := DefaultPreferences()
		prefs.SoundEnabled = false
		prefs.Flipped = true
		if err := s.SavePreferences(prefs); err != nil {
			t.Fatal(err)
		}

		got, err := s.LoadPreferences()
		if err != nil {
			t.Fatal(err)
		}
		if got.SoundEnabled || !got.Flipped || !got.Animate {
			t.Errorf("Loaded %+v", got)
		}
		if got.LastPlayed.IsZero() {
			t.Error("SavePreferences must stamp LastPlayed")
		}
	})
}

func TestRecordResult(t *testing.T) {
	s := openTemp(t)

	results := []Result{ResultWhiteWins, ResultBlackWins, ResultBlackWins, ResultStalemate, ResultAbandoned}
	for i, r := range results {
		if err := s.RecordResult(r, 10*(i+1), time.Minute); err != nil {
			t.Fatalf("RecordResult(%v): %v", r, err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	want := GameStats{
		GamesPlayed:   5,
		WhiteWins:     1,
		BlackWins:     2,
		Stalemates:    1,
		Abandoned:     1,
		TotalPlayTime: 5 * time.Minute,
		LongestGame:   50,
	}
	if *stats != want {
		t.Errorf("Stats = %+v, want %+v", *stats, want)
	}
	if rate := stats.DecisiveRate(); rate != 60 {
		t.Errorf("DecisiveRate() = %.1f, want 60", rate)
	}

	if err := s.RecordResult(Result(42), 1, 0); err == nil {
		t.Error("Expected an error for an unknown result")
	}
}

func TestResultFor(t *testing.T) {
	tests := []struct {
		status game.Status
		want   Result
	}{
		{game.WhiteWins, ResultWhiteWins},
		{game.BlackWins, ResultBlackWins},
		{game.Stalemate, ResultStalemate},
		{game.Ongoing, ResultAbandoned},
	}
	for _, tt := range tests {
		if got := ResultFor(tt.status); got != tt.want {
			t.Errorf("ResultFor(%v) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDecisiveRateEmpty(t *testing.T) {
	stats := &GameStats{}
	if stats.DecisiveRate() != 0 {
		t.Errorf("Expected 0 for no games")
	}
}

func TestSavedGames(t *testing.T) {
	s := openTemp(t)

	first := &SavedGame{Moves: []string{"e2e4", "e7e5"}, Status: "White to move"}
	if err := s.SaveGame(first); err != nil {
		t.Fatal(err)
	}
	if first.ID == "" || strings.Contains(first.ID, "/") {
		t.Fatalf("SaveGame assigned ID %q", first.ID)
	}
	if first.Created.IsZero() || first.Updated.IsZero() {
		t.Error("SaveGame must stamp times")
	}

	second := &SavedGame{ID: "quiet-heron", Moves: []string{"d2d4"}}
	if err := s.SaveGame(second); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadGame(first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Moves, first.Moves) || got.Status != first.Status {
		t.Errorf("LoadGame = %+v, want %+v", got, first)
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 {
		t.Fatalf("ListGames returned %d games", len(games))
	}
	if games[0].ID != "quiet-heron" {
		t.Errorf("Most recent game first, got %q", games[0].ID)
	}

	if err := s.DeleteGame("quiet-heron"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadGame("quiet-heron"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame after delete = %v, want ErrGameNotFound", err)
	}
	if err := s.DeleteGame("quiet-heron"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Second delete = %v, want ErrGameNotFound", err)
	}

	if err := s.SaveGame(&SavedGame{ID: "a/b"}); err == nil {
		t.Error("IDs containing a slash must be rejected")
	}
}

func TestSaveGameKeepsCreated(t *testing.T) {
	s := openTemp(t)

	g := &SavedGame{ID: "old-friend"}
	if err := s.SaveGame(g); err != nil {
		t.Fatal(err)
	}
	created := g.Created

	g.Moves = append(g.Moves, "g1f3")
	if err := s.SaveGame(g); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadGame("old-friend")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Created.Equal(created) {
		t.Errorf("Created changed from %v to %v", created, got.Created)
	}
	if len(got.Moves) != 1 {
		t.Errorf("Expected the update to be stored, got %v", got.Moves)
	}
}

func TestNewGameID(t *testing.T) {
	s := openTemp(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, err := s.NewGameID()
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(id, "-") {
			t.Errorf("Expected a dashed name, got %q", id)
		}
		if seen[id] {
			t.Errorf("NewGameID returned %q twice", id)
		}
		seen[id] = true
		if err := s.SaveGame(&SavedGame{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCurrentGame(t *testing.T) {
	s := openTemp(t)

	moves, err := s.LoadCurrent()
	if err != nil || moves != nil {
		t.Fatalf("LoadCurrent on empty db = %v, %v", moves, err)
	}

	want := []string{"e2e4", "c7c5", "g1f3"}
	if err := s.SaveCurrent(want); err != nil {
		t.Fatal(err)
	}
	moves, err = s.LoadCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(moves, want) {
		t.Errorf("LoadCurrent = %v, want %v", moves, want)
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 0 {
		t.Errorf("The current game must not show up in ListGames: %v", games)
	}

	if err := s.ClearCurrent(); err != nil {
		t.Fatal(err)
	}
	if moves, err := s.LoadCurrent(); err != nil || moves != nil {
		t.Errorf("LoadCurrent after clear = %v, %v", moves, err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordResult(ResultStalemate, 40, time.Second); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Stalemates != 1 || stats.GamesPlayed != 1 {
		t.Errorf("Stats after reopen = %+v", stats)
	}
}

func TestDataPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != home {
		t.Errorf("GetDataDir = %q, want %q", dataDir, home)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
	if filepath.Dir(dbDir) != home {
		t.Errorf("Database directory %s is outside %s", dbDir, home)
	}
}
