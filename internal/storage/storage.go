package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/hailam/mailboxchess/internal/game"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyCurrent     = "current"
	gamePrefix     = "game/"
)

// ErrGameNotFound is returned for an unknown saved game ID.
var ErrGameNotFound = errors.New("saved game not found")

// Preferences stores user settings
type Preferences struct {
	SoundEnabled   bool      `json:"sound_enabled"`
	ShowHighlights bool      `json:"show_highlights"`
	Animate        bool      `json:"animate"`
	Flipped        bool      `json:"flipped"`
	LastPlayed     time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		SoundEnabled:   true,
		ShowHighlights: true,
		Animate:        true,
		LastPlayed:     time.Now(),
	}
}

// Result is how a game ended.
type Result int

const (
	ResultWhiteWins Result = iota
	ResultBlackWins
	ResultStalemate
	ResultAbandoned
)

// ResultFor maps a session status to the result recorded for it. A game
// that is still running counts as abandoned.
func ResultFor(s game.Status) Result {
	switch s {
	case game.WhiteWins:
		return ResultWhiteWins
	case game.BlackWins:
		return ResultBlackWins
	case game.Stalemate:
		return ResultStalemate
	}
	return ResultAbandoned
}

func (r Result) String() string {
	switch r {
	case ResultWhiteWins:
		return "white wins"
	case ResultBlackWins:
		return "black wins"
	case ResultStalemate:
		return "stalemate"
	case ResultAbandoned:
		return "abandoned"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed   int           `json:"games_played"`
	WhiteWins     int           `json:"white_wins"`
	BlackWins     int           `json:"black_wins"`
	Stalemates    int           `json:"stalemates"`
	Abandoned     int           `json:"abandoned"`
	TotalPlayTime time.Duration `json:"total_play_time"`
	LongestGame   int           `json:"longest_game_plies"`
}

// DecisiveRate returns the share of games that ended in checkmate (0-100).
func (s *GameStats) DecisiveRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.WhiteWins+s.BlackWins) / float64(s.GamesPlayed) * 100
}

// SavedGame is a game stored as the moves that reproduce it.
type SavedGame struct {
	ID      string    `json:"id"`
	Moves   []string  `json:"moves"`
	Status  string    `json:"status"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes key into v. found is false when the key does not exist.
func (s *Storage) get(key string, v any) (found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	_, err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := &GameStats{}
	_, err := s.get(keyStats, stats)
	return stats, err
}

// RecordResult records a finished or abandoned game and updates statistics.
func (s *Storage) RecordResult(result Result, plies int, duration time.Duration) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += duration
	if plies > stats.LongestGame {
		stats.LongestGame = plies
	}

	switch result {
	case ResultWhiteWins:
		stats.WhiteWins++
	case ResultBlackWins:
		stats.BlackWins++
	case ResultStalemate:
		stats.Stalemates++
	case ResultAbandoned:
		stats.Abandoned++
	default:
		return fmt.Errorf("unknown result %v", result)
	}

	return s.SaveStats(stats)
}

// NewGameID returns a readable ID such as "brave-otter" not yet used by a
// saved game.
func (s *Storage) NewGameID() (string, error) {
	for i := 0; i < 16; i++ {
		id := petname.Generate(2, "-")
		if i >= 8 {
			id = petname.Generate(3, "-")
		}
		exists, err := s.get(gamePrefix+id, &SavedGame{})
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return fmt.Sprintf("%s-%d", petname.Generate(2, "-"), time.Now().UnixNano()), nil
}

// SaveGame stores g under its ID, assigning a new ID when it has none.
func (s *Storage) SaveGame(g *SavedGame) error {
	if g.ID == "" {
		id, err := s.NewGameID()
		if err != nil {
			return err
		}
		g.ID = id
	}
	if strings.Contains(g.ID, "/") {
		return fmt.Errorf("invalid game id %q", g.ID)
	}

	now := time.Now()
	if g.Created.IsZero() {
		g.Created = now
	}
	g.Updated = now
	return s.put(gamePrefix+g.ID, g)
}

// LoadGame returns the saved game with the given ID.
func (s *Storage) LoadGame(id string) (*SavedGame, error) {
	g := &SavedGame{}
	found, err := s.get(gamePrefix+id, g)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

// ListGames returns every saved game, most recently updated first.
func (s *Storage) ListGames() ([]*SavedGame, error) {
	var games []*SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			g := &SavedGame{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, g)
			}); err != nil {
				return err
			}
			games = append(games, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Updated.After(games[j].Updated)
	})
	return games, nil
}

// DeleteGame removes a saved game.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(gamePrefix + id)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// SaveCurrent stores the game in progress so the next launch can resume it.
func (s *Storage) SaveCurrent(moves []string) error {
	return s.put(keyCurrent, &SavedGame{ID: keyCurrent, Moves: moves, Updated: time.Now()})
}

// LoadCurrent returns the moves of the game in progress, or nil if none.
func (s *Storage) LoadCurrent() ([]string, error) {
	g := &SavedGame{}
	if _, err := s.get(keyCurrent, g); err != nil {
		return nil, err
	}
	return g.Moves, nil
}

// ClearCurrent forgets the game in progress.
func (s *Storage) ClearCurrent() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyCurrent))
	})
}
