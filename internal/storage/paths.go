// Package storage persists preferences, statistics and saved games in BadgerDB.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "mailboxchess"

// HomeEnv overrides the data directory when set.
const HomeEnv = "MAILBOXCHESS_HOME"

// GetDataDir returns the data directory, creating it if needed.
// - $MAILBOXCHESS_HOME when set
// - macOS: ~/Library/Application Support/mailboxchess/
// - Windows: %APPDATA%/mailboxchess/
// - elsewhere: $XDG_DATA_HOME/mailboxchess/ or ~/.local/share/mailboxchess/
func GetDataDir() (string, error) {
	dataDir := os.Getenv(HomeEnv)
	if dataDir == "" {
		base, err := platformDataDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(base, appName)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

func platformDataDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
