package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hailam/mailboxchess/internal/storage"
)

// Run starts the terminal UI and blocks until the player quits.
func Run(store *storage.Storage) error {
	p := tea.NewProgram(NewModel(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
