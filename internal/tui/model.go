// Package tui is a terminal front end: a board, a command line and a log.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hailam/mailboxchess/internal/board"
	"github.com/hailam/mailboxchess/internal/game"
	"github.com/hailam/mailboxchess/internal/storage"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
)

const maxLogLines = 200

const helpText = "commands: e2e4 | e7e8n | undo | new | moves [sq] | flip | save | load <id> | list | delete <id> | stats | quit"

// Model is the bubbletea model of the terminal front end: the board, a
// command log and a line editor for moves and commands.
type Model struct {
	session *game.Session
	store   *storage.Storage // nil runs without persistence

	flipped  bool
	started  time.Time
	recorded bool

	m        mode
	input    textinput.Model
	logLines []string

	width  int
	height int
}

// NewModel creates the model. store may be nil.
func NewModel(store *storage.Storage) Model {
	ti := textinput.New()
	ti.Placeholder = "e2e4, undo, help..."
	ti.Prompt = "> "
	ti.CharLimit = 80
	ti.Width = 40
	ti.Focus()

	m := Model{
		session: game.NewSession(),
		store:   store,
		started: time.Now(),
		m:       modeInput,
		input:   ti,
		logLines: []string{
			"ready (type help for commands, esc for keys)",
		},
	}
	m.resume()
	return m
}

func (m *Model) resume() {
	if m.store == nil {
		return
	}
	if prefs, err := m.store.LoadPreferences(); err == nil {
		m.flipped = prefs.Flipped
	}
	moves, err := m.store.LoadCurrent()
	if err != nil {
		m.appendLog(fmt.Sprintf("load current game: %v", err))
		return
	}
	if len(moves) == 0 {
		return
	}
	if err := m.session.Replay(moves); err != nil {
		m.appendLog(fmt.Sprintf("discarding saved game: %v", err))
		m.session.Reset()
		return
	}
	m.recorded = m.session.Status().Over()
	m.appendLog(fmt.Sprintf("resumed game at ply %d", m.session.State().Ply()))
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key presses and window resizes. In normal mode single
// keys act directly; in input mode enter runs the typed command.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(60, max(20, m.width-8))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.persist()
			return m, tea.Quit
		}
		switch m.m {
		case modeNormal:
			switch msg.String() {
			case "q":
				m.persist()
				return m, tea.Quit
			case "i", "enter":
				m.m = modeInput
				m.input.Focus()
			case "u", "z":
				m.execCommand("undo")
			case "n", "r":
				m.execCommand("new")
			case "f":
				m.execCommand("flip")
			case "s":
				m.execCommand("save")
			}
			return m, nil

		case modeInput:
			switch msg.String() {
			case "esc":
				m.m = modeNormal
				m.input.Blur()
				return m, nil
			case "enter":
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				if line == "" {
					return m, nil
				}
				if quit := m.execCommand(line); quit {
					return m, tea.Quit
				}
				return m, nil
			}

			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// execCommand runs one command line and reports whether the program should
// exit.
func (m *Model) execCommand(line string) (quit bool) {
	m.appendLog("> " + line)

	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		m.persist()
		return true
	case "help", "?":
		m.appendLog(helpText)
	case "undo", "u":
		m.undo()
	case "new", "reset":
		m.newGame()
	case "moves":
		m.listMoves(args)
	case "flip":
		m.flipped = !m.flipped
		m.savePreferences()
	case "save":
		m.save()
	case "load":
		if len(args) != 1 {
			m.appendLog("usage: load <id>")
			return false
		}
		m.load(args[0])
	case "list", "games":
		m.listGames()
	case "delete", "rm":
		if len(args) != 1 {
			m.appendLog("usage: delete <id>")
			return false
		}
		m.deleteGame(args[0])
	case "stats":
		m.showStats()
	default:
		m.play(line)
	}
	return false
}

func (m *Model) play(line string) {
	mv, err := m.session.Play(line)
	switch {
	case errors.Is(err, game.ErrBadNotation):
		m.appendLog(fmt.Sprintf("unknown command: %s", line))
		return
	case err != nil:
		m.appendLog(err.Error())
		return
	}

	n := m.session.Notations()
	m.appendLog(fmt.Sprintf("%d. %s", (len(n)+1)/2, n[len(n)-1]))
	if mv.IsCapture() {
		m.appendLog(fmt.Sprintf("captured %v", mv.Captured().Type()))
	}
	m.afterMove()
}

func (m *Model) afterMove() {
	status := m.session.Status()
	switch {
	case status.Over():
		m.appendLog(m.session.Message())
		if !m.recorded {
			m.recorded = true
			m.recordResult(storage.ResultFor(status))
		}
	case m.session.State().InCheck():
		m.appendLog("check")
	}
	m.autosave()
}

// undo takes back a move. A finished game reopened this way is counted
// again when it ends.
func (m *Model) undo() {
	wasOver := m.session.Status().Over()
	if err := m.session.Undo(); err != nil {
		m.appendLog(err.Error())
		return
	}
	if wasOver && !m.session.Status().Over() {
		m.recorded = false
	}
	m.appendLog(fmt.Sprintf("took back a move, ply %d", m.session.State().Ply()))
	m.autosave()
}

func (m *Model) newGame() {
	if !m.recorded && m.session.State().Ply() > 0 {
		m.recordResult(storage.ResultAbandoned)
	}
	m.session.Reset()
	m.recorded = false
	m.started = time.Now()
	m.autosave()
	m.appendLog("new game")
}

func (m *Model) listMoves(args []string) {
	moves := m.session.Moves()
	if len(args) == 1 {
		sq, err := board.ParseSquare(strings.ToLower(args[0]))
		if err != nil {
			m.appendLog(err.Error())
			return
		}
		moves = board.MovesFrom(moves, sq)
	}
	if len(moves) == 0 {
		m.appendLog("no legal moves")
		return
	}
	names := make([]string, len(moves))
	for i, mv := range moves {
		names[i] = mv.Notation()
	}
	m.appendLog(fmt.Sprintf("%d moves: %s", len(moves), strings.Join(names, " ")))
}

func (m *Model) save() {
	if m.store == nil {
		m.appendLog("storage is disabled")
		return
	}
	sg := &storage.SavedGame{Moves: m.session.Notations(), Status: m.session.Message()}
	if err := m.store.SaveGame(sg); err != nil {
		m.appendLog(fmt.Sprintf("save failed: %v", err))
		return
	}
	m.appendLog("saved as " + sg.ID)
}

func (m *Model) load(id string) {
	if m.store == nil {
		m.appendLog("storage is disabled")
		return
	}
	sg, err := m.store.LoadGame(id)
	if err != nil {
		m.appendLog(fmt.Sprintf("load failed: %v", err))
		return
	}
	if err := m.session.Replay(sg.Moves); err != nil {
		m.appendLog(fmt.Sprintf("load failed: %v", err))
		m.session.Reset()
		return
	}
	m.recorded = m.session.Status().Over()
	m.started = time.Now()
	m.autosave()
	m.appendLog(fmt.Sprintf("loaded %s (%d plies)", sg.ID, len(sg.Moves)))
}

func (m *Model) listGames() {
	if m.store == nil {
		m.appendLog("storage is disabled")
		return
	}
	games, err := m.store.ListGames()
	if err != nil {
		m.appendLog(fmt.Sprintf("list failed: %v", err))
		return
	}
	if len(games) == 0 {
		m.appendLog("no saved games")
		return
	}
	for _, g := range games {
		m.appendLog(fmt.Sprintf("%-24s %3d plies  %s  %s", g.ID, len(g.Moves), g.Updated.Format("2006-01-02 15:04"), g.Status))
	}
}

func (m *Model) deleteGame(id string) {
	if m.store == nil {
		m.appendLog("storage is disabled")
		return
	}
	if err := m.store.DeleteGame(id); err != nil {
		m.appendLog(fmt.Sprintf("delete failed: %v", err))
		return
	}
	m.appendLog("deleted " + id)
}

func (m *Model) showStats() {
	if m.store == nil {
		m.appendLog("storage is disabled")
		return
	}
	st, err := m.store.LoadStats()
	if err != nil {
		m.appendLog(fmt.Sprintf("stats: %v", err))
		return
	}
	m.appendLog(fmt.Sprintf("played %d: white %d, black %d, stalemate %d, abandoned %d (%.0f%% decisive)",
		st.GamesPlayed, st.WhiteWins, st.BlackWins, st.Stalemates, st.Abandoned, st.DecisiveRate()))
}

func (m *Model) recordResult(r storage.Result) {
	if m.store == nil {
		return
	}
	if err := m.store.RecordResult(r, m.session.State().Ply(), time.Since(m.started)); err != nil {
		m.appendLog(fmt.Sprintf("record result: %v", err))
	}
}

func (m *Model) autosave() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveCurrent(m.session.Notations()); err != nil {
		m.appendLog(fmt.Sprintf("autosave: %v", err))
	}
}

func (m *Model) savePreferences() {
	if m.store == nil {
		return
	}
	prefs, err := m.store.LoadPreferences()
	if err != nil {
		m.appendLog(fmt.Sprintf("preferences: %v", err))
		return
	}
	prefs.Flipped = m.flipped
	if err := m.store.SavePreferences(prefs); err != nil {
		m.appendLog(fmt.Sprintf("preferences: %v", err))
	}
}

func (m *Model) persist() {
	m.autosave()
	m.savePreferences()
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
}

// View renders the header, the board beside the log, and the input line.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	modeStr := "KEYS"
	if m.m == modeInput {
		modeStr = "INPUT"
	}
	header := titleStyle.Render(fmt.Sprintf("mailboxchess  [%s]  %s", modeStr, m.session.Message()))

	boardBox := boxStyle.Render(RenderBoard(m.session.State(), m.flipped))

	logHeight := max(5, lipgloss.Height(boardBox)-2)
	logStart := max(0, len(m.logLines)-logHeight)
	logBody := strings.Join(m.logLines[logStart:], "\n")
	logWidth := max(30, m.width-lipgloss.Width(boardBox)-2)
	logBox := boxStyle.Width(logWidth).Height(logHeight).Render(logBody)

	var inputLine string
	if m.m == modeInput {
		inputLine = m.input.View()
	} else {
		inputLine = "i: command  u: undo  n: new game  f: flip  s: save  q: quit"
	}
	inputBox := boxStyle.Width(max(30, m.width-2)).Render(inputLine)

	body := lipgloss.JoinHorizontal(lipgloss.Top, boardBox, logBox)
	return header + "\n" + body + "\n" + inputBox + "\n"
}
