package ui

import (
	"errors"
	"log"
	"time"

	"github.com/hailam/mailboxchess/internal/board"
	"github.com/hailam/mailboxchess/internal/game"
	"github.com/hailam/mailboxchess/internal/storage"
	"github.com/hajimehoshi/ebiten/v2"
)

// UI Constants
const (
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	StatusHeight = 36
	ScreenWidth  = BoardSize
	ScreenHeight = BoardSize + StatusHeight
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout() and used by input and overlays.
var UIScale float64 = 1.0

// Game implements ebiten.Game interface.
type Game struct {
	session *game.Session

	// Storage may be nil; the game then runs without persistence.
	storage *storage.Storage
	prefs   *storage.Preferences

	// Components
	renderer *Renderer
	input    *InputHandler
	feedback *FeedbackManager
	picker   *PromotionPicker
	settings *SettingsModal
	games    *GamesModal
	glass    *GlassEffect

	// Move being animated; input waits until it lands.
	anim *MoveAnimation

	started  time.Time
	recorded bool // result of the current game already counted

	// HiDPI scaling
	scale float64
}

// NewGame creates the GUI. store may be nil.
func NewGame(store *storage.Storage) *Game {
	g := &Game{
		session:  game.NewSession(game.WithPromotionPrompt()),
		storage:  store,
		renderer: NewRenderer(BoardSize, SquareSize),
		input:    NewInputHandler(),
		feedback: NewFeedbackManager(),
		picker:   NewPromotionPicker(),
		settings: NewSettingsModal(),
		games:    NewGamesModal(),
		glass:    NewGlassEffect(),
		started:  time.Now(),
		scale:    1.0,
	}

	g.loadPreferences()
	g.resume()
	return g
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	if g.storage != nil {
		prefs, err := g.storage.LoadPreferences()
		if err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
		} else {
			g.prefs = prefs
		}
	}

	g.renderer.SetFlipped(g.prefs.Flipped)
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// resume replays the auto-saved game from the last run.
func (g *Game) resume() {
	if g.storage == nil {
		return
	}
	moves, err := g.storage.LoadCurrent()
	if err != nil {
		log.Printf("Warning: Failed to load current game: %v", err)
		return
	}
	if len(moves) == 0 {
		return
	}
	if err := g.session.Replay(moves); err != nil {
		log.Printf("Warning: Discarding saved game: %v", err)
		g.session.Reset()
		return
	}
	g.recorded = g.session.Status().Over()
	g.feedback.Toast("Resumed previous game", ToastInfo)
}

// autosave stores the move list so the game survives a restart.
func (g *Game) autosave() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SaveCurrent(g.session.Notations()); err != nil {
		log.Printf("Warning: Failed to save current game: %v", err)
	}
}

// Update proceeds the game state.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()
	g.glass.Update()

	if g.settings.Update(g.input) || g.games.Update(g.input) {
		return nil
	}

	if g.anim != nil {
		if g.anim.Advance() {
			g.anim = nil
		}
		return nil
	}

	if g.picker.IsVisible() {
		g.handlePicker()
		return nil
	}

	g.handleKeys()
	g.handleBoardInput()
	return nil
}

func (g *Game) handleKeys() {
	for _, k := range g.input.JustPressedKeys() {
		switch k {
		case ebiten.KeyZ:
			g.UndoAction()
		case ebiten.KeyR:
			g.NewGameAction()
		case ebiten.KeyF:
			g.prefs.Flipped = !g.prefs.Flipped
			g.renderer.SetFlipped(g.prefs.Flipped)
			g.savePreferences()
		case ebiten.KeyH:
			g.prefs.ShowHighlights = !g.prefs.ShowHighlights
			g.savePreferences()
		case ebiten.KeyA:
			g.prefs.Animate = !g.prefs.Animate
			g.savePreferences()
		case ebiten.KeyM:
			g.prefs.SoundEnabled = !g.prefs.SoundEnabled
			g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
			g.savePreferences()
		case ebiten.KeyS:
			g.SaveAction()
		case ebiten.KeyO:
			g.SettingsAction()
		case ebiten.KeyL:
			g.GamesAction()
		}
	}
}

func (g *Game) handleBoardInput() {
	if !g.input.IsLeftJustPressed() {
		return
	}
	mx, my := g.input.MousePosition()
	sq := g.renderer.ScreenToSquare(mx, my)
	if sq == board.NoSquare {
		return
	}

	prev := g.session.Selected()
	switch g.session.Click(sq) {
	case game.Moved:
		g.afterMove()
	case game.PromotionPending:
		m, _ := g.session.Pending()
		g.picker.Open(m)
	case game.Rejected:
		if g.ownPiece(prev) && !g.ownPiece(sq) {
			g.feedback.OnInvalidMove(prev, sq)
		}
	}
}

func (g *Game) handlePicker() {
	pt, cancelled := g.picker.Update(g.input, g.renderer)
	switch {
	case cancelled:
		g.session.CancelPromotion()
		g.picker.Close()
	case pt != board.NoPieceType:
		g.picker.Close()
		if err := g.session.Promote(pt); err != nil {
			log.Printf("Warning: Promotion failed: %v", err)
			return
		}
		g.afterMove()
	}
}

func (g *Game) ownPiece(sq board.Square) bool {
	if !sq.IsValid() {
		return false
	}
	gs := g.session.State()
	p := gs.PieceAt(sq)
	return p != board.NoPiece && p.Color() == gs.SideToMove()
}

// afterMove runs the effects of a move just played.
func (g *Game) afterMove() {
	m, ok := g.session.LastMove()
	if !ok {
		return
	}
	if g.prefs.Animate {
		g.anim = NewMoveAnimation(m, FramesPerSquare)
	}
	g.feedback.OnMoveMade(m)
	g.checkGameEnd()
	g.autosave()
}

// checkGameEnd announces check, checkmate and stalemate and counts results.
func (g *Game) checkGameEnd() {
	status := g.session.Status()
	if !status.Over() {
		if g.session.State().InCheck() {
			g.feedback.OnCheck()
		}
		return
	}

	g.feedback.OnGameEnd(g.session.Message())
	if g.recorded {
		return
	}
	g.recorded = true
	g.recordResult(storage.ResultFor(status))
}

func (g *Game) recordResult(r storage.Result) {
	if g.storage == nil {
		return
	}
	if err := g.storage.RecordResult(r, g.session.State().Ply(), time.Since(g.started)); err != nil {
		log.Printf("Warning: Failed to record game: %v", err)
	}
}

// UndoAction takes back the last move. Taking back a finished game's last
// move reopens it, so its next ending is counted again.
func (g *Game) UndoAction() {
	g.anim = nil
	wasOver := g.session.Status().Over()
	if err := g.session.Undo(); err != nil {
		if errors.Is(err, game.ErrNothingToUndo) {
			g.feedback.Toast("Nothing to undo", ToastInfo)
			return
		}
		log.Printf("Warning: Undo failed: %v", err)
		return
	}
	if wasOver && !g.session.Status().Over() {
		g.recorded = false
	}
	g.autosave()
}

// NewGameAction starts a new game, counting an unfinished one as abandoned.
func (g *Game) NewGameAction() {
	if !g.recorded && g.session.State().Ply() > 0 {
		g.recordResult(storage.ResultAbandoned)
	}
	g.anim = nil
	g.session.Reset()
	g.recorded = false
	g.started = time.Now()
	g.autosave()
	g.feedback.Toast("New game", ToastInfo)
}

// SaveAction stores the game under a new readable name.
func (g *Game) SaveAction() {
	if g.storage == nil {
		g.feedback.Toast("Storage is disabled", ToastError)
		return
	}
	sg := &storage.SavedGame{Moves: g.session.Notations(), Status: g.session.Message()}
	if err := g.storage.SaveGame(sg); err != nil {
		log.Printf("Warning: Failed to save game: %v", err)
		g.feedback.Toast("Save failed", ToastError)
		return
	}
	g.feedback.Toast("Saved as "+sg.ID, ToastSuccess)
}

// SettingsAction opens the preferences and statistics dialog.
func (g *Game) SettingsAction() {
	var stats *storage.GameStats
	if g.storage != nil {
		st, err := g.storage.LoadStats()
		if err != nil {
			log.Printf("Warning: Failed to load stats: %v", err)
		} else {
			stats = st
		}
	}
	g.settings.Show(g.prefs, stats, g.applyPreferences)
}

func (g *Game) applyPreferences(prefs *storage.Preferences) {
	g.prefs = prefs
	g.renderer.SetFlipped(prefs.Flipped)
	g.feedback.Audio().SetEnabled(prefs.SoundEnabled)
	g.savePreferences()
}

// GamesAction opens the saved-games browser.
func (g *Game) GamesAction() {
	if g.storage == nil {
		g.feedback.Toast("Storage is disabled", ToastError)
		return
	}
	games, err := g.storage.ListGames()
	if err != nil {
		log.Printf("Warning: Failed to list games: %v", err)
		g.feedback.Toast("Could not read saved games", ToastError)
		return
	}
	g.games.Show(games, g.loadSaved, g.deleteSaved)
}

// loadSaved replaces the current game with a saved one.
func (g *Game) loadSaved(sg *storage.SavedGame) {
	if !g.recorded && g.session.State().Ply() > 0 {
		g.recordResult(storage.ResultAbandoned)
	}
	g.anim = nil
	g.picker.Close()
	if err := g.session.Replay(sg.Moves); err != nil {
		log.Printf("Warning: Failed to replay %s: %v", sg.ID, err)
		g.session.Reset()
		g.feedback.Toast("Saved game is damaged", ToastError)
	} else {
		g.feedback.Toast("Loaded "+sg.ID, ToastSuccess)
	}
	g.recorded = g.session.Status().Over()
	g.started = time.Now()
	g.autosave()
}

func (g *Game) deleteSaved(sg *storage.SavedGame) error {
	if err := g.storage.DeleteGame(sg.ID); err != nil {
		log.Printf("Warning: Failed to delete %s: %v", sg.ID, err)
		g.feedback.Toast("Delete failed", ToastError)
		return err
	}
	g.feedback.Toast("Deleted "+sg.ID, ToastInfo)
	return nil
}

// Draw draws the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	screen.Fill(g.renderer.Theme().Background)

	gs := g.session.State()
	g.renderer.DrawBoard(screen)

	if gs.InCheck() {
		g.renderer.DrawCheck(screen, gs.KingSquare(gs.SideToMove()))
	}

	if g.prefs.ShowHighlights {
		last, hasLast := g.session.LastMove()
		selected := g.session.Selected()
		var targets []board.Square
		if g.ownPiece(selected) {
			targets = g.session.TargetsFrom(selected)
		}
		g.renderer.DrawHighlights(screen, selected, targets, last, hasLast)
	}

	b := gs.Board()
	g.renderer.DrawPieces(screen, &b, g.feedback.Animations(), g.anim)

	g.feedback.Draw(screen, g.renderer)
	g.picker.Draw(screen, g.renderer)
	g.renderer.DrawStatus(screen, g.session.Message())

	if g.session.Status().Over() && g.anim == nil {
		g.renderer.DrawBanner(screen, g.session.Message(), "R: new game   Z: undo")
	}

	g.settings.Draw(screen, g.glass)
	g.games.Draw(screen, g.glass)
}

// Layout returns the game's screen dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// 2.0 on Retina, 1.0 on standard displays
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	UIScale = g.scale

	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// Close persists state before exit.
func (g *Game) Close() {
	g.savePreferences()
	g.autosave()
}
