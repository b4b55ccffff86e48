package ui

import (
	"fmt"

	"github.com/hailam/mailboxchess/internal/storage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	GamesWidth   = 460
	GamesHeight  = 470
	GamesRows    = 9
	GamesRowH    = 36
	gamesListTop = 60
)

// GamesModal lists saved games and loads or deletes the selected one.
type GamesModal struct {
	visible bool
	x, y    int

	games    []*storage.SavedGame
	selected int
	offset   int // first visible row

	loadBtn   *ModalButton
	deleteBtn *ModalButton
	closeBtn  *ModalButton

	onLoad   func(g *storage.SavedGame)
	onDelete func(g *storage.SavedGame) error
}

// NewGamesModal creates a hidden saved-games browser.
func NewGamesModal() *GamesModal {
	gm := &GamesModal{
		x: (ScreenWidth - GamesWidth) / 2,
		y: (ScreenHeight - GamesHeight) / 2,
	}

	btnW, btnH, gap := 100, 38, 12
	btnY := gm.y + GamesHeight - SettingsPadY - btnH
	right := gm.x + GamesWidth - SettingsPadX
	gm.loadBtn = NewModalButton(right-btnW, btnY, btnW, btnH, "Load", true, gm.load)
	gm.closeBtn = NewModalButton(right-btnW*2-gap, btnY, btnW, btnH, "Close", false, gm.Hide)
	gm.deleteBtn = NewModalButton(gm.x+SettingsPadX, btnY, btnW, btnH, "Delete", false, gm.remove)
	gm.deleteBtn.Danger = true
	return gm
}

// Show opens the browser on games, most recent first.
func (gm *GamesModal) Show(games []*storage.SavedGame, onLoad func(*storage.SavedGame), onDelete func(*storage.SavedGame) error) {
	gm.visible = true
	gm.games = games
	gm.selected = 0
	gm.offset = 0
	gm.onLoad = onLoad
	gm.onDelete = onDelete
}

// Hide closes the browser.
func (gm *GamesModal) Hide() {
	gm.visible = false
}

// IsVisible returns true if the browser is shown.
func (gm *GamesModal) IsVisible() bool {
	return gm.visible
}

func (gm *GamesModal) current() *storage.SavedGame {
	if gm.selected < 0 || gm.selected >= len(gm.games) {
		return nil
	}
	return gm.games[gm.selected]
}

func (gm *GamesModal) load() {
	g := gm.current()
	if g == nil {
		return
	}
	gm.Hide()
	if gm.onLoad != nil {
		gm.onLoad(g)
	}
}

func (gm *GamesModal) remove() {
	g := gm.current()
	if g == nil || gm.onDelete == nil {
		return
	}
	if err := gm.onDelete(g); err != nil {
		return
	}
	gm.games = append(gm.games[:gm.selected], gm.games[gm.selected+1:]...)
	gm.moveSelection(0)
}

// moveSelection shifts the selection by delta and keeps it in view.
func (gm *GamesModal) moveSelection(delta int) {
	gm.selected += delta
	if gm.selected >= len(gm.games) {
		gm.selected = len(gm.games) - 1
	}
	if gm.selected < 0 {
		gm.selected = 0
	}
	if gm.selected < gm.offset {
		gm.offset = gm.selected
	}
	if gm.selected >= gm.offset+GamesRows {
		gm.offset = gm.selected - GamesRows + 1
	}
}

// Update handles input. The browser consumes all input while visible.
func (gm *GamesModal) Update(input *InputHandler) bool {
	if !gm.visible {
		return false
	}

	for _, k := range input.JustPressedKeys() {
		switch k {
		case ebiten.KeyEscape:
			gm.Hide()
			return true
		case ebiten.KeyEnter:
			gm.load()
			return true
		case ebiten.KeyDelete, ebiten.KeyBackspace:
			gm.remove()
		case ebiten.KeyUp:
			gm.moveSelection(-1)
		case ebiten.KeyDown:
			gm.moveSelection(1)
		}
	}

	_, wy := ebiten.Wheel()
	switch {
	case wy > 0:
		gm.moveSelection(-1)
	case wy < 0:
		gm.moveSelection(1)
	}

	listX := gm.x + SettingsPadX
	listW := GamesWidth - SettingsPadX*2
	for row := 0; row < GamesRows && gm.offset+row < len(gm.games); row++ {
		if input.ClickedInBounds(listX, gm.y+gamesListTop+row*GamesRowH, listW, GamesRowH) {
			gm.selected = gm.offset + row
		}
	}

	switch {
	case gm.loadBtn.Update(input):
	case gm.deleteBtn.Update(input):
	default:
		gm.closeBtn.Update(input)
	}
	return true
}

// Draw renders the browser.
func (gm *GamesModal) Draw(screen *ebiten.Image, glass *GlassEffect) {
	if !gm.visible {
		return
	}
	drawModalFrame(screen, glass, gm.x, gm.y, GamesWidth, GamesHeight, "Saved games")

	face := GetRegularFace()
	small := GetFaceWithSize(12 * UIScale)
	listX := gm.x + SettingsPadX
	listW := GamesWidth - SettingsPadX*2

	if len(gm.games) == 0 {
		drawText(screen, "No saved games. Press S during a game to save it.", listX, gm.y+gamesListTop+8, textMuted, face)
	}

	for row := 0; row < GamesRows && gm.offset+row < len(gm.games); row++ {
		i := gm.offset + row
		g := gm.games[i]
		y := gm.y + gamesListTop + row*GamesRowH

		bg := modalBg
		if i == gm.selected {
			bg = rowSelected
		} else if row%2 == 1 {
			bg = rowAlt
		}
		vector.DrawFilledRect(screen, scaleF(listX), scaleF(y), scaleF(listW), scaleF(GamesRowH), bg, false)

		drawText(screen, g.ID, listX+8, y+4, textPrimary, face)
		detail := fmt.Sprintf("%d plies  %s  %s", len(g.Moves), g.Updated.Format("Jan 2 15:04"), g.Status)
		drawText(screen, detail, listX+8, y+21, textSecondary, small)
	}

	gm.loadBtn.Draw(screen)
	gm.deleteBtn.Draw(screen)
	gm.closeBtn.Draw(screen)
}
