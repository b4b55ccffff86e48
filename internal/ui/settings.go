package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hailam/mailboxchess/internal/storage"
	"github.com/hajimehoshi/ebiten/v2"
)

// Settings modal dimensions
const (
	SettingsWidth  = 380
	SettingsHeight = 460
	SettingsPadX   = 24
	SettingsPadY   = 20
)

// Modal colors
var (
	modalOverlay = color.RGBA{0, 0, 0, 180}
	modalBg      = color.RGBA{38, 40, 45, 255}
	modalHeader  = color.RGBA{48, 52, 58, 255}
	modalBorder  = color.RGBA{58, 62, 68, 255}
)

// SettingsModal edits the display and sound preferences and shows the
// stored game statistics.
type SettingsModal struct {
	visible bool

	// Position (centered on screen)
	x, y int

	soundCheckbox     *Checkbox
	highlightCheckbox *Checkbox
	animateCheckbox   *Checkbox
	flipCheckbox      *Checkbox
	saveBtn           *ModalButton
	cancelBtn         *ModalButton

	stats  *storage.GameStats // nil without storage
	prefs  storage.Preferences
	onSave func(prefs *storage.Preferences)
}

// NewSettingsModal creates a new settings modal.
func NewSettingsModal() *SettingsModal {
	sm := &SettingsModal{
		x: (ScreenWidth - SettingsWidth) / 2,
		y: (ScreenHeight - SettingsHeight) / 2,
	}
	sm.createWidgets()
	return sm
}

func (sm *SettingsModal) createWidgets() {
	contentX := sm.x + SettingsPadX

	checkY := sm.y + 84
	sm.soundCheckbox = NewCheckbox(contentX, checkY, "Sound effects", true)
	sm.highlightCheckbox = NewCheckbox(contentX, checkY+32, "Highlight legal moves", true)
	sm.animateCheckbox = NewCheckbox(contentX, checkY+64, "Animate moves", true)
	sm.flipCheckbox = NewCheckbox(contentX, checkY+96, "Black at the bottom", false)

	btnW := 100
	btnH := 38
	btnY := sm.y + SettingsHeight - SettingsPadY - btnH
	btnSpacing := 12

	sm.cancelBtn = NewModalButton(
		sm.x+SettingsWidth-SettingsPadX-btnW*2-btnSpacing,
		btnY, btnW, btnH, "Cancel", false, sm.Hide,
	)
	sm.saveBtn = NewModalButton(
		sm.x+SettingsWidth-SettingsPadX-btnW,
		btnY, btnW, btnH, "Save", true, sm.handleSave,
	)
}

// Show opens the modal on a copy of prefs. onSave receives the edited
// preferences; cancelling leaves prefs untouched. stats may be nil.
func (sm *SettingsModal) Show(prefs *storage.Preferences, stats *storage.GameStats, onSave func(*storage.Preferences)) {
	sm.visible = true
	sm.prefs = *prefs
	sm.stats = stats
	sm.onSave = onSave

	sm.soundCheckbox.Checked = prefs.SoundEnabled
	sm.highlightCheckbox.Checked = prefs.ShowHighlights
	sm.animateCheckbox.Checked = prefs.Animate
	sm.flipCheckbox.Checked = prefs.Flipped
}

// Hide closes the settings modal.
func (sm *SettingsModal) Hide() {
	sm.visible = false
}

// IsVisible returns true if the modal is visible.
func (sm *SettingsModal) IsVisible() bool {
	return sm.visible
}

func (sm *SettingsModal) handleSave() {
	prefs := sm.prefs
	prefs.SoundEnabled = sm.soundCheckbox.Checked
	prefs.ShowHighlights = sm.highlightCheckbox.Checked
	prefs.Animate = sm.animateCheckbox.Checked
	prefs.Flipped = sm.flipCheckbox.Checked

	if sm.onSave != nil {
		sm.onSave(&prefs)
	}
	sm.Hide()
}

// Update handles input for the settings modal. The modal consumes all input
// while visible.
func (sm *SettingsModal) Update(input *InputHandler) bool {
	if !sm.visible {
		return false
	}

	switch {
	case input.KeyJustPressed(ebiten.KeyEscape):
		sm.Hide()
		return true
	case input.KeyJustPressed(ebiten.KeyEnter):
		sm.handleSave()
		return true
	}

	sm.soundCheckbox.Update(input)
	sm.highlightCheckbox.Update(input)
	sm.animateCheckbox.Update(input)
	sm.flipCheckbox.Update(input)
	if !sm.saveBtn.Update(input) {
		sm.cancelBtn.Update(input)
	}
	return true
}

// Draw renders the settings modal.
func (sm *SettingsModal) Draw(screen *ebiten.Image, glass *GlassEffect) {
	if !sm.visible {
		return
	}
	drawModalFrame(screen, glass, sm.x, sm.y, SettingsWidth, SettingsHeight, "Settings")

	contentX := sm.x + SettingsPadX
	contentW := SettingsWidth - SettingsPadX*2
	face := GetRegularFace()

	drawText(screen, "Board and sound", contentX, sm.y+56, textMuted, face)
	sm.soundCheckbox.Draw(screen)
	sm.highlightCheckbox.Draw(screen)
	sm.animateCheckbox.Draw(screen)
	sm.flipCheckbox.Draw(screen)

	statsY := sm.flipCheckbox.Y + 44
	DrawDivider(screen, contentX, statsY, contentW)
	drawText(screen, "Statistics", contentX, statsY+12, textMuted, face)
	for i, line := range statsLines(sm.stats) {
		drawText(screen, line, contentX, statsY+40+i*24, textSecondary, face)
	}

	sm.saveBtn.Draw(screen)
	sm.cancelBtn.Draw(screen)
}

// statsLines formats stats for display; nil means storage is off.
func statsLines(st *storage.GameStats) []string {
	if st == nil {
		return []string{"Statistics are not stored"}
	}
	return []string{
		fmt.Sprintf("Games: %d  (%.0f%% decisive)", st.GamesPlayed, st.DecisiveRate()),
		fmt.Sprintf("White %d   Black %d   Stalemate %d", st.WhiteWins, st.BlackWins, st.Stalemates),
		fmt.Sprintf("Abandoned %d   Longest %d plies", st.Abandoned, st.LongestGame),
		fmt.Sprintf("Time played: %s", st.TotalPlayTime.Round(time.Second)),
	}
}
