package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget colors
var (
	widgetBg      = color.RGBA{48, 52, 58, 255}
	widgetBorder  = color.RGBA{68, 72, 78, 255}
	widgetHoverBg = color.RGBA{65, 70, 78, 255}
	checkboxCheck = color.RGBA{76, 175, 120, 255}
	buttonBg      = color.RGBA{50, 54, 60, 255}
	buttonHoverBg = color.RGBA{65, 70, 78, 255}
	accentColor   = color.RGBA{76, 175, 120, 255}
	accentHover   = color.RGBA{96, 195, 140, 255}
	accentPressed = color.RGBA{56, 155, 100, 255}
	dangerColor   = color.RGBA{180, 60, 60, 255}
	textPrimary   = color.RGBA{240, 240, 245, 255}
	textSecondary = color.RGBA{160, 165, 175, 255}
	textMuted     = color.RGBA{120, 125, 135, 255}
	dividerColor  = color.RGBA{60, 65, 72, 255}
	rowAlt        = color.RGBA{44, 48, 54, 255}
	rowSelected   = color.RGBA{60, 90, 72, 255}
)

// Widgets are laid out in logical pixels; these convert to screen pixels.
func scaleF(v int) float32 {
	return float32(float64(v) * UIScale)
}

func scaleD(v int) float64 {
	return float64(v) * UIScale
}

func scaleI(v int) int {
	return int(float64(v) * UIScale)
}

// drawText draws s with its top-left corner at logical (x, y).
func drawText(screen *ebiten.Image, s string, x, y int, c color.Color, face *text.GoTextFace) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(x), scaleD(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Checkbox is a toggleable checkbox widget.
type Checkbox struct {
	X, Y    int
	Label   string
	Checked bool
	hovered bool
}

// NewCheckbox creates a new checkbox.
func NewCheckbox(x, y int, label string, checked bool) *Checkbox {
	return &Checkbox{
		X:       x,
		Y:       y,
		Label:   label,
		Checked: checked,
	}
}

// Update handles checkbox input.
func (cb *Checkbox) Update(input *InputHandler) bool {
	cb.hovered = input.IsInBounds(cb.X, cb.Y, 200, 24)

	if input.IsLeftJustPressed() && cb.hovered {
		cb.Checked = !cb.Checked
		return true
	}
	return false
}

// Draw renders the checkbox.
func (cb *Checkbox) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}

	boxX := scaleF(cb.X)
	boxY := scaleF(cb.Y)
	boxSize := scaleF(20)
	u := float32(UIScale)

	bgColor := widgetBg
	if cb.hovered {
		bgColor = widgetHoverBg
	}
	vector.DrawFilledRect(screen, boxX, boxY, boxSize, boxSize, bgColor, false)

	borderC := widgetBorder
	if cb.hovered {
		borderC = accentColor
	} else if cb.Checked {
		borderC = checkboxCheck
	}
	vector.StrokeRect(screen, boxX, boxY, boxSize, boxSize, 2*u, borderC, false)

	if cb.Checked {
		vector.StrokeLine(screen, boxX+4*u, boxY+10*u, boxX+8*u, boxY+14*u, 2*u, checkboxCheck, true)
		vector.StrokeLine(screen, boxX+8*u, boxY+14*u, boxX+16*u, boxY+6*u, 2*u, checkboxCheck, true)
	}

	textColor := textSecondary
	if cb.Checked {
		textColor = textPrimary
	}
	_, h := MeasureText(cb.Label, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(cb.X+30), scaleD(cb.Y+10)-h/2)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, cb.Label, face, op)
}

// ModalButton is a button for modal dialogs.
type ModalButton struct {
	X, Y, W, H int
	Label      string
	Primary    bool
	Danger     bool
	OnClick    func()
	hovered    bool
}

// NewModalButton creates a new modal button.
func NewModalButton(x, y, w, h int, label string, primary bool, onClick func()) *ModalButton {
	return &ModalButton{
		X: x, Y: y, W: w, H: h,
		Label:   label,
		Primary: primary,
		OnClick: onClick,
	}
}

// IsHovered returns true if the button is hovered.
func (mb *ModalButton) IsHovered() bool {
	return mb.hovered
}

// Update handles modal button input.
func (mb *ModalButton) Update(input *InputHandler) bool {
	mb.hovered = input.IsInBounds(mb.X, mb.Y, mb.W, mb.H)

	if input.IsLeftJustPressed() && mb.hovered && mb.OnClick != nil {
		mb.OnClick()
		return true
	}
	return false
}

// Draw renders the modal button.
func (mb *ModalButton) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}

	var bgColor, borderC color.RGBA
	switch {
	case mb.Danger:
		bgColor, borderC = dangerColor, dangerColor
		if mb.hovered {
			bgColor = color.RGBA{210, 80, 80, 255}
		}
	case mb.Primary:
		bgColor, borderC = accentColor, accentPressed
		if mb.hovered {
			bgColor = accentHover
		}
	default:
		bgColor, borderC = buttonBg, widgetBorder
		if mb.hovered {
			bgColor, borderC = buttonHoverBg, accentColor
		}
	}

	x, y, w, h := scaleF(mb.X), scaleF(mb.Y), scaleF(mb.W), scaleF(mb.H)
	vector.DrawFilledRect(screen, x, y, w, h, bgColor, false)
	vector.StrokeRect(screen, x, y, w, h, float32(UIScale), borderC, false)

	tw, th := MeasureText(mb.Label, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+float64(w)/2-tw/2, float64(y)+float64(h)/2-th/2)
	op.ColorScale.ScaleWithColor(textPrimary)
	text.Draw(screen, mb.Label, face, op)
}

// DrawDivider draws a horizontal divider line.
func DrawDivider(screen *ebiten.Image, x, y, w int) {
	vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(w), float32(UIScale), dividerColor, false)
}

// modalFrame is the backdrop, body and title bar shared by the dialogs.
func drawModalFrame(screen *ebiten.Image, glass *GlassEffect, x, y, w, h int, title string) {
	if glass.IsEnabled() {
		glass.DrawGlass(screen, 0, 0, scaleI(ScreenWidth), scaleI(ScreenHeight), color.RGBA{0, 0, 0, 100}, 3.0, 4.0)
	} else {
		vector.DrawFilledRect(screen, 0, 0, scaleF(ScreenWidth), scaleF(ScreenHeight), modalOverlay, false)
	}

	vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(h), modalBg, false)
	vector.StrokeRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(h), float32(UIScale*2), modalBorder, false)
	vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(44), modalHeader, false)

	face := GetBoldFace()
	if face == nil {
		return
	}
	tw, th := MeasureText(title, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(x)+scaleD(w)/2-tw/2, scaleD(y)+scaleD(22)-th/2)
	op.ColorScale.ScaleWithColor(textPrimary)
	text.Draw(screen, title, face, op)
}
