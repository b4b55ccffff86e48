package ui

import (
	"github.com/hailam/mailboxchess/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var pickerChoices = [4]board.PieceType{board.Queen, board.Knight, board.Rook, board.Bishop}

var pickerKeys = map[ebiten.Key]board.PieceType{
	ebiten.KeyQ: board.Queen,
	ebiten.KeyN: board.Knight,
	ebiten.KeyR: board.Rook,
	ebiten.KeyB: board.Bishop,
}

// PromotionPicker is the overlay that asks which piece a pawn becomes.
// The choices stack from the promotion square toward the board center.
type PromotionPicker struct {
	visible bool
	move    board.Move
	color   board.Color
}

// NewPromotionPicker creates a hidden picker.
func NewPromotionPicker() *PromotionPicker {
	return &PromotionPicker{}
}

// Open shows the picker for move m.
func (pp *PromotionPicker) Open(m board.Move) {
	pp.visible = true
	pp.move = m
	pp.color = m.Moved().Color()
}

// Close hides the picker.
func (pp *PromotionPicker) Close() {
	pp.visible = false
}

// IsVisible reports whether the picker is shown.
func (pp *PromotionPicker) IsVisible() bool {
	return pp.visible
}

// Update handles input. It returns the chosen type, or cancelled when the
// player pressed Escape or clicked outside the choices.
func (pp *PromotionPicker) Update(input *InputHandler, r *Renderer) (choice board.PieceType, cancelled bool) {
	for _, k := range input.JustPressedKeys() {
		if pt, ok := pickerKeys[k]; ok {
			return pt, false
		}
		if k == ebiten.KeyEscape {
			return board.NoPieceType, true
		}
	}

	if !input.IsLeftJustPressed() {
		return board.NoPieceType, false
	}
	size := r.SquareSize()
	for i, pt := range pickerChoices {
		x, y := pp.slot(r, i)
		if input.ClickedInBounds(int(x), int(y), size, size) {
			return pt, false
		}
	}
	return board.NoPieceType, true
}

// slot returns the logical top-left corner of choice i.
func (pp *PromotionPicker) slot(r *Renderer, i int) (float64, float64) {
	to := pp.move.To()
	step := 1
	if to.Row() == 7 {
		step = -1
	}
	return r.SquareToScreen(board.NewSquare(to.Row()+step*i, to.Col()))
}

// Draw renders the picker over the board.
func (pp *PromotionPicker) Draw(screen *ebiten.Image, r *Renderer) {
	if !pp.visible {
		return
	}

	size := float64(r.BoardSize())
	vector.DrawFilledRect(screen, 0, 0, r.s(size), r.s(size), r.Theme().OverlayColor, false)

	sq := float64(r.SquareSize())
	for i, pt := range pickerChoices {
		x, y := pp.slot(r, i)
		vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(sq), r.s(sq), r.Theme().LightSquare, false)
		vector.StrokeRect(screen, r.s(x), r.s(y), r.s(sq), r.s(sq), 2, r.Theme().DarkSquare, true)
		r.Sprites().DrawPieceAt(screen, board.NewPiece(pt, pp.color), x, y)
	}
}
