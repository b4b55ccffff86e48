package ui

import (
	"image/color"

	"github.com/hailam/mailboxchess/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	BannerColor    color.RGBA
	OverlayColor   color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{235, 235, 208, 255},
		DarkSquare:     color.RGBA{119, 148, 85, 255},
		SelectedSquare: color.RGBA{40, 90, 200, 110},
		LegalMoveColor: color.RGBA{240, 200, 40, 140},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
		BannerColor:    color.RGBA{20, 20, 24, 220},
		OverlayColor:   color.RGBA{0, 0, 0, 120},
	}
}

// Renderer handles all drawing operations.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	scale      float64 // HiDPI scale factor
	flipped    bool    // black at the bottom
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
		scale:      1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

// SetFlipped turns the board so black sits at the bottom.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether black sits at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v float64) float32 {
	return float32(v * r.scale)
}

// DrawBoard draws the chess board squares and their coordinates.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			c := r.theme.LightSquare
			if (row+col)%2 == 1 {
				c = r.theme.DarkSquare
			}
			x, y := r.SquareToScreen(board.NewSquare(row, col))
			vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(float64(r.squareSize)), r.s(float64(r.squareSize)), c, false)
		}
	}

	r.drawCoordinates(screen)
}

// drawCoordinates writes file letters on the bottom edge and rank numbers on
// the left edge, in the color of the opposite square.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(11 * r.scale)
	if face == nil {
		return
	}

	for i := 0; i < 8; i++ {
		fileSq := board.NewSquare(7, i)
		rankSq := board.NewSquare(i, 0)
		if r.flipped {
			fileSq = board.NewSquare(0, i)
			rankSq = board.NewSquare(i, 7)
		}

		x, y := r.SquareToScreen(fileSq)
		label := fileSq.String()[:1]
		r.drawLabel(screen, face, label, x+float64(r.squareSize)-10, y+float64(r.squareSize)-15, fileSq)

		x, y = r.SquareToScreen(rankSq)
		label = rankSq.String()[1:]
		r.drawLabel(screen, face, label, x+3, y+2, rankSq)
	}
}

func (r *Renderer) drawLabel(screen *ebiten.Image, face *text.GoTextFace, label string, x, y float64, sq board.Square) {
	c := r.theme.DarkSquare
	if (sq.Row()+sq.Col())%2 == 1 {
		c = r.theme.LightSquare
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*r.scale, y*r.scale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, label, face, op)
}

// DrawHighlights draws the last move, the selected square and its targets.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []board.Square, lastMove board.Move, hasLast bool) {
	if hasLast {
		r.highlightSquare(screen, lastMove.From(), r.theme.LastMoveColor)
		r.highlightSquare(screen, lastMove.To(), r.theme.LastMoveColor)
	}

	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}

	for _, sq := range targets {
		r.drawLegalMoveIndicator(screen, sq)
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

// highlightSquare draws a colored overlay on a square.
func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(float64(r.squareSize)), r.s(float64(r.squareSize)), c, false)
}

// drawLegalMoveIndicator draws a circle on legal move squares.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	half := float64(r.squareSize) / 2
	radius := r.s(float64(r.squareSize)) * 0.15

	vector.DrawFilledCircle(screen, r.s(x+half), r.s(y+half), radius, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece on b. While anim runs, the moving piece is
// drawn in flight and the piece it captures stays visible until it lands.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b *board.Board, anims *AnimationManager, move *MoveAnimation) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := board.NewSquare(row, col)
			if move != nil && sq == move.Move().To() {
				continue
			}
			p := b.At(sq)
			if p == board.NoPiece {
				continue
			}

			x, y := r.SquareToScreen(sq)
			if anims != nil {
				dx, dy := anims.GetShakeOffset(sq)
				x += dx
				y += dy
			}
			r.sprites.DrawPieceAt(screen, p, x, y)
		}
	}

	if move == nil {
		return
	}
	m := move.Move()
	if m.IsCapture() {
		x, y := r.SquareToScreen(move.CaptureSquare())
		r.sprites.DrawPieceAt(screen, m.Captured(), x, y)
	}
	row, col := move.Position()
	x, y := r.gridToScreen(row, col)
	r.sprites.DrawPieceAt(screen, b.At(m.To()), x, y)
}

// SquareToScreen converts a board square to logical screen coordinates.
func (r *Renderer) SquareToScreen(sq board.Square) (float64, float64) {
	return r.gridToScreen(float64(sq.Row()), float64(sq.Col()))
}

// gridToScreen maps fractional board coordinates to the screen.
func (r *Renderer) gridToScreen(row, col float64) (float64, float64) {
	if r.flipped {
		row, col = 7-row, 7-col
	}
	return col * float64(r.squareSize), row * float64(r.squareSize)
}

// ScreenToSquare converts logical screen coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	col := x / r.squareSize
	row := y / r.squareSize
	if r.flipped {
		row, col = 7-row, 7-col
	}
	return board.NewSquare(row, col)
}

// DrawStatus writes msg in the bar below the board.
func (r *Renderer) DrawStatus(screen *ebiten.Image, msg string) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	vector.DrawFilledRect(screen, 0, r.s(float64(r.boardSize)), r.s(float64(r.boardSize)), r.s(StatusHeight), r.theme.Background, false)

	_, h := MeasureText(msg, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(12*r.scale, (float64(r.boardSize)+(StatusHeight-h/r.scale)/2)*r.scale)
	op.ColorScale.ScaleWithColor(r.theme.TextColor)
	text.Draw(screen, msg, face, op)
}

// DrawBanner dims the board and shows the end-of-game message.
func (r *Renderer) DrawBanner(screen *ebiten.Image, title, hint string) {
	size := float64(r.boardSize)
	vector.DrawFilledRect(screen, 0, 0, r.s(size), r.s(size), r.theme.OverlayColor, false)

	titleFace := GetBoldFaceWithSize(28 * r.scale)
	hintFace := GetFaceWithSize(14 * r.scale)
	if titleFace == nil || hintFace == nil {
		return
	}

	tw, th := MeasureText(title, titleFace)
	hw, hh := MeasureText(hint, hintFace)
	boxW := max(tw, hw)/r.scale + 60
	boxH := (th+hh)/r.scale + 50
	bx := (size - boxW) / 2
	by := (size - boxH) / 2
	vector.DrawFilledRect(screen, r.s(bx), r.s(by), r.s(boxW), r.s(boxH), r.theme.BannerColor, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate((size*r.scale-tw)/2, (by+18)*r.scale)
	op.ColorScale.ScaleWithColor(r.theme.TextColor)
	text.Draw(screen, title, titleFace, op)

	op = &text.DrawOptions{}
	op.GeoM.Translate((size*r.scale-hw)/2, (by+26)*r.scale+th)
	op.ColorScale.ScaleWithColor(r.theme.TextColor)
	text.Draw(screen, hint, hintFace, op)
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return r.boardSize
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
