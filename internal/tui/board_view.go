package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hailam/mailboxchess/internal/board"
)

var (
	lightSquare = lipgloss.NewStyle().Background(lipgloss.Color("#EEEED2"))
	darkSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#769656"))
	lastSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#BACA44"))
	checkSquare = lipgloss.NewStyle().Background(lipgloss.Color("#E05050"))

	whitePiece = lipgloss.Color("#FFFFFF")
	blackPiece = lipgloss.Color("#000000")
)

// boardView is what RenderBoard needs from a position.
type boardView struct {
	b       board.Board
	last    board.Move
	hasLast bool
	check   board.Square
	flipped bool
}

func viewOf(gs *board.GameState, flipped bool) boardView {
	v := boardView{b: gs.Board(), check: board.NoSquare, flipped: flipped}
	v.last, v.hasLast = gs.LastMove()
	if gs.InCheck() {
		v.check = gs.KingSquare(gs.SideToMove())
	}
	return v
}

// RenderBoard draws the position as an 8x8 grid of 3-column cells with
// rank and file labels. White is at the bottom unless flipped.
func RenderBoard(gs *board.GameState, flipped bool) string {
	return renderBoard(viewOf(gs, flipped))
}

func renderBoard(v boardView) string {
	files := "    a  b  c  d  e  f  g  h\n"
	if v.flipped {
		files = "    h  g  f  e  d  c  b  a\n"
	}

	var b strings.Builder
	b.WriteString(files)
	for i := 0; i < 8; i++ {
		row := i
		if v.flipped {
			row = 7 - i
		}
		b.WriteString(" ")
		b.WriteByte(byte('8' - row))
		b.WriteString(" ")
		for j := 0; j < 8; j++ {
			col := j
			if v.flipped {
				col = 7 - j
			}
			b.WriteString(v.cell(board.NewSquare(row, col)))
		}
		b.WriteString(" ")
		b.WriteByte(byte('8' - row))
		b.WriteString("\n")
	}
	b.WriteString(files)
	return b.String()
}

func (v boardView) cell(sq board.Square) string {
	style := lightSquare
	if (sq.Row()+sq.Col())%2 == 1 {
		style = darkSquare
	}
	if v.hasLast && (sq == v.last.From() || sq == v.last.To()) {
		style = lastSquare
	}
	if sq == v.check {
		style = checkSquare
	}

	p := v.b.At(sq)
	if p == board.NoPiece {
		return style.Render("   ")
	}
	fg := whitePiece
	if p.Color() == board.Black {
		fg = blackPiece
	}
	return style.Foreground(fg).Bold(true).Render(" " + glyph(p) + " ")
}

// glyph returns the solid chess symbol for the piece type; color comes from
// the cell style.
func glyph(p board.Piece) string {
	switch p.Type() {
	case board.King:
		return "♚"
	case board.Queen:
		return "♛"
	case board.Rook:
		return "♜"
	case board.Bishop:
		return "♝"
	case board.Knight:
		return "♞"
	case board.Pawn:
		return "♟"
	}
	return " "
}
