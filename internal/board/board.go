package board

import "strings"

// Board is the 8x8 grid of square contents, indexed [row][col].
// The zero value is an empty board.
type Board [8][8]Piece

// StartingBoard returns the board of a new game.
func StartingBoard() Board {
	var b Board
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, pt := range back {
		b[0][col] = NewPiece(pt, Black)
		b[1][col] = BlackPawn
		b[6][col] = WhitePawn
		b[7][col] = NewPiece(pt, White)
	}
	return b
}

// At returns the piece on sq, or NoPiece if the square is empty.
func (b *Board) At(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b[sq.Row()][sq.Col()]
}

// IsEmpty returns true if nothing stands on sq.
func (b *Board) IsEmpty(sq Square) bool {
	return b.At(sq) == NoPiece
}

// Set places p on sq; NoPiece clears the square.
func (b *Board) Set(sq Square, p Piece) {
	b[sq.Row()][sq.Col()] = p
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] != NoPiece {
				n++
			}
		}
	}
	return n
}

// findKing returns the square of c's king, or NoSquare.
func (b *Board) findKing(c Color) Square {
	king := NewPiece(King, c)
	for row := range b {
		for col := range b[row] {
			if b[row][col] == king {
				return NewSquare(row, col)
			}
		}
	}
	return NoSquare
}

// String draws the board with rank 8 at the top.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		sb.WriteByte(rowsToRanks[row])
		sb.WriteString("  ")
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
