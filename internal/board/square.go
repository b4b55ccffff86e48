// Package board implements the chess rules engine: an 8x8 mailbox board,
// legal move generation and move execution with undo.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Rows run top to bottom (row 0 is rank 8) and columns left to right
// (column 0 is file a), so A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

var (
	colsToFiles = [8]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h'}
	rowsToRanks = [8]byte{'8', '7', '6', '5', '4', '3', '2', '1'}
)

// NewSquare creates a square from row and column (0-indexed).
// Returns NoSquare when either coordinate is off the board.
func NewSquare(row, col int) Square {
	if !onBoard(row, col) {
		return NoSquare
	}
	return Square(row*8 + col)
}

// Row returns the row of the square (0-7, where 0 is rank 8).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// Col returns the column of the square (0-7, where 0 is file a).
func (sq Square) Col() int {
	return int(sq) & 7
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{colsToFiles[sq.Col()], rowsToRanks[sq.Row()]})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])

	if !onBoard(row, col) {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return NewSquare(row, col), nil
}

func onBoard(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}
