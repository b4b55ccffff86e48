package board

import "fmt"

// MoveFlag marks the special kinds of move. Flags are independent.
type MoveFlag uint8

// Move flags
const (
	FlagEnPassant MoveFlag = 1 << iota
	FlagPromotion
	FlagCastle
)

// Move is one ply: origin and destination squares plus the pieces involved,
// captured from the board at construction time. A Move is never modified
// after NewMove returns.
//
// Two moves are Equal when they connect the same two squares; pieces and
// flags do not take part in the comparison.
type Move struct {
	from     Square
	to       Square
	moved    Piece
	captured Piece
	flags    MoveFlag
}

// NewMove builds a move from one square to another on board b.
// With FlagEnPassant the captured piece is the opposing pawn, which does not
// stand on the destination square. Squares must be on the board; anything
// else is a programming error and panics.
func NewMove(from, to Square, b *Board, flags MoveFlag) Move {
	if !from.IsValid() || !to.IsValid() {
		panic(fmt.Sprintf("board: move square out of range (%d -> %d)", from, to))
	}

	m := Move{
		from:     from,
		to:       to,
		moved:    b.At(from),
		captured: b.At(to),
		flags:    flags,
	}
	if flags&FlagEnPassant != 0 {
		m.captured = NewPiece(Pawn, m.moved.Color().Other())
	}
	return m
}

// From returns the origin square.
func (m Move) From() Square {
	return m.from
}

// To returns the destination square.
func (m Move) To() Square {
	return m.to
}

// Moved returns the piece that moves.
func (m Move) Moved() Piece {
	return m.moved
}

// Captured returns the captured piece, or NoPiece.
func (m Move) Captured() Piece {
	return m.captured
}

// Flags returns the move flags.
func (m Move) Flags() MoveFlag {
	return m.flags
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.flags&FlagEnPassant != 0
}

// IsPromotion returns true if a pawn reaches the back rank with this move.
func (m Move) IsPromotion() bool {
	return m.flags&FlagPromotion != 0
}

// IsCastle returns true if this is the king's half of a castling move.
func (m Move) IsCastle() bool {
	return m.flags&FlagCastle != 0
}

// IsCapture returns true if the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.captured != NoPiece
}

// ID packs origin and destination into one integer:
// fromRow*1000 + fromCol*100 + toRow*10 + toCol.
func (m Move) ID() int {
	return m.from.Row()*1000 + m.from.Col()*100 + m.to.Row()*10 + m.to.Col()
}

// Equal reports whether two moves connect the same squares.
func (m Move) Equal(o Move) bool {
	return m.ID() == o.ID()
}

// Notation returns the square-pair notation of the move (e.g., "e2e4").
func (m Move) Notation() string {
	return m.from.String() + m.to.String()
}

// String returns the square-pair notation of the move.
func (m Move) String() string {
	return m.Notation()
}

// Find returns the move in moves that is Equal to m.
func Find(moves []Move, m Move) (Move, bool) {
	for _, candidate := range moves {
		if candidate.Equal(m) {
			return candidate, true
		}
	}
	return Move{}, false
}
