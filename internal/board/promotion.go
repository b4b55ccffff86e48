package board

// Promoter decides which piece a pawn becomes when it reaches the back rank.
// GameState asks it synchronously from MakeMove.
type Promoter interface {
	Promote(m Move) PieceType
}

// PromoterFunc adapts a function to the Promoter interface.
type PromoterFunc func(m Move) PieceType

// Promote calls f(m).
func (f PromoterFunc) Promote(m Move) PieceType {
	return f(m)
}

// PromoteTo returns a Promoter that always answers pt.
func PromoteTo(pt PieceType) Promoter {
	return PromoterFunc(func(Move) PieceType { return pt })
}

// AlwaysQueen is the default promotion policy, used when no Promoter is set.
var AlwaysQueen = PromoteTo(Queen)

// promotionPiece resolves the piece installed on the destination square.
// A nil promoter, or an answer that is not knight, bishop, rook or queen,
// yields a queen.
func promotionPiece(p Promoter, m Move) Piece {
	pt := Queen
	if p != nil {
		pt = p.Promote(m)
	}
	switch pt {
	case Knight, Bishop, Rook, Queen:
	default:
		pt = Queen
	}
	return NewPiece(pt, m.moved.Color())
}
