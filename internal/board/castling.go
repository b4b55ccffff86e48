package board

// CastlingRights is a snapshot of the four castling options.
// Snapshots are values; GameState keeps one per ply so undo can restore them.
type CastlingRights struct {
	WhiteKingSide  bool
	WhiteQueenSide bool
	BlackKingSide  bool
	BlackQueenSide bool
}

// AllCastlingRights returns the rights of the starting position.
func AllCastlingRights() CastlingRights {
	return CastlingRights{true, true, true, true}
}

// String returns the castling rights in "KQkq" form, or "-" when none remain.
func (cr CastlingRights) String() string {
	s := ""
	if cr.WhiteKingSide {
		s += "K"
	}
	if cr.WhiteQueenSide {
		s += "Q"
	}
	if cr.BlackKingSide {
		s += "k"
	}
	if cr.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr.WhiteKingSide
		}
		return cr.WhiteQueenSide
	}
	if kingSide {
		return cr.BlackKingSide
	}
	return cr.BlackQueenSide
}

// afterMove returns the rights left once m has been played.
// A king move drops both rights of its color; a rook leaving its corner, or
// a rook captured on its corner, drops the matching single right.
func (cr CastlingRights) afterMove(m Move) CastlingRights {
	switch m.moved {
	case WhiteKing:
		cr.WhiteKingSide = false
		cr.WhiteQueenSide = false
	case BlackKing:
		cr.BlackKingSide = false
		cr.BlackQueenSide = false
	case WhiteRook, BlackRook:
		cr = cr.withoutCorner(m.from)
	}
	if m.captured.Type() == Rook {
		cr = cr.withoutCorner(m.to)
	}
	return cr
}

func (cr CastlingRights) withoutCorner(sq Square) CastlingRights {
	switch sq {
	case A1:
		cr.WhiteQueenSide = false
	case H1:
		cr.WhiteKingSide = false
	case A8:
		cr.BlackQueenSide = false
	case H8:
		cr.BlackKingSide = false
	}
	return cr
}

// sanitize drops rights whose king or rook is not on its home square.
func (cr CastlingRights) sanitize(b *Board) CastlingRights {
	if b.At(E1) != WhiteKing {
		cr.WhiteKingSide, cr.WhiteQueenSide = false, false
	}
	if b.At(E8) != BlackKing {
		cr.BlackKingSide, cr.BlackQueenSide = false, false
	}
	if b.At(H1) != WhiteRook {
		cr.WhiteKingSide = false
	}
	if b.At(A1) != WhiteRook {
		cr.WhiteQueenSide = false
	}
	if b.At(H8) != BlackRook {
		cr.BlackKingSide = false
	}
	if b.At(A8) != BlackRook {
		cr.BlackQueenSide = false
	}
	return cr
}
