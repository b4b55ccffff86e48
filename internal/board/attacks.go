package board

// direction is a (row, col) step on the board.
type direction struct {
	dr, dc int
}

func (d direction) opposite() direction {
	return direction{-d.dr, -d.dc}
}

// Ray directions. The first four are orthogonal, the last four diagonal;
// attack tests rely on that order.
var rays = [8]direction{
	{-1, 0}, {0, -1}, {1, 0}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

var (
	orthogonals = rays[:4]
	diagonals   = rays[4:]
)

var knightOffsets = [8]direction{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// attacksAlong reports whether enemy piece p, found dist squares away along
// ray d from a target square, attacks that square.
func attacksAlong(p Piece, d direction, dist int) bool {
	orthogonal := d.dr == 0 || d.dc == 0
	switch p.Type() {
	case Queen:
		return true
	case Rook:
		return orthogonal
	case Bishop:
		return !orthogonal
	case King:
		return dist == 1
	case Pawn:
		if dist != 1 || orthogonal {
			return false
		}
		// White pawns capture upward, so they sit one row below their target.
		if p.Color() == White {
			return d.dr == 1
		}
		return d.dr == -1
	default:
		return false
	}
}

// squareUnderAttack reports whether any piece of the side opposing us attacks
// sq. Pieces of our own color block rays.
func (gs *GameState) squareUnderAttack(sq Square, us Color) bool {
	them := us.Other()
	row, col := sq.Row(), sq.Col()

	for _, d := range rays {
		for i := 1; i < 8; i++ {
			r, c := row+d.dr*i, col+d.dc*i
			if !onBoard(r, c) {
				break
			}
			p := gs.board[r][c]
			if p == NoPiece {
				continue
			}
			if p.Color() == them && attacksAlong(p, d, i) {
				return true
			}
			break
		}
	}

	knight := NewPiece(Knight, them)
	for _, o := range knightOffsets {
		r, c := row+o.dr, col+o.dc
		if onBoard(r, c) && gs.board[r][c] == knight {
			return true
		}
	}
	return false
}

// pin is a friendly piece that may only move along dir (pointing away from
// the king) or its opposite.
type pin struct {
	sq  Square
	dir direction
}

// check is an enemy piece attacking the king. For sliders, dir points from
// the king toward the checker.
type check struct {
	sq  Square
	dir direction
}

// threats is the result of one pin and check scan.
type threats struct {
	inCheck bool
	pins    []pin
	checks  []check
}

// pinDirection returns the pin axis of the piece on sq, if it is pinned.
func (t *threats) pinDirection(sq Square) (direction, bool) {
	for _, p := range t.pins {
		if p.sq == sq {
			return p.dir, true
		}
	}
	return direction{}, false
}

// checkPinsAndChecks scans outward from the cached king square of the side
// to move. The king itself is transparent, so the scan also answers "would
// the king be attacked there" after the cache is moved to a candidate square.
func (gs *GameState) checkPinsAndChecks() threats {
	us := gs.SideToMove()
	them := us.Other()
	start := gs.kings[us]
	row, col := start.Row(), start.Col()

	var t threats
	for _, d := range rays {
		candidate := NoSquare
		for i := 1; i < 8; i++ {
			r, c := row+d.dr*i, col+d.dc*i
			if !onBoard(r, c) {
				break
			}
			p := gs.board[r][c]
			if p == NoPiece {
				continue
			}
			if p.Color() == us {
				if p.Type() == King {
					continue
				}
				if candidate == NoSquare {
					candidate = NewSquare(r, c)
					continue
				}
				// Two friendly pieces: nothing behind them can pin or check.
				break
			}
			if p.Color() == them && attacksAlong(p, d, i) {
				if candidate == NoSquare {
					t.inCheck = true
					t.checks = append(t.checks, check{sq: NewSquare(r, c), dir: d})
				} else {
					t.pins = append(t.pins, pin{sq: candidate, dir: d})
				}
			}
			break
		}
	}

	// Knights cannot pin.
	knight := NewPiece(Knight, them)
	for _, o := range knightOffsets {
		r, c := row+o.dr, col+o.dc
		if onBoard(r, c) && gs.board[r][c] == knight {
			t.inCheck = true
			t.checks = append(t.checks, check{sq: NewSquare(r, c), dir: o})
		}
	}
	return t
}

// IsSquareAttacked reports whether color by attacks sq in the current position.
func (gs *GameState) IsSquareAttacked(sq Square, by Color) bool {
	return gs.squareUnderAttack(sq, by.Other())
}

// KingInCheck reports whether c's king is attacked right now.
func (gs *GameState) KingInCheck(c Color) bool {
	return gs.squareUnderAttack(gs.kings[c], c)
}
