package board

// ValidMoves returns every legal move for the side to move and updates the
// check, checkmate and stalemate flags.
//
// Generation runs in two phases: pseudo-legal moves per piece, with pinned
// pieces restricted to their pin axis, then a filter driven by the checks
// found on the king.
func (gs *GameState) ValidMoves() []Move {
	t := gs.checkPinsAndChecks()
	gs.inCheck = t.inCheck
	us := gs.SideToMove()
	kingSq := gs.kings[us]

	var moves []Move
	switch len(t.checks) {
	case 0:
		moves = gs.allMoves(&t)
	case 1:
		c := t.checks[0]
		targets := gs.blockSquares(kingSq, c)
		for _, m := range gs.allMoves(&t) {
			switch {
			case m.moved.Type() == King:
			case targets[m.to]:
			case m.IsEnPassant() && NewSquare(m.from.Row(), m.to.Col()) == c.sq:
				// Capturing the checking pawn en passant lands off its square.
			default:
				continue
			}
			moves = append(moves, m)
		}
	default:
		// Double check: only the king can answer.
		gs.kingMoves(kingSq, &moves)
	}

	if len(moves) == 0 {
		gs.checkmate = gs.inCheck
		gs.stalemate = !gs.inCheck
	} else {
		gs.checkmate = false
		gs.stalemate = false
	}
	return moves
}

// blockSquares returns the squares a non-king move must land on to answer
// check c: the checker's own square, plus for sliders every square between.
func (gs *GameState) blockSquares(kingSq Square, c check) [64]bool {
	var targets [64]bool
	if gs.board.At(c.sq).Type() == Knight {
		targets[c.sq] = true
		return targets
	}
	for i := 1; i < 8; i++ {
		sq := NewSquare(kingSq.Row()+c.dir.dr*i, kingSq.Col()+c.dir.dc*i)
		if sq == NoSquare {
			break
		}
		targets[sq] = true
		if sq == c.sq {
			break
		}
	}
	return targets
}

// allMoves generates the pseudo-legal moves of the side to move. Pins are
// honoured here; checks are not.
func (gs *GameState) allMoves(t *threats) []Move {
	us := gs.SideToMove()
	moves := make([]Move, 0, 64)

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := gs.board[row][col]
			if p == NoPiece || p.Color() != us {
				continue
			}
			sq := NewSquare(row, col)
			switch p.Type() {
			case Pawn:
				gs.pawnMoves(sq, t, &moves)
			case Knight:
				gs.knightMoves(sq, t, &moves)
			case Bishop:
				gs.slidingMoves(sq, diagonals, t, &moves)
			case Rook:
				gs.slidingMoves(sq, orthogonals, t, &moves)
			case Queen:
				gs.slidingMoves(sq, rays[:], t, &moves)
			case King:
				gs.kingMoves(sq, &moves)
			}
		}
	}

	if !t.inCheck {
		gs.castleMoves(gs.kings[us], &moves)
	}
	return moves
}

// pawnMoves adds pushes, captures and en passant captures for the pawn on sq.
func (gs *GameState) pawnMoves(sq Square, t *threats, moves *[]Move) {
	us := gs.SideToMove()
	row, col := sq.Row(), sq.Col()

	forward, startRow, backRow := -1, 6, 0
	if us == Black {
		forward, startRow, backRow = 1, 1, 7
	}

	pinDir, pinned := t.pinDirection(sq)
	allowed := func(d direction) bool {
		return !pinned || d == pinDir || d == pinDir.opposite()
	}

	var flags MoveFlag
	if row+forward == backRow {
		flags = FlagPromotion
	}

	if onBoard(row+forward, col) && gs.board[row+forward][col] == NoPiece && allowed(direction{forward, 0}) {
		*moves = append(*moves, NewMove(sq, NewSquare(row+forward, col), &gs.board, flags))
		if row == startRow && gs.board[row+2*forward][col] == NoPiece {
			*moves = append(*moves, NewMove(sq, NewSquare(row+2*forward, col), &gs.board, 0))
		}
	}

	for _, dc := range [2]int{-1, 1} {
		r, c := row+forward, col+dc
		if !onBoard(r, c) || !allowed(direction{forward, dc}) {
			continue
		}
		target := NewSquare(r, c)
		p := gs.board[r][c]
		switch {
		case p != NoPiece && p.Color() != us:
			*moves = append(*moves, NewMove(sq, target, &gs.board, flags))
		case p == NoPiece && target == gs.enPassant && !gs.enPassantExposesKing(sq, target):
			*moves = append(*moves, NewMove(sq, target, &gs.board, FlagEnPassant))
		}
	}
}

// enPassantExposesKing plays the en passant capture from -> to on the board,
// tests the mover's king, and puts everything back. Both pawns leave the
// same rank at once, which the pin scan cannot see.
func (gs *GameState) enPassantExposesKing(from, to Square) bool {
	us := gs.SideToMove()
	capturedSq := NewSquare(from.Row(), to.Col())
	mover, captured := gs.board.At(from), gs.board.At(capturedSq)

	gs.board.Set(from, NoPiece)
	gs.board.Set(capturedSq, NoPiece)
	gs.board.Set(to, mover)
	exposed := gs.squareUnderAttack(gs.kings[us], us)
	gs.board.Set(to, NoPiece)
	gs.board.Set(capturedSq, captured)
	gs.board.Set(from, mover)

	return exposed
}

// knightMoves adds the moves of the knight on sq. A pinned knight has none.
func (gs *GameState) knightMoves(sq Square, t *threats, moves *[]Move) {
	if _, pinned := t.pinDirection(sq); pinned {
		return
	}
	us := gs.SideToMove()
	for _, o := range knightOffsets {
		r, c := sq.Row()+o.dr, sq.Col()+o.dc
		if !onBoard(r, c) {
			continue
		}
		if p := gs.board[r][c]; p == NoPiece || p.Color() != us {
			*moves = append(*moves, NewMove(sq, NewSquare(r, c), &gs.board, 0))
		}
	}
}

// slidingMoves adds rook, bishop and queen moves along dirs. A pinned slider
// keeps only the directions toward and away from its king.
func (gs *GameState) slidingMoves(sq Square, dirs []direction, t *threats, moves *[]Move) {
	us := gs.SideToMove()
	pinDir, pinned := t.pinDirection(sq)

	for _, d := range dirs {
		if pinned && d != pinDir && d != pinDir.opposite() {
			continue
		}
		for i := 1; i < 8; i++ {
			r, c := sq.Row()+d.dr*i, sq.Col()+d.dc*i
			if !onBoard(r, c) {
				break
			}
			p := gs.board[r][c]
			if p == NoPiece {
				*moves = append(*moves, NewMove(sq, NewSquare(r, c), &gs.board, 0))
				continue
			}
			if p.Color() != us {
				*moves = append(*moves, NewMove(sq, NewSquare(r, c), &gs.board, 0))
			}
			break
		}
	}
}

// kingMoves adds the king steps from sq that do not walk into check. Each
// destination is tested by moving the cached king square there and rerunning
// the check scan.
func (gs *GameState) kingMoves(sq Square, moves *[]Move) {
	us := gs.SideToMove()
	for _, d := range rays {
		r, c := sq.Row()+d.dr, sq.Col()+d.dc
		if !onBoard(r, c) {
			continue
		}
		if p := gs.board[r][c]; p != NoPiece && p.Color() == us {
			continue
		}
		target := NewSquare(r, c)
		gs.kings[us] = target
		t := gs.checkPinsAndChecks()
		gs.kings[us] = sq
		if !t.inCheck {
			*moves = append(*moves, NewMove(sq, target, &gs.board, 0))
		}
	}
}

// castleMoves adds castling moves for the king on sq. Callers skip it while
// the king is in check.
func (gs *GameState) castleMoves(sq Square, moves *[]Move) {
	us := gs.SideToMove()
	if gs.rights.CanCastle(us, true) {
		gs.kingSideCastle(sq, us, moves)
	}
	if gs.rights.CanCastle(us, false) {
		gs.queenSideCastle(sq, us, moves)
	}
}

func (gs *GameState) kingSideCastle(sq Square, us Color, moves *[]Move) {
	row, col := sq.Row(), sq.Col()
	if col+2 > 7 {
		return
	}
	if gs.board[row][col+1] != NoPiece || gs.board[row][col+2] != NoPiece {
		return
	}
	if gs.squareUnderAttack(NewSquare(row, col+1), us) || gs.squareUnderAttack(NewSquare(row, col+2), us) {
		return
	}
	*moves = append(*moves, NewMove(sq, NewSquare(row, col+2), &gs.board, FlagCastle))
}

func (gs *GameState) queenSideCastle(sq Square, us Color, moves *[]Move) {
	row, col := sq.Row(), sq.Col()
	if col-3 < 0 {
		return
	}
	if gs.board[row][col-1] != NoPiece || gs.board[row][col-2] != NoPiece || gs.board[row][col-3] != NoPiece {
		return
	}
	if gs.squareUnderAttack(NewSquare(row, col-1), us) || gs.squareUnderAttack(NewSquare(row, col-2), us) {
		return
	}
	*moves = append(*moves, NewMove(sq, NewSquare(row, col-2), &gs.board, FlagCastle))
}

// MovesFrom returns the legal moves starting on sq.
func MovesFrom(moves []Move, sq Square) []Move {
	var out []Move
	for _, m := range moves {
		if m.from == sq {
			out = append(out, m)
		}
	}
	return out
}
