package board

import (
	"reflect"
	"testing"
)

func TestNewGameState(t *testing.T) {
	gs := NewGameState()

	if !gs.WhiteToMove() || gs.SideToMove() != White {
		t.Error("White must move first")
	}
	if got := gs.board.Count(); got != 32 {
		t.Errorf("Expected 32 pieces, got %d", got)
	}
	if gs.KingSquare(White) != E1 || gs.KingSquare(Black) != E8 {
		t.Errorf("Kings cached on %v and %v", gs.KingSquare(White), gs.KingSquare(Black))
	}
	if gs.CastlingRights() != AllCastlingRights() {
		t.Errorf("Expected all castling rights, got %s", gs.CastlingRights())
	}
	if gs.EnPassant() != NoSquare {
		t.Errorf("Expected no en passant target, got %v", gs.EnPassant())
	}
	if _, ok := gs.LastMove(); ok {
		t.Error("New game must have no last move")
	}
	checkConsistent(t, gs)
}

func TestE4ThenUndo(t *testing.T) {
	gs := NewGameState()
	start := takeSnapshot(gs)

	play(t, gs, "e2e4")

	moves := gs.ValidMoves()
	if gs.InCheck() {
		t.Error("Black must not be in check after e4")
	}
	if len(moves) != 20 {
		t.Errorf("Expected 20 black moves, got %d: %v", len(moves), notations(moves))
	}
	if gs.EnPassant() != E3 {
		t.Errorf("Expected en passant target e3, got %v", gs.EnPassant())
	}
	if last, ok := gs.LastMove(); !ok || last.Notation() != "e2e4" {
		t.Errorf("Expected last move e2e4, got %v", last)
	}

	gs.UndoMove()
	if got := takeSnapshot(gs); got != start {
		t.Errorf("Undo did not restore the starting position:%s", gs)
	}
	if gs.board.Count() != 32 || !gs.WhiteToMove() || gs.CastlingRights() != AllCastlingRights() || gs.EnPassant() != NoSquare {
		t.Errorf("Unexpected state after undo:%s", gs)
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	gs := NewGameState()
	before := takeSnapshot(gs)

	gs.UndoMove()
	gs.UndoMove()

	if got := takeSnapshot(gs); got != before {
		t.Errorf("Undo on empty history changed the state:%s", gs)
	}
}

// TestUndoRestoresEveryMove walks two plies deep from positions rich in
// special moves and checks each make/undo pair restores the exact state.
func TestUndoRestoresEveryMove(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	}

	var walk func(t *testing.T, gs *GameState, depth int)
	walk = func(t *testing.T, gs *GameState, depth int) {
		if depth == 0 {
			return
		}
		for _, m := range gs.ValidMoves() {
			before := takeSnapshot(gs)
			gs.MakeMove(m)
			checkConsistent(t, gs)
			walk(t, gs, depth-1)
			gs.UndoMove()
			if after := takeSnapshot(gs); after != before {
				t.Fatalf("Undo of %v (flags %03b) did not restore the state:%s", m, m.Flags(), gs)
			}
		}
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			walk(t, mustSetup(t, fen), 2)
		})
	}
}

func TestEnPassantTargetIsRestoredAfterQuietMove(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4", "a7a6", "e4e5", "d7d5")

	if gs.EnPassant() != D6 {
		t.Fatalf("Expected en passant target d6, got %v", gs.EnPassant())
	}

	play(t, gs, "g1f3")
	if gs.EnPassant() != NoSquare {
		t.Errorf("Quiet move must clear en passant, got %v", gs.EnPassant())
	}

	gs.UndoMove()
	if gs.EnPassant() != D6 {
		t.Errorf("Undo must restore en passant target d6, got %v", gs.EnPassant())
	}
}

func TestInCheckIsRestoredAfterUndo(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4", "f7f5", "d1h5")
	gs.ValidMoves()
	if !gs.InCheck() {
		t.Fatal("Expected black to be in check after Qh5")
	}

	for _, m := range gs.ValidMoves() {
		gs.MakeMove(m)
		gs.ValidMoves()
		gs.UndoMove()
		if !gs.InCheck() {
			t.Fatalf("Undo of %v lost the check flag", m)
		}
	}

	if nodes := Perft(gs, 2); nodes == 0 {
		t.Fatal("Expected perft nodes")
	}
	if !gs.InCheck() {
		t.Error("Perft must leave the check flag of the root position")
	}

	gs.UndoMove()
	if gs.InCheck() {
		t.Error("White is not in check before Qh5")
	}
}

func TestPromotionUsesPromoter(t *testing.T) {
	tests := []struct {
		name     string
		promoter Promoter
		want     Piece
	}{
		{"default", nil, WhiteQueen},
		{"knight", PromoteTo(Knight), WhiteKnight},
		{"rook", PromoteTo(Rook), WhiteRook},
		{"bishop", PromoteTo(Bishop), WhiteBishop},
		{"invalid king", PromoteTo(King), WhiteQueen},
		{"invalid pawn", PromoteTo(Pawn), WhiteQueen},
		{"invalid none", PromoteTo(NoPieceType), WhiteQueen},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := mustSetup(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
			gs.SetPromoter(tc.promoter)
			before := takeSnapshot(gs)

			m := mustFind(t, gs, "a7a8")
			if !m.IsPromotion() {
				t.Fatalf("a7a8 must be flagged as promotion")
			}
			gs.MakeMove(m)
			if got := gs.PieceAt(A8); got != tc.want {
				t.Errorf("Promoted to %v, want %v", got, tc.want)
			}

			gs.UndoMove()
			if after := takeSnapshot(gs); after != before {
				t.Errorf("Undo of promotion did not restore the state:%s", gs)
			}
			if gs.PieceAt(A7) != WhitePawn {
				t.Errorf("Expected pawn back on a7, got %v", gs.PieceAt(A7))
			}
		})
	}
}

func TestPromoterSeesTheMove(t *testing.T) {
	var asked []string
	p := PromoterFunc(func(m Move) PieceType {
		asked = append(asked, m.Notation())
		return Knight
	})
	gs, err := setupPosition("1r5k/P7/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	gs.SetPromoter(p)

	gs.MakeMove(mustFind(t, gs, "a7b8"))

	if !reflect.DeepEqual(asked, []string{"a7b8"}) {
		t.Errorf("Promoter asked about %v", asked)
	}
	if gs.PieceAt(B8) != WhiteKnight {
		t.Errorf("Expected knight on b8, got %v", gs.PieceAt(B8))
	}
}

func TestWithPromoterOption(t *testing.T) {
	gs := NewGameState(WithPromoter(PromoteTo(Rook)))
	if gs.promoter == nil || gs.promoter.Promote(Move{}) != Rook {
		t.Error("WithPromoter did not install the promoter")
	}
	gs.Reset()
	if gs.promoter == nil {
		t.Error("Reset must keep the promoter")
	}
}

func TestReset(t *testing.T) {
	gs := NewGameState()
	start := takeSnapshot(gs)
	play(t, gs, "e2e4", "e7e5", "e1e2")

	gs.Reset()
	if got := takeSnapshot(gs); got != start {
		t.Errorf("Reset did not restore the starting position:%s", gs)
	}
	if len(gs.MoveLog()) != 0 {
		t.Errorf("Reset must clear the move log")
	}
}

func TestNewGameStateFromBoardValidation(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		wantErr bool
	}{
		{"valid", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", false},
		{"no white king", "4k3/8/8/8/8/8/8/8 w - - 0 1", true},
		{"two black kings", "4k2k/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"pawn on back rank", "P3k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := setupPosition(tc.fen)
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewGameStateFromBoardSanitizes(t *testing.T) {
	// Rights claimed for missing rooks and a bogus en passant square.
	gs := mustSetup(t, "4k3/8/8/8/8/8/8/4K2R w KQkq e6 0 1")

	want := CastlingRights{WhiteKingSide: true}
	if gs.CastlingRights() != want {
		t.Errorf("Expected rights %s, got %s", want, gs.CastlingRights())
	}
	if gs.EnPassant() != NoSquare {
		t.Errorf("Expected en passant to be dropped, got %v", gs.EnPassant())
	}
}

func TestMoveLogIsACopy(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "d2d4")

	log := gs.MoveLog()
	log[0] = Move{}

	if last, _ := gs.LastMove(); last.Notation() != "d2d4" {
		t.Errorf("Mutating MoveLog result changed the game: %v", last)
	}
	if gs.Ply() != 1 {
		t.Errorf("Expected ply 1, got %d", gs.Ply())
	}
}
