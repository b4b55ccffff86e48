package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: Ra8 against Kh8 boxed in by its own pawns.
	gs := mustSetup(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")

	moves := gs.ValidMoves()
	if len(moves) != 0 {
		t.Fatalf("Expected no legal moves, got %v", notations(moves))
	}
	if !gs.InCheck() {
		t.Error("Expected black to be in check")
	}
	if !gs.Checkmate() {
		t.Error("Expected checkmate but got false")
	}
	if gs.Stalemate() {
		t.Error("Checkmate must not be reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// The king can capture the unprotected rook.
	gs := mustSetup(t, "6Rk/8/8/8/8/8/8/K7 b - - 0 1")

	moves := gs.ValidMoves()
	if gs.Checkmate() || gs.Stalemate() {
		t.Fatalf("Expected game to continue, got checkmate=%v stalemate=%v", gs.Checkmate(), gs.Stalemate())
	}
	if _, ok := Find(moves, NewMove(H8, G8, &gs.board, 0)); !ok {
		t.Errorf("Expected Kxg8 among %v", notations(moves))
	}
}

func TestStalemate(t *testing.T) {
	// Black king on a8, white queen on b6: no checks, no moves.
	gs := mustSetup(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")

	moves := gs.ValidMoves()
	if len(moves) != 0 {
		t.Fatalf("Expected no legal moves, got %v", notations(moves))
	}
	if gs.InCheck() {
		t.Error("Stalemated king must not be in check")
	}
	if !gs.Stalemate() || gs.Checkmate() {
		t.Errorf("Expected stalemate only, got checkmate=%v stalemate=%v", gs.Checkmate(), gs.Stalemate())
	}
}

func TestTerminalFlagsClearAfterUndo(t *testing.T) {
	// Fool's mate.
	gs := NewGameState()
	play(t, gs, "f2f3", "e7e5", "g2g4", "d8h4")

	if moves := gs.ValidMoves(); len(moves) != 0 || !gs.Checkmate() {
		t.Fatalf("Expected fool's mate, got %d moves checkmate=%v", len(moves), gs.Checkmate())
	}

	gs.UndoMove()
	if gs.Checkmate() || gs.Stalemate() {
		t.Error("Undo must clear terminal flags")
	}
	if moves := gs.ValidMoves(); len(moves) == 0 || gs.Checkmate() {
		t.Errorf("Expected black to have moves after undo, got %d", len(moves))
	}
}
