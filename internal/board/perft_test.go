package board

import "testing"

type perftCase struct {
	depth    int
	expected int64
}

func runPerft(t *testing.T, fen string, tests []perftCase) {
	t.Helper()
	for _, tc := range tests {
		if tc.depth >= 4 && testing.Short() {
			continue
		}
		gs := mustSetup(t, fen)
		before := takeSnapshot(gs)
		if got := Perft(gs, tc.depth); got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
		if after := takeSnapshot(gs); after != before {
			t.Errorf("perft(%d) did not restore the position:%s", tc.depth, gs)
		}
	}
}

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	runPerft(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", []perftCase{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	})
}

// TestPerftKiwipete tests the famous Kiwipete position with many edge cases.
func TestPerftKiwipete(t *testing.T) {
	runPerft(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []perftCase{
		{1, 48},
		{2, 2039},
		{3, 97862},
	})
}

// TestPerftPosition3 tests en passant and rank pin edge cases.
func TestPerftPosition3(t *testing.T) {
	runPerft(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []perftCase{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	})
}

// TestPerftPosition4 is dense with promotions and checks.
func TestPerftPosition4(t *testing.T) {
	runPerft(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []perftCase{
		{1, 6},
		{2, 264},
		{3, 9467},
	})
}

// TestPerftPosition5 covers promotion captures and castling after checks.
func TestPerftPosition5(t *testing.T) {
	runPerft(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []perftCase{
		{1, 44},
		{2, 1486},
		{3, 62379},
	})
}

// TestPerftEnPassantPin tests the en passant horizontal pin edge case.
// Black pawn on e4 can capture en passant d3, but this would expose the black
// king on a4 to the white rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	gs := mustSetup(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")

	for _, m := range gs.ValidMoves() {
		if m.IsEnPassant() {
			t.Errorf("En passant move %v should be illegal (horizontal pin)", m)
		}
	}

	// Depth 1: Ka3, Ka5, Kb3, Kb4, Kb5, e3 = 6 moves
	runPerft(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", []perftCase{
		{1, 6},
		{2, 94},
	})
}

func TestDivideSumsToPerft(t *testing.T) {
	gs := mustSetup(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	before := takeSnapshot(gs)

	entries := Divide(gs, 2)
	var sum int64
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Move] {
			t.Errorf("Duplicate divide entry %s", e.Move)
		}
		seen[e.Move] = true
		sum += e.Nodes
	}
	if sum != 1486 {
		t.Errorf("Divide(2) sums to %d, want 1486", sum)
	}
	if !seen["d7c8q"] || !seen["d7c8n"] {
		t.Errorf("Promotion choices missing from divide: %v", entries)
	}
	if after := takeSnapshot(gs); after != before {
		t.Errorf("Divide did not restore the position:%s", gs)
	}
	if Divide(gs, 0) != nil {
		t.Error("Divide(0) should be empty")
	}
}
