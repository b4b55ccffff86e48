package board

import "testing"

func TestMoveIdentity(t *testing.T) {
	b := StartingBoard()
	m := NewMove(E2, E4, &b, 0)

	if got := m.ID(); got != 6444 {
		t.Errorf("ID() = %d, want 6444", got)
	}
	if got := m.Notation(); got != "e2e4" {
		t.Errorf("Notation() = %q, want e2e4", got)
	}
	if m.Moved() != WhitePawn || m.Captured() != NoPiece || m.IsCapture() {
		t.Errorf("Unexpected pieces: moved %v captured %v", m.Moved(), m.Captured())
	}

	// Same squares with different flags and pieces still compare equal.
	var empty Board
	other := NewMove(E2, E4, &empty, FlagPromotion|FlagCastle)
	if !m.Equal(other) {
		t.Error("Moves between the same squares must be equal")
	}
	if m.Equal(NewMove(E2, E3, &b, 0)) {
		t.Error("e2e4 must not equal e2e3")
	}
}

func TestMoveIDs(t *testing.T) {
	tests := []struct {
		from, to Square
		want     int
	}{
		{A8, A8, 0},
		{A8, H1, 77},
		{H1, A8, 7700},
		{G1, F3, 7655},
		{B8, C6, 122},
	}

	var b Board
	for _, tc := range tests {
		if got := NewMove(tc.from, tc.to, &b, 0).ID(); got != tc.want {
			t.Errorf("ID(%v%v) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestNewMoveEnPassantCapture(t *testing.T) {
	var b Board
	b.Set(E5, WhitePawn)
	b.Set(D5, BlackPawn)

	m := NewMove(E5, D6, &b, FlagEnPassant)
	if m.Captured() != BlackPawn || !m.IsCapture() {
		t.Errorf("Captured() = %v, want black pawn", m.Captured())
	}

	b = Board{}
	b.Set(D4, BlackPawn)
	m = NewMove(D4, E3, &b, FlagEnPassant)
	if m.Captured() != WhitePawn {
		t.Errorf("Captured() = %v, want white pawn", m.Captured())
	}
}

func TestNewMovePanicsOffBoard(t *testing.T) {
	tests := []struct {
		name     string
		from, to Square
	}{
		{"bad origin", NoSquare, E4},
		{"bad destination", E2, NoSquare},
		{"way out", Square(200), E4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected NewMove to panic")
				}
			}()
			var b Board
			NewMove(tc.from, tc.to, &b, 0)
		})
	}
}

func TestFind(t *testing.T) {
	gs := NewGameState()
	moves := gs.ValidMoves()

	var empty Board
	m, ok := Find(moves, NewMove(G1, F3, &empty, 0))
	if !ok {
		t.Fatal("Expected to find g1f3")
	}
	if m.Moved() != WhiteKnight {
		t.Errorf("Find must return the generated move, got moved piece %v", m.Moved())
	}
	if _, ok := Find(moves, NewMove(E2, E5, &empty, 0)); ok {
		t.Error("e2e5 is not legal")
	}
}

func TestSquares(t *testing.T) {
	tests := []struct {
		sq       Square
		row, col int
		name     string
	}{
		{A8, 0, 0, "a8"},
		{H8, 0, 7, "h8"},
		{A1, 7, 0, "a1"},
		{E2, 6, 4, "e2"},
		{H1, 7, 7, "h1"},
	}

	for _, tc := range tests {
		if tc.sq.Row() != tc.row || tc.sq.Col() != tc.col {
			t.Errorf("%s: row/col = %d/%d, want %d/%d", tc.name, tc.sq.Row(), tc.sq.Col(), tc.row, tc.col)
		}
		if tc.sq.String() != tc.name {
			t.Errorf("String() = %q, want %q", tc.sq.String(), tc.name)
		}
		if NewSquare(tc.row, tc.col) != tc.sq {
			t.Errorf("NewSquare(%d, %d) = %v, want %v", tc.row, tc.col, NewSquare(tc.row, tc.col), tc.sq)
		}
		parsed, err := ParseSquare(tc.name)
		if err != nil || parsed != tc.sq {
			t.Errorf("ParseSquare(%q) = %v, %v", tc.name, parsed, err)
		}
	}

	for _, bad := range []string{"", "e", "e9", "i1", "e22", "E2x"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) should fail", bad)
		}
	}
	if NewSquare(-1, 0) != NoSquare || NewSquare(0, 8) != NoSquare {
		t.Error("Off-board coordinates must give NoSquare")
	}
	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %q", NoSquare.String())
	}
}

func TestPieces(t *testing.T) {
	for _, c := range []Color{White, Black} {
		for pt := Pawn; pt <= King; pt++ {
			p := NewPiece(pt, c)
			if p.Type() != pt || p.Color() != c || !p.Is(c, pt) {
				t.Errorf("NewPiece(%v, %v) round trip failed: %v %v", pt, c, p.Type(), p.Color())
			}
			if PieceFromChar(p.String()[0]) != p {
				t.Errorf("PieceFromChar(%q) != %v", p.String(), p)
			}
		}
	}
	if NoPiece.Type() != NoPieceType || NoPiece.Color() != NoColor {
		t.Error("NoPiece must have no type and no color")
	}
	if PieceTypeFromChar('N') != Knight || PieceTypeFromChar('q') != Queen || PieceTypeFromChar('x') != NoPieceType {
		t.Error("PieceTypeFromChar mismatch")
	}
}
