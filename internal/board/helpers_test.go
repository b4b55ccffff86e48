package board

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

// setupPosition builds a game from the first four FEN fields. Only tests
// use it; the engine itself has no FEN support.
func setupPosition(fen string) (*GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("position needs placement and side: %q", fen)
	}

	var b Board
	row, col := 0, 0
	for i := 0; i < len(fields[0]); i++ {
		ch := fields[0][i]
		switch {
		case ch == '/':
			row++
			col = 0
		case ch >= '1' && ch <= '8':
			col += int(ch - '0')
		default:
			p := PieceFromChar(ch)
			if p == NoPiece || !onBoard(row, col) {
				return nil, fmt.Errorf("bad placement %q", fields[0])
			}
			b[row][col] = p
			col++
		}
	}

	toMove := White
	if fields[1] == "b" {
		toMove = Black
	}

	var rights CastlingRights
	if len(fields) > 2 {
		rights.WhiteKingSide = strings.Contains(fields[2], "K")
		rights.WhiteQueenSide = strings.Contains(fields[2], "Q")
		rights.BlackKingSide = strings.Contains(fields[2], "k")
		rights.BlackQueenSide = strings.Contains(fields[2], "q")
	}

	ep := NoSquare
	if len(fields) > 3 && fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, err
		}
		ep = sq
	}

	return NewGameStateFromBoard(b, toMove, rights, ep)
}

func mustSetup(t *testing.T, fen string) *GameState {
	t.Helper()
	gs, err := setupPosition(fen)
	if err != nil {
		t.Fatalf("Failed to set up %q: %v", fen, err)
	}
	return gs
}

// mustFind returns the legal move with the given notation.
func mustFind(t *testing.T, gs *GameState, notation string) Move {
	t.Helper()
	for _, m := range gs.ValidMoves() {
		if m.Notation() == notation {
			return m
		}
	}
	t.Fatalf("move %s is not legal in:%s", notation, gs)
	return Move{}
}

// play executes a sequence of moves given in square-pair notation.
func play(t *testing.T, gs *GameState, notations ...string) {
	t.Helper()
	for _, n := range notations {
		gs.MakeMove(mustFind(t, gs, n))
	}
}

func notations(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.Notation())
	}
	sort.Strings(out)
	return out
}

// snapshot is every observable part of the state undo must restore.
type snapshot struct {
	board        Board
	whiteToMove  bool
	kings        [2]Square
	rights       CastlingRights
	enPassant    Square
	ply          int
	rightsLogLen int
	epLogLen     int
	checkLogLen  int
	inCheck      bool
}

func takeSnapshot(gs *GameState) snapshot {
	return snapshot{
		board:        gs.board,
		whiteToMove:  gs.whiteToMove,
		kings:        gs.kings,
		rights:       gs.rights,
		enPassant:    gs.enPassant,
		ply:          len(gs.moveLog),
		rightsLogLen: len(gs.rightsLog),
		epLogLen:     len(gs.enPassantLog),
		checkLogLen:  len(gs.checkLog),
		inCheck:      gs.inCheck,
	}
}

// checkConsistent verifies the king cache and log lengths against the board.
func checkConsistent(t *testing.T, gs *GameState) {
	t.Helper()
	for _, c := range []Color{White, Black} {
		if got := gs.board.findKing(c); got != gs.kings[c] {
			t.Fatalf("%v king cached on %v but stands on %v:%s", c, gs.kings[c], got, gs)
		}
	}
	if len(gs.rightsLog) != len(gs.moveLog)+1 {
		t.Fatalf("rights log has %d entries for %d moves", len(gs.rightsLog), len(gs.moveLog))
	}
	if len(gs.enPassantLog) != len(gs.moveLog)+1 {
		t.Fatalf("en passant log has %d entries for %d moves", len(gs.enPassantLog), len(gs.moveLog))
	}
}
