package board

import "fmt"

// GameState is the mutable engine: board, side to move, king locations,
// castling rights, en passant target and move history.
//
// A GameState is not safe for concurrent use. Callers serialize every call.
type GameState struct {
	board       Board
	whiteToMove bool

	// King squares, indexed by Color. Kept in sync with board on every change.
	kings [2]Square

	// Current rights and one snapshot per ply; len(rightsLog) == len(moveLog)+1.
	rights    CastlingRights
	rightsLog []CastlingRights

	// Square a pawn may capture onto en passant, or NoSquare; logged like rights.
	enPassant    Square
	enPassantLog []Square

	moveLog []Move

	// In-check flag of each position a move was played from; len(checkLog) == len(moveLog).
	checkLog []bool

	inCheck   bool
	checkmate bool
	stalemate bool

	promoter Promoter
}

// Option configures a GameState.
type Option func(*GameState)

// WithPromoter sets the decision provider asked for promotion pieces.
func WithPromoter(p Promoter) Option {
	return func(gs *GameState) {
		gs.promoter = p
	}
}

// NewGameState creates a game at the starting position, white to move.
func NewGameState(opts ...Option) *GameState {
	gs := &GameState{}
	for _, opt := range opts {
		opt(gs)
	}
	gs.load(StartingBoard(), White, AllCastlingRights(), NoSquare)
	return gs
}

// NewGameStateFromBoard creates a game from an arbitrary position.
// Each side must have exactly one king. Castling rights whose king or rook is
// off its home square are dropped; an en passant target that no double pawn
// advance could have produced is ignored.
func NewGameStateFromBoard(b Board, toMove Color, rights CastlingRights, enPassant Square, opts ...Option) (*GameState, error) {
	if err := validate(&b); err != nil {
		return nil, err
	}
	if toMove != White && toMove != Black {
		return nil, fmt.Errorf("invalid side to move: %v", toMove)
	}

	gs := &GameState{}
	for _, opt := range opts {
		opt(gs)
	}
	gs.load(b, toMove, rights.sanitize(&b), checkEnPassant(&b, toMove, enPassant))
	return gs, nil
}

// Reset starts a new game. The promoter is kept.
func (gs *GameState) Reset() {
	gs.load(StartingBoard(), White, AllCastlingRights(), NoSquare)
}

func (gs *GameState) load(b Board, toMove Color, rights CastlingRights, enPassant Square) {
	gs.board = b
	gs.whiteToMove = toMove == White
	gs.kings[White] = b.findKing(White)
	gs.kings[Black] = b.findKing(Black)
	gs.rights = rights
	gs.rightsLog = []CastlingRights{rights}
	gs.enPassant = enPassant
	gs.enPassantLog = []Square{enPassant}
	gs.moveLog = nil
	gs.checkLog = nil
	gs.inCheck = false
	gs.checkmate = false
	gs.stalemate = false
}

func validate(b *Board) error {
	var kings [2]int
	for row := range b {
		for col := range b[row] {
			p := b[row][col]
			if p.Type() == King {
				kings[p.Color()]++
			}
			if p.Type() == Pawn && (row == 0 || row == 7) {
				return fmt.Errorf("pawn on back rank at %s", NewSquare(row, col))
			}
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	return nil
}

// checkEnPassant keeps ep only if an enemy pawn stands just past it, as
// after a double advance.
func checkEnPassant(b *Board, toMove Color, ep Square) Square {
	if !ep.IsValid() {
		return NoSquare
	}
	them := toMove.Other()
	wantRow, dir := 2, 1 // white to move: black pawn passed row 2, now on row 3
	if toMove == Black {
		wantRow, dir = 5, -1
	}
	if ep.Row() != wantRow || !b.IsEmpty(ep) {
		return NoSquare
	}
	if b.At(NewSquare(ep.Row()+dir, ep.Col())) != NewPiece(Pawn, them) {
		return NoSquare
	}
	return ep
}

// SetPromoter replaces the promotion decision provider. nil means queen.
func (gs *GameState) SetPromoter(p Promoter) {
	gs.promoter = p
}

// Board returns a copy of the board.
func (gs *GameState) Board() Board {
	return gs.board
}

// PieceAt returns the piece on sq.
func (gs *GameState) PieceAt(sq Square) Piece {
	return gs.board.At(sq)
}

// WhiteToMove returns true when it is white's turn.
func (gs *GameState) WhiteToMove() bool {
	return gs.whiteToMove
}

// SideToMove returns the color whose turn it is.
func (gs *GameState) SideToMove() Color {
	if gs.whiteToMove {
		return White
	}
	return Black
}

// KingSquare returns the cached square of c's king.
func (gs *GameState) KingSquare(c Color) Square {
	return gs.kings[c]
}

// CastlingRights returns the current castling rights.
func (gs *GameState) CastlingRights() CastlingRights {
	return gs.rights
}

// EnPassant returns the en passant target square, or NoSquare.
func (gs *GameState) EnPassant() Square {
	return gs.enPassant
}

// MoveLog returns a copy of the executed moves, oldest first.
func (gs *GameState) MoveLog() []Move {
	return append([]Move(nil), gs.moveLog...)
}

// Ply returns the number of executed moves.
func (gs *GameState) Ply() int {
	return len(gs.moveLog)
}

// LastMove returns the most recently executed move.
func (gs *GameState) LastMove() (Move, bool) {
	if len(gs.moveLog) == 0 {
		return Move{}, false
	}
	return gs.moveLog[len(gs.moveLog)-1], true
}

// InCheck reports whether the side to move was in check at the last
// ValidMoves call.
func (gs *GameState) InCheck() bool {
	return gs.inCheck
}

// Checkmate reports whether the last ValidMoves call found checkmate.
func (gs *GameState) Checkmate() bool {
	return gs.checkmate
}

// Stalemate reports whether the last ValidMoves call found stalemate.
func (gs *GameState) Stalemate() bool {
	return gs.stalemate
}

// MakeMove executes m, which should come from ValidMoves. Promotions ask the
// configured Promoter for the new piece.
func (gs *GameState) MakeMove(m Move) {
	gs.board.Set(m.from, NoPiece)
	gs.board.Set(m.to, m.moved)
	gs.moveLog = append(gs.moveLog, m)
	gs.checkLog = append(gs.checkLog, gs.inCheck)
	gs.whiteToMove = !gs.whiteToMove

	if m.moved.Type() == King {
		gs.kings[m.moved.Color()] = m.to
	}

	// A double advance makes the passed-over square capturable.
	if m.moved.Type() == Pawn && abs(m.from.Row()-m.to.Row()) == 2 {
		gs.enPassant = NewSquare((m.from.Row()+m.to.Row())/2, m.to.Col())
	} else {
		gs.enPassant = NoSquare
	}
	gs.enPassantLog = append(gs.enPassantLog, gs.enPassant)

	if m.IsEnPassant() {
		gs.board.Set(NewSquare(m.from.Row(), m.to.Col()), NoPiece)
	}

	if m.IsPromotion() {
		gs.board.Set(m.to, promotionPiece(gs.promoter, m))
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m)
		gs.board.Set(rookTo, gs.board.At(rookFrom))
		gs.board.Set(rookFrom, NoPiece)
	}

	gs.rights = gs.rights.afterMove(m)
	gs.rightsLog = append(gs.rightsLog, gs.rights)
}

// UndoMove takes back the last executed move. It does nothing when no move
// has been made.
func (gs *GameState) UndoMove() {
	if len(gs.moveLog) == 0 {
		return
	}

	m := gs.moveLog[len(gs.moveLog)-1]
	gs.moveLog = gs.moveLog[:len(gs.moveLog)-1]

	gs.board.Set(m.from, m.moved)
	gs.board.Set(m.to, m.captured)
	gs.whiteToMove = !gs.whiteToMove

	if m.moved.Type() == King {
		gs.kings[m.moved.Color()] = m.from
	}

	if m.IsEnPassant() {
		// The captured pawn goes back beside the capturing pawn's origin.
		gs.board.Set(m.to, NoPiece)
		gs.board.Set(NewSquare(m.from.Row(), m.to.Col()), m.captured)
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m)
		gs.board.Set(rookFrom, gs.board.At(rookTo))
		gs.board.Set(rookTo, NoPiece)
	}

	gs.enPassantLog = gs.enPassantLog[:len(gs.enPassantLog)-1]
	gs.enPassant = gs.enPassantLog[len(gs.enPassantLog)-1]

	gs.rightsLog = gs.rightsLog[:len(gs.rightsLog)-1]
	gs.rights = gs.rightsLog[len(gs.rightsLog)-1]

	gs.inCheck = gs.checkLog[len(gs.checkLog)-1]
	gs.checkLog = gs.checkLog[:len(gs.checkLog)-1]

	// A position a move was played from is never terminal.
	gs.checkmate = false
	gs.stalemate = false
}

// castleRookSquares returns where the rook of castling move m starts and ends.
func castleRookSquares(m Move) (from, to Square) {
	row := m.to.Row()
	if m.to.Col()-m.from.Col() == 2 {
		// King side: the corner rook lands next to the king, on its inner side.
		return NewSquare(row, m.to.Col()+1), NewSquare(row, m.to.Col()-1)
	}
	return NewSquare(row, m.to.Col()-2), NewSquare(row, m.to.Col()+1)
}

// String returns a visual representation of the game state.
func (gs *GameState) String() string {
	s := "\n" + gs.board.String() + "\n"
	s += fmt.Sprintf("Side to move: %s\n", gs.SideToMove())
	s += fmt.Sprintf("Castling: %s\n", gs.rights)
	s += fmt.Sprintf("En passant: %s\n", gs.enPassant)
	s += fmt.Sprintf("Moves played: %d\n", len(gs.moveLog))
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
