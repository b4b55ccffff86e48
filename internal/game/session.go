// Package game drives a board.GameState the way a front end does: square
// clicks, typed moves, undo and game-over detection.
package game

import (
	"fmt"
	"strings"

	"github.com/hailam/mailboxchess/internal/board"
)

// Outcome is the effect of one Click.
type Outcome int

const (
	// Selected means the square is now the first click of a move.
	Selected Outcome = iota
	// Deselected means the selected square was clicked again.
	Deselected
	// Moved means the two clicks formed a legal move and it was played.
	Moved
	// Rejected means the two clicks were not a legal move. The second
	// square becomes the new selection.
	Rejected
	// PromotionPending means a legal promotion is waiting for Promote.
	PromotionPending
	// Ignored means the click came after the game ended or off the board.
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case Moved:
		return "moved"
	case Rejected:
		return "rejected"
	case PromotionPending:
		return "promotion pending"
	case Ignored:
		return "ignored"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Status is the result state of the game.
type Status int

const (
	Ongoing Status = iota
	WhiteWins
	BlackWins
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Stalemate:
		return "stalemate"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Over reports whether s ends the game.
func (s Status) Over() bool {
	return s != Ongoing
}

// Session is one game in progress together with its legal moves and the
// click selection of a human player. It is not safe for concurrent use.
type Session struct {
	gs    *board.GameState
	moves []board.Move

	selected board.Square
	pending  *board.Move

	promoter board.Promoter
	prompt   bool

	// One entry per ply, with the promotion letter appended where one was made.
	notations []string
}

// Option configures a Session.
type Option func(*Session)

// WithPromoter sets the promotion choice used by Click. nil means queen.
func WithPromoter(p board.Promoter) Option {
	return func(s *Session) {
		s.promoter = p
	}
}

// WithPromotionPrompt makes Click stop at promotions and wait for Promote.
func WithPromotionPrompt() Option {
	return func(s *Session) {
		s.prompt = true
	}
}

// NewSession starts a game at the initial position.
func NewSession(opts ...Option) *Session {
	s := &Session{
		gs:       board.NewGameState(),
		selected: board.NoSquare,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.refresh()
	return s
}

// State returns the underlying game. Callers must not make or undo moves on
// it directly.
func (s *Session) State() *board.GameState {
	return s.gs
}

// Moves returns the legal moves of the side to move.
func (s *Session) Moves() []board.Move {
	return s.moves
}

// Selected returns the first click of a move in progress, or NoSquare.
func (s *Session) Selected() board.Square {
	return s.selected
}

// Pending returns the promotion move waiting for a piece choice.
func (s *Session) Pending() (board.Move, bool) {
	if s.pending == nil {
		return board.Move{}, false
	}
	return *s.pending, true
}

// Reset starts a new game.
func (s *Session) Reset() {
	s.gs.Reset()
	s.notations = nil
	s.clearSelection()
	s.refresh()
}

// Undo takes back the last move. Undo is allowed after the game has ended.
func (s *Session) Undo() error {
	if s.gs.Ply() == 0 {
		return ErrNothingToUndo
	}
	s.gs.UndoMove()
	s.notations = s.notations[:len(s.notations)-1]
	s.clearSelection()
	s.refresh()
	return nil
}

// Click handles a click on sq. The first click selects a square, clicking
// it again clears the selection, and a second click on another square plays
// the move between them if it is legal.
func (s *Session) Click(sq board.Square) Outcome {
	if !sq.IsValid() || s.Status().Over() || s.pending != nil {
		return Ignored
	}

	if s.selected == sq {
		s.clearSelection()
		return Deselected
	}
	if s.selected == board.NoSquare {
		s.selected = sq
		return Selected
	}

	b := s.gs.Board()
	candidate := board.NewMove(s.selected, sq, &b, 0)
	m, ok := board.Find(s.moves, candidate)
	if !ok {
		s.selected = sq
		return Rejected
	}

	s.clearSelection()
	if m.IsPromotion() && s.prompt {
		s.pending = &m
		return PromotionPending
	}
	s.execute(m, s.promoter)
	return Moved
}

// Promote completes the pending promotion with piece type pt.
func (s *Session) Promote(pt board.PieceType) error {
	if s.pending == nil {
		return ErrNoPendingPromotion
	}
	if !promotable(pt) {
		return fmt.Errorf("%w: %v", ErrInvalidPromotion, pt)
	}
	m := *s.pending
	s.pending = nil
	s.execute(m, board.PromoteTo(pt))
	return nil
}

// CancelPromotion drops the pending promotion without moving.
func (s *Session) CancelPromotion() {
	s.pending = nil
}

// Play parses a move such as "e2e4" or "e7e8n" and plays it if legal.
// Without a promotion letter a promotion uses the session promoter.
func (s *Session) Play(notation string) (board.Move, error) {
	from, to, pt, err := ParseMove(notation)
	if err != nil {
		return board.Move{}, err
	}
	var p board.Promoter
	if pt != board.NoPieceType {
		p = board.PromoteTo(pt)
	}
	return s.play(from, to, p, notation)
}

// PlayPromotion plays the move from -> to, promoting to pt if it is a
// promotion.
func (s *Session) PlayPromotion(from, to board.Square, pt board.PieceType) (board.Move, error) {
	if !promotable(pt) {
		return board.Move{}, fmt.Errorf("%w: %v", ErrInvalidPromotion, pt)
	}
	return s.play(from, to, board.PromoteTo(pt), from.String()+to.String())
}

func (s *Session) play(from, to board.Square, p board.Promoter, notation string) (board.Move, error) {
	if s.pending != nil {
		return board.Move{}, ErrPromotionPending
	}
	if s.Status().Over() {
		return board.Move{}, ErrGameOver
	}

	b := s.gs.Board()
	m, ok := board.Find(s.moves, board.NewMove(from, to, &b, 0))
	if !ok {
		return board.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, notation)
	}
	if p == nil {
		p = s.promoter
	}
	s.clearSelection()
	s.execute(m, p)
	return m, nil
}

func (s *Session) execute(m board.Move, p board.Promoter) {
	s.gs.SetPromoter(p)
	s.gs.MakeMove(m)
	s.gs.SetPromoter(s.promoter)

	n := m.Notation()
	if m.IsPromotion() {
		n += string(s.gs.PieceAt(m.To()).Type().Char())
	}
	s.notations = append(s.notations, n)
	s.refresh()
}

func (s *Session) refresh() {
	s.moves = s.gs.ValidMoves()
}

func (s *Session) clearSelection() {
	s.selected = board.NoSquare
	s.pending = nil
}

// Status reports whether the game is still running and, if not, who won.
func (s *Session) Status() Status {
	switch {
	case s.gs.Checkmate() && s.gs.WhiteToMove():
		return BlackWins
	case s.gs.Checkmate():
		return WhiteWins
	case s.gs.Stalemate():
		return Stalemate
	}
	return Ongoing
}

// Message describes the position for a status line or end-of-game banner.
func (s *Session) Message() string {
	switch s.Status() {
	case BlackWins:
		return "Black wins by checkmate"
	case WhiteWins:
		return "White wins by checkmate"
	case Stalemate:
		return "Stalemate"
	}
	side := "White"
	if !s.gs.WhiteToMove() {
		side = "Black"
	}
	if s.gs.InCheck() {
		return side + " to move, in check"
	}
	return side + " to move"
}

// TargetsFrom returns the squares the piece on sq can legally move to.
func (s *Session) TargetsFrom(sq board.Square) []board.Square {
	var out []board.Square
	for _, m := range board.MovesFrom(s.moves, sq) {
		out = append(out, m.To())
	}
	return out
}

// LastMove returns the most recent move.
func (s *Session) LastMove() (board.Move, bool) {
	return s.gs.LastMove()
}

// Notations returns the moves played so far, promotions suffixed with the
// chosen piece letter.
func (s *Session) Notations() []string {
	return append([]string(nil), s.notations...)
}

// Replay resets the session and plays the given moves in order. On error the
// session holds the moves before the failing one.
func (s *Session) Replay(notations []string) error {
	s.Reset()
	for i, n := range notations {
		if _, err := s.Play(n); err != nil {
			return fmt.Errorf("replay move %d: %w", i+1, err)
		}
	}
	return nil
}

// ParseMove splits square-pair notation with an optional promotion letter
// (q, r, b or n).
func ParseMove(notation string) (from, to board.Square, pt board.PieceType, err error) {
	n := strings.ToLower(strings.TrimSpace(notation))
	if len(n) != 4 && len(n) != 5 {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %q", ErrBadNotation, notation)
	}
	if from, err = board.ParseSquare(n[0:2]); err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	if to, err = board.ParseSquare(n[2:4]); err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	pt = board.NoPieceType
	if len(n) == 5 {
		pt = board.PieceTypeFromChar(n[4])
		if !promotable(pt) {
			return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %q", ErrInvalidPromotion, n[4:])
		}
	}
	return from, to, pt, nil
}

func promotable(pt board.PieceType) bool {
	return pt == board.Queen || pt == board.Rook || pt == board.Bishop || pt == board.Knight
}
