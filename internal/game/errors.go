package game

import "errors"

var (
	ErrIllegalMove        = errors.New("illegal move")
	ErrGameOver           = errors.New("game is over")
	ErrBadNotation        = errors.New("bad move notation")
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrNoPendingPromotion = errors.New("no promotion pending")
	ErrPromotionPending   = errors.New("promotion choice pending")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
)
