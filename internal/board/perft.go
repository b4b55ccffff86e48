package board

var promotionChoices = [4]PieceType{Queen, Rook, Bishop, Knight}

// Perft counts the leaf nodes of the legal move tree at the given depth.
// Each promotion counts once per piece choice so the totals match the
// published tables. The position and promoter are restored on return.
func Perft(gs *GameState, depth int) int64 {
	saved := gs.promoter
	defer gs.SetPromoter(saved)
	return perft(gs, depth)
}

func perft(gs *GameState, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := gs.ValidMoves()
	var nodes int64
	for _, m := range moves {
		if !m.IsPromotion() {
			if depth == 1 {
				nodes++
				continue
			}
			gs.MakeMove(m)
			nodes += perft(gs, depth-1)
			gs.UndoMove()
			continue
		}
		for _, pt := range promotionChoices {
			if depth == 1 {
				nodes++
				continue
			}
			gs.SetPromoter(PromoteTo(pt))
			gs.MakeMove(m)
			nodes += perft(gs, depth-1)
			gs.UndoMove()
		}
	}
	return nodes
}

// DivideEntry is the subtree size below one root move.
type DivideEntry struct {
	Move  string
	Nodes int64
}

// Divide runs Perft below each legal root move, in generation order.
// Promotions are listed once per piece choice ("e7e8q", "e7e8r", ...).
func Divide(gs *GameState, depth int) []DivideEntry {
	if depth < 1 {
		return nil
	}
	saved := gs.promoter
	defer gs.SetPromoter(saved)

	var out []DivideEntry
	for _, m := range gs.ValidMoves() {
		if !m.IsPromotion() {
			gs.MakeMove(m)
			out = append(out, DivideEntry{m.Notation(), perft(gs, depth-1)})
			gs.UndoMove()
			continue
		}
		for _, pt := range promotionChoices {
			gs.SetPromoter(PromoteTo(pt))
			gs.MakeMove(m)
			out = append(out, DivideEntry{m.Notation() + string(pt.Char()), perft(gs, depth-1)})
			gs.UndoMove()
		}
	}
	return out
}
