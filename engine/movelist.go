package engine

import (
	"sort"

	. "github.com/cataphract-engine/cataphract/common"
)

// isNoisy classifies a legal move as a capture, en passant capture, or
// queen promotion — the moves both quiescence and the ordering split
// treat as tactical rather than quiet. An under-promotion counts as
// quiet, even when it captures.
func isNoisy(b *Board, m Move) bool {
	if m.Type() == EnPassant {
		return true
	}
	if m.IsPromotion() {
		return m.PromotionPiece() == Queen
	}
	return b.PieceOn(m.To()) != NullPiece
}

func sortByMVVLVA(b *Board, moves []Move) {
	sort.Slice(moves, func(i, j int) bool {
		return mvvLvaScore(b.PieceOn(moves[i].To()), b.PieceOn(moves[i].From())) >
			mvvLvaScore(b.PieceOn(moves[j].To()), b.PieceOn(moves[j].From()))
	})
}

func sortByHistory(us Color, mo *MoveOrder, moves []Move) {
	sort.Slice(moves, func(i, j int) bool {
		return mo.historyOf(us, moves[i]) > mo.historyOf(us, moves[j])
	})
}

// buildMoveList assembles the move order spec's search relies on:
// captures sorted by MVV-LVA first, then (outside quiescence) quiets
// with the ply's killers lifted to the front in killer-slot order and
// the remainder sorted by history, and finally a PV/TT/IID hint move
// lifted to the absolute front.
func buildMoveList(b *Board, mo *MoveOrder, ply int, pvHint Move, capturesOnly bool) []Move {
	var buf [MaxMoves]Move
	var all []Move
	if capturesOnly {
		all = b.GenerateCaptures(buf[:0])
	} else {
		all = b.GenerateMoves(buf[:0])
	}

	captures := make([]Move, 0, len(all))
	quiets := make([]Move, 0, len(all))
	for _, m := range all {
		if isNoisy(b, m) {
			captures = append(captures, m)
		} else {
			quiets = append(quiets, m)
		}
	}
	sortByMVVLVA(b, captures)

	ordered := append([]Move(nil), captures...)

	if !capturesOnly {
		us := b.SideToMove()
		killers := mo.killers[ply]
		lifted := make([]Move, 0, 2)
		rest := make([]Move, 0, len(quiets))
		for _, k := range killers {
			if k == NullMove {
				continue
			}
			for _, m := range quiets {
				if m == k {
					lifted = append(lifted, m)
					break
				}
			}
		}
		for _, m := range quiets {
			if m != killers[0] && m != killers[1] {
				rest = append(rest, m)
			}
		}
		sortByHistory(us, mo, rest)
		ordered = append(ordered, lifted...)
		ordered = append(ordered, rest...)
	}

	if pvHint != NullMove {
		for i, m := range ordered {
			if m == pvHint {
				ordered[0], ordered[i] = ordered[i], ordered[0]
				break
			}
		}
	}
	return ordered
}
