package engine

import (
	"github.com/cataphract-engine/cataphract/eval"

	. "github.com/cataphract-engine/cataphract/common"
)

// quiescence is the fail-hard leaf search that settles a position
// before it is scored: it keeps searching captures (and, while in
// check, every legal reply) until the position is quiet, so the
// backtracking search never evaluates a position sitting in the
// middle of a tactical exchange. Ported from Homura's Backtrack.cpp
// quiescence<Alliance>.
func (s *Searcher) quiescence(b *Board, ply, r, alpha, beta int) int {
	if s.timeUp() {
		return 0
	}
	if !eval.IsMatePossible(b) || eval.Repeating(b) {
		return eval.Contempt(b)
	}

	inCheck := b.Checkers() != 0
	if inCheck {
		moves := buildMoveList(b, s.order, ply, NullMove, false)
		if len(moves) == 0 {
			return -eval.MateEval(ply)
		}
		var st State
		for _, m := range moves {
			b.ApplyMove(m, &st)
			s.nodes++
			score := -s.quiescence(b, ply+1, r-1, -beta, -alpha)
			b.RetractMove(m)
			if score > alpha {
				alpha = score
			}
			if alpha >= beta {
				return beta
			}
		}
		return alpha
	}

	if r < -s.qPly {
		return eval.Evaluate(b)
	}

	sp := s.evaluate(b)
	if sp >= beta {
		return beta
	}
	if sp > alpha {
		alpha = sp
	}

	moves := buildMoveList(b, s.order, ply, NullMove, true)
	var st State
	for _, m := range moves {
		b.ApplyMove(m, &st)
		s.nodes++
		score := -s.quiescence(b, ply+1, r-1, -beta, -alpha)
		b.RetractMove(m)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
