package engine

import (
	"github.com/cataphract-engine/cataphract/eval"

	. "github.com/cataphract-engine/cataphract/common"
)

// NodeType marks a backtracking search call's role in the principal
// variation, per spec.md's alphaBeta<Alliance,NodeType,DO_NULL>
// template parameter.
type NodeType int

const (
	NonPV NodeType = iota
	PV
	Root
	IID
)

// nullMoveReduction is Homura's NULL_R.
const nullMoveReduction = 2

var lmpMargin = [...]int{0, 8, 13, 17, 21, 25}

func childNodeType(nt NodeType, first bool) NodeType {
	if first && (nt == Root || nt == PV || nt == IID) {
		return PV
	}
	return NonPV
}

// alphaBeta is the classical backtracking principal-variation search:
// negamax, fail-soft, with reverse futility pruning, null-move
// pruning, razoring, futility pruning, late move pruning, late move
// reductions and internal iterative deepening layered on in the order
// Homura's Backtrack.cpp applies them.
func (s *Searcher) alphaBeta(b *Board, nt NodeType, doNull bool, ply, r, alpha, beta int) int {
	if s.timeUp() {
		return 0
	}
	s.nodes++

	if nt != Root && (!eval.IsMatePossible(b) || eval.Repeating(b)) {
		return eval.Contempt(b)
	}

	if r <= 0 {
		return s.quiescence(b, ply, 0, alpha, beta)
	}

	origAlpha := alpha
	pvNode := nt != NonPV

	hashMove := NullMove
	if entry, ok := s.tt.Probe(b.Key()); ok {
		hashMove = entry.Move
		if entry.Depth >= r && nt != Root && nt != IID {
			score := ttValueFrom(entry.Value, ply)
			switch entry.Bound {
			case BoundLower:
				if score > alpha {
					alpha = score
				}
			case BoundUpper:
				if score < beta {
					beta = score
				}
			case BoundExact:
				return score
			}
			if alpha >= beta {
				return score
			}
		}
	}

	inCheck := b.Checkers() != 0
	var ev int
	if inCheck {
		ev = -eval.MateEval(ply)
	} else {
		ev = s.evaluate(b)
	}
	s.evals[ply] = ev
	improving := ply > 2 && s.evals[ply] > s.evals[ply-2]

	if !inCheck && !pvNode && r <= 5 && Abs(beta) < eval.MinMate &&
		ev-(50+100*(r+boolToInt(improving))) >= beta {
		return beta
	}

	if doNull && !inCheck && !pvNode && r >= 2 && ply > s.nullPly &&
		hasNonPawnMaterial(b, b.SideToMove()) {
		var st State
		b.ApplyNullMove(&st)
		score := -s.alphaBeta(b, NonPV, false, ply+1, r-1-nullMoveReduction, -beta, -beta+1)
		b.RetractNullMove()
		if s.timeUp() {
			return 0
		}
		if score >= beta && Abs(score) < eval.MinMate {
			return beta
		}
	}

	if !inCheck && !pvNode && r <= 2 && ev+r*300 < alpha {
		qs := s.quiescence(b, ply, 0, alpha-1, alpha)
		if qs+r*300 < alpha {
			return alpha
		}
	}

	futile := r <= 8 && !pvNode && Abs(alpha) < eval.MinMate && Abs(beta) < eval.MinMate &&
		ev+100+(r-1)*70 < alpha

	if r >= 4 && nt == PV && hashMove == NullMove {
		s.alphaBeta(b, IID, doNull, ply, r-3, alpha, beta)
		if entry, ok := s.tt.Probe(b.Key()); ok {
			hashMove = entry.Move
		}
	}

	moves := buildMoveList(b, s.order, ply, hashMove, false)
	if len(moves) == 0 {
		if inCheck {
			return -eval.MateEval(ply)
		}
		return 0
	}

	us := b.SideToMove()
	bestScore := -eval.MateValue - 1
	bestMove := NullMove
	var st State

	for i, m := range moves {
		isAttack := isNoisy(b, m)
		concern := isAttack || inCheck || m.IsPromotion() || s.order.IsKiller(ply, m)

		b.ApplyMove(m, &st)
		s.nodes++
		concern = concern || b.Checkers() != 0
		newR := r - 1

		var score int
		if i == 0 {
			score = -s.alphaBeta(b, childNodeType(nt, true), true, ply+1, newR, -beta, -alpha)
		} else {
			if r <= 5 && !pvNode && !concern && i > lmpMargin[Min(r, 5)] {
				b.RetractMove(m)
				continue
			}
			if futile && !concern {
				b.RetractMove(m)
				continue
			}

			reducedApplied := false
			if r >= 2 && !concern {
				var red int
				if pvNode {
					red = 1 + i/12
				} else {
					red = Max(2, r/4) + i/12
				}
				score = -s.alphaBeta(b, NonPV, true, ply+1, newR-red, -alpha-1, -alpha)
				reducedApplied = true
				if score > alpha {
					score = -s.alphaBeta(b, NonPV, true, ply+1, newR, -alpha-1, -alpha)
				}
			} else {
				score = -s.alphaBeta(b, NonPV, true, ply+1, newR, -alpha-1, -alpha)
			}

			if score > alpha && (reducedApplied || nt == Root || score < beta) {
				score = -s.alphaBeta(b, PV, true, ply+1, newR, -beta, -alpha)
			}
		}
		b.RetractMove(m)

		if s.timeUp() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			if score >= beta {
				if !isAttack {
					s.order.UpdateHistory(us, m, r, ply)
				}
				break
			}
			if !isAttack {
				s.order.RaiseHistory(us, m, r)
			}
		}
	}

	bound := BoundExact
	switch {
	case bestScore <= origAlpha:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	}
	s.tt.Store(b.Key(), r, ttValueTo(bestScore), bound, bestMove)

	return bestScore
}
