package engine

import (
	"github.com/cataphract-engine/cataphract/eval"

	. "github.com/cataphract-engine/cataphract/common"
)

// iidRolloutDepth is the minimum remaining depth at which a rollout
// node with no PV/TT move bothers running internal iterative
// deepening before expanding.
const iidRolloutDepth = 4

// rollout bundles a Searcher with the tree arena the rollout search
// grows and reclaims nodes from. A Searcher's board, transposition
// table, move ordering state and evaluation cache all do double duty
// between backtracking and rollout search, since Homura's non-PV
// verification and quiescence leaves are themselves backtracking
// calls made from inside a rollout.
type rollout struct {
	*Searcher
	arena *TreeArena
}

// search implements Dr. Bojun Huang's Alpha-Beta rollout algorithm:
// it walks one candidate principal-variation line per call, expanding
// the tree lazily as it goes, and resolves every sibling of that line
// once with a null-window backtracking search rather than folding it
// into the rollout. Repeated calls from the iterative deepening driver
// tighten n's vminus/vplus bounds until they cross, at which point n's
// subtree is considered fully resolved for the current window.
func (rc *rollout) search(b *Board, n *node, d, r int) {
	if rc.timeUp() {
		return
	}

	switch n.terminal() {
	case termWin:
		n.setScore(-eval.MateEval(d))
		return
	case termDraw:
		n.setScore(eval.Contempt(b))
		return
	}

	if r <= 0 {
		n.qSearch(rc, b)
		return
	}

	alpha, beta := n.alpha, n.beta
	origAlpha := alpha

	var pvHint Move
	key := b.Key()
	if entry, ok := rc.tt.Probe(key); ok && entry.Move != NullMove {
		if entry.Depth >= r && n.parent != nil {
			score := ttValueFrom(entry.Value, d)
			switch entry.Bound {
			case BoundExact:
				n.setScore(score)
				return
			case BoundLower:
				if score > alpha {
					alpha = score
				}
			case BoundUpper:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				n.setScore(score)
				return
			}
		}
		pvHint = entry.Move
	}

	inCheck := b.Checkers() != 0

	if n.hasNoChildren() {
		if pvHint == NullMove && r >= iidRolloutDepth {
			pvHint = n.iidSearch(rc, b, d, r)
		}
		if !n.expand(rc, b, d, r, pvHint) {
			return
		}
	}

	child, idx := n.selectChild(r)
	if child == nil {
		return
	}

	move := child.move
	isAttack := isNoisy(b, move)

	var st State
	b.ApplyMove(move, &st)
	rc.nodes++
	givesCheck := b.Checkers() != 0
	concern := isAttack || inCheck || move.IsPromotion() || givesCheck || rc.order.IsKiller(d, move)

	if child.reSearch || idx == 0 || child.nonPVSearch(rc, b, concern, d, r, idx) {
		rc.search(b, child, d+1, r-1)
	}
	b.RetractMove(move)

	n.backprop()

	if n.converged() {
		pv := n.getPVMove()
		best := n.getScore()
		bound := BoundExact
		switch {
		case best <= origAlpha:
			bound = BoundUpper
		case best >= beta:
			bound = BoundLower
		}
		rc.tt.Store(key, r, ttValueTo(best), bound, pv)
	}
}
