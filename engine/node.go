package engine

import (
	"github.com/cataphract-engine/cataphract/eval"

	. "github.com/cataphract-engine/cataphract/common"
)

// termType marks why a rollout node needs no further search: it is
// either an ordinary internal node, a checkmate ("win" for the side
// that just moved into it), or a position search never has to look
// past (stalemate, insufficient material, repetition).
type termType uint8

const (
	termNone termType = iota
	termDraw
	termWin
)

// inf and unvisited mirror Homura's Node: alpha/beta/vminus/vplus
// start at the widest possible bounds, while score uses a sentinel one
// below -inf so an unvisited child is never mistaken for one that
// scored the same as the bound extremes.
const (
	inf       = 1 << 30
	unvisited = -inf - 1
)

// nodeList is a singly linked list of siblings, appended at head and
// walked from tail — the shape Homura's NodeList uses so a rollout
// never pays for a slice reallocation while a node is expanding.
type nodeList struct {
	head, tail *node
}

func (l *nodeList) pushBack(n *node) {
	if l.head != nil {
		l.head.next = n
	} else {
		l.tail = n
	}
	l.head = n
}

func (l *nodeList) empty() bool { return l.tail == nil }

// node is one vertex of the in-memory rollout search tree. Every
// field here has a direct counterpart in Homura's Node; vminus/vplus
// are Huang's Algorithm 4 bounds and converged reports whether they
// have crossed, meaning the subtree beneath this node is fully
// resolved for the current window.
type node struct {
	children nodeList
	parent   *node
	next     *node
	pvChild  *node

	alpha, beta   int
	vminus, vplus int
	score         int

	move     Move
	term     termType
	reSearch bool
}

func newNode(parent *node, m Move, t termType, score int) *node {
	return &node{
		parent: parent, move: m, term: t, score: score,
		alpha: -inf, beta: inf, vminus: -inf, vplus: inf,
	}
}

func resetNode(n *node) {
	*n = node{alpha: -inf, beta: inf, vminus: -inf, vplus: inf, score: unvisited}
}

func (n *node) setScore(s int) { n.score, n.vminus, n.vplus = s, s, s }

func (n *node) getScore() int { return n.score }

func (n *node) getPVMove() Move {
	if n.pvChild != nil {
		return n.pvChild.move
	}
	return NullMove
}

func (n *node) updateAB() {
	n.alpha = Max(n.alpha, n.vminus)
	n.beta = Min(n.beta, n.vplus)
}

func (n *node) hasNoChildren() bool { return n.children.empty() }

func (n *node) terminal() termType { return n.term }

func (n *node) converged() bool { return n.vminus >= n.vplus }

// selectChild implements Homura's leftmost-then-greedy tree policy: it
// visits children left to right (the move-ordering-determined order)
// until either the current child's own window has already resolved
// (skip it) or it falls within the first 2*r slots — those are always
// revisited leftmost. Past that margin, once every remaining child has
// been visited once, selection switches to picking the child with the
// best minimax value seen so far.
func (n *node) selectChild(r int) (*node, int) {
	var choice *node
	maxScore := unvisited
	margin := r * 2
	i := 0
	for x := n.children.tail; x != nil; x, i = x.next, i+1 {
		x.alpha = Max(-n.beta, x.vminus)
		x.beta = Min(-n.alpha, x.vplus)
		if x.alpha >= x.beta {
			continue
		}
		if n.parent == nil || i < margin || x.score == unvisited {
			return x, i
		}
		if l := -x.score; l > maxScore {
			maxScore = l
			choice = x
		}
	}
	return choice, i
}

// backprop pulls this node's bounds and minimax score up from its
// children. The bounds take every child into account; the score and
// pvChild ignore any child that hasn't been visited yet.
func (n *node) backprop() {
	maxVMinus, maxVPlus, maxScore := -inf, -inf, -inf
	var pv *node
	for x := n.children.tail; x != nil; x = x.next {
		if v := -x.vplus; v > maxVMinus {
			maxVMinus = v
		}
		if v := -x.vminus; v > maxVPlus {
			maxVPlus = v
		}
		if x.score != unvisited {
			if l := -x.score; l > maxScore {
				maxScore = l
				pv = x
			}
		}
	}
	n.vminus, n.vplus, n.score = maxVMinus, maxVPlus, maxScore
	n.pvChild = pv
}

// qSearch settles a leaf reached at remaining depth zero with the
// classical fail-hard quiescence search, always at ply zero — a
// rollout leaf never needs the ply-indexed killer/eval history the
// backtracking search keeps, since it is a one-shot call.
func (n *node) qSearch(rc *rollout, b *Board) int {
	s := rc.quiescence(b, 0, 0, n.alpha, n.beta)
	n.setScore(s)
	return s
}

// nonPVSearch verifies a non-leftmost child with a backtracking
// null-window search before committing to a full rollout re-search of
// it, applying one conservative late-move reduction first. concern is
// computed by the caller, since by the time nonPVSearch runs the move
// this node represents is already on the board: the capture test is
// made before the move is applied, the gives-check test after.
func (n *node) nonPVSearch(rc *rollout, b *Board, concern bool, d, r, i int) bool {
	reduced := 0
	if r >= 5 && !concern {
		reduced = 1 + i/12
		sc := -rc.alphaBeta(b, NonPV, true, d+1, r-1-reduced, -n.parent.alpha-1, -n.parent.alpha)
		if sc <= n.parent.alpha {
			n.setScore(-sc)
			return false
		}
	}

	sc := -rc.alphaBeta(b, NonPV, true, d+1, r-1, -n.parent.alpha-1, -n.parent.alpha)
	if sc > n.parent.alpha && (reduced > 0 || d == 0 || sc < n.parent.beta) {
		n.reSearch = true
		return true
	}
	n.setScore(-sc)
	return false
}

// iidSearch finds a good-enough move to order this node's expansion
// by running a reduced-depth backtracking search when no PV/TT move
// is already known and enough depth remains to make it worthwhile.
func (n *node) iidSearch(rc *rollout, b *Board, d, r int) Move {
	rc.alphaBeta(b, IID, true, d, r-3, n.alpha, n.beta)
	if entry, ok := rc.tt.Probe(b.Key()); ok {
		return entry.Move
	}
	return NullMove
}

// expand generates this node's children. If the tree has already
// grown past the arena's node budget, it gives up on growing the tree
// further and instead resolves this node outright with a backtracking
// search to the remaining depth, exactly as the classical search
// would — the same fallback Homura's MemManager forces once
// maxNodesExceeded.
func (n *node) expand(rc *rollout, b *Board, d, r int, pvHint Move) bool {
	if rc.arena.MaxNodesExceeded() {
		s := rc.alphaBeta(b, PV, true, d, r, n.alpha, n.beta)
		n.setScore(s)
		return false
	}

	moves := buildMoveList(b, rc.order, d, pvHint, false)
	var st State
	for _, m := range moves {
		b.ApplyMove(m, &st)
		inCheck := b.Checkers() != 0
		replies := buildMoveList(b, rc.order, d+1, NullMove, false)

		var t termType
		switch {
		case len(replies) == 0:
			if inCheck {
				t = termWin
			} else {
				t = termDraw
			}
		case !eval.IsMatePossible(b) || eval.Repeating(b):
			t = termDraw
		default:
			t = termNone
		}

		child := rc.arena.Alloc(n, m, t, unvisited)
		n.children.pushBack(child)
		b.RetractMove(m)
	}
	return true
}
