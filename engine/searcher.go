package engine

import (
	"context"

	. "github.com/cataphract-engine/cataphract/common"
)

// Searcher holds everything one search owns exclusively: the
// transposition table is the only piece shared with other searches,
// and its probes and stores are gated per bucket. This is the "control" struct from spec.md's
// search sections, split into the pieces each collaborator needs.
type Searcher struct {
	board *Board
	tt    *TransTable
	order *MoveOrder
	cache *evalCache
	tm    *TimeManager
	ctx   context.Context

	nodes    int64
	maxDepth int
	nullPly  int
	qPly     int
	evals    [MaxPly]int
}

// NewSearcher builds a Searcher over a board and a transposition
// table the caller owns; both may be reused across searches (the
// table across the whole engine lifetime, the board across the whole
// game). ctx must be non-nil: timeUp polls it on every node, so a
// search built without a deadline should still pass
// context.Background() explicitly rather than leaving it nil.
func NewSearcher(ctx context.Context, b *Board, tt *TransTable) *Searcher {
	return &Searcher{
		board: b,
		tt:    tt,
		ctx:   ctx,
		order: NewMoveOrder(),
		cache: newEvalCache(),
	}
}

// SetContext replaces the context timeUp polls. IterativeDeepen does
// not call it: one context bounds every depth of a search.
func (s *Searcher) SetContext(ctx context.Context) {
	s.ctx = ctx
}

func (s *Searcher) evaluate(b *Board) int {
	return s.cache.evaluate(b)
}

func (s *Searcher) timeUp() bool {
	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}

func (s *Searcher) Nodes() int64 {
	return s.nodes
}
