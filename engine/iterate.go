package engine

import (
	"context"

	. "github.com/cataphract-engine/cataphract/common"
)

// maxSearchDepth mirrors Homura's MaxDepth: the iterative deepening
// loop never asks for more plies than this, and it sizes the rollout
// tree's root-frame pool.
const maxSearchDepth = 65

// Info is one iteration's UCI-shaped progress report.
type Info struct {
	Depth int
	Score int
	Nodes int64
	Move  Move
}

// IterativeDeepen runs Huang's Alpha-Beta rollout search from the
// current position to increasing depth until ctx is done, reporting
// each converged iteration to report (which may be nil) and returning
// the best move the last converged iteration found. Every depth
// builds a brand-new tree, since the candidate principal-variation
// lines a rollout keeps in memory are a small, depth-specific slice
// of the full tree — the previous depth's tree is hedged off to the
// arena's background collector rather than freed inline here.
func IterativeDeepen(ctx context.Context, b *Board, tt *TransTable, arena *TreeArena, report func(Info)) Move {
	s := NewSearcher(ctx, b, tt)
	rc := &rollout{Searcher: s, arena: arena}

	frame := arena.NewRootFrame()
	defer arena.CollectFrame(frame)

	var best Move
	arena.Reset()
	s.qPly = maxSearchDepth
	s.nullPly = 0
	depth := 1

	for depth < maxSearchDepth {
		select {
		case <-ctx.Done():
			return best
		default:
		}

		root := &frame[depth-1]
		rc.search(b, root, 0, depth)
		if s.timeUp() {
			return best
		}

		if !root.converged() {
			root.updateAB()
			continue
		}

		best = root.getPVMove()
		if report != nil {
			report(Info{Depth: depth, Score: root.getScore(), Nodes: s.Nodes(), Move: best})
		}

		s.nullPly = depth >> 2
		arena.Collect(root)
		arena.Reset()
		s.order.AgeHistory()
		depth++
	}
	return best
}
