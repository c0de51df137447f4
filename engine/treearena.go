package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	. "github.com/cataphract-engine/cataphract/common"
)

// MaxNodes caps the in-memory rollout tree's size, matching Homura's
// MemManager. Past this a node's expand falls back to resolving
// itself by backtracking search instead of growing the tree further.
const MaxNodes = 10_000_000

// rootFrameSize is the number of root slots bulk-allocated once per
// search: one per depth the iterative deepening driver could possibly
// reach, since it builds an entirely fresh tree for every depth.
const rootFrameSize = maxSearchDepth

// TreeArena owns the rollout search tree's node accounting and
// reclaims discarded subtrees off the search's own goroutine, the way
// Homura's MemManager frees a depth iteration's tree on a background
// thread instead of stalling the next iteration's rollout on it. Go's
// garbage collector does the actual memory reclamation; what this
// type buys is prompt detachment of parent/child pointers so large
// subtrees become collectible immediately instead of whenever the
// next full GC cycle happens to walk them.
type TreeArena struct {
	count int64

	mu         sync.Mutex
	roots      []*node
	rootFrames [][]node

	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewTreeArena starts the background collector under an errgroup, so
// Stop can cancel it and wait for its last purge the same way a
// caller waits out any other goroutine group in this codebase, rather
// than hand-rolling a done channel.
func NewTreeArena() *TreeArena {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	a := &TreeArena{group: g, cancel: cancel}
	g.Go(func() error {
		a.collectLoop(ctx)
		return nil
	})
	return a
}

func (a *TreeArena) collectLoop(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			a.purge()
			return
		case <-ticker.C:
			a.purge()
		}
	}
}

func (a *TreeArena) purge() {
	a.mu.Lock()
	roots := a.roots
	frames := a.rootFrames
	a.roots = nil
	a.rootFrames = nil
	a.mu.Unlock()

	for _, r := range roots {
		destroySubtree(r)
	}
	// Dropping the frame slice headers here (rather than in purge's
	// caller) is what actually releases the backing arrays to the GC.
	_ = frames
}

// destroySubtree detaches every descendant's parent/next/children
// pointers so the subtree collects even if something upstream is
// still holding the root node itself (a root frame slot survives its
// tree's teardown, since the frame is released separately).
func destroySubtree(n *node) {
	for c := n.children.tail; c != nil; {
		next := c.next
		destroySubtree(c)
		c.parent, c.next, c.pvChild = nil, nil, nil
		c = next
	}
	n.children = nodeList{}
	n.pvChild = nil
}

// Collect queues a finished iteration's root for background teardown.
func (a *TreeArena) Collect(n *node) {
	if n == nil {
		return
	}
	a.mu.Lock()
	a.roots = append(a.roots, n)
	a.mu.Unlock()
}

// CollectFrame queues a root-array allocation for background release.
func (a *TreeArena) CollectFrame(frame []node) {
	a.mu.Lock()
	a.rootFrames = append(a.rootFrames, frame)
	a.mu.Unlock()
}

// NewRootFrame bulk-allocates one root node per depth a search could
// reach, mirroring Homura's single upfront Node[MaxDepth] array
// instead of a fresh heap allocation per iterative-deepening depth.
func (a *TreeArena) NewRootFrame() []node {
	frame := make([]node, rootFrameSize)
	for i := range frame {
		resetNode(&frame[i])
	}
	return frame
}

// Alloc allocates a child node and counts it against the arena's
// budget.
func (a *TreeArena) Alloc(parent *node, m Move, t termType, score int) *node {
	atomic.AddInt64(&a.count, 1)
	return newNode(parent, m, t, score)
}

// Total reports the number of nodes allocated since the last Reset,
// the count MaxNodesExceeded checks. UCI's "nodes" info field comes
// from Searcher.Nodes instead.
func (a *TreeArena) Total() int64 { return atomic.LoadInt64(&a.count) }

// MaxNodesExceeded reports whether the current tree has grown past
// MaxNodes.
func (a *TreeArena) MaxNodesExceeded() bool { return a.Total() > MaxNodes }

// Reset zeroes the allocated node count at the start of a fresh
// depth's tree.
func (a *TreeArena) Reset() { atomic.StoreInt64(&a.count, 0) }

// Stop shuts the background collector down and blocks until its final
// purge finishes.
func (a *TreeArena) Stop() {
	a.cancel()
	a.group.Wait()
}
