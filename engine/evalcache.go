package engine

import (
	"sync/atomic"

	"github.com/cataphract-engine/cataphract/eval"

	. "github.com/cataphract-engine/cataphract/common"
)

// evalCache is a lockless single-probe cache in front of eval.Evaluate,
// packing a verification key and the score into one word so a racing
// reader never observes a torn entry. Adapted from the teacher's
// evalCacheDecorator, generalized from a closure over one function to
// a small struct so each Searcher owns an independent cache.
type evalCache struct {
	entries []uint64
}

const (
	evalCacheSize     = 1 << 16
	evalCacheSizeMask = evalCacheSize - 1
	evalCacheValMask  = uint64(0xFFFF)
	evalCacheKeyMask  = ^evalCacheValMask
	evalCacheZero     = 32768
)

func newEvalCache() *evalCache {
	return &evalCache{entries: make([]uint64, evalCacheSize)}
}

func (c *evalCache) evaluate(b *Board) int {
	key := b.Key()
	slot := &c.entries[uint32(key)&evalCacheSizeMask]
	data := atomic.LoadUint64(slot)
	if data&evalCacheKeyMask == key&evalCacheKeyMask {
		return int(data&evalCacheValMask) - evalCacheZero
	}
	v := eval.Evaluate(b)
	atomic.StoreUint64(slot, (key&evalCacheKeyMask)|uint64(v+evalCacheZero))
	return v
}
