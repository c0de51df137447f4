package engine

import (
	"sync/atomic"

	. "github.com/cataphract-engine/cataphract/common"
)

// ttSize is Homura's Zobrist.cpp transposition table size — a prime-ish
// odd count chosen so key%ttSize spreads more evenly than a power of
// two would, at the cost of one slot (ttSize-1) having no XOR buddy.
const ttSize = 1000001

// Bound records which side of the search window an entry's value came
// from, mirroring the classical alpha-beta fail-soft convention.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

type ttEntry struct {
	gate  int32
	key   uint64
	move  Move
	value int16
	depth int8
	bound Bound
	clock int32
}

// Entry is the caller-facing snapshot returned by Probe.
type Entry struct {
	Move  Move
	Value int
	Depth int
	Bound Bound
}

// TransTable is a two-slot transposition table with an age-aware
// replacement scheme: a probing key always checks its direct slot and
// that slot's XOR buddy before falling back to depth/age comparison,
// per Zobrist.cpp's storage(). A single atomic gate per buddy pair
// guards each probe and store without a table-wide lock; a probe or
// store that finds the gate taken gives up (a miss, or a dropped
// store) instead of waiting.
type TransTable struct {
	entries []ttEntry
	clock   int32
}

// bytesPerEntry approximates ttEntry's padded size, in the same spirit
// as the teacher's own hardcoded divisor for its 16-byte transEntry.
const bytesPerEntry = 24

func NewTransTable(megabytes int) *TransTable {
	slots := megabytes * 1024 * 1024 / bytesPerEntry
	if slots < 2 {
		slots = ttSize
	}
	return &TransTable{entries: make([]ttEntry, slots)}
}

// NewSearch bumps the age clock used by the replacement formula so
// entries from earlier searches read as stale without being cleared.
func (tt *TransTable) NewSearch() {
	tt.clock++
}

func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
}

func (tt *TransTable) locate(key uint64) (slot, buddy uint64, gate *int32) {
	n := uint64(len(tt.entries))
	slot = key % n
	buddy = slot ^ 1
	if buddy >= n {
		buddy = slot
	}
	gateSlot := slot
	if buddy < gateSlot {
		gateSlot = buddy
	}
	return slot, buddy, &tt.entries[gateSlot].gate
}

func (tt *TransTable) Probe(key uint64) (Entry, bool) {
	slot, buddy, gate := tt.locate(key)
	if !atomic.CompareAndSwapInt32(gate, 0, 1) {
		return Entry{}, false
	}
	defer atomic.StoreInt32(gate, 0)

	e := &tt.entries[slot]
	if e.key != key {
		e = &tt.entries[buddy]
	}
	if e.key != key {
		return Entry{}, false
	}
	e.clock = tt.clock
	return Entry{Move: e.move, Value: int(e.value), Depth: int(e.depth), Bound: e.bound}, true
}

// Store finds the buddy-pair slot to occupy the way Zobrist.cpp's
// storage() does: prefer an exact key match, then the shallower of
// the two slots, then whichever of the two is more aggressively aged
// relative to the incoming depth.
func (tt *TransTable) Store(key uint64, depth, value int, bound Bound, move Move) {
	slot, buddy, gate := tt.locate(key)
	if slot == buddy {
		if !atomic.CompareAndSwapInt32(gate, 0, 1) {
			return
		}
		tt.write(&tt.entries[slot], key, depth, value, bound, move)
		atomic.StoreInt32(gate, 0)
		return
	}
	if !atomic.CompareAndSwapInt32(gate, 0, 1) {
		return
	}
	defer atomic.StoreInt32(gate, 0)

	e1, e2 := &tt.entries[slot], &tt.entries[buddy]
	switch {
	case e1.key == key:
		tt.write(e1, key, depth, value, bound, move)
	case e2.key == key:
		tt.write(e2, key, depth, value, bound, move)
	case e1.depth < e2.depth:
		tt.write(e1, key, depth, value, bound, move)
	default:
		age1 := tt.clock - e1.clock
		age2 := tt.clock - e2.clock
		if int32(depth)+(age1>>1) > int32(e1.depth)+(age2>>2) {
			tt.write(e1, key, depth, value, bound, move)
		} else {
			tt.write(e2, key, depth, value, bound, move)
		}
	}
}

func (tt *TransTable) write(e *ttEntry, key uint64, depth, value int, bound Bound, move Move) {
	e.key = key
	e.move = move
	e.value = int16(value)
	e.depth = int8(depth)
	e.bound = bound
	e.clock = tt.clock
}
