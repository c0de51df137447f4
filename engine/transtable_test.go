package engine

import (
	"testing"

	. "github.com/cataphract-engine/cataphract/common"
)

func TestTransTableStoreProbeRoundTrip(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0xC0FFEE)
	move := NewMove(SquareE2, SquareE4, PawnJump)

	tt.Store(key, 6, 42, BoundExact, move)

	e, ok := tt.Probe(key)
	if !ok {
		t.Fatal("Probe missed a key just stored")
	}
	if e.Move != move || e.Depth != 6 || e.Value != 42 || e.Bound != BoundExact {
		t.Fatalf("Probe returned %+v", e)
	}
}

func TestTransTableMissOnUnknownKey(t *testing.T) {
	tt := NewTransTable(1)
	if _, ok := tt.Probe(0xDEADBEEF); ok {
		t.Fatal("Probe hit on a key never stored")
	}
}

func TestTransTablePrefersDeeperEntry(t *testing.T) {
	tt := NewTransTable(1)
	n := uint64(len(tt.entries))
	const slot = 5
	buddy := uint64(slot ^ 1)
	if buddy >= n {
		t.Skip("table too small for this buddy pair in this configuration")
	}

	shallowMove := NewMove(SquareD2, SquareD4, PawnJump)
	deepMove := NewMove(SquareG1, SquareF3, FreeForm)
	tt.Store(slot, 2, 10, BoundExact, shallowMove)
	tt.Store(buddy, 12, 20, BoundExact, deepMove)

	// thirdKey maps to the same buddy pair (thirdKey % n == slot) but
	// matches neither occupant, forcing a depth-based replacement: the
	// shallower slot entry should be evicted, not the deeper buddy one.
	thirdKey := slot + n
	tt.Store(thirdKey, 1, 99, BoundExact, deepMove)

	if e, ok := tt.Probe(buddy); !ok || e.Depth != 12 {
		t.Fatalf("deeper entry was evicted: ok=%v entry=%+v", ok, e)
	}
	if e, ok := tt.Probe(thirdKey); !ok || e.Depth != 1 {
		t.Fatalf("new entry did not take the shallower slot: ok=%v entry=%+v", ok, e)
	}
}

func TestTransTableClear(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(123)
	tt.Store(key, 4, 7, BoundLower, NewMove(SquareA1, SquareA1, FreeForm))
	tt.Clear()
	if _, ok := tt.Probe(key); ok {
		t.Fatal("Probe hit after Clear")
	}
}
