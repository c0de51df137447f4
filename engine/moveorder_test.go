package engine

import (
	"testing"

	. "github.com/cataphract-engine/cataphract/common"
)

func TestKillerInsertionShiftsSlot(t *testing.T) {
	mo := NewMoveOrder()
	m1 := NewMove(SquareE2, SquareE4, PawnJump)
	m2 := NewMove(SquareD2, SquareD4, PawnJump)

	mo.UpdateHistory(White, m1, 4, 3)
	if !mo.IsKiller(3, m1) {
		t.Fatal("m1 should be a killer at ply 3")
	}

	mo.UpdateHistory(White, m2, 4, 3)
	if !mo.IsKiller(3, m1) || !mo.IsKiller(3, m2) {
		t.Fatal("both killers should be tracked after the second insertion")
	}
	if mo.killers[3][0] != m2 || mo.killers[3][1] != m1 {
		t.Fatalf("killers[3] = %v, want [m2, m1]", mo.killers[3])
	}

	// Re-inserting the current top killer must not duplicate it.
	mo.UpdateHistory(White, m2, 4, 3)
	if mo.killers[3][0] != m2 || mo.killers[3][1] != m1 {
		t.Fatalf("re-inserting the top killer disturbed the slot: %v", mo.killers[3])
	}
}

func TestHistoryAgesOnOverflow(t *testing.T) {
	mo := NewMoveOrder()
	m := NewMove(SquareG1, SquareF3, FreeForm)
	mo.history[White][m.From()][m.To()] = historyHeadroom - 1

	mo.RaiseHistory(White, m, 100)

	if got := mo.historyOf(White, m); got >= historyHeadroom {
		t.Fatalf("history entry %d was not aged down below headroom", got)
	}
}

func TestAgeHistoryHalvesEveryEntry(t *testing.T) {
	mo := NewMoveOrder()
	m := NewMove(SquareB1, SquareC3, FreeForm)
	mo.RaiseHistory(White, m, 40)
	before := mo.historyOf(White, m)

	mo.AgeHistory()

	if got := mo.historyOf(White, m); got != before/2 {
		t.Fatalf("AgeHistory: got %d, want %d", got, before/2)
	}
}
