package engine

import (
	"testing"

	. "github.com/cataphract-engine/cataphract/common"
)

func TestBuildMoveListCapturesBeforeQuiets(t *testing.T) {
	// White to move can capture the knight on e5 or play a quiet move.
	const fen = "rnbqkb1r/pppp1ppp/8/4n3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 1"
	b, err := NewBoard(fen, NewState())
	if err != nil {
		t.Fatal(err)
	}
	mo := NewMoveOrder()

	moves := buildMoveList(b, mo, 0, NullMove, false)
	if len(moves) == 0 {
		t.Fatal("no legal moves generated")
	}

	capture := NewMove(SquareF3, SquareE5, FreeForm)
	found := false
	for i, m := range moves {
		if m == capture {
			found = true
			if !isNoisy(b, m) {
				t.Fatal("Nxe5 misclassified as quiet")
			}
			// Every noisy move sorts ahead of every quiet move.
			for _, q := range moves[:i] {
				if !isNoisy(b, q) {
					t.Fatalf("quiet move %v sorted ahead of capture %v", q, capture)
				}
			}
			break
		}
	}
	if !found {
		t.Fatal("Nxe5 not present in generated move list")
	}
}

func TestBuildMoveListLiftsPVHint(t *testing.T) {
	b, err := NewBoard(InitialPositionFEN, NewState())
	if err != nil {
		t.Fatal(err)
	}
	mo := NewMoveOrder()
	hint := NewMove(SquareB1, SquareC3, FreeForm)

	moves := buildMoveList(b, mo, 0, hint, false)
	if len(moves) == 0 || moves[0] != hint {
		t.Fatalf("PV hint %v not lifted to front: %v", hint, moves)
	}
}

func TestBuildMoveListLiftsKillersBeforeHistory(t *testing.T) {
	b, err := NewBoard(InitialPositionFEN, NewState())
	if err != nil {
		t.Fatal(err)
	}
	mo := NewMoveOrder()
	killer := NewMove(SquareG1, SquareF3, FreeForm)
	other := NewMove(SquareB1, SquareC3, FreeForm)

	mo.addKiller(0, killer)
	mo.RaiseHistory(White, other, 1000)

	moves := buildMoveList(b, mo, 0, NullMove, false)
	killerIdx, otherIdx := -1, -1
	for i, m := range moves {
		switch m {
		case killer:
			killerIdx = i
		case other:
			otherIdx = i
		}
	}
	if killerIdx == -1 || otherIdx == -1 {
		t.Fatal("expected moves missing from generated list")
	}
	if killerIdx >= otherIdx {
		t.Fatalf("killer at %d did not sort ahead of high-history move at %d", killerIdx, otherIdx)
	}
}
