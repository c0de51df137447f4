package engine

import (
	"context"
	"testing"
	"time"

	. "github.com/cataphract-engine/cataphract/common"
)

func TestIterativeDeepenReturnsLegalMove(t *testing.T) {
	b, err := NewBoard(InitialPositionFEN, NewState())
	if err != nil {
		t.Fatal(err)
	}
	tt := NewTransTable(1)
	arena := NewTreeArena()
	defer arena.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	best := IterativeDeepen(ctx, b, tt, arena, nil)
	if best == NullMove {
		t.Fatal("IterativeDeepen returned NullMove from the starting position")
	}

	var buf [MaxMoves]Move
	legal := b.GenerateMoves(buf[:0])
	found := false
	for _, m := range legal {
		if m == best {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("IterativeDeepen returned %v, which is not a legal move", best)
	}
}

func TestIterativeDeepenReportsIncreasingDepth(t *testing.T) {
	b, err := NewBoard(InitialPositionFEN, NewState())
	if err != nil {
		t.Fatal(err)
	}
	tt := NewTransTable(1)
	arena := NewTreeArena()
	defer arena.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var depths []int
	IterativeDeepen(ctx, b, tt, arena, func(info Info) {
		depths = append(depths, info.Depth)
	})

	for i := 1; i < len(depths); i++ {
		if depths[i] <= depths[i-1] {
			t.Fatalf("depths not strictly increasing: %v", depths)
		}
	}
}
