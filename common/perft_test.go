package common

import "testing"

// perft counts leaf nodes reached by full-legality move generation to
// a fixed depth, the standard cross-check that move generation, make,
// and unmake agree with each other.
func perft(b *Board, states []State, depth int) int {
	var buf [MaxMoves]Move
	moves := b.GenerateMoves(buf[:0])
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		b.ApplyMove(m, &states[0])
		nodes += perft(b, states[1:], depth-1)
		b.RetractMove(m)
	}
	return nodes
}

func runPerft(t *testing.T, fen string, depth, want int) {
	t.Helper()
	var states [MaxPly]State
	root := NewState()
	b, err := NewBoard(fen, root)
	if err != nil {
		t.Fatalf("NewBoard(%q): %v", fen, err)
	}
	got := perft(b, states[:], depth)
	if got != want {
		t.Errorf("perft(%q, %d) = %d, want %d", fen, depth, got, want)
	}
}

func TestPerftInitialPosition(t *testing.T) {
	want := []int{20, 400, 8902, 197281, 4865609}
	for depth, nodes := range want {
		runPerft(t, InitialPositionFEN, depth+1, nodes)
	}
}

func TestPerftKiwipete(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	want := []int{48, 2039, 97862, 4085603}
	for depth, nodes := range want {
		runPerft(t, kiwipete, depth+1, nodes)
	}
}
