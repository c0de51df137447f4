package common

import "testing"

// makeUnmakeRoundTrip walks every legal move fixedDepth deep from fen,
// asserting that RetractMove restores the exact board the move was
// applied from and that the incrementally maintained Zobrist key
// always matches a from-scratch recomputation.
func makeUnmakeRoundTrip(t *testing.T, fen string, fixedDepth int) {
	t.Helper()
	root := NewState()
	b, err := NewBoard(fen, root)
	if err != nil {
		t.Fatalf("NewBoard(%q): %v", fen, err)
	}
	if got, want := b.Key(), b.computeKey(); got != want {
		t.Fatalf("%q: initial key %#x, recomputed %#x", fen, got, want)
	}
	walk(t, b, fixedDepth)
}

func walk(t *testing.T, b *Board, depth int) {
	if depth == 0 {
		return
	}
	before := snapshot(b)

	var buf [MaxMoves]Move
	moves := b.GenerateMoves(buf[:0])
	for _, m := range moves {
		var st State
		b.ApplyMove(m, &st)

		if got, want := b.Key(), b.computeKey(); got != want {
			t.Errorf("move %v: incremental key %#x, recomputed %#x", m, got, want)
		}

		walk(t, b, depth-1)

		b.RetractMove(m)
		if after := snapshot(b); after != before {
			t.Fatalf("move %v: RetractMove left board %+v, want %+v", m, after, before)
		}
	}
}

type boardSnapshot struct {
	pieces     [2][PieceKindCount]uint64
	allPieces  uint64
	mailbox    [64]PieceKind
	sideToMove Color
	key        uint64
}

func snapshot(b *Board) boardSnapshot {
	return boardSnapshot{
		pieces:     b.pieces,
		allPieces:  b.allPieces,
		mailbox:    b.mailbox,
		sideToMove: b.sideToMove,
		key:        b.Key(),
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	for _, fen := range testFENs {
		makeUnmakeRoundTrip(t, fen, 3)
	}
}

// testFENs exercises castling, en passant, and promotion in the same
// spirit as the reference engine's own SEE test fixtures.
var testFENs = []string{
	InitialPositionFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

func TestSideToMoveKeysDiffer(t *testing.T) {
	if SideToMoveKey(White) == SideToMoveKey(Black) {
		t.Fatal("white and black side-to-move keys collide")
	}
}
