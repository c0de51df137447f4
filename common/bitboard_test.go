package common

import "testing"

func TestFirstOne(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  int
	}{
		{"single low bit", SquareMask[SquareH1], SquareH1},
		{"single high bit", SquareMask[SquareA8], SquareA8},
		{"two bits picks lowest", SquareMask[SquareE4] | SquareMask[SquareD5], SquareE4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstOne(tt.value); got != tt.want {
				t.Errorf("FirstOne() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMoreThanOne(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  bool
	}{
		{"zero", 0, false},
		{"one bit", SquareMask[SquareD4], false},
		{"two bits", SquareMask[SquareD4] | SquareMask[SquareE5], true},
		{"full rank", Rank1Mask, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoreThanOne(tt.value); got != tt.want {
				t.Errorf("MoreThanOne() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileAndRankMasksCoverBoard(t *testing.T) {
	var files, ranks uint64
	for _, m := range FileMask {
		files |= m
	}
	for _, m := range RankMaskBy {
		ranks |= m
	}
	if files != ^uint64(0) || ranks != ^uint64(0) {
		t.Fatalf("file/rank masks do not tile the board: files=%016x ranks=%016x", files, ranks)
	}
	for i, m := range FileMask {
		if PopCount(m) != 8 {
			t.Errorf("file %d mask has %d bits, want 8", i, PopCount(m))
		}
	}
}

func TestRookAttacksOpenBoard(t *testing.T) {
	got := RookAttacks(SquareD4, 0)
	// A rook on an empty board attacks its whole file and rank, minus its own square.
	want := (FileMask[File(SquareD4)] | RankMaskBy[Rank(SquareD4)]) &^ SquareMask[SquareD4]
	if got != want {
		t.Errorf("RookAttacks(d4, empty) = %016x, want %016x", got, want)
	}
}

func TestBishopAttacksBlocked(t *testing.T) {
	occ := SquareMask[SquareF6]
	got := BishopAttacks(SquareD4, occ)
	if got&SquareMask[SquareE5] == 0 {
		t.Error("bishop on d4 should attack e5")
	}
	if got&SquareMask[SquareF6] == 0 {
		t.Error("bishop on d4 should attack the blocker on f6")
	}
	if got&SquareMask[SquareG7] != 0 {
		t.Error("bishop on d4 should not see past a blocker on f6")
	}
}

func TestQueenAttacksIsUnionOfRookAndBishop(t *testing.T) {
	occ := SquareMask[SquareD6] | SquareMask[SquareA4]
	got := QueenAttacks(SquareD4, occ)
	want := RookAttacks(SquareD4, occ) | BishopAttacks(SquareD4, occ)
	if got != want {
		t.Errorf("QueenAttacks(d4) = %016x, want %016x", got, want)
	}
}

func TestRayBetweenIsExclusive(t *testing.T) {
	got := RayBetween[SquareA1][SquareD1]
	want := SquareMask[SquareB1] | SquareMask[SquareC1]
	if got != want {
		t.Errorf("RayBetween[a1][d1] = %016x, want %016x", got, want)
	}
	if RayBetween[SquareA1][SquareB2] != 0 {
		t.Error("RayBetween between diagonally adjacent squares should be empty")
	}
}

func TestPawnAttacksDirection(t *testing.T) {
	if PawnAttacks(SquareE4, White)&SquareMask[SquareD5] == 0 {
		t.Error("white pawn on e4 should attack d5")
	}
	if PawnAttacks(SquareE4, White)&SquareMask[SquareD3] != 0 {
		t.Error("white pawn on e4 should not attack d3")
	}
	if PawnAttacks(SquareE4, Black)&SquareMask[SquareD3] == 0 {
		t.Error("black pawn on e4 should attack d3")
	}
}
