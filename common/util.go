package common

import (
	"strings"

	"golang.org/x/exp/constraints"
)

// Min returns the smaller of two ordered values.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two ordered values.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp constrains v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Max(lo, Min(v, hi))
}

// Abs returns the absolute value of a signed integer.
func Abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func IsDarkSquare(sq int) bool {
	return File(sq)&1 != Rank(sq)&1
}

func FileDistance(sq1, sq2 int) int { return Abs(File(sq1) - File(sq2)) }
func RankDistance(sq1, sq2 int) int { return Abs(Rank(sq1) - Rank(sq2)) }
func SquareDistance(sq1, sq2 int) int {
	return Max(FileDistance(sq1, sq2), RankDistance(sq1, sq2))
}

// file/rank letters in index order for this engine's h1=0 numbering:
// file index 0 is the h-file, file index 7 is the a-file.
const (
	fileNames = "hgfedcba"
	rankNames = "12345678"
)

// SquareName renders a square as algebraic notation, e.g. SquareE4 -> "e4".
func SquareName(sq int) string {
	if sq == SquareNone {
		return "-"
	}
	return string(fileNames[File(sq)]) + string(rankNames[Rank(sq)])
}

// ParseSquareName parses algebraic notation into a square index, or
// SquareNone for "-".
func ParseSquareName(s string) int {
	if s == "-" || len(s) < 2 {
		return SquareNone
	}
	file := strings.IndexByte(fileNames, s[0])
	rank := strings.IndexByte(rankNames, s[1])
	if file < 0 || rank < 0 {
		return SquareNone
	}
	return MakeSquare(file, rank)
}
