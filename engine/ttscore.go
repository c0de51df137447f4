package engine

import (
	"github.com/cataphract-engine/cataphract/eval"

	. "github.com/cataphract-engine/cataphract/common"
)

// ttValueTo and ttValueFrom implement the mate-score normalization
// spec.md describes for the transposition table: a value already in
// mate range is clamped to the canonical sentinel on the way in, and
// re-expanded to a ply-accurate mate score on the way out. This is
// simpler than the usual store-side/retrieve-side symmetric shift
// because the sentinel already fixes the sign and only the distance
// needs reconstructing at the point of use.
func ttValueTo(score int) int {
	switch {
	case score >= eval.MinMate:
		return eval.MateValue
	case score <= -eval.MinMate:
		return -eval.MateValue
	default:
		return score
	}
}

func ttValueFrom(score, ply int) int {
	switch score {
	case eval.MateValue:
		return eval.MateEval(ply)
	case -eval.MateValue:
		return -eval.MateEval(ply)
	default:
		return score
	}
}

func hasNonPawnMaterial(b *Board, c Color) bool {
	return b.Pieces(c, Knight)|b.Pieces(c, Bishop)|b.Pieces(c, Rook)|b.Pieces(c, Queen) != 0
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
