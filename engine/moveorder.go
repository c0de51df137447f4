package engine

import (
	"math"

	. "github.com/cataphract-engine/cataphract/common"
)

// victimTier and attackerTier implement spec's MVV-LVA table without
// materializing the full val[victim][attacker] grid: victims R,Q
// outrank N,B outrank P; among attackers, lower is better, ordered
// P < Q < N=B < R < K.
var victimTier = [PieceKindCount]int{0, 1, 2, 2, 3, 3, 0}
var attackerTier = [PieceKindCount]int{0, 0, 2, 2, 3, 1, 4}

func mvvLvaScore(victim, attacker PieceKind) int {
	return victimTier[victim]*8 - attackerTier[attacker]
}

// historyHeadroom keeps the 32-bit accumulator from wrapping: once an
// update would cross it, every entry is halved first, per spec's "age
// on overflow" rule (mirrors Homura's control::updateHistory).
const historyHeadroom = math.MaxInt32 - 1<<16

// MoveOrder holds per-search move-ordering state: the killer table and
// the history heuristic. It is owned by one search (one goroutine),
// same as Homura's control struct.
type MoveOrder struct {
	killers [MaxPly][2]Move
	history [2][64][64]int32
}

func NewMoveOrder() *MoveOrder {
	return &MoveOrder{}
}

func (mo *MoveOrder) Clear() {
	*mo = MoveOrder{}
}

// AgeHistory halves every history entry. Called once between
// iterative-deepening iterations, and internally whenever an update
// would overflow, so accumulated ordering information survives
// instead of being discarded outright.
func (mo *MoveOrder) AgeHistory() {
	for c := range mo.history {
		for from := range mo.history[c] {
			for to := range mo.history[c][from] {
				mo.history[c][from][to] >>= 1
			}
		}
	}
}

func (mo *MoveOrder) bumpHistory(us Color, m Move, delta int) {
	e := &mo.history[us][m.From()][m.To()]
	if int64(*e)+int64(delta) >= historyHeadroom {
		mo.AgeHistory()
	}
	*e += int32(delta)
}

// RaiseHistory bumps a quiet move that merely improved alpha.
func (mo *MoveOrder) RaiseHistory(us Color, m Move, r int) {
	mo.bumpHistory(us, m, r)
}

// UpdateHistory bumps a quiet move that caused a beta cutoff and
// installs it as this ply's most recent killer.
func (mo *MoveOrder) UpdateHistory(us Color, m Move, r, ply int) {
	mo.bumpHistory(us, m, r*r)
	mo.addKiller(ply, m)
}

func (mo *MoveOrder) addKiller(ply int, m Move) {
	if mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

func (mo *MoveOrder) IsKiller(ply int, m Move) bool {
	return mo.killers[ply][0] == m || mo.killers[ply][1] == m
}

func (mo *MoveOrder) historyOf(us Color, m Move) int32 {
	return mo.history[us][m.From()][m.To()]
}
