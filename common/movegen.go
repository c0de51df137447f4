package common

// Legal move generation works directly off two bitboards computed
// once per call rather than generating pseudo-legal moves and
// filtering them with make/unmake, per the Homura reference
// implementation's attacksOn-based approach (MoveMake.h):
//
//   - checkMask: squares a non-king move must land on. All ones when
//     the side to move isn't in check, empty (no non-king move is
//     legal) when in double check, otherwise the checking piece's
//     square together with the ray from it to the king.
//   - pinRay[sq]: for a piece pinned against its own king, the ray it
//     is confined to (including the pinning piece's square); all ones
//     for an unpinned piece.
//
// Applying `pinRay[from] & checkMask` to a piece's normal attack
// bitboard yields exactly its legal destinations, with two
// exceptions handled separately below: king moves (checked by
// attacking the destination square with the king removed from the
// occupancy) and en passant (which can expose the king along a rank
// the pin/check masks don't model).

var castleKingSideMask = [2]uint64{
	1<<SquareF1 | 1<<SquareG1,
	1<<SquareF8 | 1<<SquareG8,
}
var castleQueenSideMask = [2]uint64{
	1<<SquareB1 | 1<<SquareC1 | 1<<SquareD1,
	1<<SquareB8 | 1<<SquareC8 | 1<<SquareD8,
}
var castleKingSideRights = [2]int{WhiteKingSide, BlackKingSide}
var castleQueenSideRights = [2]int{WhiteQueenSide, BlackQueenSide}
var castleKingFrom = [2]int{SquareE1, SquareE8}
var castleKingSideTo = [2]int{SquareG1, SquareG8}
var castleQueenSideTo = [2]int{SquareC1, SquareC8}
var castleKingSidePassThrough = [2]int{SquareF1, SquareF8}
var castleQueenSidePassThrough = [2]int{SquareD1, SquareD8}

// pinsAndChecks returns the check mask and a full 64-entry pin-ray
// table for the side to move's king.
func (b *Board) pinsAndChecks() (checkMask uint64, pinRay [64]uint64) {
	us := b.sideToMove
	them := us.Other()
	kingSq := b.KingSquare(us)
	occ := b.allPieces

	checkers := b.AttackersTo(kingSq) & b.pieces[them][NullPiece]
	switch {
	case checkers == 0:
		checkMask = ^uint64(0)
	case MoreThanOne(checkers):
		checkMask = 0
	default:
		checkSq := FirstOne(checkers)
		checkMask = checkers | RayBetween[kingSq][checkSq]
	}

	for i := range pinRay {
		pinRay[i] = ^uint64(0)
	}

	sliders := (BishopAttacks(kingSq, 0) & (b.pieces[them][Bishop] | b.pieces[them][Queen])) |
		(RookAttacks(kingSq, 0) & (b.pieces[them][Rook] | b.pieces[them][Queen]))
	for c := sliders; c != 0; c &= c - 1 {
		sliderSq := FirstOne(c)
		between := RayBetween[kingSq][sliderSq] & occ
		if between == 0 || MoreThanOne(between) {
			continue
		}
		blockerSq := FirstOne(between)
		if SquareMask[blockerSq]&b.pieces[us][NullPiece] != 0 {
			pinRay[blockerSq] = RayBetween[kingSq][sliderSq] | SquareMask[sliderSq]
		}
	}
	return
}

// GenerateMoves appends every legal move in the current position to
// moves and returns the extended slice.
func (b *Board) GenerateMoves(moves []Move) []Move {
	return b.generate(moves, false)
}

// GenerateCaptures appends every legal capture, en passant capture,
// and queen promotion to moves — the noisy-move subset a quiescence
// search examines.
func (b *Board) GenerateCaptures(moves []Move) []Move {
	return b.generate(moves, true)
}

func (b *Board) generate(moves []Move, capturesOnly bool) []Move {
	us := b.sideToMove
	them := us.Other()
	own := b.pieces[us][NullPiece]
	opp := b.pieces[them][NullPiece]
	occ := b.allPieces

	checkMask, pinRay := b.pinsAndChecks()

	target := ^own
	if !capturesOnly {
		target &= checkMask
	} else {
		target &= opp & checkMask
	}

	moves = b.generatePawnMoves(moves, capturesOnly, checkMask, pinRay)

	for fromBB := b.pieces[us][Knight]; fromBB != 0; fromBB &= fromBB - 1 {
		from := FirstOne(fromBB)
		for toBB := KnightAttacks[from] & target & pinRay[from]; toBB != 0; toBB &= toBB - 1 {
			moves = append(moves, NewMove(from, FirstOne(toBB), FreeForm))
		}
	}
	for fromBB := b.pieces[us][Bishop]; fromBB != 0; fromBB &= fromBB - 1 {
		from := FirstOne(fromBB)
		for toBB := BishopAttacks(from, occ) & target & pinRay[from]; toBB != 0; toBB &= toBB - 1 {
			moves = append(moves, NewMove(from, FirstOne(toBB), FreeForm))
		}
	}
	for fromBB := b.pieces[us][Rook]; fromBB != 0; fromBB &= fromBB - 1 {
		from := FirstOne(fromBB)
		for toBB := RookAttacks(from, occ) & target & pinRay[from]; toBB != 0; toBB &= toBB - 1 {
			moves = append(moves, NewMove(from, FirstOne(toBB), FreeForm))
		}
	}
	for fromBB := b.pieces[us][Queen]; fromBB != 0; fromBB &= fromBB - 1 {
		from := FirstOne(fromBB)
		for toBB := QueenAttacks(from, occ) & target & pinRay[from]; toBB != 0; toBB &= toBB - 1 {
			moves = append(moves, NewMove(from, FirstOne(toBB), FreeForm))
		}
	}

	kingSq := FirstOne(b.pieces[us][King])
	kingTarget := KingAttacks[kingSq] &^ own
	if capturesOnly {
		kingTarget &= opp
	}
	occWithoutKing := occ &^ SquareMask[kingSq]
	for toBB := kingTarget; toBB != 0; toBB &= toBB - 1 {
		to := FirstOne(toBB)
		if !b.isAttackedByOcc(to, them, occWithoutKing) {
			moves = append(moves, NewMove(kingSq, to, FreeForm))
		}
	}

	if !capturesOnly && checkMask == ^uint64(0) {
		moves = b.generateCastling(moves, us, occ)
	}

	return moves
}

func (b *Board) generateCastling(moves []Move, us Color, occ uint64) []Move {
	them := us.Other()
	side := int(us)
	if b.state.castlingRights&castleKingSideRights[side] != 0 &&
		occ&castleKingSideMask[side] == 0 &&
		!b.IsAttackedBy(castleKingFrom[side], them) &&
		!b.IsAttackedBy(castleKingSidePassThrough[side], them) &&
		!b.IsAttackedBy(castleKingSideTo[side], them) {
		moves = append(moves, NewMove(castleKingFrom[side], castleKingSideTo[side], Castling))
	}
	if b.state.castlingRights&castleQueenSideRights[side] != 0 &&
		occ&castleQueenSideMask[side] == 0 &&
		!b.IsAttackedBy(castleKingFrom[side], them) &&
		!b.IsAttackedBy(castleQueenSidePassThrough[side], them) &&
		!b.IsAttackedBy(castleQueenSideTo[side], them) {
		moves = append(moves, NewMove(castleKingFrom[side], castleQueenSideTo[side], Castling))
	}
	return moves
}

func (b *Board) generatePawnMoves(moves []Move, capturesOnly bool, checkMask uint64, pinRay [64]uint64) []Move {
	us := b.sideToMove
	them := us.Other()
	occ := b.allPieces
	opp := b.pieces[them][NullPiece]
	pawns := b.pieces[us][Pawn]

	up := pawnAdvanceDir(us)
	promoRank := Rank7Mask
	startRank := Rank2Mask
	if us == Black {
		promoRank = Rank2Mask
		startRank = Rank7Mask
	}

	if !capturesOnly {
		for fromBB := pawns &^ promoRank; fromBB != 0; fromBB &= fromBB - 1 {
			from := FirstOne(fromBB)
			one := from + int(up)
			if SquareMask[one]&occ != 0 {
				continue
			}
			if checkMask&pinRay[from]&SquareMask[one] != 0 {
				moves = append(moves, NewMove(from, one, FreeForm))
			}
			if Rank(from) == rankOf(startRank) {
				two := one + int(up)
				if SquareMask[two]&occ == 0 && checkMask&pinRay[from]&SquareMask[two] != 0 {
					moves = append(moves, NewMove(from, two, PawnJump))
				}
			}
		}
	}

	for fromBB := pawns & promoRank; fromBB != 0; fromBB &= fromBB - 1 {
		from := FirstOne(fromBB)
		to := from + int(up)
		if SquareMask[to]&occ == 0 && checkMask&pinRay[from]&SquareMask[to] != 0 {
			moves = appendPromotions(moves, from, to, !capturesOnly)
		}
		for toBB := PawnAttacks(from, us) & opp & checkMask & pinRay[from]; toBB != 0; toBB &= toBB - 1 {
			moves = appendPromotions(moves, from, FirstOne(toBB), !capturesOnly)
		}
	}

	for fromBB := pawns &^ promoRank; fromBB != 0; fromBB &= fromBB - 1 {
		from := FirstOne(fromBB)
		for toBB := PawnAttacks(from, us) & opp & checkMask & pinRay[from]; toBB != 0; toBB &= toBB - 1 {
			moves = append(moves, NewMove(from, FirstOne(toBB), FreeForm))
		}
	}

	if ep := b.state.epSquare; ep != SquareNone {
		capSq := ep - int(up)
		for fromBB := PawnAttacks(ep, them) & pawns &^ promoRank; fromBB != 0; fromBB &= fromBB - 1 {
			from := FirstOne(fromBB)
			if checkMask&SquareMask[ep] == 0 && checkMask&SquareMask[capSq] == 0 {
				continue
			}
			if pinRay[from]&SquareMask[ep] == 0 {
				continue
			}
			occAfter := occ &^ SquareMask[from] &^ SquareMask[capSq] | SquareMask[ep]
			kingSq := b.KingSquare(us)
			if b.isAttackedByOcc(kingSq, them, occAfter) {
				continue
			}
			moves = append(moves, NewMove(from, ep, EnPassant))
		}
	}

	return moves
}

func rankOf(mask uint64) int { return FirstOne(mask) >> 3 }

// appendPromotions always includes the queen promotion; the three
// under-promotions are only worth searching outside quiescence, where
// includeUnder is true.
func appendPromotions(moves []Move, from, to int, includeUnder bool) []Move {
	moves = append(moves, NewPromotion(from, to, Queen))
	if includeUnder {
		moves = append(moves,
			NewPromotion(from, to, Rook),
			NewPromotion(from, to, Bishop),
			NewPromotion(from, to, Knight))
	}
	return moves
}
