package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// rookScore values the first two rooks separately (lowest square first).
// Any further rook is valued like the second one.
func rookScore(us, them *dragontoothmg.Bitboards, white bool, phase GamePhase) float64 {
	rooks := us.Rooks
	if rooks == 0 {
		return 0
	}
	first := uint8(bits.TrailingZeros64(rooks))
	value := RookValue(phase, true) + rookPositionBonus(us, them, first, white)

	rest := rooks & (rooks - 1)
	if rest == 0 {
		return value
	}
	second := uint8(bits.TrailingZeros64(rest))
	value += RookValue(phase, false) + rookPositionBonus(us, them, second, white)
	if Attacks().Rook[first]&(uint64(1)<<second) != 0 {
		value += ConnectedRooksBonus
	}

	for x := rest & (rest - 1); x != 0; x &= x - 1 {
		value += RookValue(phase, false) + rookPositionBonus(us, them, uint8(bits.TrailingZeros64(x)), white)
	}
	return value
}

func rookPositionBonus(us, them *dragontoothmg.Bitboards, sq uint8, white bool) (bonus float64) {
	file := fileMask(sq)
	if file&(us.Pawns|them.Pawns) == 0 {
		bonus += RookOpenFileBonus
	} else if file&us.Pawns == 0 {
		bonus += RookSemiOpenFileBonus
	}

	seventh := seventhRankMask
	if !white {
		seventh = secondRankMask
	}
	if (uint64(1)<<sq)&seventh != 0 {
		bonus += RookSeventhRankBonus
	}
	return bonus
}

// detectCheckmatePatterns rewards white (or black) for mating motifs against
// the opposing king. A hit is a hint for the search, not a proof of mate.
func detectCheckmatePatterns(b *dragontoothmg.Board, white bool) (value float64) {
	attacker, defender := sides(b, white)
	if defender.Kings == 0 {
		return 0
	}
	kingSq := uint8(bits.TrailingZeros64(defender.Kings))

	if backRankMate(attacker, defender, kingSq, !white) {
		value += BackRankMateBonus
	}
	if smotheredMate(attacker, defender, kingSq) {
		value += SmotheredMateBonus
	}
	return value
}

func backRankMate(attacker, defender *dragontoothmg.Bitboards, kingSq uint8, kingWhite bool) bool {
	homeRank := uint8(7)
	if kingWhite {
		homeRank = 0
	}
	if kingSq/8 != homeRank {
		return false
	}
	escapes := Attacks().KingZone[kingSq] &^ defender.All
	return escapes == 0 && (attacker.Rooks|attacker.Queens) != 0
}

func smotheredMate(attacker, defender *dragontoothmg.Bitboards, kingSq uint8) bool {
	t := Attacks()
	if t.KingZone[kingSq]&^defender.All != 0 {
		return false
	}
	return t.Knight[kingSq]&attacker.Knights != 0
}
