package engine

import (
	"math"

	"github.com/dylhunn/dragontoothmg"
)

const (
	defenderPenalty      = 0.1
	undefendedBonus      = 0.3
	winningExchangeBonus = 0.2
)

// Exchange values are always read from the opening table, whatever phase
// the rest of the evaluation is in.
const exchangePhase = Opening

var multipleAttackerBonus = [5]float64{0, 0, 0.3, 0.5, 0.7}

// evaluateAttacks scores the control white (or black) has over sq. Every
// square with at least one attacker counts: empty squares and kings are
// worth nothing as targets, and pieces of either colour are worth their
// base value.
func evaluateAttacks(b *dragontoothmg.Board, sq uint8, white bool) float64 {
	attackers, cheapest := squareAttackers(b, sq, white)
	if attackers == 0 {
		return 0
	}
	defenders, _ := squareAttackers(b, sq, !white)

	value := targetValue(b, sq) - cheapest
	value += multipleAttackerBonus[min(attackers, len(multipleAttackerBonus)-1)]
	value -= defenderPenalty * float64(defenders)
	if defenders == 0 {
		value += undefendedBonus
	}

	if gain, ok := see(b, sq, white); ok {
		value += gain
		if gain > 0 {
			value += winningExchangeBonus
		}
	}
	return value
}

// squareAttackers counts the non-king piece types of one colour with at
// least one piece covering sq, and the value of the cheapest of them.
// Two knights on the square count once.
func squareAttackers(b *dragontoothmg.Board, sq uint8, white bool) (types int, cheapest float64) {
	us, _ := sides(b, white)
	cheapest = math.Inf(1)
	for _, piece := range pieceList[:5] {
		if attackersOf(piece, sq, white)&pieceBitboard(us, piece) == 0 {
			continue
		}
		types++
		cheapest = math.Min(cheapest, PieceBaseValue(piece, exchangePhase))
	}
	return types, cheapest
}

// see is a one-capture exchange estimate: the target's value minus the value
// of the first attacker found, pawns first. Recaptures are not played out.
func see(b *dragontoothmg.Board, sq uint8, white bool) (gain float64, ok bool) {
	us, _ := sides(b, white)
	for _, piece := range pieceList[:5] {
		if attackersOf(piece, sq, white)&pieceBitboard(us, piece) != 0 {
			return targetValue(b, sq) - PieceBaseValue(piece, exchangePhase), true
		}
	}
	return 0, false
}

// targetValue is the base value of whatever stands on sq, 0 for an empty
// square or a king.
func targetValue(b *dragontoothmg.Board, sq uint8) float64 {
	for _, bb := range [2]*dragontoothmg.Bitboards{&b.White, &b.Black} {
		piece, occupied := GetPieceTypeAtPosition(sq, bb)
		if !occupied {
			continue
		}
		if piece == dragontoothmg.King {
			return 0
		}
		return PieceBaseValue(piece, exchangePhase)
	}
	return 0
}

// attackersOf returns the squares from which a piece of the given colour
// would attack sq. Only pawns are asymmetric.
func attackersOf(piece dragontoothmg.Piece, sq uint8, white bool) uint64 {
	if piece == dragontoothmg.Pawn {
		return AttacksFor(dragontoothmg.Pawn, sq, !white)
	}
	return AttacksFor(piece, sq, white)
}
