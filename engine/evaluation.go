package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

var pieceList = [6]dragontoothmg.Piece{
	dragontoothmg.Pawn, dragontoothmg.Knight, dragontoothmg.Bishop,
	dragontoothmg.Rook, dragontoothmg.Queen, dragontoothmg.King,
}

// SideScore is one colour's share of the evaluation, split by term.
type SideScore struct {
	Positional   float64
	Material     float64
	Tactical     float64
	MatePatterns float64
}

func (s SideScore) Total() float64 {
	return s.Positional + s.Material + s.Tactical + s.MatePatterns
}

type EvaluationBreakdown struct {
	Phase GamePhase
	White SideScore
	Black SideScore
	// Score is from the side to move's point of view.
	Score float64
}

// Evaluate scores b in pawns; positive favours the side to move.
func Evaluate(b *dragontoothmg.Board, moveCount int) float64 {
	return EvaluateBreakdown(b, moveCount).Score
}

func EvaluateBreakdown(b *dragontoothmg.Board, moveCount int) EvaluationBreakdown {
	phase := DetectGamePhase(b, moveCount)
	e := EvaluationBreakdown{Phase: phase}

	e.White.Positional = positionalScore(&b.White, true, phase)
	e.Black.Positional = positionalScore(&b.Black, false, phase)

	e.White.Material = materialScore(b, true, phase)
	e.Black.Material = materialScore(b, false, phase)

	// Black walks the board mirrored so both sides add the same terms in the same order.
	for sq := uint8(0); sq < 64; sq++ {
		e.White.Tactical += evaluateAttacks(b, sq, true)
		e.Black.Tactical += evaluateAttacks(b, sq^56, false)
	}

	e.White.MatePatterns = detectCheckmatePatterns(b, true)
	e.Black.MatePatterns = detectCheckmatePatterns(b, false)

	e.Score = e.White.diff(e.Black)
	if !b.Wtomove {
		e.Score = -e.Score
	}
	return e
}

// diff subtracts term by term so that mirrored positions cancel to exactly 0.
func (s SideScore) diff(o SideScore) float64 {
	return (s.Positional - o.Positional) + (s.Material - o.Material) +
		(s.Tactical - o.Tactical) + (s.MatePatterns - o.MatePatterns)
}

func positionalScore(bb *dragontoothmg.Bitboards, white bool, phase GamePhase) (score float64) {
	if phase != Middlegame && phase != Endgame {
		return 0
	}
	for _, piece := range pieceList {
		x := pieceBitboard(bb, piece)
		if !white {
			x = bits.ReverseBytes64(x)
		}
		for ; x != 0; x &= x - 1 {
			sq := uint8(bits.TrailingZeros64(x))
			if !white {
				sq ^= 56
			}
			score += PieceSquareValue(piece, sq, white, phase)
		}
	}
	return score
}

func materialScore(b *dragontoothmg.Board, white bool, phase GamePhase) float64 {
	us, them := sides(b, white)
	var value float64

	switch queens := bits.OnesCount64(us.Queens); {
	case queens == 1:
		value += QueenValueNormal
	case queens > 1:
		value += QueenValueThresholdAdvantage + float64(queens-1)*QueenValueSecondQueen
	}

	value += rookScore(us, them, white, phase)

	bishops := bits.OnesCount64(us.Bishops)
	value += float64(bishops) * BishopValue
	if bishops >= 2 {
		value += bishopPairBonus[phase]
	}

	value += float64(bits.OnesCount64(us.Knights)) * knightValue[phase]
	value += float64(bits.OnesCount64(us.Pawns)) * pawnValue[phase]
	return value
}

func sides(b *dragontoothmg.Board, white bool) (us, them *dragontoothmg.Bitboards) {
	if white {
		return &b.White, &b.Black
	}
	return &b.Black, &b.White
}
