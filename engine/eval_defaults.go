package engine

import (
	"math"

	"github.com/dylhunn/dragontoothmg"
)

// Values are in pawns.
const (
	OpeningMoves = 20

	QueenValueNormal             = 9.5
	QueenValueThresholdAdvantage = 9.4
	QueenValueSecondQueen        = 8.7

	BishopValue = 3.33

	BackRankMateBonus  = 5.0
	SmotheredMateBonus = 4.0

	RookOpenFileBonus     = 0.3
	RookSemiOpenFileBonus = 0.15
	RookSeventhRankBonus  = 0.25
	ConnectedRooksBonus   = 0.2
)

var KingValue = math.Inf(1)

type GamePhase uint8

const (
	Opening GamePhase = iota
	Middlegame
	Threshold
	Endgame
)

func (p GamePhase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Middlegame:
		return "middlegame"
	case Threshold:
		return "threshold"
	case Endgame:
		return "endgame"
	}
	return "unknown"
}

var pawnValue = [4]float64{Opening: 1.0, Middlegame: 0.8, Threshold: 0.9, Endgame: 1.0}
var knightValue = [4]float64{Opening: 3.25, Middlegame: 3.2, Threshold: 3.2, Endgame: 3.2}
var bishopPairBonus = [4]float64{Opening: 0, Middlegame: 0.3, Threshold: 0.4, Endgame: 0.5}
var firstRookValue = [4]float64{Opening: 5.63, Middlegame: 5.73, Threshold: 5.73, Endgame: 6.13}
var secondRookValue = [4]float64{Opening: 5.63, Middlegame: 5.53, Threshold: 5.93, Endgame: 6.03}

// DetectGamePhase is recomputed on every evaluation; it depends only on the
// queens on the board and the half-move count.
func DetectGamePhase(b *dragontoothmg.Board, moveCount int) GamePhase {
	if moveCount <= OpeningMoves {
		return Opening
	}
	whiteQueen := b.White.Queens != 0
	blackQueen := b.Black.Queens != 0
	switch {
	case whiteQueen && blackQueen:
		return Middlegame
	case whiteQueen != blackQueen:
		return Threshold
	default:
		return Endgame
	}
}

// PieceBaseValue is the single-piece material value used by the tactical term.
func PieceBaseValue(piece dragontoothmg.Piece, phase GamePhase) float64 {
	switch piece {
	case dragontoothmg.Pawn:
		return pawnValue[phase]
	case dragontoothmg.Knight:
		return knightValue[phase]
	case dragontoothmg.Bishop:
		return BishopValue
	case dragontoothmg.Rook:
		return firstRookValue[phase]
	case dragontoothmg.Queen:
		if phase == Threshold {
			return QueenValueThresholdAdvantage
		}
		return QueenValueNormal
	case dragontoothmg.King:
		return KingValue
	}
	return 0
}

func RookValue(phase GamePhase, first bool) float64 {
	if first {
		return firstRookValue[phase]
	}
	return secondRookValue[phase]
}

// PieceSquareValue looks up the positional bonus. Only middlegame and endgame
// tables exist, so opening and threshold positions score 0 here.
func PieceSquareValue(piece dragontoothmg.Piece, square uint8, white bool, phase GamePhase) float64 {
	sq := square
	if !white {
		sq ^= 56
	}
	switch phase {
	case Middlegame:
		return middlegameTables[piece][sq]
	case Endgame:
		return endgameTables[piece][sq]
	}
	return 0
}

// Piece-square tables from White's side, a1 first.
var middlegameTables = [7][64]float64{
	dragontoothmg.Pawn: {
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		-0.35, -0.01, -0.20, -0.23, -0.15, 0.24, 0.38, -0.22,
		-0.26, -0.04, -0.04, -0.10, 0.03, 0.03, 0.33, -0.12,
		-0.27, -0.02, -0.05, 0.12, 0.17, 0.06, 0.10, -0.25,
		-0.14, 0.13, 0.06, 0.21, 0.23, 0.12, 0.17, -0.23,
		-0.06, 0.07, 0.26, 0.31, 0.65, 0.56, 0.25, -0.20,
		0.98, 1.34, 0.61, 0.95, 0.68, 1.26, 0.34, -0.11,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
	},
	dragontoothmg.Knight: {
		-1.05, -0.21, -0.58, -0.33, -0.17, -0.28, -0.19, -0.23,
		-0.29, -0.53, -0.12, -0.03, -0.01, 0.18, -0.14, -0.19,
		-0.23, -0.09, 0.12, 0.10, 0.19, 0.17, 0.25, -0.16,
		-0.13, 0.04, 0.16, 0.13, 0.28, 0.19, 0.21, -0.08,
		-0.09, 0.17, 0.19, 0.53, 0.37, 0.69, 0.18, 0.22,
		-0.47, 0.60, 0.37, 0.65, 0.84, 1.29, 0.73, 0.44,
		-0.73, -0.41, 0.72, 0.36, 0.23, 0.62, 0.07, -0.17,
		-1.67, -0.89, -0.34, -0.49, 0.61, -0.97, -0.15, -1.07,
	},
	dragontoothmg.Bishop: {
		-0.33, -0.03, -0.14, -0.21, -0.13, -0.12, -0.39, -0.21,
		0.04, 0.15, 0.16, 0.00, 0.07, 0.21, 0.33, 0.01,
		0.00, 0.15, 0.15, 0.15, 0.14, 0.27, 0.18, 0.10,
		-0.06, 0.13, 0.13, 0.26, 0.34, 0.12, 0.10, 0.04,
		-0.04, 0.05, 0.19, 0.50, 0.37, 0.37, 0.07, -0.02,
		-0.16, 0.37, 0.43, 0.40, 0.35, 0.50, 0.37, -0.02,
		-0.26, 0.16, -0.18, -0.13, 0.30, 0.59, 0.18, -0.47,
		-0.29, 0.04, -0.82, -0.37, -0.25, -0.42, 0.07, -0.08,
	},
	dragontoothmg.Rook: {
		-0.19, -0.13, 0.01, 0.17, 0.16, 0.07, -0.37, -0.26,
		-0.44, -0.16, -0.20, -0.09, -0.01, 0.11, -0.06, -0.71,
		-0.45, -0.25, -0.16, -0.17, 0.03, 0.00, -0.05, -0.33,
		-0.36, -0.26, -0.12, -0.01, 0.09, -0.07, 0.06, -0.23,
		-0.24, -0.11, 0.07, 0.26, 0.24, 0.35, -0.08, -0.20,
		-0.05, 0.19, 0.26, 0.36, 0.17, 0.45, 0.61, 0.16,
		0.27, 0.32, 0.58, 0.62, 0.80, 0.67, 0.26, 0.44,
		0.32, 0.42, 0.32, 0.51, 0.63, 0.09, 0.31, 0.43,
	},
	dragontoothmg.Queen: {
		-0.01, -0.18, -0.09, 0.10, -0.15, -0.25, -0.31, -0.50,
		-0.35, -0.08, 0.11, 0.02, 0.08, 0.15, -0.03, 0.01,
		-0.14, 0.02, -0.11, -0.02, -0.05, 0.02, 0.14, 0.05,
		-0.09, -0.26, -0.09, -0.10, -0.02, -0.04, 0.03, -0.03,
		-0.27, -0.27, -0.16, -0.16, -0.01, 0.17, -0.02, 0.01,
		-0.13, -0.17, 0.07, 0.08, 0.29, 0.56, 0.47, 0.57,
		-0.24, -0.39, -0.05, 0.01, -0.16, 0.57, 0.28, 0.54,
		-0.28, 0.00, 0.29, 0.12, 0.59, 0.44, 0.43, 0.45,
	},
	dragontoothmg.King: {
		-0.15, 0.36, 0.12, -0.54, 0.08, -0.28, 0.24, 0.14,
		0.01, 0.07, -0.08, -0.64, -0.43, -0.16, 0.09, 0.08,
		-0.14, -0.14, -0.22, -0.46, -0.44, -0.30, -0.15, -0.27,
		-0.49, -0.01, -0.27, -0.39, -0.46, -0.44, -0.33, -0.51,
		-0.17, -0.20, -0.12, -0.27, -0.30, -0.25, -0.14, -0.36,
		-0.09, 0.24, 0.02, -0.16, -0.20, 0.06, 0.22, -0.22,
		0.29, -0.01, -0.20, -0.07, -0.08, -0.04, -0.38, -0.29,
		-0.65, 0.23, 0.16, -0.15, -0.56, -0.34, 0.02, 0.13,
	},
}

var endgameTables = [7][64]float64{
	dragontoothmg.Pawn: {
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		0.13, 0.08, 0.08, 0.10, 0.13, 0.00, 0.02, -0.07,
		0.04, 0.07, -0.06, 0.01, 0.00, -0.05, -0.01, -0.08,
		0.13, 0.09, -0.03, -0.07, -0.07, -0.08, 0.03, -0.01,
		0.32, 0.24, 0.13, 0.05, -0.02, 0.04, 0.17, 0.17,
		0.94, 1.00, 0.85, 0.67, 0.56, 0.53, 0.82, 0.84,
		1.78, 1.73, 1.58, 1.34, 1.47, 1.32, 1.65, 1.87,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
	},
	dragontoothmg.Knight: {
		-0.29, -0.51, -0.23, -0.15, -0.22, -0.18, -0.50, -0.64,
		-0.42, -0.20, -0.10, -0.05, -0.02, -0.20, -0.23, -0.44,
		-0.23, -0.03, -0.01, 0.15, 0.10, -0.03, -0.20, -0.22,
		-0.18, -0.06, 0.16, 0.25, 0.16, 0.17, 0.04, -0.18,
		-0.17, 0.03, 0.22, 0.22, 0.22, 0.11, 0.08, -0.18,
		-0.24, -0.20, 0.10, 0.09, -0.01, -0.09, -0.19, -0.41,
		-0.25, -0.08, -0.25, -0.02, -0.09, -0.25, -0.24, -0.52,
		-0.58, -0.38, -0.13, -0.28, -0.31, -0.27, -0.63, -0.99,
	},
	dragontoothmg.Bishop: {
		-0.23, -0.09, -0.23, -0.05, -0.09, -0.16, -0.05, -0.17,
		-0.14, -0.18, -0.07, -0.01, 0.04, -0.09, -0.15, -0.27,
		-0.12, -0.03, 0.08, 0.10, 0.13, 0.03, -0.07, -0.15,
		-0.06, 0.03, 0.13, 0.19, 0.07, 0.10, -0.03, -0.09,
		-0.03, 0.09, 0.12, 0.09, 0.14, 0.10, 0.03, 0.02,
		0.02, -0.08, 0.00, -0.01, -0.02, 0.06, 0.00, 0.04,
		-0.08, -0.04, 0.07, -0.12, -0.03, -0.13, -0.04, -0.14,
		-0.14, -0.21, -0.11, -0.08, -0.07, -0.09, -0.17, -0.24,
	},
	dragontoothmg.Rook: {
		-0.09, 0.02, 0.03, -0.01, -0.05, -0.13, 0.04, -0.20,
		-0.06, -0.06, 0.00, 0.02, -0.09, -0.09, -0.11, -0.03,
		-0.04, 0.00, -0.05, -0.01, -0.07, -0.12, -0.08, -0.16,
		0.03, 0.05, 0.08, 0.04, -0.05, -0.06, -0.08, -0.11,
		0.04, 0.03, 0.13, 0.01, 0.02, 0.01, -0.01, 0.02,
		0.07, 0.07, 0.07, 0.05, 0.04, -0.03, -0.05, -0.03,
		0.11, 0.13, 0.13, 0.11, -0.03, 0.03, 0.08, 0.03,
		0.13, 0.10, 0.18, 0.15, 0.12, 0.12, 0.08, 0.05,
	},
	dragontoothmg.Queen: {
		-0.33, -0.28, -0.22, -0.43, -0.05, -0.32, -0.20, -0.41,
		-0.22, -0.23, -0.30, -0.16, -0.16, -0.23, -0.36, -0.32,
		-0.16, -0.27, 0.15, 0.06, 0.09, 0.17, 0.10, 0.05,
		-0.18, 0.28, 0.19, 0.47, 0.31, 0.34, 0.39, 0.23,
		0.03, 0.22, 0.24, 0.45, 0.57, 0.40, 0.57, 0.36,
		-0.20, 0.06, 0.09, 0.49, 0.47, 0.35, 0.19, 0.09,
		-0.17, 0.20, 0.32, 0.41, 0.58, 0.25, 0.30, 0.00,
		-0.09, 0.22, 0.22, 0.27, 0.27, 0.19, 0.10, 0.20,
	},
	dragontoothmg.King: {
		-0.53, -0.34, -0.21, -0.11, -0.28, -0.14, -0.24, -0.43,
		-0.27, -0.11, 0.04, 0.13, 0.14, 0.04, -0.05, -0.17,
		-0.19, -0.03, 0.11, 0.21, 0.23, 0.16, 0.07, -0.09,
		-0.18, -0.04, 0.21, 0.24, 0.27, 0.23, 0.09, -0.11,
		-0.08, 0.22, 0.24, 0.27, 0.26, 0.33, 0.26, 0.03,
		0.10, 0.17, 0.23, 0.15, 0.20, 0.45, 0.44, 0.13,
		-0.12, 0.17, 0.14, 0.17, 0.17, 0.38, 0.23, 0.11,
		-0.74, -0.35, -0.18, -0.18, -0.11, 0.15, 0.04, -0.17,
	},
}
