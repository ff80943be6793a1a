package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"
)

type move struct {
	move  dragontoothmg.Move
	score int
}

// Centipawn weights used only for ordering.
var orderingPieceValue = [7]int{
	dragontoothmg.Pawn:   100,
	dragontoothmg.Knight: 320,
	dragontoothmg.Bishop: 330,
	dragontoothmg.Rook:   500,
	dragontoothmg.Queen:  900,
	dragontoothmg.King:   20000,
}

/*
	Ordering heuristics, summed per move:
	- captures by MVV-LVA
	- landing in the centre band (d4 through e5 by square index)
	- developing a minor piece early
	- moving the king while in check
	- early shuffling of an already developed piece is penalised
*/
const (
	centerBonus       = 50
	developmentBonus  = 30
	kingSafetyBonus   = 40
	repeatMovePenalty = 20

	centerFirstSquare = 27
	centerLastSquare  = 36

	earlyGameMoves = 10
)

// OrderMoves returns moves sorted best first. Equal scores keep generation order.
func OrderMoves(pos *Position, moves []dragontoothmg.Move) []dragontoothmg.Move {
	scored := scoreMovesList(pos, moves)
	slices.SortStableFunc(scored, func(a, b move) int {
		return b.score - a.score
	})
	ordered := make([]dragontoothmg.Move, len(scored))
	for i := range scored {
		ordered[i] = scored[i].move
	}
	return ordered
}

func scoreMovesList(pos *Position, moves []dragontoothmg.Move) []move {
	own, opponent := sides(&pos.Board, pos.Board.Wtomove)
	inCheck := pos.Board.OurKingInCheck()

	scored := make([]move, len(moves))
	for i := range moves {
		scored[i] = move{move: moves[i], score: scoreMove(pos, moves[i], own, opponent, inCheck)}
	}
	return scored
}

// ScoreMove is the ordering score of a single move.
func ScoreMove(pos *Position, mv dragontoothmg.Move) int {
	own, opponent := sides(&pos.Board, pos.Board.Wtomove)
	return scoreMove(pos, mv, own, opponent, pos.Board.OurKingInCheck())
}

func scoreMove(pos *Position, mv dragontoothmg.Move, own, opponent *dragontoothmg.Bitboards, inCheck bool) (score int) {
	from, to := mv.From(), mv.To()
	piece, _ := GetPieceTypeAtPosition(from, own)

	if victim, isCapture := GetPieceTypeAtPosition(to, opponent); isCapture {
		score += 10*orderingPieceValue[victim] - orderingPieceValue[piece]
	}

	if to >= centerFirstSquare && to <= centerLastSquare {
		score += centerBonus
	}

	early := pos.MoveCount < earlyGameMoves
	rank := relativeRank(from, pos.Board.Wtomove)

	if early && (piece == dragontoothmg.Knight || piece == dragontoothmg.Bishop) && rank == 0 {
		score += developmentBonus
	}

	if piece == dragontoothmg.King && inCheck {
		score += kingSafetyBonus
	}

	if early && rank > 1 && piece != dragontoothmg.King && piece != dragontoothmg.Queen {
		score -= repeatMovePenalty
	}
	return score
}

// relativeRank counts ranks from the mover's own back rank.
func relativeRank(sq uint8, white bool) uint8 {
	if white {
		return sq / 8
	}
	return 7 - sq/8
}
