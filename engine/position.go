package engine

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NoMove is never produced by the move generator (a1 to a1).
const NoMove dragontoothmg.Move = 0

var (
	ErrMalformedMove = errors.New("malformed move")
	ErrIllegalMove   = errors.New("illegal move")
)

// Position is a board plus the number of half-moves played to reach it.
// It is a plain value: assigning it copies the whole board.
type Position struct {
	Board     dragontoothmg.Board
	MoveCount int
}

func NewPosition() Position {
	return Position{Board: dragontoothmg.ParseFen(StartFEN)}
}

// PositionFromFEN never fails; a board the parser rejects becomes the start
// position, still carrying the move count read from the fullmove field.
func PositionFromFEN(fen string) Position {
	fields := strings.Fields(fen)

	// Half-moves come from the fullmove field as written, before any padding.
	moveCount := 0
	if len(fields) >= 6 {
		if fullmove, err := strconv.Atoi(fields[5]); err == nil {
			moveCount = fullmove * 2
		} else {
			moveCount = 2
		}
	}

	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	board, ok := parseBoard(strings.Join(fields, " "))
	if !ok {
		pos := NewPosition()
		pos.MoveCount = moveCount
		return pos
	}
	return Position{Board: board, MoveCount: moveCount}
}

func parseBoard(fen string) (board dragontoothmg.Board, ok bool) {
	if len(strings.Fields(fen)) < 6 {
		return board, false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	board = dragontoothmg.ParseFen(fen)
	// The generator indexes by king square, so a missing king would crash it later.
	if bits.OnesCount64(board.White.Kings) != 1 || bits.OnesCount64(board.Black.Kings) != 1 {
		return board, false
	}
	return board, true
}

func (p *Position) SideToMoveWhite() bool {
	return p.Board.Wtomove
}

func (p *Position) LegalMoves() []dragontoothmg.Move {
	return p.Board.GenerateLegalMoves()
}

func (p *Position) LegalMoveStrings() []string {
	moves := p.Board.GenerateLegalMoves()
	out := make([]string, len(moves))
	for i := range moves {
		out[i] = moves[i].String()
	}
	return out
}

func (p *Position) InCheck() bool {
	return p.Board.OurKingInCheck()
}

// Apply returns the position after move; the receiver is left untouched.
func (p *Position) Apply(move dragontoothmg.Move) Position {
	next := *p
	next.Board.Apply(move)
	next.MoveCount++
	return next
}

// ResolveMove finds the legal move written in coordinate notation.
func (p *Position) ResolveMove(uci string) (dragontoothmg.Move, error) {
	uci = strings.ToLower(strings.TrimSpace(uci))
	parsed, err := dragontoothmg.ParseMove(uci)
	if err != nil {
		return NoMove, fmt.Errorf("%w %q: %v", ErrMalformedMove, uci, err)
	}
	for _, mv := range p.Board.GenerateLegalMoves() {
		if mv.String() == uci {
			return mv, nil
		}
		if mv.From() == parsed.From() && mv.To() == parsed.To() && mv.Promote() == parsed.Promote() {
			return mv, nil
		}
	}
	return NoMove, fmt.Errorf("%w %q", ErrIllegalMove, uci)
}

// MakeMove plays uci in place. On error the position is unchanged.
func (p *Position) MakeMove(uci string) error {
	move, err := p.ResolveMove(uci)
	if err != nil {
		return err
	}
	*p = p.Apply(move)
	return nil
}

// IsCapture reports whether the destination square of uci is occupied.
func (p *Position) IsCapture(uci string) bool {
	move, err := dragontoothmg.ParseMove(strings.ToLower(strings.TrimSpace(uci)))
	if err != nil {
		return false
	}
	return (p.Board.White.All|p.Board.Black.All)&(uint64(1)<<move.To()) != 0
}

// PieceAt returns the piece on square and whether it is white.
func (p *Position) PieceAt(square uint8) (piece dragontoothmg.Piece, white bool, occupied bool) {
	if piece, occupied = GetPieceTypeAtPosition(square, &p.Board.White); occupied {
		return piece, true, true
	}
	piece, occupied = GetPieceTypeAtPosition(square, &p.Board.Black)
	return piece, false, occupied
}

func (p *Position) Occupancy(piece dragontoothmg.Piece, white bool) uint64 {
	bb := &p.Board.Black
	if white {
		bb = &p.Board.White
	}
	return pieceBitboard(bb, piece)
}

func (p *Position) String() string {
	return p.Board.ToFen()
}

// Nice helper to get what piece is at a square :)
func GetPieceTypeAtPosition(position uint8, bitboards *dragontoothmg.Bitboards) (pieceType dragontoothmg.Piece, occupied bool) {
	if bitboards.Pawns&(1<<position) > 0 {
		return dragontoothmg.Pawn, true
	} else if bitboards.Knights&(1<<position) > 0 {
		return dragontoothmg.Knight, true
	} else if bitboards.Bishops&(1<<position) > 0 {
		return dragontoothmg.Bishop, true
	} else if bitboards.Rooks&(1<<position) > 0 {
		return dragontoothmg.Rook, true
	} else if bitboards.Queens&(1<<position) > 0 {
		return dragontoothmg.Queen, true
	} else if bitboards.Kings&(1<<position) > 0 {
		return dragontoothmg.King, true
	}
	return dragontoothmg.Nothing, false
}

func pieceBitboard(bitboards *dragontoothmg.Bitboards, piece dragontoothmg.Piece) uint64 {
	switch piece {
	case dragontoothmg.Pawn:
		return bitboards.Pawns
	case dragontoothmg.Knight:
		return bitboards.Knights
	case dragontoothmg.Bishop:
		return bitboards.Bishops
	case dragontoothmg.Rook:
		return bitboards.Rooks
	case dragontoothmg.Queen:
		return bitboards.Queens
	case dragontoothmg.King:
		return bitboards.Kings
	}
	return 0
}
