package engine

import (
	"sync"

	"github.com/dylhunn/dragontoothmg"
)

const (
	bitboardFileA uint64 = 0x0101010101010101
	bitboardFileB uint64 = 0x0202020202020202
	bitboardFileG uint64 = 0x4040404040404040
	bitboardFileH uint64 = 0x8080808080808080

	secondRankMask  uint64 = 0x000000000000ff00
	seventhRankMask uint64 = 0x00ff000000000000
)

const (
	White = 0
	Black = 1
)

// AttackTables holds the attack pattern of every piece type from every square.
// Slider entries are full rays and ignore blockers.
type AttackTables struct {
	Pawn     [2][64]uint64
	Knight   [64]uint64
	Bishop   [64]uint64
	Rook     [64]uint64
	Queen    [64]uint64
	King     [64]uint64
	KingZone [64]uint64
}

var (
	attackTablesOnce sync.Once
	attackTables     *AttackTables
)

// Attacks returns the process-wide tables, building them on first use.
func Attacks() *AttackTables {
	attackTablesOnce.Do(func() {
		attackTables = buildAttackTables()
	})
	return attackTables
}

// AttacksFor returns the squares attacked by piece standing on square.
// The colour only matters for pawns.
func AttacksFor(piece dragontoothmg.Piece, square uint8, white bool) uint64 {
	t := Attacks()
	switch piece {
	case dragontoothmg.Pawn:
		if white {
			return t.Pawn[White][square]
		}
		return t.Pawn[Black][square]
	case dragontoothmg.Knight:
		return t.Knight[square]
	case dragontoothmg.Bishop:
		return t.Bishop[square]
	case dragontoothmg.Rook:
		return t.Rook[square]
	case dragontoothmg.Queen:
		return t.Queen[square]
	case dragontoothmg.King:
		return t.King[square]
	}
	return 0
}

func buildAttackTables() *AttackTables {
	t := &AttackTables{}
	for sq := 0; sq < 64; sq++ {
		sqBB := uint64(1) << sq

		t.Pawn[White][sq] = ((sqBB << 7) &^ bitboardFileH) | ((sqBB << 9) &^ bitboardFileA)
		t.Pawn[Black][sq] = ((sqBB >> 7) &^ bitboardFileA) | ((sqBB >> 9) &^ bitboardFileH)

		t.Knight[sq] = ((sqBB << 17) &^ bitboardFileA) |
			((sqBB << 15) &^ bitboardFileH) |
			((sqBB << 10) &^ (bitboardFileA | bitboardFileB)) |
			((sqBB << 6) &^ (bitboardFileG | bitboardFileH)) |
			((sqBB >> 6) &^ (bitboardFileA | bitboardFileB)) |
			((sqBB >> 10) &^ (bitboardFileG | bitboardFileH)) |
			((sqBB >> 15) &^ bitboardFileA) |
			((sqBB >> 17) &^ bitboardFileH)

		t.King[sq] = kingMask(sqBB)
		t.KingZone[sq] = kingMask(sqBB)

		t.Bishop[sq] = rays(sq, [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}})
		t.Rook[sq] = rays(sq, [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}})
		t.Queen[sq] = t.Bishop[sq] | t.Rook[sq]
	}
	return t
}

func kingMask(sqBB uint64) uint64 {
	return (sqBB << 8) | (sqBB >> 8) |
		((sqBB << 1) &^ bitboardFileA) |
		((sqBB >> 1) &^ bitboardFileH) |
		((sqBB << 7) &^ bitboardFileH) |
		((sqBB << 9) &^ bitboardFileA) |
		((sqBB >> 7) &^ bitboardFileA) |
		((sqBB >> 9) &^ bitboardFileH)
}

// rays walks rank/file steps from sq until the board edge.
func rays(sq int, directions [][2]int) uint64 {
	var bb uint64
	rank, file := sq/8, sq%8
	for _, d := range directions {
		r, f := rank+d[0], file+d[1]
		for r >= 0 && r < 8 && f >= 0 && f < 8 {
			bb |= uint64(1) << (r*8 + f)
			r += d[0]
			f += d[1]
		}
	}
	return bb
}

func fileMask(sq uint8) uint64 {
	return bitboardFileA << (sq % 8)
}
