package engine

import (
	"math/bits"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func bb(squares ...uint8) uint64 {
	var out uint64
	for _, sq := range squares {
		out |= uint64(1) << sq
	}
	return out
}

func TestKnightAttacksDoNotWrap(t *testing.T) {
	tests := []struct {
		name string
		sq   uint8
		want uint64
	}{
		{"a1", 0, bb(10, 17)},
		{"h1", 7, bb(13, 22)},
		{"a8", 56, bb(41, 50)},
		{"h8", 63, bb(46, 53)},
		{"b1", 1, bb(11, 16, 18)},
		{"g8", 62, bb(45, 47, 52)},
	}
	for _, tt := range tests {
		if got := Attacks().Knight[tt.sq]; got != tt.want {
			t.Errorf("knight %s: got %064b want %064b", tt.name, got, tt.want)
		}
	}
}

func TestPawnAttacks(t *testing.T) {
	tests := []struct {
		name  string
		sq    uint8
		white bool
		want  uint64
	}{
		{"white e2", 12, true, bb(19, 21)},
		{"white a2", 8, true, bb(17)},
		{"white h2", 15, true, bb(22)},
		{"black e7", 52, false, bb(43, 45)},
		{"black a7", 48, false, bb(41)},
		{"black h7", 55, false, bb(46)},
		{"white h8", 63, true, 0},
		{"black a1", 0, false, 0},
	}
	for _, tt := range tests {
		if got := AttacksFor(dragontoothmg.Pawn, tt.sq, tt.white); got != tt.want {
			t.Errorf("pawn %s: got %064b want %064b", tt.name, got, tt.want)
		}
	}
}

func TestSliderAndKingAttacks(t *testing.T) {
	tables := Attacks()
	for sq := 0; sq < 64; sq++ {
		if tables.Queen[sq] != tables.Bishop[sq]|tables.Rook[sq] {
			t.Fatalf("queen on %d is not bishop|rook", sq)
		}
		if tables.Rook[sq]&(uint64(1)<<sq) != 0 || tables.Bishop[sq]&(uint64(1)<<sq) != 0 {
			t.Fatalf("slider on %d attacks its own square", sq)
		}
		if got := bits.OnesCount64(tables.Rook[sq]); got != 14 {
			t.Fatalf("rook on %d: got %d squares want 14", sq, got)
		}
		if tables.KingZone[sq] != tables.King[sq] {
			t.Fatalf("king zone on %d differs from king attacks", sq)
		}
	}

	if got := bits.OnesCount64(tables.Bishop[27]); got != 13 {
		t.Errorf("bishop d4: got %d squares want 13", got)
	}
	if got := bits.OnesCount64(tables.Bishop[0]); got != 7 {
		t.Errorf("bishop a1: got %d squares want 7", got)
	}
	if got := tables.King[0]; got != bb(1, 8, 9) {
		t.Errorf("king a1: got %064b", got)
	}
	if got := tables.King[7]; got != bb(6, 14, 15) {
		t.Errorf("king h1: got %064b", got)
	}
	if got := bits.OnesCount64(tables.King[4]); got != 5 {
		t.Errorf("king e1: got %d squares want 5", got)
	}
}

func TestAttacksIsBuiltOnce(t *testing.T) {
	if Attacks() != Attacks() {
		t.Fatalf("expected the same table instance on every call")
	}
	if AttacksFor(dragontoothmg.Nothing, 0, true) != 0 {
		t.Fatalf("empty piece should attack nothing")
	}
}
