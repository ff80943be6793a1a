package engine

import (
	"testing"
	"time"
)

func TestAllocate(t *testing.T) {
	tm := DefaultTimeManager()
	tests := []struct {
		name  string
		gt    GameTime
		white bool
		want  int64
	}{
		{"ten seconds, default moves to go", GameTime{WTime: 10000}, true, 264},
		{"explicit moves to go", GameTime{WTime: 10100, MovesToGo: 10}, true, 800},
		{"black reads its own clock", GameTime{WTime: 100000, BTime: 10000}, false, 264},
		{"increment ignored while time remains", GameTime{WTime: 10000, WInc: 5000}, true, 264},
		{"inside safeguard, no increment", GameTime{WTime: 50}, true, 0},
		{"inside safeguard, increment", GameTime{WTime: 50, WInc: 1000}, true, 800},
		{"flagged clock", GameTime{WTime: -20, WInc: 500}, true, 400},
		{"no clock at all", GameTime{}, true, 0},
		{"non-positive moves to go uses default", GameTime{BTime: 10000, MovesToGo: -3}, false, 264},
	}
	for _, tt := range tests {
		if got := tm.Allocate(tt.gt, tt.white); got != tt.want {
			t.Errorf("%s: got %d want %d", tt.name, got, tt.want)
		}
	}
}

func TestAllocateCustomManager(t *testing.T) {
	tm := TimeManager{SafeguardMs: 0, MaxUsage: 1, DefaultMovesToGo: 10}
	if got := tm.Allocate(GameTime{WTime: 1000}, true); got != 100 {
		t.Fatalf("got %d want 100", got)
	}
}

func TestBudget(t *testing.T) {
	tm := DefaultTimeManager()
	if got := tm.Budget(GameTime{WTime: 10000}, true); got != 264*time.Millisecond {
		t.Fatalf("clock budget %v want 264ms", got)
	}
	if got := tm.Budget(GameTime{WTime: 10000, MoveTime: 1500}, true); got != 1500*time.Millisecond {
		t.Fatalf("movetime budget %v want 1.5s", got)
	}
}
