package engine

import (
	"math"
	"time"
)

const (
	DefaultSafeguardMs = 100.0
	DefaultMaxUsage    = 0.8
	DefaultMovesToGo   = 30
)

// GameTime is the clock state sent with a go command, in milliseconds.
type GameTime struct {
	WTime     int64
	BTime     int64
	WInc      int64
	BInc      int64
	MovesToGo int // <= 0 means not given
	MoveTime  int64
}

type TimeManager struct {
	SafeguardMs      float64
	MaxUsage         float64
	DefaultMovesToGo int
}

func DefaultTimeManager() TimeManager {
	return TimeManager{
		SafeguardMs:      DefaultSafeguardMs,
		MaxUsage:         DefaultMaxUsage,
		DefaultMovesToGo: DefaultMovesToGo,
	}
}

/*
	Allocate returns the milliseconds to spend on the current move:
	- keep a safeguard back from the clock
	- out of time: spend most of the increment, or nothing
	- otherwise spread a share of the clock over the moves left
*/
func (tm TimeManager) Allocate(gt GameTime, white bool) int64 {
	mtg := float64(tm.DefaultMovesToGo)
	if gt.MovesToGo > 0 {
		mtg = float64(gt.MovesToGo)
	}

	clock, increment := float64(gt.BTime), float64(gt.BInc)
	if white {
		clock, increment = float64(gt.WTime), float64(gt.WInc)
	}

	baseTime := clock - tm.SafeguardMs
	if baseTime <= 0 {
		if increment > 0 {
			return int64(math.Round(increment * tm.MaxUsage))
		}
		return 0
	}
	return int64(math.Round(baseTime * tm.MaxUsage / mtg))
}

// Budget is Allocate as a duration; a fixed movetime wins over the clock.
func (tm TimeManager) Budget(gt GameTime, white bool) time.Duration {
	if gt.MoveTime > 0 {
		return time.Duration(gt.MoveTime) * time.Millisecond
	}
	return time.Duration(tm.Allocate(gt, white)) * time.Millisecond
}
