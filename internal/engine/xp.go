package engine

import (
	"math"

	"questforge/internal/storage"
)

const (
	// XPCurveBase and XPCurveExponent define xpToNext(level) = floor(100 * level^1.5).
	XPCurveBase     = 100.0
	XPCurveExponent = 1.5
)

// XPToNext returns the experience needed to advance from level to level+1.
// Levels below 1 are treated as level 1.
func XPToNext(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(XPCurveBase * math.Pow(float64(level), XPCurveExponent)))
}

// LevelState is the (level, xp, xpToNext) triple the leveling algorithm works on.
type LevelState struct {
	Level    int
	XP       int
	XPToNext int
}

// AbsorbXP adds gain to s and performs every level-up it pays for.
// A negative gain is treated as zero.
func AbsorbXP(s LevelState, gain int) LevelState {
	if s.Level < 1 {
		s.Level = 1
	}
	if gain < 0 {
		gain = 0
	}
	s.XPToNext = XPToNext(s.Level)
	s.XP += gain
	for s.XP >= s.XPToNext {
		s.XP -= s.XPToNext
		s.Level++
		s.XPToNext = XPToNext(s.Level)
	}
	return s
}

// applyXP runs AbsorbXP against the player record and bumps the lifetime counter.
func applyXP(p *storage.Player, gain int) (levelsGained int) {
	before := p.Level
	next := AbsorbXP(LevelState{Level: p.Level, XP: p.XP, XPToNext: p.XPToNext}, gain)
	p.Level, p.XP, p.XPToNext = next.Level, next.XP, next.XPToNext
	if gain > 0 {
		p.TotalXP += gain
	}
	return p.Level - before
}
