package engine

import (
	"questforge/internal/storage"
)

// DailyResetResult describes what the once-per-day cycle did.
type DailyResetResult struct {
	Applied        bool
	Date           string
	RestedXP       int
	StreakBroken   bool
	ProtectionUsed bool
}

// applyDailyReset runs the daily cycle against p if cal.Today differs from the last reset date.
// Rested xp is overwritten, never accumulated, so skipped days are not paid out later.
// canProtect says whether an equipped streak protection item is available to spend.
func applyDailyReset(p *storage.Player, bonuses HomesteadBonuses, cal calendar, canProtect bool) DailyResetResult {
	res := DailyResetResult{Date: cal.Today}
	if p.LastResetDate == cal.Today {
		return res
	}

	res.Applied = true
	p.DailyRushUsed = false
	p.RestedXP = bonuses.DailyRestedXP
	res.RestedXP = p.RestedXP

	if streakLapsed(p, cal) {
		if canProtect {
			// Bridge the gap so today's first completion extends the streak.
			p.LastCompletedOn = cal.Yesterday
			res.ProtectionUsed = true
		} else {
			p.Streak = 0
			res.StreakBroken = true
		}
	}

	p.LastResetDate = cal.Today
	return res
}
