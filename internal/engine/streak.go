package engine

import (
	"time"

	"questforge/internal/storage"
)

// calendar is the pair of local dates the streak and daily rules compare against.
type calendar struct {
	Today     string
	Yesterday string
}

func calendarAt(now time.Time) calendar {
	start, _ := dayBounds(now)
	return calendar{
		Today:     LocalDate(start),
		Yesterday: LocalDate(start.AddDate(0, 0, -1)),
	}
}

// advanceStreak records a completion on cal.Today.
// A second completion on the same day leaves the streak alone; a completion the day
// after the previous one extends it; anything else starts over at 1.
func advanceStreak(p *storage.Player, cal calendar) {
	switch p.LastCompletedOn {
	case cal.Today:
		return
	case cal.Yesterday:
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastCompletedOn = cal.Today
}

// streakLapsed reports whether a running streak missed at least one full day.
func streakLapsed(p *storage.Player, cal calendar) bool {
	if p.Streak <= 0 || p.LastCompletedOn == "" {
		return false
	}
	return p.LastCompletedOn != cal.Today && p.LastCompletedOn != cal.Yesterday
}
