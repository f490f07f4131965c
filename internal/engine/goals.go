package engine

import (
	"time"

	"questforge/internal/storage"
)

// GoalProgress is a user goal with its derived counter.
type GoalProgress struct {
	Goal    storage.Goal
	Metric  Metric
	Current int
}

func (g GoalProgress) Done() bool { return g.Goal.CompletedAt != nil }

// EvaluateGoals derives each goal's current value from stats and stamps the ones
// that reached their target for the first time. newly holds their ids.
func EvaluateGoals(goals []storage.Goal, stats Stats, now time.Time) (out []GoalProgress, newly []int64) {
	out = make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		m := Metric(g.Metric)
		gp := GoalProgress{Goal: g, Metric: m, Current: stats.Value(m)}
		if g.CompletedAt == nil && m.IsValid() && gp.Current >= g.Target {
			t := now
			gp.Goal.CompletedAt = &t
			newly = append(newly, g.ID)
		}
		out = append(out, gp)
	}
	return out, newly
}
