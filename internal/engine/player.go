package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"questforge/internal/storage"
)

// SetDailyFocus picks the category that earns the daily focus multiplier. Empty clears it.
func (s *Session) SetDailyFocus(ctx context.Context, category string) (string, error) {
	focus := strings.TrimSpace(strings.ToLower(category))

	s.mu.Lock()
	defer s.mu.Unlock()

	err := storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		p, err := r.Players.GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		p.DailyFocus = focus
		return r.Players.Update(ctx, p)
	})
	if err != nil {
		return "", err
	}
	return focus, nil
}

type PrestigeResult struct {
	FromLevel     int
	PointsGained  int
	PrestigeLevel int
	TotalPoints   int
}

// Prestige trades the current level for permanent prestige points.
// Level and xp start over; gold, items, homestead and lifetime stats stay.
func (s *Session) Prestige(ctx context.Context) (*PrestigeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.svc.clock.Now()
	var res *PrestigeResult
	err := storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		p, err := r.Players.GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		if err := CanPrestige(p.Level); err != nil {
			return err
		}
		gained := PrestigePointsForLevel(p.Level)
		res = &PrestigeResult{FromLevel: p.Level, PointsGained: gained}

		p.Level = 1
		p.XP = 0
		p.XPToNext = XPToNext(1)
		p.PrestigeLevel++
		p.PrestigePoints += gained
		res.PrestigeLevel = p.PrestigeLevel
		res.TotalPoints = p.PrestigePoints

		if err := r.Players.Update(ctx, p); err != nil {
			return err
		}
		_, err = s.svc.evaluateProgress(ctx, r, p, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.svc.log.Info("prestige", zap.Int("from_level", res.FromLevel), zap.Int("points", res.PointsGained))
	return res, nil
}

// ResetProgress wipes all game data except achievement unlocks, which are permanent.
func (s *Session) ResetProgress(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		p, err := r.Players.GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		if err := r.Quests.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.History.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.Ledger.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.Inventory.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.Goals.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.Homestead.ResetAll(ctx); err != nil {
			return err
		}
		// The reset date is kept so today's cycle is not replayed.
		fresh := storage.Player{
			Key:           p.Key,
			Level:         1,
			XPToNext:      XPToNext(1),
			Skills:        map[string]int{},
			LastResetDate: p.LastResetDate,
		}
		return r.Players.Update(ctx, &fresh)
	})
	if err != nil {
		return err
	}
	s.svc.log.Warn("progress reset")
	return nil
}

// AddGoal creates a user goal and immediately evaluates it.
func (s *Session) AddGoal(ctx context.Context, name string, metric Metric, target int) (*GoalProgress, error) {
	title, err := normalizeTitle(name)
	if err != nil {
		return nil, err
	}
	if !metric.IsValid() {
		return nil, fmt.Errorf("invalid metric: %q", metric)
	}
	if target <= 0 {
		return nil, fmt.Errorf("target must be positive, got %d", target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.svc.clock.Now()
	var out *GoalProgress
	err = storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		id, err := r.Goals.Insert(ctx, storage.Goal{Name: title, Metric: string(metric), Target: target, CreatedAt: now.UTC()})
		if err != nil {
			return err
		}
		p, err := r.Players.GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		if _, err := s.svc.evaluateProgress(ctx, r, p, now); err != nil {
			return err
		}
		goals, err := r.Goals.List(ctx)
		if err != nil {
			return err
		}
		today, err := s.svc.completedToday(ctx, r)
		if err != nil {
			return err
		}
		views, _ := EvaluateGoals(goals, StatsFor(p, today), now)
		for i := range views {
			if views[i].Goal.ID == id {
				out = &views[i]
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) DeleteGoal(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.svc.repos.Goals.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrGoalNotFound
	}
	return nil
}
