package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"questforge/internal/storage"
)

type CompleteResult struct {
	QuestID int64
	Name    string

	// Skipped is set when the quest was no longer active (already completed or deleted).
	// Nothing was granted.
	Skipped bool

	Rushed      bool
	Reward      Reward
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Streak      int

	Loot       *LootDef
	LootItemID string

	NewAchievements []AchievementDef
	GoalsCompleted  []int64
}

// CompleteQuest moves an active quest into history and grants its rewards.
func (s *Session) CompleteQuest(ctx context.Context, id int64) (*CompleteResult, error) {
	return s.complete(ctx, id, false)
}

// RushQuest completes a quest at half base xp. It needs a built Chrono Tower and
// an unused daily rush; otherwise it returns a RushError and changes nothing.
func (s *Session) RushQuest(ctx context.Context, id int64) (*CompleteResult, error) {
	return s.complete(ctx, id, true)
}

func (s *Session) complete(ctx context.Context, id int64, rush bool) (*CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc := s.svc
	now := svc.clock.Now()
	cal := calendarAt(now)
	res := &CompleteResult{QuestID: id, Rushed: rush}

	err := storage.WithTx(ctx, svc.db, func(r storage.Repos) error {
		q, err := r.Quests.Get(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			res.Skipped = true
			return nil
		}
		res.Name = q.Name

		p, err := r.Players.GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		levels, err := r.Homestead.Levels(ctx)
		if err != nil {
			return err
		}
		bonuses := Bonuses(levels)
		if rush {
			if err := CanRush(bonuses, p.DailyRushUsed); err != nil {
				return err
			}
		}
		items, err := r.Inventory.List(ctx)
		if err != nil {
			return err
		}

		removed, err := r.Quests.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			res.Skipped = true
			return nil
		}

		base := float64(q.XP)
		if rush {
			base /= 2
		}
		reward := CalculateReward(RewardInput{
			BaseXP:         base,
			Category:       q.Category,
			Equipped:       equippedDefs(items),
			DailyFocus:     p.DailyFocus,
			PrestigePoints: p.PrestigePoints,
			CritChance:     bonuses.CritChance,
			RestedXP:       p.RestedXP,
		}, svc.rng)
		res.Reward = reward

		if reward.RestedXPUsed > 0 {
			p.RestedXP = 0
		}
		if rush {
			p.DailyRushUsed = true
		}

		res.LevelBefore = p.Level
		applyXP(p, reward.XP)
		res.LevelAfter = p.Level
		res.LevelUp = res.LevelAfter > res.LevelBefore

		p.Gold += reward.Gold
		p.TotalGoldEarned += reward.Gold
		p.QuestsCompleted++
		p.Skills[q.Category]++
		advanceStreak(p, cal)
		res.Streak = p.Streak

		var lootKey *string
		if def, ok := RollLoot(svc.rng); ok {
			item := storage.Item{ID: uuid.NewString(), Key: def.Key, AcquiredAt: now.UTC()}
			if err := r.Inventory.Insert(ctx, item); err != nil {
				return err
			}
			res.Loot = &def
			res.LootItemID = item.ID
			k := def.Key
			lootKey = &k
		}

		if err := r.History.Insert(ctx, storage.HistoryEntry{
			ID:          uuid.NewString(),
			QuestID:     q.ID,
			Name:        q.Name,
			Description: q.Description,
			Category:    q.Category,
			BaseXP:      q.XP,
			Priority:    q.Priority,
			DueDate:     q.DueDate,
			CreatedAt:   q.CreatedAt,
			CompletedAt: now.UTC(),
			XPEarned:    reward.XP,
			GoldEarned:  reward.Gold,
			Critical:    reward.Critical,
			Rushed:      rush,
			LootKey:     lootKey,
		}); err != nil {
			return err
		}

		if reward.Gold > 0 {
			if err := r.Ledger.Insert(ctx, storage.GoldTransaction{
				ID:          uuid.NewString(),
				Type:        string(TxQuestReward),
				Amount:      reward.Gold,
				Description: fmt.Sprintf("Quest: %s", q.Name),
				CreatedAt:   now.UTC(),
			}); err != nil {
				return err
			}
		}

		if err := r.Players.Update(ctx, p); err != nil {
			return err
		}

		progress, err := svc.evaluateProgress(ctx, r, p, now)
		if err != nil {
			return err
		}
		res.NewAchievements = progress.Achievements
		res.GoalsCompleted = progress.Goals
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Skipped {
		svc.log.Debug("completion skipped, quest not active", zap.Int64("quest_id", id))
		return res, nil
	}
	svc.log.Info("quest completed",
		zap.Int64("quest_id", id),
		zap.Bool("rushed", rush),
		zap.Int("xp", res.Reward.XP),
		zap.Int("gold", res.Reward.Gold),
		zap.Bool("critical", res.Reward.Critical),
		zap.Int("level", res.LevelAfter))
	return res, nil
}
