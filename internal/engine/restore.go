package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"questforge/internal/storage"
)

type RestoreResult struct {
	QuestID   int64
	Name      string
	HistoryID string
}

// RestoreQuest moves the latest history entry of a quest back into the active registry.
// Rewards already granted are kept: restoring means doing the quest again, not undoing it.
func (s *Session) RestoreQuest(ctx context.Context, questID int64) (*RestoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res *RestoreResult
	err := storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		active, err := r.Quests.Get(ctx, questID)
		if err != nil {
			return err
		}
		if active != nil {
			return fmt.Errorf("quest %d is already active", questID)
		}
		h, err := r.History.LatestForQuest(ctx, questID)
		if err != nil {
			return err
		}
		if h == nil {
			return ErrHistoryNotFound
		}
		if _, err := r.History.Delete(ctx, h.ID); err != nil {
			return err
		}
		if err := r.Quests.Reinsert(ctx, storage.Quest{
			ID:          h.QuestID,
			Name:        h.Name,
			Description: h.Description,
			Category:    h.Category,
			XP:          h.BaseXP,
			Priority:    h.Priority,
			DueDate:     h.DueDate,
			CreatedAt:   h.CreatedAt,
		}); err != nil {
			return err
		}
		res = &RestoreResult{QuestID: h.QuestID, Name: h.Name, HistoryID: h.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.svc.log.Info("quest restored", zap.Int64("quest_id", questID))
	return res, nil
}

// DeleteQuest permanently removes an active quest.
func (s *Session) DeleteQuest(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.svc.repos.Quests.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrQuestNotFound
	}
	s.svc.log.Info("quest deleted", zap.Int64("quest_id", id))
	return nil
}

// DeleteHistory permanently removes the latest history entry of a quest.
func (s *Session) DeleteHistory(ctx context.Context, questID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		h, err := r.History.LatestForQuest(ctx, questID)
		if err != nil {
			return err
		}
		if h == nil {
			return ErrHistoryNotFound
		}
		_, err = r.History.Delete(ctx, h.ID)
		return err
	})
}
