package engine

import (
	"context"
	"time"

	"questforge/internal/storage"
)

// UpdateQuestInput carries optional edits; nil fields are left unchanged.
type UpdateQuestInput struct {
	Name        *string
	Description *string
	Category    *string
	XP          *int
	Priority    *Priority
	DueDate     *time.Time
	ClearDue    bool
}

// UpdateQuest edits an active quest. Completed quests are frozen in history.
func (s *Session) UpdateQuest(ctx context.Context, id int64, in UpdateQuestInput) (*storage.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out *storage.Quest
	err := storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		q, err := r.Quests.Get(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return ErrQuestNotFound
		}

		if in.Name != nil {
			name, err := normalizeTitle(*in.Name)
			if err != nil {
				return err
			}
			q.Name = name
		}
		if in.Description != nil {
			q.Description = optionalText(*in.Description)
		}
		if in.Category != nil {
			q.Category = normalizeCategory(*in.Category)
		}
		if in.XP != nil {
			xp, err := normalizeXP(*in.XP)
			if err != nil {
				return err
			}
			q.XP = xp
		}
		if in.Priority != nil && in.Priority.IsValid() {
			q.Priority = string(*in.Priority)
		}
		switch {
		case in.ClearDue:
			q.DueDate = nil
		case in.DueDate != nil:
			q.DueDate = utcPtr(in.DueDate)
		}

		if err := r.Quests.Update(ctx, *q); err != nil {
			return err
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
