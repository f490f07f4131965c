package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"questforge/internal/storage"
)

// DefaultQuestXP is the base reward when none is given.
const DefaultQuestXP = 25

type CreateQuestInput struct {
	Name        string
	Description string
	Category    string
	XP          int
	Priority    Priority
	DueDate     *time.Time
}

type CreateResult struct {
	QuestID int64
}

func (s *Session) CreateQuest(ctx context.Context, in CreateQuestInput) (*CreateResult, error) {
	name, err := normalizeTitle(in.Name)
	if err != nil {
		return nil, err
	}
	xp, err := normalizeXP(in.XP)
	if err != nil {
		return nil, err
	}
	prio := in.Priority
	if !prio.IsValid() {
		prio = DefaultPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.svc.repos.Quests.Insert(ctx, storage.QuestInsert{
		Name:        name,
		Description: optionalText(in.Description),
		Category:    normalizeCategory(in.Category),
		XP:          xp,
		Priority:    string(prio),
		DueDate:     utcPtr(in.DueDate),
		CreatedAt:   s.svc.clock.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.svc.log.Debug("quest created", zap.Int64("quest_id", id), zap.String("name", name))
	return &CreateResult{QuestID: id}, nil
}

func normalizeXP(xp int) (int, error) {
	if xp < 0 {
		return 0, fmt.Errorf("invalid xp: %d", xp)
	}
	if xp == 0 {
		return DefaultQuestXP, nil
	}
	return xp, nil
}

func optionalText(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
