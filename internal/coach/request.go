package coach

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"questforge/internal/storage"
)

type Mode string

const (
	ModeSuggest       Mode = "suggest"
	ModeReview        Mode = "review"
	ModeBreakdown     Mode = "breakdown"
	ModeSmartReminder Mode = "smart_reminder"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeSuggest, ModeReview, ModeBreakdown, ModeSmartReminder:
		return true
	default:
		return false
	}
}

// ParseMode accepts the wire names plus "remind" and "reminder". Empty means free chat.
func ParseMode(input string) (Mode, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return "", nil
	case "remind", "reminder":
		return ModeSmartReminder, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid coach mode: %q", input)
	}
	return m, nil
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PlayerContext is the summary of the player sent with every request.
type PlayerContext struct {
	Level           int      `json:"level"`
	XP              int      `json:"xp"`
	Gold            int      `json:"gold"`
	Streak          int      `json:"streak"`
	QuestsCompleted int      `json:"questsCompleted"`
	TopSkills       []string `json:"topSkills"`
}

type QuestSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	XP          int    `json:"xp"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

type Request struct {
	Model         string         `json:"model,omitempty"`
	Stream        bool           `json:"stream"`
	Messages      []Message      `json:"messages"`
	PlayerContext PlayerContext  `json:"playerContext"`
	Mode          Mode           `json:"mode,omitempty"`
	Quests        []QuestSummary `json:"quests,omitempty"`
	Quest         *QuestSummary  `json:"quest,omitempty"`
}

func (r Request) Validate() error {
	if r.Mode != "" && !r.Mode.IsValid() {
		return fmt.Errorf("invalid coach mode: %q", r.Mode)
	}
	if r.Mode == ModeBreakdown && r.Quest == nil {
		return errors.New("breakdown needs a quest")
	}
	if r.Mode == "" && len(r.Messages) == 0 {
		return errors.New("empty conversation")
	}
	return nil
}

// TopSkillCount is how many categories PlayerContextFrom reports.
const TopSkillCount = 3

// PlayerContextFrom summarizes p. Top skills are the most completed categories,
// ties broken by name.
func PlayerContextFrom(p *storage.Player) PlayerContext {
	skills := make([]string, 0, len(p.Skills))
	for k := range p.Skills {
		skills = append(skills, k)
	}
	sort.Slice(skills, func(i, j int) bool {
		a, b := p.Skills[skills[i]], p.Skills[skills[j]]
		if a != b {
			return a > b
		}
		return skills[i] < skills[j]
	})
	if len(skills) > TopSkillCount {
		skills = skills[:TopSkillCount]
	}
	return PlayerContext{
		Level:           p.Level,
		XP:              p.XP,
		Gold:            p.Gold,
		Streak:          p.Streak,
		QuestsCompleted: p.QuestsCompleted,
		TopSkills:       skills,
	}
}

func QuestSummaryFrom(q storage.Quest) QuestSummary {
	s := QuestSummary{ID: q.ID, Name: q.Name, Category: q.Category, Priority: q.Priority, XP: q.XP}
	if q.Description != nil {
		s.Description = *q.Description
	}
	if q.DueDate != nil {
		s.DueDate = q.DueDate.Local().Format("2006-01-02")
	}
	return s
}
