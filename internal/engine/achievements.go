package engine

import (
	"fmt"
	"strings"
	"time"

	"questforge/internal/storage"
)

// Metric names a cumulative stat that achievements and goals measure.
type Metric string

const (
	MetricQuestsCompleted Metric = "quests_completed"
	MetricStreak          Metric = "streak"
	MetricTotalXP         Metric = "total_xp"
	MetricTotalGold       Metric = "total_gold"
	MetricLevel           Metric = "level"
	MetricSameDay         Metric = "same_day"
	MetricCategories      Metric = "categories"
)

var Metrics = []Metric{
	MetricQuestsCompleted, MetricStreak, MetricTotalXP, MetricTotalGold,
	MetricLevel, MetricSameDay, MetricCategories,
}

func (m Metric) IsValid() bool {
	switch m {
	case MetricQuestsCompleted, MetricStreak, MetricTotalXP, MetricTotalGold,
		MetricLevel, MetricSameDay, MetricCategories:
		return true
	default:
		return false
	}
}

func ParseMetric(input string) (Metric, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "quests", "completed":
		s = string(MetricQuestsCompleted)
	case "xp":
		s = string(MetricTotalXP)
	case "gold":
		s = string(MetricTotalGold)
	case "today", "sameday":
		s = string(MetricSameDay)
	}
	m := Metric(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid metric: %q", input)
	}
	return m, nil
}

// Stats is the snapshot every achievement and goal is projected from.
type Stats struct {
	QuestsCompleted int
	Streak          int
	TotalXP         int
	TotalGold       int
	Level           int
	SameDay         int // completions on the current local day
	Categories      int // distinct categories ever completed
}

func StatsFor(p *storage.Player, completedToday int) Stats {
	return Stats{
		QuestsCompleted: p.QuestsCompleted,
		Streak:          p.Streak,
		TotalXP:         p.TotalXP,
		TotalGold:       p.TotalGoldEarned,
		Level:           p.Level,
		SameDay:         completedToday,
		Categories:      len(p.Skills),
	}
}

func (s Stats) Value(m Metric) int {
	switch m {
	case MetricQuestsCompleted:
		return s.QuestsCompleted
	case MetricStreak:
		return s.Streak
	case MetricTotalXP:
		return s.TotalXP
	case MetricTotalGold:
		return s.TotalGold
	case MetricLevel:
		return s.Level
	case MetricSameDay:
		return s.SameDay
	case MetricCategories:
		return s.Categories
	default:
		return 0
	}
}

type AchievementDef struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    string
	Rarity      Rarity
	Metric      Metric
	Target      int
}

// Achievement is a definition with its derived progress and permanent unlock time.
type Achievement struct {
	AchievementDef
	Progress   int
	UnlockedAt *time.Time
}

func (a Achievement) Unlocked() bool { return a.UnlockedAt != nil }

// AchievementDefs is the built-in catalog.
var AchievementDefs = []AchievementDef{
	// Quest milestones
	{ID: "first_quest", Name: "First Steps", Description: "Complete your first quest", Icon: "🌱", Category: "quests", Rarity: RarityCommon, Metric: MetricQuestsCompleted, Target: 1},
	{ID: "quests_10", Name: "Adventurer", Description: "Complete 10 quests", Icon: "🗡️", Category: "quests", Rarity: RarityCommon, Metric: MetricQuestsCompleted, Target: 10},
	{ID: "quests_50", Name: "Veteran", Description: "Complete 50 quests", Icon: "🛡️", Category: "quests", Rarity: RarityRare, Metric: MetricQuestsCompleted, Target: 50},
	{ID: "quests_100", Name: "Centurion", Description: "Complete 100 quests", Icon: "🏆", Category: "quests", Rarity: RarityEpic, Metric: MetricQuestsCompleted, Target: 100},
	{ID: "quests_500", Name: "Living Legend", Description: "Complete 500 quests", Icon: "👑", Category: "quests", Rarity: RarityLegendary, Metric: MetricQuestsCompleted, Target: 500},

	// Streaks
	{ID: "streak_3", Name: "On a Roll", Description: "Keep a 3-day streak", Icon: "🔥", Category: "streaks", Rarity: RarityCommon, Metric: MetricStreak, Target: 3},
	{ID: "streak_7", Name: "Week Warrior", Description: "Keep a 7-day streak", Icon: "📅", Category: "streaks", Rarity: RarityRare, Metric: MetricStreak, Target: 7},
	{ID: "streak_30", Name: "Unstoppable", Description: "Keep a 30-day streak", Icon: "⚡", Category: "streaks", Rarity: RarityEpic, Metric: MetricStreak, Target: 30},
	{ID: "streak_100", Name: "Eternal Flame", Description: "Keep a 100-day streak", Icon: "☀️", Category: "streaks", Rarity: RarityLegendary, Metric: MetricStreak, Target: 100},

	// Experience
	{ID: "xp_1000", Name: "Apprentice", Description: "Earn 1,000 XP", Icon: "✨", Category: "experience", Rarity: RarityCommon, Metric: MetricTotalXP, Target: 1000},
	{ID: "xp_10000", Name: "Journeyman", Description: "Earn 10,000 XP", Icon: "💫", Category: "experience", Rarity: RarityRare, Metric: MetricTotalXP, Target: 10000},
	{ID: "xp_100000", Name: "Archmage", Description: "Earn 100,000 XP", Icon: "🌟", Category: "experience", Rarity: RarityLegendary, Metric: MetricTotalXP, Target: 100000},

	// Gold
	{ID: "gold_100", Name: "Pocket Change", Description: "Earn 100 gold", Icon: "🪙", Category: "wealth", Rarity: RarityCommon, Metric: MetricTotalGold, Target: 100},
	{ID: "gold_1000", Name: "Merchant", Description: "Earn 1,000 gold", Icon: "💰", Category: "wealth", Rarity: RarityRare, Metric: MetricTotalGold, Target: 1000},
	{ID: "gold_10000", Name: "Dragon's Hoard", Description: "Earn 10,000 gold", Icon: "🐉", Category: "wealth", Rarity: RarityEpic, Metric: MetricTotalGold, Target: 10000},

	// Levels
	{ID: "level_5", Name: "Rising Star", Description: "Reach level 5", Icon: "⭐", Category: "levels", Rarity: RarityCommon, Metric: MetricLevel, Target: 5},
	{ID: "level_10", Name: "Seasoned", Description: "Reach level 10", Icon: "🌠", Category: "levels", Rarity: RarityRare, Metric: MetricLevel, Target: 10},
	{ID: "level_25", Name: "Hero", Description: "Reach level 25", Icon: "🦸", Category: "levels", Rarity: RarityEpic, Metric: MetricLevel, Target: 25},

	// Same day
	{ID: "same_day_5", Name: "Productive Day", Description: "Complete 5 quests in one day", Icon: "📋", Category: "special", Rarity: RarityRare, Metric: MetricSameDay, Target: 5},
	{ID: "same_day_10", Name: "Whirlwind", Description: "Complete 10 quests in one day", Icon: "🌪️", Category: "special", Rarity: RarityEpic, Metric: MetricSameDay, Target: 10},

	// Breadth
	{ID: "categories_3", Name: "Well Rounded", Description: "Complete quests in 3 categories", Icon: "🧭", Category: "special", Rarity: RarityCommon, Metric: MetricCategories, Target: 3},
	{ID: "categories_7", Name: "Renaissance", Description: "Complete quests in 7 categories", Icon: "🎭", Category: "special", Rarity: RarityRare, Metric: MetricCategories, Target: 7},
}

// EvaluateAchievements projects the catalog onto stats.
// unlocked holds the persisted unlock times; an entry there stays unlocked even if
// progress has since dropped below its target. newly lists ids that crossed their
// target for the first time and were stamped with now.
func EvaluateAchievements(defs []AchievementDef, stats Stats, unlocked map[string]time.Time, now time.Time) (all []Achievement, newly []string) {
	all = make([]Achievement, 0, len(defs))
	for _, d := range defs {
		a := Achievement{AchievementDef: d, Progress: stats.Value(d.Metric)}
		if at, ok := unlocked[d.ID]; ok {
			t := at
			a.UnlockedAt = &t
		} else if a.Progress >= d.Target {
			t := now
			a.UnlockedAt = &t
			newly = append(newly, d.ID)
		}
		all = append(all, a)
	}
	return all, newly
}

// CountUnlocked returns how many achievements are unlocked.
func CountUnlocked(all []Achievement) int {
	n := 0
	for _, a := range all {
		if a.Unlocked() {
			n++
		}
	}
	return n
}
