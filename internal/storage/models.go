package storage

import "time"

// BuildingKeys are the homestead rows seeded by Migrate.
var BuildingKeys = []string{"alchemist", "chrono", "garden", "guild"}

type Player struct {
	Key             string
	Level           int
	XP              int
	XPToNext        int
	Gold            int
	Streak          int
	LastCompletedOn string // local YYYY-MM-DD, empty before the first completion
	PrestigeLevel   int
	PrestigePoints  int
	QuestsCompleted int
	TotalXP         int
	TotalGoldEarned int
	Skills          map[string]int
	DailyFocus      string
	DailyRushUsed   bool
	RestedXP        int
	LastResetDate   string // local YYYY-MM-DD
}

type Quest struct {
	ID          int64
	Name        string
	Description *string
	Category    string
	XP          int
	Priority    string
	DueDate     *time.Time
	CreatedAt   time.Time
}

type HistoryEntry struct {
	ID          string
	QuestID     int64
	Name        string
	Description *string
	Category    string
	BaseXP      int
	Priority    string
	DueDate     *time.Time
	CreatedAt   time.Time
	CompletedAt time.Time
	XPEarned    int
	GoldEarned  int
	Critical    bool
	Rushed      bool
	LootKey     *string
}

type GoldTransaction struct {
	ID          string
	Type        string
	Amount      int
	Description string
	CreatedAt   time.Time
}

type Item struct {
	ID         string
	Key        string
	Equipped   bool
	AcquiredAt time.Time
}

type Goal struct {
	ID          int64
	Name        string
	Metric      string
	Target      int
	CreatedAt   time.Time
	CompletedAt *time.Time
}
