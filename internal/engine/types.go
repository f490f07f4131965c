package engine

type ItemType string

const (
	ItemXPBoost          ItemType = "xp_boost"
	ItemGoldBoost        ItemType = "gold_boost"
	ItemStreakProtection ItemType = "streak_protection"
)

func (t ItemType) IsValid() bool {
	switch t {
	case ItemXPBoost, ItemGoldBoost, ItemStreakProtection:
		return true
	default:
		return false
	}
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// DefaultPriority is used when user input is missing/invalid.
const DefaultPriority Priority = PriorityMedium

type TransactionType string

const (
	TxQuestReward      TransactionType = "quest_reward"
	TxHomesteadUpgrade TransactionType = "homestead_upgrade"
	TxLeisureSpend     TransactionType = "leisure_spend"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TxQuestReward, TxHomesteadUpgrade, TxLeisureSpend:
		return true
	default:
		return false
	}
}

// DefaultCategory is used when a quest is created without one.
const DefaultCategory = "general"
