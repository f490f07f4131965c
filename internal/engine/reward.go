package engine

import "math"

const (
	DailyFocusMultiplier  = 1.25
	PrestigeBonusPerPoint = 0.02
	CriticalMultiplier    = 2.0
	GoldPerXPDivisor      = 10.0
)

// RewardInput is everything the calculator reads for one completion.
type RewardInput struct {
	BaseXP         float64 // quest xp, already halved for a rush
	Category       string
	Equipped       []LootDef
	DailyFocus     string
	PrestigePoints int
	CritChance     float64
	RestedXP       int
}

type Reward struct {
	XP           int
	Gold         int
	XPBonus      float64
	GoldBonus    float64
	Critical     bool
	RestedXPUsed int
}

// CalculateReward turns a quest's base xp into final xp and gold.
// Item bonuses add up first; daily focus, prestige and a critical hit then multiply.
// Rested xp is added flat at the end. The roller is drawn exactly once.
func CalculateReward(in RewardInput, rng Roller) Reward {
	xpBonus := 1.0
	goldBonus := 1.0

	for _, it := range in.Equipped {
		switch it.Type {
		case ItemXPBoost:
			if it.Category == "" || it.Category == in.Category {
				xpBonus += it.Value
			}
		case ItemGoldBoost:
			goldBonus += it.Value
		case ItemStreakProtection:
		}
	}

	if in.DailyFocus != "" && in.Category == in.DailyFocus {
		xpBonus *= DailyFocusMultiplier
	}

	prestige := 1 + float64(in.PrestigePoints)*PrestigeBonusPerPoint
	xpBonus *= prestige
	goldBonus *= prestige

	critical := false
	if rng.Float64() < in.CritChance {
		critical = true
		xpBonus *= CriticalMultiplier
		goldBonus *= CriticalMultiplier
	}

	xp := int(math.Floor(in.BaseXP * xpBonus))
	gold := int(math.Floor((in.BaseXP / GoldPerXPDivisor) * goldBonus))

	rested := 0
	if in.RestedXP > 0 {
		rested = in.RestedXP
		xp += rested
	}

	return Reward{
		XP:           xp,
		Gold:         gold,
		XPBonus:      xpBonus,
		GoldBonus:    goldBonus,
		Critical:     critical,
		RestedXPUsed: rested,
	}
}
