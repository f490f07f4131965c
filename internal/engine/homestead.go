package engine

import (
	"fmt"
	"math"
	"strings"
)

type Building string

const (
	BuildingAlchemist Building = "alchemist"
	BuildingChrono    Building = "chrono"
	BuildingGarden    Building = "garden"
	BuildingGuild     Building = "guild"
)

type BonusType string

const (
	BonusCriticalChance BonusType = "critical_chance"
	BonusDailyRush      BonusType = "daily_rush"
	BonusRestedXP       BonusType = "rested_xp"
	BonusBetterBounties BonusType = "better_bounties"
)

type BuildingDef struct {
	Building    Building
	Name        string
	Description string
	Bonus       BonusType
	BaseCost    int
}

const (
	CritChancePerAlchemist = 0.05
	RestedXPPerGarden      = 20
	UpgradeCostGrowth      = 1.5
)

// Buildings is the fixed homestead catalog in display order.
var Buildings = []BuildingDef{
	{Building: BuildingAlchemist, Name: "Alchemist's Lab", Description: "+5% critical chance per level", Bonus: BonusCriticalChance, BaseCost: 200},
	{Building: BuildingChrono, Name: "Chrono Tower", Description: "Unlocks one rush per day", Bonus: BonusDailyRush, BaseCost: 300},
	{Building: BuildingGarden, Name: "Zen Garden", Description: "+20 rested XP each day per level", Bonus: BonusRestedXP, BaseCost: 150},
	{Building: BuildingGuild, Name: "Guild Hall", Description: "Raises the bounty tier", Bonus: BonusBetterBounties, BaseCost: 250},
}

func BuildingByKey(key string) (BuildingDef, bool) {
	k := Building(strings.TrimSpace(strings.ToLower(key)))
	for _, b := range Buildings {
		if b.Building == k {
			return b, true
		}
	}
	return BuildingDef{}, false
}

// UpgradeCost returns the gold needed to take a building from level to level+1.
func UpgradeCost(def BuildingDef, level int) int {
	if level < 0 {
		level = 0
	}
	return int(math.Floor(float64(def.BaseCost) * math.Pow(UpgradeCostGrowth, float64(level))))
}

// HomesteadBonuses are derived from building levels and never stored.
type HomesteadBonuses struct {
	CritChance    float64
	RushAvailable bool
	DailyRestedXP int
	BountyTier    int
}

// Bonuses derives every passive effect from the homestead levels (building key -> level).
func Bonuses(levels map[string]int) HomesteadBonuses {
	var out HomesteadBonuses
	for _, b := range Buildings {
		lvl := levels[string(b.Building)]
		switch b.Bonus {
		case BonusCriticalChance:
			out.CritChance = float64(lvl) * CritChancePerAlchemist
		case BonusDailyRush:
			out.RushAvailable = lvl > 0
		case BonusRestedXP:
			out.DailyRestedXP = lvl * RestedXPPerGarden
		case BonusBetterBounties:
			out.BountyTier = lvl
		default:
			panic(fmt.Sprintf("unhandled homestead bonus %q", b.Bonus))
		}
	}
	return out
}
