package engine

const (
	// LevelPrestige is the minimum level for a prestige reset.
	LevelPrestige = 10

	// MaxEquipped is the number of equipment slots.
	MaxEquipped = 3
)

// PrestigePointsForLevel returns the points a prestige at level grants.
func PrestigePointsForLevel(level int) int {
	if level < LevelPrestige {
		return 0
	}
	return level / LevelPrestige
}

func CanPrestige(level int) error {
	if level < LevelPrestige {
		return GateError{Feature: "prestige", RequiredLevel: LevelPrestige}
	}
	return nil
}

// CanRush checks both rush preconditions: a built Chrono Tower and an unused daily rush.
func CanRush(bonuses HomesteadBonuses, rushUsed bool) error {
	if !bonuses.RushAvailable {
		return RushError{Reason: RushNotBuilt}
	}
	if rushUsed {
		return RushError{Reason: RushAlreadyUsed}
	}
	return nil
}

func CanEquip(equippedCount int) error {
	if equippedCount >= MaxEquipped {
		return InventoryFullError{Slots: MaxEquipped}
	}
	return nil
}

func CanAfford(gold, cost int) error {
	if cost > gold {
		return GoldError{Need: cost, Have: gold}
	}
	return nil
}
