package engine

import (
	"fmt"
	"strings"
)

// LootChance is the probability that a completion drops an item.
const LootChance = 0.10

type LootDef struct {
	Key      string
	Name     string
	Type     ItemType
	Category string // only meaningful for xp_boost; empty means any category
	Value    float64
	Rarity   Rarity
}

// LootTable is the fixed drop table; every entry is equally likely.
var LootTable = []LootDef{
	{Key: "sage_tome", Name: "Sage's Tome", Type: ItemXPBoost, Value: 0.05, Rarity: RarityCommon},
	{Key: "runners_band", Name: "Runner's Band", Type: ItemXPBoost, Category: "fitness", Value: 0.10, Rarity: RarityRare},
	{Key: "lucky_coin", Name: "Lucky Coin", Type: ItemGoldBoost, Value: 0.10, Rarity: RarityEpic},
	{Key: "phoenix_feather", Name: "Phoenix Feather", Type: ItemStreakProtection, Rarity: RarityLegendary},
}

func LootByKey(key string) (LootDef, bool) {
	k := strings.TrimSpace(strings.ToLower(key))
	for _, d := range LootTable {
		if d.Key == k {
			return d, true
		}
	}
	return LootDef{}, false
}

// RollLoot draws once against LootChance and, on success, once more to pick the entry.
func RollLoot(rng Roller) (LootDef, bool) {
	if rng.Float64() >= LootChance {
		return LootDef{}, false
	}
	return LootTable[rng.Intn(len(LootTable))], true
}

// Describe renders the bonus an item grants, e.g. "+10% XP (fitness)".
func (d LootDef) Describe() string {
	switch d.Type {
	case ItemXPBoost:
		s := fmt.Sprintf("+%.0f%% XP", d.Value*100)
		if d.Category != "" {
			s += " (" + d.Category + ")"
		}
		return s
	case ItemGoldBoost:
		return fmt.Sprintf("+%.0f%% gold", d.Value*100)
	case ItemStreakProtection:
		return "protects your streak once"
	default:
		return string(d.Type)
	}
}
