package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"questforge/internal/storage"
)

type UpgradeResult struct {
	Building BuildingDef
	NewLevel int
	Cost     int
	GoldLeft int
}

// UpgradeBuilding raises a homestead building one level. The gold deduction, the level
// change and the ledger entry commit together; a GoldError leaves everything untouched.
func (s *Session) UpgradeBuilding(ctx context.Context, key string) (*UpgradeResult, error) {
	def, ok := BuildingByKey(key)
	if !ok {
		return nil, fmt.Errorf("unknown building: %q", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.svc.clock.Now()
	var res *UpgradeResult
	err := storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		p, err := r.Players.GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		levels, err := r.Homestead.Levels(ctx)
		if err != nil {
			return err
		}
		level := levels[string(def.Building)]
		cost := UpgradeCost(def, level)
		if err := CanAfford(p.Gold, cost); err != nil {
			return err
		}

		p.Gold -= cost
		if err := r.Homestead.SetLevel(ctx, string(def.Building), level+1); err != nil {
			return err
		}
		if err := r.Ledger.Insert(ctx, storage.GoldTransaction{
			ID:          uuid.NewString(),
			Type:        string(TxHomesteadUpgrade),
			Amount:      -cost,
			Description: fmt.Sprintf("Upgrade %s to level %d", def.Name, level+1),
			CreatedAt:   now.UTC(),
		}); err != nil {
			return err
		}
		if err := r.Players.Update(ctx, p); err != nil {
			return err
		}
		res = &UpgradeResult{Building: def, NewLevel: level + 1, Cost: cost, GoldLeft: p.Gold}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.svc.log.Info("building upgraded",
		zap.String("building", string(def.Building)),
		zap.Int("level", res.NewLevel),
		zap.Int("cost", res.Cost))
	return res, nil
}

// SpendGold records a leisure purchase against the player's gold.
func (s *Session) SpendGold(ctx context.Context, amount int, description string) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %d", amount)
	}
	desc := strings.TrimSpace(description)
	if desc == "" {
		desc = "Leisure"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.svc.clock.Now()
	left := 0
	err := storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		p, err := r.Players.GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		if err := CanAfford(p.Gold, amount); err != nil {
			return err
		}
		p.Gold -= amount
		if err := r.Ledger.Insert(ctx, storage.GoldTransaction{
			ID:          uuid.NewString(),
			Type:        string(TxLeisureSpend),
			Amount:      -amount,
			Description: desc,
			CreatedAt:   now.UTC(),
		}); err != nil {
			return err
		}
		left = p.Gold
		return r.Players.Update(ctx, p)
	})
	if err != nil {
		return 0, err
	}
	return left, nil
}
