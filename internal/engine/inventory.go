package engine

import (
	"context"

	"go.uber.org/zap"

	"questforge/internal/storage"
)

// Equip moves a stored item into one of the MaxEquipped slots.
// itemID may be a unique prefix of the item id.
func (s *Session) Equip(ctx context.Context, itemID string) (*ItemView, error) {
	return s.setEquipped(ctx, itemID, true)
}

// Unequip moves an equipped item back to storage.
func (s *Session) Unequip(ctx context.Context, itemID string) (*ItemView, error) {
	return s.setEquipped(ctx, itemID, false)
}

func (s *Session) setEquipped(ctx context.Context, itemID string, equip bool) (*ItemView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out *ItemView
	err := storage.WithTx(ctx, s.svc.db, func(r storage.Repos) error {
		it, err := r.Inventory.FindByPrefix(ctx, itemID)
		if err != nil {
			return err
		}
		if it == nil {
			return ErrItemNotFound
		}
		if it.Equipped != equip {
			if equip {
				items, err := r.Inventory.List(ctx)
				if err != nil {
					return err
				}
				if err := CanEquip(countEquipped(items)); err != nil {
					return err
				}
			}
			if err := r.Inventory.SetEquipped(ctx, it.ID, equip); err != nil {
				return err
			}
			it.Equipped = equip
		}
		views := itemViews([]storage.Item{*it})
		out = &views[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.svc.log.Debug("equipment changed", zap.String("item_id", out.Item.ID), zap.Bool("equipped", equip))
	return out, nil
}

func countEquipped(items []storage.Item) int {
	n := 0
	for _, it := range items {
		if it.Equipped {
			n++
		}
	}
	return n
}
