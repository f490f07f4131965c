package storage

import (
	"context"
	"fmt"
	"strings"
)

type InventoryRepo struct {
	db DBTX
}

func NewInventoryRepo(db DBTX) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) Insert(ctx context.Context, it Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory (id, item_key, equipped, acquired_at)
		VALUES (?, ?, ?, ?)
	`, it.ID, it.Key, boolToInt(it.Equipped), it.AcquiredAt)
	if err != nil {
		return fmt.Errorf("inventory insert: %w", err)
	}
	return nil
}

func (r *InventoryRepo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_key, equipped, acquired_at
		FROM inventory
		ORDER BY acquired_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}
	return out, nil
}

// FindByPrefix resolves an item by its id or a unique id prefix.
// It returns nil when nothing matches and an error when the prefix is ambiguous.
func (r *InventoryRepo) FindByPrefix(ctx context.Context, prefix string) (*Item, error) {
	p := strings.TrimSpace(prefix)
	if p == "" {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_key, equipped, acquired_at
		FROM inventory
		WHERE id = ? OR substr(id, 1, ?) = ?
		LIMIT 2
	`, p, len(p), p)
	if err != nil {
		return nil, fmt.Errorf("inventory find: %w", err)
	}
	defer rows.Close()

	var found []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("item id %q is ambiguous", p)
	}
}

func (r *InventoryRepo) SetEquipped(ctx context.Context, id string, equipped bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE inventory SET equipped = ? WHERE id = ?`, boolToInt(equipped), id)
	if err != nil {
		return fmt.Errorf("inventory set equipped: %w", err)
	}
	return nil
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id); err != nil {
		return fmt.Errorf("inventory delete: %w", err)
	}
	return nil
}

func (r *InventoryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM inventory`); err != nil {
		return fmt.Errorf("inventory delete all: %w", err)
	}
	return nil
}

func scanItem(row scanner) (Item, error) {
	var (
		it       Item
		equipped int
	)
	if err := row.Scan(&it.ID, &it.Key, &equipped, &it.AcquiredAt); err != nil {
		return Item{}, fmt.Errorf("inventory scan: %w", err)
	}
	it.Equipped = equipped != 0
	return it, nil
}
