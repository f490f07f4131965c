package storage

import (
	"context"
	"fmt"
)

type HomesteadRepo struct {
	db DBTX
}

func NewHomesteadRepo(db DBTX) *HomesteadRepo {
	return &HomesteadRepo{db: db}
}

// Levels returns building key -> level. Buildings never upgraded report 0.
func (r *HomesteadRepo) Levels(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT building, level FROM homestead`)
	if err != nil {
		return nil, fmt.Errorf("homestead levels: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int, len(BuildingKeys))
	for _, k := range BuildingKeys {
		out[k] = 0
	}
	for rows.Next() {
		var (
			key   string
			level int
		)
		if err := rows.Scan(&key, &level); err != nil {
			return nil, fmt.Errorf("homestead scan: %w", err)
		}
		out[key] = level
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("homestead rows: %w", err)
	}
	return out, nil
}

func (r *HomesteadRepo) SetLevel(ctx context.Context, building string, level int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO homestead (building, level) VALUES (?, ?)
		ON CONFLICT(building) DO UPDATE SET level = excluded.level
	`, building, level)
	if err != nil {
		return fmt.Errorf("homestead set level: %w", err)
	}
	return nil
}

func (r *HomesteadRepo) ResetAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE homestead SET level = 0`); err != nil {
		return fmt.Errorf("homestead reset: %w", err)
	}
	return nil
}
