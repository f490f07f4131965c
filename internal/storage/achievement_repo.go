package storage

import (
	"context"
	"fmt"
	"time"
)

// AchievementRepo persists unlock timestamps only; progress is always derived.
type AchievementRepo struct {
	db DBTX
}

func NewAchievementRepo(db DBTX) *AchievementRepo {
	return &AchievementRepo{db: db}
}

func (r *AchievementRepo) Unlocked(ctx context.Context) (map[string]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, unlocked_at FROM achievements ORDER BY unlocked_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	out := map[string]time.Time{}
	for rows.Next() {
		var (
			id string
			at time.Time
		)
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		out[id] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}

// Unlock records the first unlock of an achievement. Later calls never move the timestamp.
func (r *AchievementRepo) Unlock(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO achievements (id, unlocked_at) VALUES (?, ?)`, id, at)
	if err != nil {
		return fmt.Errorf("achievement unlock: %w", err)
	}
	return nil
}
