package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type HistoryRepo struct {
	db DBTX
}

func NewHistoryRepo(db DBTX) *HistoryRepo {
	return &HistoryRepo{db: db}
}

const historyColumns = `id, quest_id, name, description, category, base_xp, priority, due_date,
	created_at, completed_at, xp_earned, gold_earned, critical, rushed, loot_key`

func (r *HistoryRepo) Insert(ctx context.Context, h HistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quest_history (`+historyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, h.ID, h.QuestID, h.Name, h.Description, h.Category, h.BaseXP, h.Priority, h.DueDate,
		h.CreatedAt, h.CompletedAt, h.XPEarned, h.GoldEarned, boolToInt(h.Critical), boolToInt(h.Rushed), h.LootKey)
	if err != nil {
		return fmt.Errorf("history insert: %w", err)
	}
	return nil
}

// LatestForQuest returns the most recent history entry of a quest id.
func (r *HistoryRepo) LatestForQuest(ctx context.Context, questID int64) (*HistoryEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+historyColumns+`
		FROM quest_history
		WHERE quest_id = ?
		ORDER BY completed_at DESC
		LIMIT 1
	`, questID)
	return scanHistoryRow(row)
}

// ListRecent returns history newest first. limit <= 0 means no limit.
func (r *HistoryRepo) ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM quest_history
		ORDER BY completed_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	return collectHistory(rows)
}

// ListSince returns entries completed at or after since, oldest first.
func (r *HistoryRepo) ListSince(ctx context.Context, since time.Time) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM quest_history
		WHERE completed_at >= ?
		ORDER BY completed_at ASC
	`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("history list since: %w", err)
	}
	return collectHistory(rows)
}

func (r *HistoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quest_history WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("history delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("history delete rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *HistoryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quest_history`); err != nil {
		return fmt.Errorf("history delete all: %w", err)
	}
	return nil
}

func collectHistory(rows *sql.Rows) ([]HistoryEntry, error) {
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		h, err := scanHistoryRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return out, nil
}

func scanHistoryRow(row scanner) (*HistoryEntry, error) {
	var (
		h           HistoryEntry
		description sql.NullString
		dueDate     sql.NullTime
		critical    int
		rushed      int
		lootKey     sql.NullString
	)
	if err := row.Scan(
		&h.ID, &h.QuestID, &h.Name, &description, &h.Category, &h.BaseXP, &h.Priority, &dueDate,
		&h.CreatedAt, &h.CompletedAt, &h.XPEarned, &h.GoldEarned, &critical, &rushed, &lootKey,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("history scan: %w", err)
	}
	h.Critical = critical != 0
	h.Rushed = rushed != 0
	if description.Valid {
		v := description.String
		h.Description = &v
	}
	if dueDate.Valid {
		v := dueDate.Time
		h.DueDate = &v
	}
	if lootKey.Valid {
		v := lootKey.String
		h.LootKey = &v
	}
	return &h, nil
}
