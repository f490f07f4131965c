package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type GoalRepo struct {
	db DBTX
}

func NewGoalRepo(db DBTX) *GoalRepo {
	return &GoalRepo{db: db}
}

func (r *GoalRepo) Insert(ctx context.Context, g Goal) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (name, metric, target, created_at)
		VALUES (?, ?, ?, ?)
	`, g.Name, g.Metric, g.Target, g.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("goal insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("goal last insert id: %w", err)
	}
	return id, nil
}

func (r *GoalRepo) List(ctx context.Context) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, metric, target, created_at, completed_at
		FROM goals
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("goal list: %w", err)
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		var (
			g         Goal
			completed sql.NullTime
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Metric, &g.Target, &g.CreatedAt, &completed); err != nil {
			return nil, fmt.Errorf("goal scan: %w", err)
		}
		if completed.Valid {
			v := completed.Time
			g.CompletedAt = &v
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal rows: %w", err)
	}
	return out, nil
}

// MarkCompleted stamps a goal once; an already completed goal keeps its timestamp.
func (r *GoalRepo) MarkCompleted(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE goals SET completed_at = ? WHERE id = ? AND completed_at IS NULL`, at, id)
	if err != nil {
		return fmt.Errorf("goal mark completed: %w", err)
	}
	return nil
}

func (r *GoalRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("goal delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("goal delete rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *GoalRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return fmt.Errorf("goal delete all: %w", err)
	}
	return nil
}
