package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// QuestRepo is the active quest registry. Completed quests live in quest_history.
type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

type QuestInsert struct {
	Name        string
	Description *string
	Category    string
	XP          int
	Priority    string
	DueDate     *time.Time
	CreatedAt   time.Time
}

func (r *QuestRepo) Insert(ctx context.Context, in QuestInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (name, description, category, xp, priority, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Description, in.Category, in.XP, in.Priority, in.DueDate, in.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("quest insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quest last insert id: %w", err)
	}
	return id, nil
}

// Reinsert puts a quest back into the registry under its original id.
func (r *QuestRepo) Reinsert(ctx context.Context, q Quest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (id, name, description, category, xp, priority, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.Name, q.Description, q.Category, q.XP, q.Priority, q.DueDate, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("quest reinsert: %w", err)
	}
	return nil
}

func (r *QuestRepo) Get(ctx context.Context, id int64) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, xp, priority, due_date, created_at
		FROM quests
		WHERE id = ?
	`, id)

	return scanQuestRow(row)
}

func (r *QuestRepo) ListActive(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, category, xp, priority, due_date, created_at
		FROM quests
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuestRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest list rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) Update(ctx context.Context, q Quest) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests
		SET name = ?, description = ?, category = ?, xp = ?, priority = ?, due_date = ?
		WHERE id = ?
	`, q.Name, q.Description, q.Category, q.XP, q.Priority, q.DueDate, q.ID)
	if err != nil {
		return fmt.Errorf("quest update: %w", err)
	}
	return nil
}

// Delete removes a quest and reports whether a row was actually removed.
// Completion relies on this to refuse a second grant for the same id.
func (r *QuestRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quests WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("quest delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("quest delete rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *QuestRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quests`); err != nil {
		return fmt.Errorf("quest delete all: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestRow(row scanner) (*Quest, error) {
	var (
		q           Quest
		description sql.NullString
		dueDate     sql.NullTime
	)

	if err := row.Scan(&q.ID, &q.Name, &description, &q.Category, &q.XP, &q.Priority, &dueDate, &q.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest scan: %w", err)
	}

	if description.Valid {
		v := description.String
		q.Description = &v
	}
	if dueDate.Valid {
		v := dueDate.Time
		q.DueDate = &v
	}
	return &q, nil
}
