package storage

import (
	"context"
	"fmt"
)

// LedgerRepo stores the append-only gold transaction log.
type LedgerRepo struct {
	db DBTX
}

func NewLedgerRepo(db DBTX) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func (r *LedgerRepo) Insert(ctx context.Context, t GoldTransaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gold_transactions (id, type, amount, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.ID, t.Type, t.Amount, t.Description, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("ledger insert: %w", err)
	}
	return nil
}

// List returns transactions newest first. limit <= 0 means no limit.
func (r *LedgerRepo) List(ctx context.Context, limit int) ([]GoldTransaction, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, amount, description, created_at
		FROM gold_transactions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger list: %w", err)
	}
	defer rows.Close()

	var out []GoldTransaction
	for rows.Next() {
		var t GoldTransaction
		if err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ledger scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger rows: %w", err)
	}
	return out, nil
}

func (r *LedgerRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM gold_transactions`); err != nil {
		return fmt.Errorf("ledger delete all: %w", err)
	}
	return nil
}
