package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Repos bundles every repository over one handle (a *sql.DB or an open *sql.Tx).
type Repos struct {
	Players      *PlayerRepo
	Quests       *QuestRepo
	History      *HistoryRepo
	Ledger       *LedgerRepo
	Inventory    *InventoryRepo
	Homestead    *HomesteadRepo
	Achievements *AchievementRepo
	Goals        *GoalRepo
}

func NewRepos(db DBTX) Repos {
	return Repos{
		Players:      NewPlayerRepo(db),
		Quests:       NewQuestRepo(db),
		History:      NewHistoryRepo(db),
		Ledger:       NewLedgerRepo(db),
		Inventory:    NewInventoryRepo(db),
		Homestead:    NewHomesteadRepo(db),
		Achievements: NewAchievementRepo(db),
		Goals:        NewGoalRepo(db),
	}
}

// WithTx runs fn inside a SQL transaction with repos bound to it.
// Any error from fn rolls back every write made through those repos.
func WithTx(ctx context.Context, db *sql.DB, fn func(r Repos) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
