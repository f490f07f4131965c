package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS player (
			key TEXT PRIMARY KEY,
			level INTEGER DEFAULT 1,
			xp INTEGER DEFAULT 0,
			xp_to_next INTEGER DEFAULT 100,
			gold INTEGER DEFAULT 0,
			streak INTEGER DEFAULT 0,
			last_completed_on TEXT DEFAULT '',
			prestige_level INTEGER DEFAULT 0,
			prestige_points INTEGER DEFAULT 0,
			quests_completed INTEGER DEFAULT 0,
			total_xp INTEGER DEFAULT 0,
			total_gold_earned INTEGER DEFAULT 0,
			skills TEXT,
			daily_focus TEXT DEFAULT '',
			daily_rush_used INTEGER DEFAULT 0,
			rested_xp INTEGER DEFAULT 0,
			last_reset_date TEXT DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			xp INTEGER NOT NULL,
			priority TEXT DEFAULT 'medium',
			due_date DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Append-only reward log; the quest snapshot lets restore re-insert the quest.
		`CREATE TABLE IF NOT EXISTS quest_history (
			id TEXT PRIMARY KEY,
			quest_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			base_xp INTEGER NOT NULL,
			priority TEXT NOT NULL,
			due_date DATETIME,
			created_at DATETIME NOT NULL,
			completed_at DATETIME NOT NULL,
			xp_earned INTEGER NOT NULL,
			gold_earned INTEGER NOT NULL,
			critical INTEGER DEFAULT 0,
			rushed INTEGER DEFAULT 0,
			loot_key TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS gold_transactions (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			amount INTEGER NOT NULL,
			description TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id TEXT PRIMARY KEY,
			item_key TEXT NOT NULL,
			equipped INTEGER DEFAULT 0,
			acquired_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS homestead (
			building TEXT PRIMARY KEY,
			level INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			unlocked_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS goals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			metric TEXT NOT NULL,
			target INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			completed_at DATETIME
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quest_history_quest_id ON quest_history(quest_id);`,
		`CREATE INDEX IF NOT EXISTS idx_quest_history_completed_at ON quest_history(completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_gold_transactions_created_at ON gold_transactions(created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already exists).
	alterStmts := []string{
		`ALTER TABLE quests ADD COLUMN description TEXT;`,
		`ALTER TABLE quest_history ADD COLUMN description TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	for _, b := range BuildingKeys {
		if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO homestead (building, level) VALUES (?, 0)`, b); err != nil {
			return fmt.Errorf("migrate seed homestead: %w", err)
		}
	}

	return nil
}
