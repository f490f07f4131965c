package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

const MainPlayerKey = "main_user"

type PlayerRepo struct {
	db DBTX
}

func NewPlayerRepo(db DBTX) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func (r *PlayerRepo) Get(ctx context.Context, key string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, level, xp, xp_to_next, gold, streak, last_completed_on,
			prestige_level, prestige_points, quests_completed, total_xp, total_gold_earned,
			skills, daily_focus, daily_rush_used, rested_xp, last_reset_date
		FROM player WHERE key = ?
	`, key)

	var (
		p         Player
		skillsRaw sql.NullString
		rushUsed  int
	)
	if err := row.Scan(
		&p.Key, &p.Level, &p.XP, &p.XPToNext, &p.Gold, &p.Streak, &p.LastCompletedOn,
		&p.PrestigeLevel, &p.PrestigePoints, &p.QuestsCompleted, &p.TotalXP, &p.TotalGoldEarned,
		&skillsRaw, &p.DailyFocus, &rushUsed, &p.RestedXP, &p.LastResetDate,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("player get: %w", err)
	}
	p.DailyRushUsed = rushUsed != 0

	p.Skills = map[string]int{}
	if skillsRaw.Valid && skillsRaw.String != "" {
		if err := json.Unmarshal([]byte(skillsRaw.String), &p.Skills); err != nil {
			return nil, fmt.Errorf("unmarshal skills: %w", err)
		}
	}
	return &p, nil
}

func (r *PlayerRepo) GetOrCreateMain(ctx context.Context) (*Player, error) {
	p, err := r.Get(ctx, MainPlayerKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO player (key) VALUES (?)`, MainPlayerKey); err != nil {
		return nil, fmt.Errorf("player insert: %w", err)
	}
	return r.Get(ctx, MainPlayerKey)
}

func (r *PlayerRepo) Update(ctx context.Context, p *Player) error {
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE player
		SET level = ?, xp = ?, xp_to_next = ?, gold = ?, streak = ?, last_completed_on = ?,
			prestige_level = ?, prestige_points = ?, quests_completed = ?, total_xp = ?,
			total_gold_earned = ?, skills = ?, daily_focus = ?, daily_rush_used = ?,
			rested_xp = ?, last_reset_date = ?
		WHERE key = ?
	`, p.Level, p.XP, p.XPToNext, p.Gold, p.Streak, p.LastCompletedOn,
		p.PrestigeLevel, p.PrestigePoints, p.QuestsCompleted, p.TotalXP,
		p.TotalGoldEarned, string(skills), p.DailyFocus, boolToInt(p.DailyRushUsed),
		p.RestedXP, p.LastResetDate, p.Key)
	if err != nil {
		return fmt.Errorf("player update: %w", err)
	}
	return nil
}
