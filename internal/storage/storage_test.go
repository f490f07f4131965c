package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) Repos {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepos(db)
}

func TestPlayerRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := openTestDB(t)

	p, err := r.Players.GetOrCreateMain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 100, p.XPToNext)
	assert.Empty(t, p.Skills)

	p.Gold = 42
	p.Skills["fitness"] = 3
	p.DailyRushUsed = true
	p.LastResetDate = "2026-10-19"
	require.NoError(t, r.Players.Update(ctx, p))

	got, err := r.Players.GetOrCreateMain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, got.Gold)
	assert.Equal(t, 3, got.Skills["fitness"])
	assert.True(t, got.DailyRushUsed)
	assert.Equal(t, "2026-10-19", got.LastResetDate)
}

func TestQuestDeleteReportsRemoval(t *testing.T) {
	ctx := context.Background()
	r := openTestDB(t)

	id, err := r.Quests.Insert(ctx, QuestInsert{Name: "Run", Category: "fitness", XP: 50, Priority: "high", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	removed, err := r.Quests.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.Quests.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, removed)

	q, err := r.Quests.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestQuestReinsertKeepsID(t *testing.T) {
	ctx := context.Background()
	r := openTestDB(t)

	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	id, err := r.Quests.Insert(ctx, QuestInsert{Name: "Read", Category: "study", XP: 20, Priority: "low", CreatedAt: created})
	require.NoError(t, err)
	q, err := r.Quests.Get(ctx, id)
	require.NoError(t, err)

	_, err = r.Quests.Delete(ctx, id)
	require.NoError(t, err)
	require.NoError(t, r.Quests.Reinsert(ctx, *q))

	back, err := r.Quests.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.Equal(t, "Read", back.Name)
	assert.True(t, created.Equal(back.CreatedAt))
}

func TestInventoryFindByPrefix(t *testing.T) {
	ctx := context.Background()
	r := openTestDB(t)
	now := time.Now().UTC()

	require.NoError(t, r.Inventory.Insert(ctx, Item{ID: "abc123", Key: "sage_tome", AcquiredAt: now}))
	require.NoError(t, r.Inventory.Insert(ctx, Item{ID: "abd456", Key: "lucky_coin", AcquiredAt: now}))

	it, err := r.Inventory.FindByPrefix(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, "sage_tome", it.Key)

	_, err = r.Inventory.FindByPrefix(ctx, "ab")
	assert.Error(t, err)

	it, err = r.Inventory.FindByPrefix(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, it)
}

func TestAchievementUnlockIsFirstWriteWins(t *testing.T) {
	ctx := context.Background()
	r := openTestDB(t)

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Achievements.Unlock(ctx, "first_quest", first))
	require.NoError(t, r.Achievements.Unlock(ctx, "first_quest", first.Add(48*time.Hour)))

	got, err := r.Achievements.Unlocked(ctx)
	require.NoError(t, err)
	assert.True(t, first.Equal(got["first_quest"]))
}

func TestHomesteadSeeded(t *testing.T) {
	ctx := context.Background()
	r := openTestDB(t)

	levels, err := r.Homestead.Levels(ctx)
	require.NoError(t, err)
	assert.Len(t, levels, 4)
	assert.Equal(t, 0, levels["garden"])

	require.NoError(t, r.Homestead.SetLevel(ctx, "garden", 2))
	levels, err = r.Homestead.Levels(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, levels["garden"])
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(r Repos) error {
		if _, err := r.Quests.Insert(ctx, QuestInsert{Name: "x", Category: "c", XP: 1, Priority: "low", CreatedAt: time.Now().UTC()}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	quests, err := NewQuestRepo(db).ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, quests)
}
