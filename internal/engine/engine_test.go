package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questforge/internal/storage"
)

var day1 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

func newTestService(t *testing.T, rng Roller) (*Service, *FakeClock) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if rng == nil {
		rng = &scriptedRoller{}
	}
	clock := NewFakeClock(day1)
	return NewService(db, WithClock(clock), WithRoller(rng)), clock
}

func startSession(t *testing.T, svc *Service) *Session {
	t.Helper()
	sess, err := svc.StartSession(context.Background())
	require.NoError(t, err)
	return sess
}

func createQuest(t *testing.T, sess *Session, name, category string, xp int) int64 {
	t.Helper()
	res, err := sess.CreateQuest(context.Background(), CreateQuestInput{Name: name, Category: category, XP: xp})
	require.NoError(t, err)
	return res.QuestID
}

func setGold(t *testing.T, svc *Service, gold int) {
	t.Helper()
	ctx := context.Background()
	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	require.NoError(t, err)
	p.Gold = gold
	require.NoError(t, svc.PlayerRepo().Update(ctx, p))
}

func player(t *testing.T, svc *Service) *storage.Player {
	t.Helper()
	p, err := svc.PlayerRepo().GetOrCreateMain(context.Background())
	require.NoError(t, err)
	return p
}

func TestCreateQuestDefaults(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)

	id := createQuest(t, sess, "  Sweep the porch ", "", 0)
	q, err := svc.QuestRepo().Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "Sweep the porch", q.Name)
	assert.Equal(t, DefaultCategory, q.Category)
	assert.Equal(t, DefaultQuestXP, q.XP)
	assert.Equal(t, string(DefaultPriority), q.Priority)

	_, err = sess.CreateQuest(ctx, CreateQuestInput{Name: "   "})
	assert.Error(t, err)
	_, err = sess.CreateQuest(ctx, CreateQuestInput{Name: "Bad", XP: -5})
	assert.Error(t, err)
}

func TestUpdateQuest(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)
	id := createQuest(t, sess, "Read", "reading", 30)

	name := "Read two chapters"
	xp := 60
	prio := PriorityHigh
	q, err := sess.UpdateQuest(ctx, id, UpdateQuestInput{Name: &name, XP: &xp, Priority: &prio})
	require.NoError(t, err)
	assert.Equal(t, name, q.Name)
	assert.Equal(t, 60, q.XP)
	assert.Equal(t, "high", q.Priority)
	assert.Equal(t, "reading", q.Category)

	_, err = sess.UpdateQuest(ctx, 999, UpdateQuestInput{Name: &name})
	assert.ErrorIs(t, err, ErrQuestNotFound)
}

func TestCompleteQuestGrantsRewards(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)
	id := createQuest(t, sess, "Marathon", "fitness", 250)

	res, err := sess.CompleteQuest(ctx, id)
	require.NoError(t, err)
	require.False(t, res.Skipped)
	assert.Equal(t, 250, res.Reward.XP)
	assert.Equal(t, 25, res.Reward.Gold)
	assert.True(t, res.LevelUp)
	assert.Equal(t, 2, res.LevelAfter)
	assert.Equal(t, 1, res.Streak)
	assert.Nil(t, res.Loot)

	p := player(t, svc)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 150, p.XP)
	assert.Equal(t, 282, p.XPToNext)
	assert.Equal(t, 25, p.Gold)
	assert.Equal(t, 1, p.QuestsCompleted)
	assert.Equal(t, 1, p.Skills["fitness"])

	q, err := svc.QuestRepo().Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, q, "completed quest leaves the active registry")

	h, err := svc.HistoryRepo().LatestForQuest(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, 250, h.XPEarned)
	assert.Equal(t, 25, h.GoldEarned)

	ledger, err := svc.LedgerRepo().List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, string(TxQuestReward), ledger[0].Type)
	assert.Equal(t, 25, ledger[0].Amount)

	var ids []string
	for _, d := range res.NewAchievements {
		ids = append(ids, d.ID)
	}
	assert.Contains(t, ids, "first_quest")
}

func TestCompleteQuestTwiceIsSkipped(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)
	id := createQuest(t, sess, "Dishes", "chores", 40)

	_, err := sess.CompleteQuest(ctx, id)
	require.NoError(t, err)
	before := player(t, svc)

	res, err := sess.CompleteQuest(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Zero(t, res.Reward.XP)

	after := player(t, svc)
	assert.Equal(t, before.Gold, after.Gold)
	assert.Equal(t, before.TotalXP, after.TotalXP)
	assert.Equal(t, 1, after.QuestsCompleted)

	res, err = sess.CompleteQuest(ctx, 424242)
	require.NoError(t, err)
	assert.True(t, res.Skipped, "unknown ids are a no-op")
}

func TestRushRequiresChronoTowerAndOncePerDay(t *testing.T) {
	svc, clock := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)
	a := createQuest(t, sess, "Essay", "study", 100)
	b := createQuest(t, sess, "Laundry", "chores", 100)

	_, err := sess.RushQuest(ctx, a)
	var rushErr RushError
	require.ErrorAs(t, err, &rushErr)
	assert.Equal(t, RushNotBuilt, rushErr.Reason)
	q, err := svc.QuestRepo().Get(ctx, a)
	require.NoError(t, err)
	assert.NotNil(t, q, "a refused rush leaves the quest active")

	setGold(t, svc, 300)
	up, err := sess.UpgradeBuilding(ctx, "chrono")
	require.NoError(t, err)
	assert.Equal(t, 1, up.NewLevel)
	assert.Equal(t, 0, up.GoldLeft)

	res, err := sess.RushQuest(ctx, a)
	require.NoError(t, err)
	assert.True(t, res.Rushed)
	assert.Equal(t, 50, res.Reward.XP)
	assert.Equal(t, 5, res.Reward.Gold)

	_, err = sess.RushQuest(ctx, b)
	require.ErrorAs(t, err, &rushErr)
	assert.Equal(t, RushAlreadyUsed, rushErr.Reason)

	clock.Advance(24 * time.Hour)
	sess = startSession(t, svc)
	_, err = sess.RushQuest(ctx, b)
	assert.NoError(t, err, "rush is available again after the daily reset")
}

func TestUpgradeWithoutGoldChangesNothing(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)
	setGold(t, svc, 100)

	_, err := sess.UpgradeBuilding(ctx, "alchemist")
	var goldErr GoldError
	require.ErrorAs(t, err, &goldErr)
	assert.Equal(t, 200, goldErr.Need)
	assert.Equal(t, 100, goldErr.Have)

	assert.Equal(t, 100, player(t, svc).Gold)
	levels, err := svc.HomesteadRepo().Levels(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, levels["alchemist"])
	ledger, err := svc.LedgerRepo().List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ledger)

	setGold(t, svc, 500)
	res, err := sess.UpgradeBuilding(ctx, "alchemist")
	require.NoError(t, err)
	assert.Equal(t, 200, res.Cost)
	res, err = sess.UpgradeBuilding(ctx, "alchemist")
	require.NoError(t, err)
	assert.Equal(t, 300, res.Cost)
	assert.Equal(t, 0, res.GoldLeft)

	ledger, err = svc.LedgerRepo().List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	for _, tx := range ledger {
		assert.Equal(t, string(TxHomesteadUpgrade), tx.Type)
		assert.Negative(t, tx.Amount)
	}

	_, err = sess.UpgradeBuilding(ctx, "moat")
	assert.Error(t, err)
}

func TestSpendGold(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)
	setGold(t, svc, 50)

	left, err := sess.SpendGold(ctx, 30, "Movie night")
	require.NoError(t, err)
	assert.Equal(t, 20, left)

	_, err = sess.SpendGold(ctx, 30, "Another movie")
	assert.True(t, IsRejection(err))
	_, err = sess.SpendGold(ctx, 0, "")
	assert.Error(t, err)

	ledger, err := svc.LedgerRepo().List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, string(TxLeisureSpend), ledger[0].Type)
	assert.Equal(t, -30, ledger[0].Amount)
}

func TestDailyResetRunsOncePerDay(t *testing.T) {
	svc, clock := newTestService(t, nil)
	ctx := context.Background()
	require.NoError(t, svc.HomesteadRepo().SetLevel(ctx, "garden", 2))

	sess := startSession(t, svc)
	assert.True(t, sess.Daily.Applied)
	assert.Equal(t, 40, sess.Daily.RestedXP)

	again := startSession(t, svc)
	assert.False(t, again.Daily.Applied)

	id := createQuest(t, again, "Stretch", "fitness", 10)
	res, err := again.CompleteQuest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Reward.XP)
	assert.Equal(t, 40, res.Reward.RestedXPUsed)
	assert.Equal(t, 1, res.Reward.Gold)

	id = createQuest(t, again, "Stretch again", "fitness", 10)
	res, err = again.CompleteQuest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Reward.XP, "rested xp is spent once")

	clock.Advance(72 * time.Hour)
	next := startSession(t, svc)
	require.True(t, next.Daily.Applied)
	assert.Equal(t, 40, player(t, svc).RestedXP, "rested xp does not accumulate over missed days")
}

func TestStreakProgression(t *testing.T) {
	svc, clock := newTestService(t, nil)
	ctx := context.Background()

	complete := func() int {
		sess := startSession(t, svc)
		id := createQuest(t, sess, "Walk", "fitness", 10)
		res, err := sess.CompleteQuest(ctx, id)
		require.NoError(t, err)
		return res.Streak
	}

	assert.Equal(t, 1, complete())
	assert.Equal(t, 1, complete(), "same day keeps the streak")
	clock.Advance(24 * time.Hour)
	assert.Equal(t, 2, complete())
	clock.Advance(24 * time.Hour)
	assert.Equal(t, 3, complete())

	clock.Advance(72 * time.Hour)
	sess := startSession(t, svc)
	assert.True(t, sess.Daily.StreakBroken)
	assert.Equal(t, 0, player(t, svc).Streak)
	assert.Equal(t, 1, complete())
}

func TestStreakProtectionBridgesGap(t *testing.T) {
	svc, clock := newTestService(t, nil)
	ctx := context.Background()

	sess := startSession(t, svc)
	id := createQuest(t, sess, "Meditate", "mind", 10)
	_, err := sess.CompleteQuest(ctx, id)
	require.NoError(t, err)

	require.NoError(t, svc.InventoryRepo().Insert(ctx, storage.Item{
		ID: "feather-1", Key: "phoenix_feather", Equipped: true, AcquiredAt: clock.Now().UTC(),
	}))

	clock.Advance(72 * time.Hour)
	sess = startSession(t, svc)
	assert.True(t, sess.Daily.ProtectionUsed)
	assert.False(t, sess.Daily.StreakBroken)

	items, err := svc.InventoryRepo().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "the protection item is consumed")

	id = createQuest(t, sess, "Meditate", "mind", 10)
	res, err := sess.CompleteQuest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Streak)
}

func TestRestoreKeepsRewards(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)
	id := createQuest(t, sess, "Water plants", "home", 50)

	_, err := sess.CompleteQuest(ctx, id)
	require.NoError(t, err)
	gold := player(t, svc).Gold

	res, err := sess.RestoreQuest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, res.QuestID)

	q, err := svc.QuestRepo().Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "Water plants", q.Name)
	assert.Equal(t, 50, q.XP)
	assert.Equal(t, gold, player(t, svc).Gold)

	h, err := svc.HistoryRepo().LatestForQuest(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, h)

	_, err = sess.RestoreQuest(ctx, id)
	assert.Error(t, err, "restoring an active quest is refused")

	_, err = sess.CompleteQuest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2*gold, player(t, svc).Gold)

	_, err = sess.RestoreQuest(ctx, 777)
	assert.ErrorIs(t, err, ErrHistoryNotFound)
}

func TestDeleteQuestAndHistory(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)

	id := createQuest(t, sess, "Typo", "general", 10)
	require.NoError(t, sess.DeleteQuest(ctx, id))
	assert.ErrorIs(t, sess.DeleteQuest(ctx, id), ErrQuestNotFound)

	id = createQuest(t, sess, "Done", "general", 10)
	_, err := sess.CompleteQuest(ctx, id)
	require.NoError(t, err)
	require.NoError(t, sess.DeleteHistory(ctx, id))
	assert.ErrorIs(t, sess.DeleteHistory(ctx, id), ErrHistoryNotFound)
}

func TestLootDropAndEquipment(t *testing.T) {
	rng := &scriptedRoller{floats: []float64{0.99, 0.01}, ints: []int{0}}
	svc, clock := newTestService(t, rng)
	ctx := context.Background()
	sess := startSession(t, svc)

	id := createQuest(t, sess, "Study", "study", 10)
	res, err := sess.CompleteQuest(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, res.Loot)
	assert.Equal(t, "sage_tome", res.Loot.Key)

	h, err := svc.HistoryRepo().LatestForQuest(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, h.LootKey)
	assert.Equal(t, "sage_tome", *h.LootKey)

	view, err := sess.Equip(ctx, res.LootItemID[:8])
	require.NoError(t, err)
	assert.True(t, view.Item.Equipped)

	for i, key := range []string{"lucky_coin", "runners_band", "sage_tome"} {
		require.NoError(t, svc.InventoryRepo().Insert(ctx, storage.Item{
			ID: key + "-extra", Key: key, AcquiredAt: clock.Now().UTC().Add(time.Duration(i) * time.Second),
		}))
	}
	_, err = sess.Equip(ctx, "lucky_coin-extra")
	require.NoError(t, err)
	_, err = sess.Equip(ctx, "runners_band-extra")
	require.NoError(t, err)

	_, err = sess.Equip(ctx, "sage_tome-extra")
	var full InventoryFullError
	require.ErrorAs(t, err, &full)
	assert.Equal(t, MaxEquipped, full.Slots)

	_, err = sess.Unequip(ctx, "lucky_coin-extra")
	require.NoError(t, err)
	_, err = sess.Equip(ctx, "sage_tome-extra")
	assert.NoError(t, err)

	_, err = sess.Equip(ctx, "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestNoLootWhenRollMisses(t *testing.T) {
	svc, _ := newTestService(t, &scriptedRoller{floats: []float64{0.99, 0.5}})
	ctx := context.Background()
	sess := startSession(t, svc)

	res, err := sess.CompleteQuest(ctx, createQuest(t, sess, "Cook", "home", 10))
	require.NoError(t, err)
	assert.Nil(t, res.Loot)
	items, err := svc.InventoryRepo().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDailyFocusBoostsCategory(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)

	focus, err := sess.SetDailyFocus(ctx, " Fitness ")
	require.NoError(t, err)
	assert.Equal(t, "fitness", focus)

	res, err := sess.CompleteQuest(ctx, createQuest(t, sess, "Run", "fitness", 100))
	require.NoError(t, err)
	assert.Equal(t, 125, res.Reward.XP)

	res, err = sess.CompleteQuest(ctx, createQuest(t, sess, "Read", "reading", 100))
	require.NoError(t, err)
	assert.Equal(t, 100, res.Reward.XP)
}

func TestPrestige(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)

	_, err := sess.Prestige(ctx)
	var gate GateError
	require.ErrorAs(t, err, &gate)
	assert.Equal(t, LevelPrestige, gate.RequiredLevel)

	p := player(t, svc)
	p.Level = 21
	p.XP = 40
	p.Gold = 75
	require.NoError(t, svc.PlayerRepo().Update(ctx, p))

	res, err := sess.Prestige(ctx)
	require.NoError(t, err)
	assert.Equal(t, 21, res.FromLevel)
	assert.Equal(t, 2, res.PointsGained)

	p = player(t, svc)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 100, p.XPToNext)
	assert.Equal(t, 75, p.Gold)
	assert.Equal(t, 1, p.PrestigeLevel)
	assert.Equal(t, 2, p.PrestigePoints)
}

func TestResetKeepsAchievements(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)

	_, err := sess.CompleteQuest(ctx, createQuest(t, sess, "Jog", "fitness", 300))
	require.NoError(t, err)
	createQuest(t, sess, "Pending", "general", 10)
	require.NoError(t, svc.HomesteadRepo().SetLevel(ctx, "garden", 1))

	require.NoError(t, sess.ResetProgress(ctx))

	view, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Player.Level)
	assert.Zero(t, view.Player.Gold)
	assert.Zero(t, view.Player.QuestsCompleted)
	assert.Empty(t, view.Quests)
	assert.Zero(t, view.Homestead["garden"])
	assert.Equal(t, LocalDate(day1), view.Player.LastResetDate)

	for _, a := range view.Achievements {
		if a.ID == "first_quest" {
			assert.True(t, a.Unlocked(), "achievements are permanent")
			assert.Zero(t, a.Progress)
		}
	}
}

func TestGoalsComplete(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)

	g, err := sess.AddGoal(ctx, "Two quests", MetricQuestsCompleted, 2)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.False(t, g.Done())

	res, err := sess.CompleteQuest(ctx, createQuest(t, sess, "One", "general", 10))
	require.NoError(t, err)
	assert.Empty(t, res.GoalsCompleted)

	res, err = sess.CompleteQuest(ctx, createQuest(t, sess, "Two", "general", 10))
	require.NoError(t, err)
	assert.Equal(t, []int64{g.Goal.ID}, res.GoalsCompleted)

	_, err = sess.AddGoal(ctx, "Bad", Metric("karma"), 1)
	assert.Error(t, err)

	require.NoError(t, sess.DeleteGoal(ctx, g.Goal.ID))
	assert.ErrorIs(t, sess.DeleteGoal(ctx, g.Goal.ID), ErrGoalNotFound)
}

func TestSnapshotCountsToday(t *testing.T) {
	svc, clock := newTestService(t, nil)
	ctx := context.Background()
	sess := startSession(t, svc)

	for i := 0; i < 3; i++ {
		_, err := sess.CompleteQuest(ctx, createQuest(t, sess, "Chore", "home", 10))
		require.NoError(t, err)
	}
	view, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, view.CompletedToday)

	clock.Advance(24 * time.Hour)
	view, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, view.CompletedToday)
}
