package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"questforge/internal/storage"
)

type Service struct {
	db    *sql.DB
	repos storage.Repos
	clock Clock
	rng   Roller
	log   *zap.Logger
}

type Option func(*Service)

func WithClock(c Clock) Option { return func(s *Service) { s.clock = c } }

func WithRoller(r Roller) Option { return func(s *Service) { s.rng = r } }

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:    db,
		repos: storage.NewRepos(db),
		clock: RealClock{},
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRoller(time.Now().UnixNano())
	}
	return s
}

func (s *Service) PlayerRepo() *storage.PlayerRepo       { return s.repos.Players }
func (s *Service) QuestRepo() *storage.QuestRepo         { return s.repos.Quests }
func (s *Service) HistoryRepo() *storage.HistoryRepo     { return s.repos.History }
func (s *Service) LedgerRepo() *storage.LedgerRepo       { return s.repos.Ledger }
func (s *Service) InventoryRepo() *storage.InventoryRepo { return s.repos.Inventory }
func (s *Service) HomesteadRepo() *storage.HomesteadRepo { return s.repos.Homestead }

func (s *Service) Now() time.Time { return s.clock.Now() }

// Session is the only holder of mutating operations. It can only be obtained from
// StartSession, so the daily cycle has always run before a completion can read
// rested xp or the rush flag.
type Session struct {
	svc   *Service
	mu    sync.Mutex
	Daily DailyResetResult
}

// StartSession runs the daily cycle once and returns the session gate.
func (s *Service) StartSession(ctx context.Context) (*Session, error) {
	now := s.clock.Now()
	cal := calendarAt(now)

	var res DailyResetResult
	err := storage.WithTx(ctx, s.db, func(r storage.Repos) error {
		p, err := r.Players.GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		levels, err := r.Homestead.Levels(ctx)
		if err != nil {
			return err
		}
		items, err := r.Inventory.List(ctx)
		if err != nil {
			return err
		}
		protector := firstEquipped(items, ItemStreakProtection)

		res = applyDailyReset(p, Bonuses(levels), cal, protector != nil)
		if !res.Applied {
			return nil
		}
		if res.ProtectionUsed {
			if err := r.Inventory.Delete(ctx, protector.ID); err != nil {
				return err
			}
		}
		return r.Players.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	if res.Applied {
		s.log.Info("daily reset applied",
			zap.String("date", res.Date),
			zap.Int("rested_xp", res.RestedXP),
			zap.Bool("streak_broken", res.StreakBroken),
			zap.Bool("protection_used", res.ProtectionUsed))
	}
	return &Session{svc: s, Daily: res}, nil
}

// ItemView pairs an owned item with its loot definition.
type ItemView struct {
	Item storage.Item
	Def  LootDef
}

// View is a read-only snapshot of everything a dashboard shows.
type View struct {
	Player         *storage.Player
	Quests         []storage.Quest
	Inventory      []ItemView
	Homestead      map[string]int
	Bonuses        HomesteadBonuses
	Achievements   []Achievement
	Goals          []GoalProgress
	CompletedToday int
}

func (v *View) Equipped() []ItemView {
	var out []ItemView
	for _, it := range v.Inventory {
		if it.Item.Equipped {
			out = append(out, it)
		}
	}
	return out
}

// Snapshot loads the current state without mutating anything.
func (s *Service) Snapshot(ctx context.Context) (*View, error) {
	r := s.repos
	p, err := r.Players.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	quests, err := r.Quests.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	levels, err := r.Homestead.Levels(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.completedToday(ctx, r)
	if err != nil {
		return nil, err
	}
	unlocked, err := r.Achievements.Unlocked(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := r.Goals.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	stats := StatsFor(p, today)
	achievements, _ := EvaluateAchievements(AchievementDefs, stats, unlocked, now)
	goalViews, _ := EvaluateGoals(goals, stats, now)

	return &View{
		Player:         p,
		Quests:         quests,
		Inventory:      itemViews(items),
		Homestead:      levels,
		Bonuses:        Bonuses(levels),
		Achievements:   achievements,
		Goals:          goalViews,
		CompletedToday: today,
	}, nil
}

func (s *Service) completedToday(ctx context.Context, r storage.Repos) (int, error) {
	start, end := dayBounds(s.clock.Now())
	entries, err := r.History.ListSince(ctx, start)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, h := range entries {
		if h.CompletedAt.Before(end) {
			n++
		}
	}
	return n, nil
}

// progressUpdate is what re-evaluating achievements and goals produced.
type progressUpdate struct {
	Achievements []AchievementDef
	Goals        []int64
}

// evaluateProgress re-projects achievements and goals from p and persists new unlocks.
func (s *Service) evaluateProgress(ctx context.Context, r storage.Repos, p *storage.Player, now time.Time) (progressUpdate, error) {
	var out progressUpdate

	today, err := s.completedToday(ctx, r)
	if err != nil {
		return out, err
	}
	stats := StatsFor(p, today)

	unlocked, err := r.Achievements.Unlocked(ctx)
	if err != nil {
		return out, err
	}
	_, newly := EvaluateAchievements(AchievementDefs, stats, unlocked, now)
	for _, id := range newly {
		if err := r.Achievements.Unlock(ctx, id, now.UTC()); err != nil {
			return out, err
		}
		for _, d := range AchievementDefs {
			if d.ID == id {
				out.Achievements = append(out.Achievements, d)
			}
		}
	}

	goals, err := r.Goals.List(ctx)
	if err != nil {
		return out, err
	}
	_, done := EvaluateGoals(goals, stats, now)
	for _, id := range done {
		if err := r.Goals.MarkCompleted(ctx, id, now.UTC()); err != nil {
			return out, err
		}
	}
	out.Goals = done
	return out, nil
}

func itemViews(items []storage.Item) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		def, ok := LootByKey(it.Key)
		if !ok {
			// Unknown keys come from a newer build; keep them visible but inert.
			def = LootDef{Key: it.Key, Name: it.Key}
		}
		out = append(out, ItemView{Item: it, Def: def})
	}
	return out
}

func equippedDefs(items []storage.Item) []LootDef {
	var out []LootDef
	for _, v := range itemViews(items) {
		if v.Item.Equipped {
			out = append(out, v.Def)
		}
	}
	return out
}

func firstEquipped(items []storage.Item, t ItemType) *storage.Item {
	for i := range items {
		if !items[i].Equipped {
			continue
		}
		if def, ok := LootByKey(items[i].Key); ok && def.Type == t {
			return &items[i]
		}
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("name is required")
	}
	return t, nil
}

func normalizeCategory(category string) string {
	c := strings.TrimSpace(strings.ToLower(category))
	if c == "" {
		return DefaultCategory
	}
	return c
}
