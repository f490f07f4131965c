package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questforge/internal/engine"
	"questforge/internal/storage"
)

// noCrit never crits and never drops loot.
type noCrit struct{}

func (noCrit) Float64() float64 { return 0.99 }
func (noCrit) Intn(int) int     { return 0 }

func newTestBoard(t *testing.T) (boardModel, *engine.Session) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := engine.NewService(db,
		engine.WithClock(engine.NewFakeClock(time.Date(2026, 5, 1, 8, 0, 0, 0, time.Local))),
		engine.WithRoller(noCrit{}))
	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)
	return newBoardModel(ctx, svc, sess), sess
}

// step runs cmd synchronously and feeds its message back, like the runtime would.
func step(t *testing.T, m boardModel, cmd tea.Cmd) boardModel {
	t.Helper()
	require.NotNil(t, cmd)
	next, follow := m.Update(cmd())
	m = next.(boardModel)
	if follow != nil {
		next, _ = m.Update(follow())
		m = next.(boardModel)
	}
	return m
}

func press(m boardModel, key string) (boardModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(boardModel), cmd
}

func TestBoardCompleteAndUndo(t *testing.T) {
	m, sess := newTestBoard(t)
	ctx := context.Background()
	_, err := sess.CreateQuest(ctx, engine.CreateQuestInput{Name: "Low one", Priority: engine.PriorityLow, XP: 10})
	require.NoError(t, err)
	_, err = sess.CreateQuest(ctx, engine.CreateQuestInput{Name: "Urgent", Priority: engine.PriorityHigh, XP: 30})
	require.NoError(t, err)

	m = step(t, m, m.Init())
	require.Len(t, m.quests, 2)
	assert.Equal(t, "Urgent", m.quests[0].Name, "high priority first")

	m, _ = press(m, "down")
	assert.Equal(t, 1, m.selected)
	m, _ = press(m, "k")
	assert.Equal(t, 0, m.selected)

	m, cmd := press(m, "c")
	m = step(t, m, cmd)
	assert.Contains(t, m.lastLog, "+30 XP")
	require.Len(t, m.quests, 1)
	assert.Equal(t, 30, m.view.Player.TotalXP)

	m, cmd = press(m, "u")
	m = step(t, m, cmd)
	assert.Contains(t, m.lastLog, "Restored")
	assert.Len(t, m.quests, 2)

	m, cmd = press(m, "u")
	assert.Nil(t, cmd)
	assert.Equal(t, "Nothing to undo.", m.lastLog)
}

func TestBoardRushLocked(t *testing.T) {
	m, sess := newTestBoard(t)
	_, err := sess.CreateQuest(context.Background(), engine.CreateQuestInput{Name: "Essay"})
	require.NoError(t, err)
	m = step(t, m, m.Init())

	m, cmd := press(m, "R")
	next, follow := m.Update(cmd())
	m = next.(boardModel)
	assert.Nil(t, follow)
	assert.Contains(t, m.lastLog, "Chrono Tower")
	assert.Len(t, m.quests, 1)
	assert.Contains(t, m.View(), "Essay")
}

func TestBoardEmpty(t *testing.T) {
	m, _ := newTestBoard(t)
	m = step(t, m, m.Init())

	m, cmd := press(m, "c")
	assert.Nil(t, cmd)
	assert.Equal(t, "No quest selected.", m.lastLog)
	assert.Contains(t, m.View(), "(empty")
}
