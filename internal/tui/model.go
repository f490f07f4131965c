package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"questforge/internal/engine"
	"questforge/internal/storage"
	"questforge/internal/ui"
)

type boardModel struct {
	ctx  context.Context
	svc  *engine.Service
	sess *engine.Session

	width  int
	height int

	view   *engine.View
	quests []storage.Quest

	selected int
	// lastDone is the quest the undo key restores.
	lastDone int64

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	view *engine.View
	err  error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

type restoredMsg struct {
	res *engine.RestoreResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, sess *engine.Session) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		sess:    sess,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		v, err := m.svc.Snapshot(m.ctx)
		return loadedMsg{view: v, err: err}
	}
}

func (m boardModel) completeCmd(id int64, rush bool) tea.Cmd {
	return func() tea.Msg {
		var res *engine.CompleteResult
		var err error
		if rush {
			res, err = m.sess.RushQuest(m.ctx, id)
		} else {
			res, err = m.sess.CompleteQuest(m.ctx, id)
		}
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) restoreCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.sess.RestoreQuest(m.ctx, id)
		return restoredMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.view = msg.view
		m.quests = append([]storage.Quest(nil), msg.view.Quests...)
		engine.SortQuests(m.quests)
		m.clampSelection()
		if m.lastLog == "Loaded." || strings.HasPrefix(m.lastLog, "Refresh") {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", m.svc.Now().Format("15:04:05"))
		}
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = actionError("Complete", msg.err)
			return m, nil
		}
		m.lastLog = completionLog(msg.res)
		if !msg.res.Skipped {
			m.lastDone = msg.id
		}
		return m, m.loadCmd()
	case restoredMsg:
		if msg.err != nil {
			m.lastLog = actionError("Restore", msg.err)
			return m, nil
		}
		m.lastDone = 0
		m.lastLog = fmt.Sprintf("Restored #%d %s.", msg.res.QuestID, msg.res.Name)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.quests)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			q := m.current()
			if q == nil {
				m.lastLog = "No quest selected."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing #%d…", q.ID)
			return m, m.completeCmd(q.ID, false)
		case "R":
			q := m.current()
			if q == nil {
				m.lastLog = "No quest selected."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Rushing #%d…", q.ID)
			return m, m.completeCmd(q.ID, true)
		case "u":
			if m.lastDone == 0 {
				m.lastLog = "Nothing to undo."
				return m, nil
			}
			return m, m.restoreCmd(m.lastDone)
		}
	}
	return m, nil
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.quests) {
		m.selected = len(m.quests) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) current() *storage.Quest {
	if m.selected < 0 || m.selected >= len(m.quests) {
		return nil
	}
	return &m.quests[m.selected]
}

func actionError(action string, err error) string {
	if engine.IsRejection(err) {
		return err.Error()
	}
	return action + " failed: " + err.Error()
}

func completionLog(res *engine.CompleteResult) string {
	if res.Skipped {
		return fmt.Sprintf("#%d is no longer active.", res.QuestID)
	}
	s := fmt.Sprintf("Completed #%d: +%d XP, +%d gold", res.QuestID, res.Reward.XP, res.Reward.Gold)
	if res.Reward.Critical {
		s += " (critical!)"
	}
	if res.LevelUp {
		s += fmt.Sprintf(", level %d → %d", res.LevelBefore, res.LevelAfter)
	}
	if res.Loot != nil {
		s += ", loot: " + res.Loot.Name
	}
	for _, a := range res.NewAchievements {
		s += ", " + a.Icon + " " + a.Name
	}
	return s
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	leftW := 30
	if m.width > 0 {
		leftW = min(leftW, m.width/2)
		leftW = max(leftW, 18)
	}
	sidebar := ui.Panel.Width(leftW).Render(m.renderSidebar())
	main := ui.Panel.Render(m.renderMain())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m boardModel) renderHeader() string {
	if m.view == nil {
		return ui.Title.Render("Questforge") + " | loading…"
	}
	p := m.view.Player
	return ui.Title.Render("Questforge") + fmt.Sprintf(" | Level %d | XP %d/%d %s | Gold %d | Streak %d",
		p.Level, p.XP, p.XPToNext, ui.ProgressBar(p.XP, p.XPToNext, 24), p.Gold, p.Streak)
}

func (m boardModel) renderSidebar() string {
	if m.view == nil {
		return "Stats\n\nLoading…"
	}
	v := m.view
	p := v.Player
	lines := []string{ui.PanelTitle.Render("Today")}
	focus := "-"
	if p.DailyFocus != "" {
		focus = p.DailyFocus
	}
	lines = append(lines, "- focus: "+focus)
	lines = append(lines, fmt.Sprintf("- rested xp: %d", p.RestedXP))
	lines = append(lines, "- rush: "+rushState(v.Bonuses, p.DailyRushUsed))
	lines = append(lines, fmt.Sprintf("- done today: %d", v.CompletedToday))
	lines = append(lines, "")

	lines = append(lines, ui.PanelTitle.Render("Equipped"))
	eq := v.Equipped()
	if len(eq) == 0 {
		lines = append(lines, "- (none)")
	}
	for _, it := range eq {
		lines = append(lines, "- "+it.Def.Name)
	}
	lines = append(lines, "")

	lines = append(lines, ui.PanelTitle.Render("Homestead"))
	for _, b := range engine.Buildings {
		lines = append(lines, fmt.Sprintf("- %s L%d", b.Name, v.Homestead[string(b.Building)]))
	}
	lines = append(lines, "")

	lines = append(lines, ui.PanelTitle.Render("Keys"))
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- R: rush")
	lines = append(lines, "- u: undo last")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func rushState(b engine.HomesteadBonuses, used bool) string {
	switch {
	case !b.RushAvailable:
		return "locked"
	case used:
		return "used"
	default:
		return "ready"
	}
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{ui.PanelTitle.Render(fmt.Sprintf("Quests (%d)", len(m.quests)))}
	if len(m.quests) == 0 {
		out = append(out, "(empty, add one with qf add)")
		return strings.Join(out, "\n")
	}
	for i, q := range m.quests {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s#%-4d %s [%s] %dxp %s", cursor, q.ID, q.Name, q.Category, q.XP, q.Priority)
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return ui.Muted.Render(m.lastLog)
}
