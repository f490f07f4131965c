package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Questforge theme (CLI + TUI).
// Reusable styles and a few emojis.

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBox     = "📦"
	IconUndo    = "↩️"
	IconScroll  = "📜"
	IconGold    = "🪙"
	IconCrit    = "💥"
	IconFire    = "🔥"
	IconHome    = "🏡"
	IconGem     = "💎"
	IconTarget  = "🎯"
	IconStar    = "🌟"
	IconCoach   = "🧙"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cRare    = lipgloss.Color("39")  // sky
	cEpic    = lipgloss.Color("135") // purple
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp  = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeCritical = lipgloss.NewStyle().Bold(true).Foreground(cBad).Render("CRITICAL")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func PriorityText(priority string) string {
	p := strings.ToLower(strings.TrimSpace(priority))
	switch p {
	case "high":
		return Bad.Render("high")
	case "medium":
		return Warn.Render("medium")
	case "low":
		return Muted.Render("low")
	default:
		return Muted.Render(priority)
	}
}

// RarityText colors text by item or achievement rarity.
func RarityText(rarity string, text string) string {
	switch strings.ToLower(rarity) {
	case "rare":
		return lipgloss.NewStyle().Bold(true).Foreground(cRare).Render(text)
	case "epic":
		return lipgloss.NewStyle().Bold(true).Foreground(cEpic).Render(text)
	case "legendary":
		return Gold.Render(text)
	default:
		return text
	}
}

// ProgressBar renders cur/max as a fixed-width bar of block characters.
func ProgressBar(cur, max, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if max > 0 && cur > 0 {
		filled = cur * width / max
	}
	if filled > width {
		filled = width
	}
	return Good.Render(strings.Repeat("█", filled)) + Dim.Render(strings.Repeat("░", width-filled))
}

func Coins(n int) string {
	return Gold.Render(fmt.Sprintf("%s %d", IconGold, n))
}
