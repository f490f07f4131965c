package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats, bonuses and today's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc, _, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			p := v.Player

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render("XP:"), ui.ProgressBar(p.XP, p.XPToNext, 20),
				ui.Muted.Render(fmt.Sprintf("%d/%d (%d lifetime)", p.XP, p.XPToNext, p.TotalXP)))
			fmt.Fprintln(out, ui.LabelValue("Gold", ui.Coins(p.Gold)))
			fmt.Fprintln(out, ui.LabelValue(ui.IconFire+" Streak", fmt.Sprintf("%d day(s)", p.Streak)))
			fmt.Fprintln(out, ui.LabelValue("Quests completed", fmt.Sprintf("%d (%d today)", p.QuestsCompleted, v.CompletedToday)))
			if p.PrestigeLevel > 0 {
				fmt.Fprintln(out, ui.LabelValue(ui.IconStar+" Prestige", fmt.Sprintf("%d (%d points, +%.0f%% rewards)",
					p.PrestigeLevel, p.PrestigePoints, float64(p.PrestigePoints)*engine.PrestigeBonusPerPoint*100)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("☀️ Today"))
			focus := ui.Muted.Render("none (qf focus <category>)")
			if p.DailyFocus != "" {
				focus = ui.Good.Render(p.DailyFocus) + ui.Muted.Render(fmt.Sprintf(" x%.2f XP", engine.DailyFocusMultiplier))
			}
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Focus:"), focus)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Rested XP:"), p.RestedXP)
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Rush:"), rushStr(v.Bonuses, p.DailyRushUsed))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconHome+" Bonuses"))
			fmt.Fprintf(out, "- %s %.0f%%\n", ui.Key.Render("Critical chance:"), v.Bonuses.CritChance*100)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Daily rested XP:"), v.Bonuses.DailyRestedXP)
			if eq := v.Equipped(); len(eq) > 0 {
				for _, it := range eq {
					fmt.Fprintf(out, "- %s %s\n", ui.RarityText(string(it.Def.Rarity), it.Def.Name), ui.Muted.Render(it.Def.Describe()))
				}
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.LabelValue(ui.IconTrophy+" Achievements", fmt.Sprintf("%d/%d", engine.CountUnlocked(v.Achievements), len(v.Achievements))))
			if p.Level >= engine.LevelPrestige {
				fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s Prestige available: qf prestige (+%d points)", ui.IconStar, engine.PrestigePointsForLevel(p.Level))))
			}
			return nil
		},
	}

	return cmd
}

func rushStr(b engine.HomesteadBonuses, used bool) string {
	switch err := engine.CanRush(b, used); {
	case err == nil:
		return ui.Good.Render("ready")
	case used && b.RushAvailable:
		return ui.Muted.Render("used today")
	default:
		return ui.Bad.Render("locked") + ui.Muted.Render(" (build the Chrono Tower)")
	}
}
