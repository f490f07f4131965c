package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	var lockedToo bool

	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "Show unlocked achievements (--all for progress on the rest)",
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
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", engine.CountUnlocked(v.Achievements), len(v.Achievements))))
			loc := svc.Now().Location()
			for _, a := range v.Achievements {
				switch {
				case a.Unlocked():
					fmt.Fprintf(out, "%s %s %s\n", a.Icon, ui.RarityText(string(a.Rarity), a.Name),
						ui.Muted.Render(a.Description+", "+a.UnlockedAt.In(loc).Format("2006-01-02")))
				case lockedToo:
					fmt.Fprintf(out, "🔒 %s %s %s\n", ui.Dim.Render(a.Name), ui.ProgressBar(a.Progress, a.Target, 10),
						ui.Muted.Render(fmt.Sprintf("%d/%d %s", min(a.Progress, a.Target), a.Target, a.Description)))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&lockedToo, "all", "a", false, "Include locked achievements")
	return cmd
}
