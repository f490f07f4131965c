package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newPrestigeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "prestige",
		Short: fmt.Sprintf("Reset to level 1 for permanent reward bonuses (level %d+)", engine.LevelPrestige),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			if !yes {
				p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
				if err != nil {
					return err
				}
				if err := engine.CanPrestige(p.Level); err != nil {
					return err
				}
				fmt.Fprintf(out, "Prestige now for %d point(s) (+%.0f%% XP and gold each). Level and XP go back to 1/0.\n",
					engine.PrestigePointsForLevel(p.Level), engine.PrestigeBonusPerPoint*100)
				return errNeedConfirm
			}

			res, err := sess.Prestige(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s level %d → 1, +%d point(s) %s\n",
				ui.Gold.Render(ui.IconStar+" Prestige "+fmt.Sprint(res.PrestigeLevel)), res.FromLevel, res.PointsGained,
				ui.Muted.Render(fmt.Sprintf("(%d total)", res.TotalPoints)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm")
	return cmd
}
