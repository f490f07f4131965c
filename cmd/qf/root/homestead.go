package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newHomesteadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "homestead",
		Short: "Show your buildings and their upgrade costs",
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
			fmt.Fprintln(out, ui.Heading(ui.IconHome, "Homestead"))
			fmt.Fprintln(out, ui.LabelValue("Gold", ui.Coins(v.Player.Gold)))
			for _, b := range engine.Buildings {
				lvl := v.Homestead[string(b.Building)]
				cost := engine.UpgradeCost(b, lvl)
				costStr := ui.Muted.Render(fmt.Sprintf("next: %d gold", cost))
				if cost <= v.Player.Gold {
					costStr = ui.Good.Render(fmt.Sprintf("next: %d gold", cost))
				}
				fmt.Fprintf(out, "- %s %s %s %s\n",
					ui.Key.Render(fmt.Sprintf("%-16s", b.Name)),
					fmt.Sprintf("lvl %d", lvl),
					costStr,
					ui.Muted.Render(fmt.Sprintf("(%s) %s", b.Building, b.Description)))
			}
			return nil
		},
	}

	cmd.AddCommand(newUpgradeCmd())
	return cmd
}

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <building>",
		Short: "Spend gold to upgrade a building (alchemist|chrono|garden|guild)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("building is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			_, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			def, err := engine.ParseBuilding(args[0])
			if err != nil {
				return err
			}
			res, err := sess.UpgradeBuilding(ctx, string(def.Building))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s is now level %d %s\n",
				ui.Good.Render(ui.IconHome+" Upgraded"), res.Building.Name, res.NewLevel,
				ui.Muted.Render(fmt.Sprintf("(-%d gold, %d left)", res.Cost, res.GoldLeft)))
			return nil
		},
	}
}
