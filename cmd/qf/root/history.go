package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently completed quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc, _, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.HistoryRepo().ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Quest log"))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No completed quests yet."))
				return nil
			}
			loc := svc.Now().Location()
			for _, h := range entries {
				line := fmt.Sprintf("%s #%-4d %s %s %s",
					ui.Muted.Render(h.CompletedAt.In(loc).Format("2006-01-02 15:04")),
					h.QuestID, h.Name,
					ui.Good.Render(fmt.Sprintf("+%d XP", h.XPEarned)),
					ui.Coins(h.GoldEarned))
				if h.Critical {
					line += " " + ui.IconCrit
				}
				if h.Rushed {
					line += " " + ui.IconBolt
				}
				if h.LootKey != nil {
					line += " " + ui.IconGem
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries")
	return cmd
}
