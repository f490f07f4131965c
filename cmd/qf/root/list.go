package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List active quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc, _, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.QuestRepo().ListActive(ctx)
			if err != nil {
				return err
			}
			if c := strings.TrimSpace(strings.ToLower(category)); c != "" {
				kept := quests[:0]
				for _, q := range quests {
					if q.Category == c {
						kept = append(kept, q)
					}
				}
				quests = kept
			}
			engine.SortQuests(quests)

			fmt.Fprintln(out, ui.Heading(ui.IconQuest, fmt.Sprintf("Active quests (%d)", len(quests))))
			if len(quests) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing to do. Add one with: qf add \"Quest name\""))
				return nil
			}
			now := svc.Now()
			for _, q := range quests {
				line := fmt.Sprintf("%s %s %s %s",
					ui.Key.Render(fmt.Sprintf("#%-4d", q.ID)),
					q.Name,
					ui.Muted.Render(fmt.Sprintf("[%s] %d XP", q.Category, q.XP)),
					ui.PriorityText(q.Priority))
				if q.DueDate != nil {
					due := q.DueDate.In(now.Location())
					label := "due " + due.Format("2006-01-02")
					if due.Before(now) {
						line += " " + ui.Bad.Render(label)
					} else {
						line += " " + ui.Muted.Render(label)
					}
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show this category")
	return cmd
}
