package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var xp int
	var priority string
	var desc string
	var due string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			dueDate, err := engine.ParseDueDate(due, svc.Now())
			if err != nil {
				return err
			}
			res, err := sess.CreateQuest(ctx, engine.CreateQuestInput{
				Name:        strings.Join(args, " "),
				Description: desc,
				Category:    category,
				XP:          xp,
				Priority:    engine.ParsePriority(priority),
				DueDate:     dueDate,
			})
			if err != nil {
				return err
			}
			q, err := svc.QuestRepo().Get(ctx, res.QuestID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s #%d %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"), q.ID, q.Name,
				ui.Muted.Render(fmt.Sprintf("(%s, %d XP, %s)", q.Category, q.XP, q.Priority)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", engine.DefaultCategory, "Category (fitness, reading, chores, ...)")
	cmd.Flags().IntVarP(&xp, "xp", "x", engine.DefaultQuestXP, "Base XP")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(engine.DefaultPriority), "Priority (low|medium|high)")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow)")

	return cmd
}
