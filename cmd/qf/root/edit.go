package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newEditCmd() *cobra.Command {
	var name, category, priority, desc, due string
	var xp int
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an active quest",
		Args:  idArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := parseID(args[0])
			var in engine.UpdateQuestInput
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = &name
			}
			if flags.Changed("category") {
				in.Category = &category
			}
			if flags.Changed("desc") {
				in.Description = &desc
			}
			if flags.Changed("xp") {
				in.XP = &xp
			}
			if flags.Changed("priority") {
				p := engine.ParsePriority(priority)
				in.Priority = &p
			}
			if flags.Changed("due") {
				d, err := engine.ParseDueDate(due, svc.Now())
				if err != nil {
					return err
				}
				in.DueDate = d
				in.ClearDue = d == nil
			}
			in.ClearDue = in.ClearDue || clearDue

			q, err := sess.UpdateQuest(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s #%d %s %s\n",
				ui.Good.Render(ui.IconScroll+" Updated"), q.ID, q.Name,
				ui.Muted.Render(fmt.Sprintf("(%s, %d XP, %s)", q.Category, q.XP, q.Priority)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().IntVarP(&xp, "xp", "x", 0, "New base XP")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority (low|medium|high)")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "New description (empty clears it)")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().BoolVar(&clearDue, "no-due", false, "Remove the due date")

	return cmd
}
