package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/ui"
)

func newRmCmd() *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an active quest, or with --history its latest completion record",
		Args:  idArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			_, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := parseID(args[0])
			if history {
				if err := sess.DeleteHistory(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s history of #%d\n", ui.Warn.Render("🗑️ Deleted"), id)
				return nil
			}
			if err := sess.DeleteQuest(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s #%d\n", ui.Warn.Render("🗑️ Deleted"), id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "Delete the latest history entry instead of an active quest")
	return cmd
}
