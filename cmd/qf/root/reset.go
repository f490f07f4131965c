package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all progress (achievements are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNeedConfirm
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			_, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sess.ResetProgress(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Warn.Render(ui.IconUndo+" Progress reset.")+" "+ui.Muted.Render("Achievements were kept."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm")
	return cmd
}
