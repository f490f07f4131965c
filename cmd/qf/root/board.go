package root

import (
	"github.com/spf13/cobra"

	"questforge/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, sess, cleanup, err := openSession(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, sess, cmd.OutOrStdout())
		},
	}

	return cmd
}
