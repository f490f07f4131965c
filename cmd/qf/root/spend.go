package root

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"questforge/internal/ui"
)

func newSpendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spend <amount> [what for]",
		Short: "Spend gold on a real-life treat",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("amount is required")
			}
			if n, err := strconv.Atoi(args[0]); err != nil || n <= 0 {
				return errors.New("amount must be a positive integer")
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

			amount, _ := strconv.Atoi(args[0])
			left, err := sess.SpendGold(ctx, amount, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %d gold %s\n", ui.Gold.Render(ui.IconGold+" Spent"), amount, ui.Muted.Render(fmt.Sprintf("(%d left)", left)))
			return nil
		},
	}

	return cmd
}
