package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/ui"
)

func newLedgerCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show gold transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc, _, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			txs, err := svc.LedgerRepo().List(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconGold, "Ledger"))
			if len(txs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No transactions yet."))
				return nil
			}
			loc := svc.Now().Location()
			for _, tx := range txs {
				amount := ui.Good.Render(fmt.Sprintf("%+6d", tx.Amount))
				if tx.Amount < 0 {
					amount = ui.Bad.Render(fmt.Sprintf("%+6d", tx.Amount))
				}
				fmt.Fprintf(out, "%s %s %s %s\n",
					ui.Muted.Render(tx.CreatedAt.In(loc).Format("2006-01-02 15:04")),
					amount, tx.Description, ui.Muted.Render("["+tx.Type+"]"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries")
	return cmd
}
