package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newFocusCmd() *cobra.Command {
	var clearFocus bool

	cmd := &cobra.Command{
		Use:   "focus [category]",
		Short: "Pick today's focus category for bonus XP",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one category")
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

			if len(args) == 0 && !clearFocus {
				p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
				if err != nil {
					return err
				}
				if p.DailyFocus == "" {
					fmt.Fprintln(out, ui.Muted.Render("No focus set."))
				} else {
					fmt.Fprintln(out, ui.LabelValue(ui.IconTarget+" Focus", p.DailyFocus))
				}
				return nil
			}

			category := ""
			if !clearFocus {
				category = args[0]
			}
			focus, err := sess.SetDailyFocus(ctx, category)
			if err != nil {
				return err
			}
			if focus == "" {
				fmt.Fprintln(out, ui.Muted.Render("Focus cleared."))
				return nil
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconTarget+" Focus set:"), focus,
				ui.Muted.Render(fmt.Sprintf("(x%.2f XP)", engine.DailyFocusMultiplier)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearFocus, "clear", false, "Clear the focus")
	return cmd
}
