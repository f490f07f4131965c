package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/ui"
)

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Move a completed quest back to the active list",
		Long: `Restore a completed quest so it can be done again.

This will:
- Remove its latest history entry
- Put the quest back in the active list with its original id and details

XP, gold and loot already earned are kept.`,
		Args: idArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			_, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := parseID(args[0])
			res, err := sess.RestoreQuest(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s #%d %s\n", ui.Warn.Render(ui.IconUndo+" Restored"), res.QuestID, res.Name)
			return nil
		},
	}

	return cmd
}
