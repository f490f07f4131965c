package root

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id> [id...]",
		Short: "Complete one or more quests",
		Args:  idArgs(1, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			_, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			for _, a := range args {
				id, _ := parseID(a)
				res, err := sess.CompleteQuest(ctx, id)
				if err != nil {
					return err
				}
				printCompletion(out, res)
			}
			return nil
		},
	}

	return cmd
}

func newRushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rush <id>",
		Short: "Complete a quest instantly at half XP (needs a Chrono Tower, once per day)",
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
			res, err := sess.RushQuest(ctx, id)
			if err != nil {
				return err
			}
			printCompletion(out, res)
			return nil
		},
	}

	return cmd
}

func printCompletion(w io.Writer, res *engine.CompleteResult) {
	if res.Skipped {
		fmt.Fprintf(w, "%s #%d is not an active quest, nothing granted\n", ui.Muted.Render(ui.IconInfo), res.QuestID)
		return
	}

	verb := "Completed"
	if res.Rushed {
		verb = "Rushed"
	}
	line := fmt.Sprintf("%s #%d %s %s %s",
		ui.Good.Render(ui.IconDone+" "+verb), res.QuestID, res.Name,
		ui.Good.Render(fmt.Sprintf("+%d XP", res.Reward.XP)),
		ui.Coins(res.Reward.Gold))
	if res.Reward.Critical {
		line += " " + ui.IconCrit + " " + ui.BadgeCritical
	}
	fmt.Fprintln(w, line)
	if res.Reward.RestedXPUsed > 0 {
		fmt.Fprintln(w, ui.Muted.Render(fmt.Sprintf("   includes %d rested XP", res.Reward.RestedXPUsed)))
	}
	if res.LevelUp {
		fmt.Fprintf(w, "%s %s %d → %d\n", ui.IconStar, ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
	}
	fmt.Fprintln(w, ui.LabelValue(ui.IconFire+" Streak", fmt.Sprintf("%d day(s)", res.Streak)))
	if res.Loot != nil {
		fmt.Fprintf(w, "%s Loot! %s %s %s\n",
			ui.IconGem,
			ui.RarityText(string(res.Loot.Rarity), res.Loot.Name),
			ui.Muted.Render(res.Loot.Describe()),
			ui.Muted.Render("(qf inventory equip "+shortID(res.LootItemID)+")"))
	}
	for _, a := range res.NewAchievements {
		fmt.Fprintf(w, "%s Achievement unlocked: %s %s\n", ui.IconTrophy, a.Icon, ui.RarityText(string(a.Rarity), a.Name))
	}
	for _, id := range res.GoalsCompleted {
		fmt.Fprintf(w, "%s Goal #%d reached!\n", ui.IconTarget, id)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
