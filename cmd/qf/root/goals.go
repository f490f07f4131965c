package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newGoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show personal goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc, _, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Goals"))
			if len(v.Goals) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No goals. Try: qf goals add \"Read a lot\" --metric quests_completed --target 50"))
				return nil
			}
			for _, g := range v.Goals {
				printGoal(cmd, g)
			}
			return nil
		},
	}

	cmd.AddCommand(newGoalAddCmd(), newGoalRmCmd())
	return cmd
}

func printGoal(cmd *cobra.Command, g engine.GoalProgress) {
	status := ui.ProgressBar(g.Current, g.Goal.Target, 10)
	if g.Done() {
		status = ui.Good.Render("done")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
		ui.Key.Render(fmt.Sprintf("#%-3d", g.Goal.ID)), g.Goal.Name, status,
		ui.Muted.Render(fmt.Sprintf("%d/%d %s", min(g.Current, g.Goal.Target), g.Goal.Target, g.Metric)))
}

func newGoalAddCmd() *cobra.Command {
	var metric string
	var target int

	metrics := make([]string, 0, len(engine.Metrics))
	for _, m := range engine.Metrics {
		metrics = append(metrics, string(m))
	}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
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

			m, err := engine.ParseMetric(metric)
			if err != nil {
				return err
			}
			g, err := sess.AddGoal(ctx, strings.Join(args, " "), m, target)
			if err != nil {
				return err
			}
			fmt.Fprint(out, ui.Good.Render(ui.IconPlus+" Goal added")+" ")
			printGoal(cmd, *g)
			return nil
		},
	}

	cmd.Flags().StringVarP(&metric, "metric", "m", string(engine.MetricQuestsCompleted), "Metric ("+strings.Join(metrics, "|")+")")
	cmd.Flags().IntVarP(&target, "target", "t", 10, "Target value")
	return cmd
}

func newGoalRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
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
			if err := sess.DeleteGoal(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s goal #%d\n", ui.Warn.Render("🗑️ Deleted"), id)
			return nil
		},
	}
}
