package root

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"questforge/internal/coach"
	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newCoachCmd() *cobra.Command {
	var modeFlag string
	var questID int64
	var add bool

	cmd := &cobra.Command{
		Use:   "coach [message]",
		Short: "Ask the AI coach (modes: suggest, review, breakdown, smart_reminder)",
		Long: `Talk to an OpenAI-compatible coach endpoint configured with coach.endpoint
(or QF_COACH_URL / QF_COACH_KEY, also read from .env).

  qf coach "how should I plan my week?"
  qf coach --mode suggest --add
  qf coach --mode breakdown --quest 12 --add`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			mode, err := coach.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			if mode == "" && len(args) == 0 {
				return errors.New("say something, or pick a --mode")
			}
			if mode == coach.ModeBreakdown && questID == 0 {
				return errors.New("breakdown needs --quest <id>")
			}
			client, err := coach.NewClient(app.cfg.Coach, app.log)
			if err != nil {
				return err
			}

			svc, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			req := coach.Request{
				PlayerContext: coach.PlayerContextFrom(v.Player),
				Mode:          mode,
			}
			if msg := strings.TrimSpace(strings.Join(args, " ")); msg != "" {
				req.Messages = append(req.Messages, coach.Message{Role: "user", Content: msg})
			}

			var target *engine.CreateQuestInput
			switch mode {
			case coach.ModeBreakdown:
				q, err := svc.QuestRepo().Get(ctx, questID)
				if err != nil {
					return err
				}
				if q == nil {
					return engine.ErrQuestNotFound
				}
				s := coach.QuestSummaryFrom(*q)
				req.Quest = &s
				target = &engine.CreateQuestInput{Category: q.Category, Priority: engine.Priority(q.Priority)}
			case coach.ModeSuggest, coach.ModeReview, coach.ModeSmartReminder:
				engine.SortQuests(v.Quests)
				for _, q := range v.Quests {
					req.Quests = append(req.Quests, coach.QuestSummaryFrom(q))
				}
			}

			fmt.Fprint(out, ui.H2.Render(ui.IconCoach+" Coach: "))
			res, err := client.Stream(ctx, req, func(delta string) {
				fmt.Fprint(out, delta)
			})
			fmt.Fprintln(out)
			if err != nil {
				return err
			}

			inputs := questInputs(res, target)
			if len(inputs) == 0 {
				return nil
			}
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s %d quest idea(s)", ui.IconScroll, len(inputs))))
			for _, in := range inputs {
				fmt.Fprintf(out, "- %s %s\n", in.Name, ui.Muted.Render(fmt.Sprintf("[%s] %d XP %s", orDefault(in.Category, engine.DefaultCategory), xpOrDefault(in.XP), in.Priority)))
			}
			if !add {
				fmt.Fprintln(out, ui.Muted.Render("Re-run with --add to add them to your quests."))
				return nil
			}
			return addSuggested(cmd, out, sess, inputs)
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "suggest|review|breakdown|smart_reminder")
	cmd.Flags().Int64VarP(&questID, "quest", "q", 0, "Quest id to break down")
	cmd.Flags().BoolVar(&add, "add", false, "Add suggested quests or subtasks")
	return cmd
}

// questInputs turns coach output into quest drafts. Subtasks inherit category and
// priority from the quest being broken down.
func questInputs(res *coach.Result, parent *engine.CreateQuestInput) []engine.CreateQuestInput {
	var out []engine.CreateQuestInput
	for _, s := range res.Suggestions {
		out = append(out, engine.CreateQuestInput{
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
			XP:          max(s.XP, 0),
			Priority:    engine.ParsePriority(s.Priority),
		})
	}
	for _, s := range res.Subtasks {
		in := engine.CreateQuestInput{Name: s.Name, Priority: engine.DefaultPriority}
		if parent != nil {
			in.Category = parent.Category
			in.Priority = parent.Priority
		}
		out = append(out, in)
	}
	return out
}

func addSuggested(cmd *cobra.Command, out io.Writer, sess *engine.Session, inputs []engine.CreateQuestInput) error {
	for _, in := range inputs {
		res, err := sess.CreateQuest(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s #%d %s\n", ui.Good.Render(ui.IconPlus+" Added"), res.QuestID, in.Name)
	}
	return nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func xpOrDefault(xp int) int {
	if xp <= 0 {
		return engine.DefaultQuestXP
	}
	return xp
}
