package root

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/storage"
	"questforge/internal/ui"
)

var errNeedConfirm = errors.New("this cannot be undone; re-run with --yes")

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath(app.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(db, engine.WithLogger(app.log)), cleanup, nil
}

// openSession opens the database and runs the daily cycle. Every command goes through here.
func openSession(ctx context.Context, w io.Writer) (*engine.Service, *engine.Session, func(), error) {
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	sess, err := svc.StartSession(ctx)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	printDaily(w, sess.Daily)
	return svc, sess, cleanup, nil
}

func printDaily(w io.Writer, d engine.DailyResetResult) {
	if !d.Applied {
		return
	}
	if d.RestedXP > 0 {
		fmt.Fprintln(w, ui.Muted.Render(fmt.Sprintf("%s New day: %d rested XP waiting for your first quest", ui.IconSparkle, d.RestedXP)))
	}
	if d.ProtectionUsed {
		fmt.Fprintln(w, ui.Warn.Render(ui.IconFire+" Your Phoenix Feather burned to keep your streak alive"))
	}
	if d.StreakBroken {
		fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" Streak lost. Complete a quest today to start a new one"))
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// idArgs validates between min and max positional quest ids (max 0 means unbounded).
func idArgs(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < min {
			return errors.New("id is required")
		}
		if max > 0 && len(args) > max {
			return fmt.Errorf("expected at most %d id(s)", max)
		}
		for _, a := range args {
			if _, err := parseID(a); err != nil {
				return err
			}
		}
		return nil
	}
}
