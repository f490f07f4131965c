package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"questforge/internal/config"
	"questforge/internal/engine"
	"questforge/internal/logging"
	"questforge/internal/ui"
)

const Version = "0.2.0"

// app holds what PersistentPreRunE resolved for the running command.
var app = struct {
	cfg config.Config
	log *zap.Logger
}{cfg: config.Default(), log: zap.NewNop()}

var (
	flagConfig string
	flagDB     string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:           "qf",
	Short:         "Questforge, a local-first quest tracker with RPG progression",
	Long:          "Questforge turns your to-do list into quests: earn XP and gold, level up, collect loot and build a homestead.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if flagDB != "" {
			cfg.DBPath = flagDB
		}
		if flagDebug {
			cfg.Log.Debug = true
			cfg.Log.Level = "debug"
		}
		logger, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		app.cfg = cfg
		app.log = logger
		return nil
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/"+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (overrides config and QF_DB)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Verbose logging to stderr")

	rootCmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newListCmd(),
		newDoCmd(),
		newRushCmd(),
		newRestoreCmd(),
		newRmCmd(),
		newHistoryCmd(),
		newStatusCmd(),
		newFocusCmd(),
		newInventoryCmd(),
		newHomesteadCmd(),
		newSpendCmd(),
		newLedgerCmd(),
		newAchievementsCmd(),
		newGoalsCmd(),
		newPrestigeCmd(),
		newResetCmd(),
		newCoachCmd(),
		newBoardCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = app.log.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

// renderError shows expected rejections as warnings and everything else as failures.
func renderError(err error) string {
	if engine.IsRejection(err) || errors.Is(err, errNeedConfirm) {
		return ui.Warn.Render(ui.IconWarn + " " + err.Error())
	}
	return ui.Bad.Render(ui.IconError + " " + err.Error())
}
