package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/bozo/internal/buildinfo"
	"github.com/cleared-dev/bozo/internal/config"
	"github.com/cleared-dev/bozo/internal/ledger"
	"github.com/cleared-dev/bozo/internal/logging"
)

// app carries the resolved configuration shared by all subcommands.
type app struct {
	configPath string
	database   string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:     "bozo",
		Short:   "A double-entry accounting CLI tool",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.database, "database", "d", "", "path to the ledger file (default: "+config.EnvDatabase+" env var)")
	flags.StringVar(&a.configPath, "config", "", "path to a bozo.yaml config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newInitCommand(a),
		newRecordCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newSummaryCommand(a),
		newAddAccountCommand(a),
		newAccountsCommand(a),
		newImportCommand(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func (a *app) storeOptions() ledger.Options {
	return ledger.Options{Logger: a.log}
}

// openStore opens the ledger named by the -d flag, BOZO_DB, or the config file.
func (a *app) openStore() (*ledger.Store, error) {
	path, err := a.cfg.DatabasePath(a.database)
	if err != nil {
		return nil, err
	}
	return ledger.Open(path, a.storeOptions())
}
