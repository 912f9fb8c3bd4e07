package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bozo/internal/accounts"
	"github.com/cleared-dev/bozo/internal/config"
	"github.com/cleared-dev/bozo/internal/ledger"
)

func newInitCommand(a *app) *cobra.Command {
	var name string
	var folder string
	var seed, writeConfig bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(folder)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, a, filepath.Join(absDir, name+config.Extension), seed, writeConfig)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the database file, e.g. ledger (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&folder, "folder", ".", "folder where the database is created")
	cmd.Flags().BoolVar(&seed, "seed", false, "create a starter chart of accounts")
	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "write "+config.FileName+" pointing at the new database to the current folder")

	return cmd
}

func runInit(cmd *cobra.Command, a *app, path string, seed, writeConfig bool) error {
	if writeConfig {
		if _, err := os.Stat(config.FileName); err == nil {
			return fmt.Errorf("%s already exists", config.FileName)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", config.FileName, err)
		}
	}

	store, err := ledger.Init(path, a.storeOptions())
	if err != nil {
		return err
	}

	if seed {
		for _, name := range accounts.DefaultChart() {
			if _, _, err := store.EnsureAccount(name); err != nil {
				return fmt.Errorf("seeding %s: %w", name, err)
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized database at '%s'.\n", path)

	if writeConfig {
		cfg := config.Default()
		cfg.Database = path
		cfg.Log.Level = a.cfg.Log.Level
		if err := config.Save(config.FileName, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s.\n", config.FileName)
	}
	return nil
}
