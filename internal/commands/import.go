package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bozo/internal/importer"
)

func newImportCommand(a *app) *cobra.Command {
	var format, account, contra string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Record one entry per row of a bank statement CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, a, args[0], format, account, contra)
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "statement format")
	cmd.Flags().StringVar(&account, "account", "", "bank account the statement belongs to (required)")
	cmd.Flags().StringVar(&contra, "contra", "", "account on the other side of every entry (required)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("contra")

	return cmd
}

func runImport(cmd *cobra.Command, a *app, path, format, account, contra string) error {
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}

	res, err := importer.Import(store, txns, account, contra)
	if err != nil {
		return fmt.Errorf("imported %d entries before failing: %w", len(res.EntryIDs), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s", len(res.EntryIDs), path)
	if res.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d zero-amount rows skipped)", res.Skipped)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ".")
	return nil
}
