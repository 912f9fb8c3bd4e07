package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bozo/internal/journal"
	"github.com/cleared-dev/bozo/internal/model"
)

func newListCommand(a *app) *cobra.Command {
	var account, format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			return runList(cmd, a, account, format)
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "only entries touching this account or its subaccounts")
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or csv")

	return cmd
}

func runList(cmd *cobra.Command, a *app, account, format string) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}

	var entries []model.JournalEntry
	if account != "" {
		entries, err = store.ByAccount(account)
	} else {
		entries, err = store.All()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatCSV {
		return journal.WriteEntries(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No journal entries found.")
		return nil
	}
	renderEntries(out, entries)
	return nil
}
