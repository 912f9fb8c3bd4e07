package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCommand(a *app) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show trial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			tb, err := store.TrialBalance(account)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tb) == 0 {
				fmt.Fprintln(out, "No journal entries recorded yet.")
				return nil
			}
			renderTrialBalance(out, tb)
			return nil
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "scope the trial balance to an account subtree")

	return cmd
}
