package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bozo/internal/accounts"
	"github.com/cleared-dev/bozo/internal/ledger"
	"github.com/cleared-dev/bozo/internal/model"
)

func newAddAccountCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-account <name>",
		Short: "Create a new account",
		Long:  "Create an account such as assets:bank:checking, along with any missing parent accounts.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			acct, created, err := store.EnsureAccount(args[0])
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created account '%s'.\n", acct.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Account '%s' already exists.\n", acct.Name)
			}
			return nil
		},
	}
}

func newAccountsCommand(a *app) *cobra.Command {
	var typeName, format string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			var filter model.AccountType
			if typeName != "" {
				at, err := ledger.ParseAccountType(typeName)
				if err != nil {
					return err
				}
				filter = at
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			accts, err := store.Accounts(filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatCSV {
				return accounts.WriteAccounts(out, accts)
			}
			if len(accts) == 0 {
				fmt.Fprintln(out, "No accounts found.")
				return nil
			}
			renderAccounts(out, accts)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "filter by account type (asset, liability, income, expense, capital, drawings)")
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or csv")

	return cmd
}
