package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one journal entry with all its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing entry id %q: %w", args[0], err)
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			entry, ok, err := store.ByID(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("journal entry #%d not found", id)
			}
			renderEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}
}
