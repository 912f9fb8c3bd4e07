package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bozo/internal/model"
)

const dateFormat = "2006-01-02"

func newRecordCommand(a *app) *cobra.Command {
	var debit, credit, date string

	cmd := &cobra.Command{
		Use:   "record <amount> <description>",
		Short: "Record a journal entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[0], err)
			}
			var ts time.Time
			if date != "" {
				if ts, err = time.ParseInLocation(dateFormat, date, time.Local); err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
			}
			return runRecord(cmd, a, amount, args[1], debit, credit, ts)
		},
	}

	cmd.Flags().StringVar(&debit, "debit", "", "account to debit (required)")
	cmd.Flags().StringVar(&credit, "credit", "", "account to credit (required)")
	cmd.Flags().StringVar(&date, "date", "", "entry date as YYYY-MM-DD (default: now)")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")

	return cmd
}

func runRecord(cmd *cobra.Command, a *app, amount decimal.Decimal, description, debit, credit string, ts time.Time) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}

	entry := model.JournalEntry{
		Description: description,
		Timestamp:   ts,
		LineItems: []model.LineItem{
			model.DebitItem(debit, amount),
			model.CreditItem(credit, amount),
		},
	}
	id, err := store.Add(entry)
	if err != nil {
		return err
	}

	stored, ok, err := store.ByID(id)
	if err != nil {
		return fmt.Errorf("reading entry #%d: %w", id, err)
	}
	dr, hasDebit := stored.FirstDebit()
	cr, hasCredit := stored.FirstCredit()
	if !ok || !hasDebit || !hasCredit {
		return fmt.Errorf("entry #%d not readable after recording", id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded entry #%d: %s - %s [debit: %s, credit: %s]\n",
		id, money(amount), description, dr.Account, cr.Account)
	return nil
}
