package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bozo/internal/accounts"
	"github.com/cleared-dev/bozo/internal/model"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
)

func checkFormat(format string) error {
	if format != formatTable && format != formatCSV {
		return fmt.Errorf("unknown format %q: use %s or %s", format, formatTable, formatCSV)
	}
	return nil
}

// treeLabel indents the leaf segment of an account path by its depth.
// "assets:bank:checking" -> "    checking"
func treeLabel(name string) string {
	return strings.Repeat("  ", accounts.Depth(name)) + accounts.Leaf(name)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func renderEntries(w io.Writer, entries []model.JournalEntry) {
	fmt.Fprintf(w, "%-6s %-12s %-20s %-15s %-15s %10s\n", "ID", "Date", "Description", "Debit Acct", "Credit Acct", "Amount")
	fmt.Fprintln(w, strings.Repeat("-", 83))
	for _, e := range entries {
		var debitAcct, creditAcct string
		if li, ok := e.FirstDebit(); ok {
			debitAcct = li.Account
		}
		if li, ok := e.FirstCredit(); ok {
			creditAcct = li.Account
		}
		if len(e.LineItems) > 2 {
			debitAcct += " (+)"
		}
		amount, _ := e.Totals()
		fmt.Fprintf(w, "%-6d %-12s %-20s %-15s %-15s %10s\n",
			e.ID, e.Timestamp.Local().Format(dateFormat), e.Description, debitAcct, creditAcct, money(amount))
	}
}

func renderEntry(w io.Writer, e model.JournalEntry) {
	fmt.Fprintf(w, "Entry #%d  %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "%s\n\n", e.Description)
	fmt.Fprintf(w, "%-30s %12s %12s\n", "Account", "Debit", "Credit")
	fmt.Fprintln(w, strings.Repeat("-", 56))
	for _, li := range e.LineItems {
		var debit, credit string
		if li.Debit.Valid {
			debit = money(li.Debit.Decimal)
		}
		if li.Credit.Valid {
			credit = money(li.Credit.Decimal)
		}
		fmt.Fprintf(w, "%-30s %12s %12s\n", li.Account, debit, credit)
	}
}

func renderTrialBalance(w io.Writer, tb model.TrialBalance) {
	fmt.Fprintln(w, "=== Trial Balance ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-30s %12s %12s %12s\n", "Account", "Debits", "Credits", "Net")
	fmt.Fprintln(w, strings.Repeat("-", 68))
	for _, b := range tb {
		fmt.Fprintf(w, "%-30s %12s %12s %12s\n", treeLabel(b.Account), money(b.Debits), money(b.Credits), money(b.Net))
	}
	debits, credits := tb.Totals()
	fmt.Fprintln(w, strings.Repeat("-", 68))
	fmt.Fprintf(w, "%-30s %12s %12s %12s\n", "TOTAL", money(debits), money(credits), money(debits.Sub(credits)))
}

func renderAccounts(w io.Writer, accts []model.Account) {
	fmt.Fprintf(w, "%-30s %s\n", "Account", "Type")
	fmt.Fprintln(w, strings.Repeat("-", 42))
	for _, acct := range accts {
		fmt.Fprintf(w, "%-30s %s\n", treeLabel(acct.Name), acct.Type)
	}
}
