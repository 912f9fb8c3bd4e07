package model

import "github.com/shopspring/decimal"

// AccountBalance is the aggregate of all line items posted to one account.
type AccountBalance struct {
	Account string
	Debits  decimal.Decimal
	Credits decimal.Decimal
	Net     decimal.Decimal // Debits - Credits
}

// TrialBalance is a set of account balances ordered by account name.
type TrialBalance []AccountBalance

// Get returns the balance for an exact account name.
func (tb TrialBalance) Get(account string) (AccountBalance, bool) {
	for _, b := range tb {
		if b.Account == account {
			return b, true
		}
	}
	return AccountBalance{}, false
}

// Accounts returns the account names in order.
func (tb TrialBalance) Accounts() []string {
	names := make([]string, len(tb))
	for i, b := range tb {
		names[i] = b.Account
	}
	return names
}

// Totals sums debits and credits across all accounts.
func (tb TrialBalance) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, b := range tb {
		debits = debits.Add(b.Debits)
		credits = credits.Add(b.Credits)
	}
	return debits, credits
}

// Balanced reports whether total debits equal total credits.
func (tb TrialBalance) Balanced() bool {
	d, c := tb.Totals()
	return d.Equal(c)
}
