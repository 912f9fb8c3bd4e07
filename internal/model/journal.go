package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one leg of a journal entry. Exactly one of Debit or Credit is valid.
type LineItem struct {
	ID      int64
	Account string
	Debit   decimal.NullDecimal
	Credit  decimal.NullDecimal
}

// DebitItem returns a debit line item against account.
func DebitItem(account string, amount decimal.Decimal) LineItem {
	return LineItem{Account: account, Debit: decimal.NewNullDecimal(amount)}
}

// CreditItem returns a credit line item against account.
func CreditItem(account string, amount decimal.Decimal) LineItem {
	return LineItem{Account: account, Credit: decimal.NewNullDecimal(amount)}
}

// IsDebit reports whether the item is on the debit side.
func (li LineItem) IsDebit() bool {
	return li.Debit.Valid && !li.Credit.Valid
}

// IsCredit reports whether the item is on the credit side.
func (li LineItem) IsCredit() bool {
	return li.Credit.Valid && !li.Debit.Valid
}

// Amount returns whichever side is set, or zero.
func (li LineItem) Amount() decimal.Decimal {
	switch {
	case li.Debit.Valid:
		return li.Debit.Decimal
	case li.Credit.Valid:
		return li.Credit.Decimal
	}
	return decimal.Zero
}

// JournalEntry is an immutable, balanced financial event.
type JournalEntry struct {
	ID          int64
	Description string
	Timestamp   time.Time
	LineItems   []LineItem
}

// Totals returns the summed debits and credits of the entry.
func (e JournalEntry) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, li := range e.LineItems {
		if li.Debit.Valid {
			debits = debits.Add(li.Debit.Decimal)
		}
		if li.Credit.Valid {
			credits = credits.Add(li.Credit.Decimal)
		}
	}
	return debits, credits
}

// FirstDebit returns the first debit line item, if any.
func (e JournalEntry) FirstDebit() (LineItem, bool) {
	for _, li := range e.LineItems {
		if li.IsDebit() {
			return li, true
		}
	}
	return LineItem{}, false
}

// FirstCredit returns the first credit line item, if any.
func (e JournalEntry) FirstCredit() (LineItem, bool) {
	for _, li := range e.LineItems {
		if li.IsCredit() {
			return li, true
		}
	}
	return LineItem{}, false
}
