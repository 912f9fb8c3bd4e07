package journal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bozo/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func balancedEntry(debitAcct, creditAcct, amount string) model.JournalEntry {
	return model.JournalEntry{
		Description: "test",
		LineItems: []model.LineItem{
			model.DebitItem(debitAcct, dec(amount)),
			model.CreditItem(creditAcct, dec(amount)),
		},
	}
}

func TestValidateEntry_Balanced(t *testing.T) {
	errs := ValidateEntry(balancedEntry("expenses:food", "assets:cash", "50.00"))
	assert.Empty(t, errs)
	assert.NoError(t, Validate(balancedEntry("expenses:food", "assets:cash", "50.00")))
}

func TestValidateEntry_SplitBalanced(t *testing.T) {
	e := model.JournalEntry{
		LineItems: []model.LineItem{
			model.DebitItem("expenses:food", dec("10.005")),
			model.DebitItem("expenses:drink", dec("4.995")),
			model.CreditItem("assets:cash", dec("15")),
		},
	}
	assert.Empty(t, ValidateEntry(e))
}

func TestValidateEntry_Unbalanced(t *testing.T) {
	e := model.JournalEntry{
		LineItems: []model.LineItem{
			model.DebitItem("expenses:food", dec("50.00")),
			model.CreditItem("assets:cash", dec("49.99")),
		},
	}
	errs := ValidateEntry(e)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrUnbalancedEntry)
	assert.Contains(t, errs[0].Error(), "debits (50) != credits (49.99)")

	err := Validate(e)
	assert.ErrorIs(t, err, ErrUnbalancedEntry)
	assert.NotErrorIs(t, err, ErrInvalidLineItem)
}

func TestValidateEntry_TooFewLines(t *testing.T) {
	e := model.JournalEntry{
		LineItems: []model.LineItem{model.DebitItem("assets:cash", dec("1"))},
	}
	errs := ValidateEntry(e)
	require.Len(t, errs, 2, "too few lines and unbalanced")
	assert.ErrorIs(t, errs[0], ErrInvalidLineItem)
	assert.ErrorIs(t, Validate(e), ErrInvalidLineItem)
}

func TestValidateEntry_BothSides(t *testing.T) {
	both := model.LineItem{
		Account: "assets:cash",
		Debit:   decimal.NewNullDecimal(dec("5")),
		Credit:  decimal.NewNullDecimal(dec("5")),
	}
	e := model.JournalEntry{
		LineItems: []model.LineItem{both, {Account: "income:gift"}},
	}
	errs := ValidateEntry(e)
	require.Len(t, errs, 2)
	assert.Equal(t, 1, errs[0].Line)
	assert.Equal(t, 2, errs[1].Line)
	for _, ve := range errs {
		assert.ErrorIs(t, ve, ErrInvalidLineItem)
	}
}

func TestValidateEntry_NonPositive(t *testing.T) {
	tests := []string{"0", "-5.00"}
	for _, amount := range tests {
		e := balancedEntry("expenses:food", "assets:cash", amount)
		err := Validate(e)
		assert.ErrorIs(t, err, ErrInvalidLineItem, "amount %s", amount)
	}
}
