package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bozo/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		wantType model.AccountType
		wantSegs []string
	}{
		{"assets", model.AccountTypeAsset, []string{"assets"}},
		{"assets:cash", model.AccountTypeAsset, []string{"assets", "cash"}},
		{"Assets: Bank :Checking", model.AccountTypeAsset, []string{"assets", "bank", "checking"}},
		{"liabilities:card", model.AccountTypeLiability, []string{"liabilities", "card"}},
		{"income:salary", model.AccountTypeIncome, []string{"income", "salary"}},
		{"EXPENSES:food", model.AccountTypeExpense, []string{"expenses", "food"}},
		{"capital", model.AccountTypeCapital, []string{"capital"}},
		{"drawings:owner", model.AccountTypeDrawings, []string{"drawings", "owner"}},
	}
	for _, tt := range tests {
		at, segs, err := Parse(tt.name)
		require.NoError(t, err, "Parse(%q)", tt.name)
		assert.Equal(t, tt.wantType, at, "Parse(%q) type", tt.name)
		assert.Equal(t, tt.wantSegs, segs, "Parse(%q) segments", tt.name)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		want error
	}{
		{"", ErrInvalidAccountName},
		{":cash", ErrInvalidAccountName},
		{"  :cash", ErrInvalidAccountName},
		{"badroot:foo", ErrInvalidAccountRoot},
		{"asset:cash", ErrInvalidAccountRoot},
		{"equity", ErrInvalidAccountRoot},
	}
	for _, tt := range tests {
		_, _, err := Parse(tt.name)
		assert.ErrorIs(t, err, tt.want, "Parse(%q)", tt.name)
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(" Assets : Bank")
	require.NoError(t, err)
	assert.Equal(t, "assets:bank", got)

	_, err = Normalize("nope")
	assert.ErrorIs(t, err, ErrInvalidAccountRoot)
}

func TestPrefixes(t *testing.T) {
	assert.Equal(t,
		[]string{"assets", "assets:bank", "assets:bank:checking"},
		Prefixes([]string{"assets", "bank", "checking"}))
	assert.Equal(t, []string{"income"}, Prefixes([]string{"income"}))
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "checking", Leaf("assets:bank:checking"))
	assert.Equal(t, "assets", Leaf("assets"))
	assert.Equal(t, 2, Depth("assets:bank:checking"))
	assert.Equal(t, 0, Depth("assets"))
}
