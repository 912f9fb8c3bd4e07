package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeCapital   AccountType = "capital"
	AccountTypeDrawings  AccountType = "drawings"
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeIncome,
	AccountTypeExpense,
	AccountTypeCapital,
	AccountTypeDrawings,
}

// Valid reports whether t is a recognized account type.
func (t AccountType) Valid() bool {
	for _, at := range AccountTypes {
		if t == at {
			return true
		}
	}
	return false
}

// Account represents a row in the accounts table.
type Account struct {
	ID       int64
	Name     string // full colon-delimited path, lowercase
	Type     AccountType
	ParentID int64 // 0 = root account
}

// IsRoot reports whether the account has no parent.
func (a Account) IsRoot() bool {
	return a.ParentID == 0
}
