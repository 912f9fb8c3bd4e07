package accounts

// DefaultChart returns the starter chart of account paths for a new ledger.
func DefaultChart() []string {
	return []string{
		"assets:bank:checking",
		"assets:bank:savings",
		"assets:cash",
		"liabilities:credit-card",
		"liabilities:loans",
		"income:salary",
		"income:interest",
		"expenses:food",
		"expenses:housing",
		"expenses:transport",
		"expenses:utilities",
		"capital:opening-balance",
		"drawings",
	}
}
