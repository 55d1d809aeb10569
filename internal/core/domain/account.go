package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a node in the chart of accounts. The code is the stable
// identifier used as the posting target; non-leaf accounts exist for
// reporting rollups. Accounts are never deleted, only deactivated.
type Account struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	ParentCode  string      `json:"parentCode"` // empty for top-level accounts
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// IsDebitNormal reports whether a debit increases the account's balance.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}
