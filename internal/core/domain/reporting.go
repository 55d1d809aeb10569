package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementRow is one line of an account statement: a journal line joined
// with its entry header, plus the running balance accumulated in document
// number order as debit minus credit.
type StatementRow struct {
	DocumentNumber int64           `json:"documentNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// TrialBalanceRow is a single account in the trial balance report.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Balance is the account's signed balance, debit minus credit.
func (r TrialBalanceRow) Balance() decimal.Decimal {
	return r.Debit.Sub(r.Credit)
}

// FinancialSummary is the dashboard rollup derived from invoices, expenses
// and wallet balances.
type FinancialSummary struct {
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	NetProfit            decimal.Decimal `json:"netProfit"`
	PendingDebts         decimal.Decimal `json:"pendingDebts"`
	TotalWalletLiability decimal.Decimal `json:"totalWalletLiability"`
}
