package dto

import (
	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementResponse is an account statement with running balances.
type StatementResponse struct {
	AccountCode    string                `json:"accountCode"`
	AccountName    string                `json:"accountName"`
	AccountType    domain.AccountType    `json:"accountType"`
	Rows           []domain.StatementRow `json:"rows"`
	ClosingBalance decimal.Decimal       `json:"closingBalance"`
}

// TrialBalanceResponse lists every account with nonzero activity plus the
// report totals; equal totals confirm the accounting identity.
type TrialBalanceResponse struct {
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}

// FinancialSummaryResponse mirrors domain.FinancialSummary.
type FinancialSummaryResponse struct {
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	NetProfit            decimal.Decimal `json:"netProfit"`
	PendingDebts         decimal.Decimal `json:"pendingDebts"`
	TotalWalletLiability decimal.Decimal `json:"totalWalletLiability"`
}

// ToFinancialSummaryResponse converts the domain summary.
func ToFinancialSummaryResponse(s domain.FinancialSummary) *FinancialSummaryResponse {
	return &FinancialSummaryResponse{
		TotalRevenue:         s.TotalRevenue,
		TotalExpenses:        s.TotalExpenses,
		NetProfit:            s.NetProfit,
		PendingDebts:         s.PendingDebts,
		TotalWalletLiability: s.TotalWalletLiability,
	}
}
