package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clubops/clubledger/internal/core/domain"
)

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{
		Lines: []domain.JournalLine{
			domain.DebitLine("1011", decimal.NewFromInt(300), ""),
			domain.DebitLine("1012", decimal.NewFromInt(200), ""),
			domain.CreditLine("4010", decimal.NewFromInt(500), ""),
		},
	}

	assert.True(t, entry.TotalDebits().Equal(decimal.NewFromInt(500)))
	assert.True(t, entry.TotalCredits().Equal(decimal.NewFromInt(500)))
}

func TestJournalLine_SignedAmount(t *testing.T) {
	debit := domain.DebitLine("1011", decimal.NewFromInt(120), "")
	credit := domain.CreditLine("2031", decimal.NewFromInt(120), "")

	assert.True(t, debit.SignedAmount().Equal(decimal.NewFromInt(120)))
	assert.True(t, credit.SignedAmount().Equal(decimal.NewFromInt(-120)))
}

func TestAccountType_IsDebitNormal(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        bool
	}{
		{domain.Asset, true},
		{domain.Expense, true},
		{domain.Liability, false},
		{domain.Equity, false},
		{domain.Revenue, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.IsDebitNormal())
		})
	}
}

func TestRevenueAccountForCategory(t *testing.T) {
	tests := []struct {
		category domain.ServiceCategory
		want     string
	}{
		{domain.ServiceTraining, domain.AccountTrainingRevenue},
		{domain.ServiceBoarding, domain.AccountBoardingRevenue},
		{domain.ServiceMedical, domain.AccountMedicalRevenue},
		{domain.ServiceGrooming, domain.AccountGroomingRevenue},
		{domain.ServiceGoods, domain.AccountGoodsRevenue},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.RevenueAccountForCategory(tt.category))
		})
	}
}

func TestExpenseAccountForCategory_UnknownFallsBackToSupplies(t *testing.T) {
	assert.Equal(t, domain.AccountRentExpense, domain.ExpenseAccountForCategory("Rent"))
	assert.Equal(t, domain.AccountSuppliesExpense, domain.ExpenseAccountForCategory("Something Else"))
}

func TestDefaultChart_PostingAccountsPresent(t *testing.T) {
	chart := domain.DefaultChart()
	byCode := make(map[string]domain.Account, len(chart))
	for _, a := range chart {
		byCode[a.Code] = a
	}

	for _, code := range []string{
		domain.AccountCashOnHand,
		domain.AccountBank,
		domain.AccountTradeReceivables,
		domain.AccountWalletLiability,
		domain.AccountTrainingRevenue,
		domain.AccountSalaryExpense,
		domain.AccountCommissionExpense,
	} {
		account, ok := byCode[code]
		assert.True(t, ok, "missing account %s", code)
		assert.True(t, account.IsActive, "account %s inactive", code)
	}
}
