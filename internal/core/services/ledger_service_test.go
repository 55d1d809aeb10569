package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockExpenseRepo *MockExpenseRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewLedgerService(
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		suite.mockInvoiceRepo,
		suite.mockExpenseRepo,
		suite.mockUserRepo,
	)
}

func statementRow(doc int64, debit, credit int64) domain.StatementRow {
	return domain.StatementRow{
		DocumentNumber: doc,
		EntryDate:      time.Now().UTC(),
		Description:    "entry",
		Debit:          decimal.NewFromInt(debit),
		Credit:         decimal.NewFromInt(credit),
	}
}

func (suite *LedgerServiceTestSuite) TestAccountStatement_AccumulatesRunningBalance() {
	ctx := context.Background()
	cash := &domain.Account{Code: domain.AccountCashOnHand, Name: "Main Cash Register", AccountType: domain.Asset, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, cash.Code).Return(cash, nil).Once()
	suite.mockJournalRepo.On("ListStatementRows", ctx, cash.Code).Return([]domain.StatementRow{
		statementRow(1001, 500, 0),
		statementRow(1002, 0, 200),
		statementRow(1003, 300, 0),
	}, nil).Once()

	statement, err := suite.service.AccountStatement(ctx, cash.Code)

	suite.Require().NoError(err)
	suite.Equal(cash.Code, statement.AccountCode)
	suite.Equal(cash.Name, statement.AccountName)
	suite.Require().Len(statement.Rows, 3)
	suite.True(statement.Rows[0].RunningBalance.Equal(decimal.NewFromInt(500)))
	suite.True(statement.Rows[1].RunningBalance.Equal(decimal.NewFromInt(300)))
	suite.True(statement.Rows[2].RunningBalance.Equal(decimal.NewFromInt(600)))
	suite.True(statement.ClosingBalance.Equal(decimal.NewFromInt(600)))
}

func (suite *LedgerServiceTestSuite) TestAccountStatement_EmptyAccount() {
	ctx := context.Background()
	bank := &domain.Account{Code: domain.AccountBank, Name: "Bank Account", AccountType: domain.Asset, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, bank.Code).Return(bank, nil).Once()
	suite.mockJournalRepo.On("ListStatementRows", ctx, bank.Code).Return([]domain.StatementRow{}, nil).Once()

	statement, err := suite.service.AccountStatement(ctx, bank.Code)

	suite.Require().NoError(err)
	suite.Empty(statement.Rows)
	suite.True(statement.ClosingBalance.IsZero())
}

func (suite *LedgerServiceTestSuite) TestAccountStatement_UnknownAccount() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "9999").Return(nil, assert.AnError).Once()

	_, err := suite.service.AccountStatement(ctx, "9999")

	suite.Require().Error(err)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListStatementRows", ctx, "9999")
}

func (suite *LedgerServiceTestSuite) TestTrialBalance_TotalsMatch() {
	ctx := context.Background()

	suite.mockJournalRepo.On("TrialBalanceData", ctx).Return([]domain.TrialBalanceRow{
		{AccountCode: domain.AccountCashOnHand, AccountName: "Main Cash Register", AccountType: domain.Asset, Debit: decimal.NewFromInt(800), Credit: decimal.NewFromInt(200)},
		{AccountCode: domain.AccountTrainingRevenue, AccountName: "Training Revenue", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(900)},
		{AccountCode: domain.AccountTradeReceivables, AccountName: "Trade Receivables (Members)", AccountType: domain.Asset, Debit: decimal.NewFromInt(900), Credit: decimal.NewFromInt(600)},
	}, nil).Once()

	tb, err := suite.service.TrialBalance(ctx)

	suite.Require().NoError(err)
	suite.Len(tb.Rows, 3)
	suite.True(tb.TotalDebit.Equal(decimal.NewFromInt(1700)))
	suite.True(tb.TotalCredit.Equal(decimal.NewFromInt(1700)))
	suite.True(tb.Rows[0].Balance().Equal(decimal.NewFromInt(600)))
	suite.True(tb.Rows[1].Balance().Equal(decimal.NewFromInt(-900)))
}

func (suite *LedgerServiceTestSuite) TestFinancialSummary_ComputesNetProfit() {
	ctx := context.Background()

	suite.mockInvoiceRepo.On("RevenueAndDebtTotals", ctx).Return(decimal.NewFromInt(15000), decimal.NewFromInt(2500), nil).Once()
	suite.mockExpenseRepo.On("TotalExpenses", ctx).Return(decimal.NewFromInt(6000), nil).Once()
	suite.mockUserRepo.On("TotalWalletLiability", ctx).Return(decimal.NewFromInt(1200), nil).Once()

	summary, err := suite.service.FinancialSummary(ctx)

	suite.Require().NoError(err)
	suite.True(summary.TotalRevenue.Equal(decimal.NewFromInt(15000)))
	suite.True(summary.TotalExpenses.Equal(decimal.NewFromInt(6000)))
	suite.True(summary.NetProfit.Equal(decimal.NewFromInt(9000)))
	suite.True(summary.PendingDebts.Equal(decimal.NewFromInt(2500)))
	suite.True(summary.TotalWalletLiability.Equal(decimal.NewFromInt(1200)))
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
