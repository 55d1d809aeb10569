package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/utils/accounting"
)

// ledgerService derives reporting views from the posted journal. It never
// writes; all numbers are recomputed from journal lines on each call.
type ledgerService struct {
	journalRepo portsrepo.JournalReader
	accountRepo portsrepo.AccountReader
	invoiceRepo portsrepo.InvoiceRepository
	expenseRepo portsrepo.ExpenseRepository
	userRepo    portsrepo.UserRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	journalRepo portsrepo.JournalReader,
	accountRepo portsrepo.AccountReader,
	invoiceRepo portsrepo.InvoiceRepository,
	expenseRepo portsrepo.ExpenseRepository,
	userRepo portsrepo.UserRepository,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// AccountStatement builds the per-account statement with a running balance
// accumulated in document number order.
func (s *ledgerService) AccountStatement(ctx context.Context, accountCode string) (*dto.StatementResponse, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountCode, err)
	}

	rows, err := s.journalRepo.ListStatementRows(ctx, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list statement rows: %w", err)
	}
	rows = accounting.AccumulateRunning(rows)

	closing := decimal.Zero
	if len(rows) > 0 {
		closing = rows[len(rows)-1].RunningBalance
	}

	return &dto.StatementResponse{
		AccountCode:    account.Code,
		AccountName:    account.Name,
		AccountType:    account.AccountType,
		Rows:           rows,
		ClosingBalance: closing,
	}, nil
}

// TrialBalance aggregates debit and credit totals per account with nonzero
// activity. Totals match within the balance tolerance when the journal is
// consistent.
func (s *ledgerService) TrialBalance(ctx context.Context) (*dto.TrialBalanceResponse, error) {
	rows, err := s.journalRepo.TrialBalanceData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, r := range rows {
		totalDebit = totalDebit.Add(r.Debit)
		totalCredit = totalCredit.Add(r.Credit)
	}

	return &dto.TrialBalanceResponse{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

// FinancialSummary reports headline revenue, expense, debt and wallet
// liability totals for the dashboard.
func (s *ledgerService) FinancialSummary(ctx context.Context) (*dto.FinancialSummaryResponse, error) {
	revenue, pendingDebts, err := s.invoiceRepo.RevenueAndDebtTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total invoices: %w", err)
	}

	expenses, err := s.expenseRepo.TotalExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total expenses: %w", err)
	}

	walletLiability, err := s.userRepo.TotalWalletLiability(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total wallet liability: %w", err)
	}

	summary := domain.FinancialSummary{
		TotalRevenue:         revenue,
		TotalExpenses:        expenses,
		NetProfit:            revenue.Sub(expenses),
		PendingDebts:         pendingDebts,
		TotalWalletLiability: walletLiability,
	}
	return dto.ToFinancialSummaryResponse(summary), nil
}
