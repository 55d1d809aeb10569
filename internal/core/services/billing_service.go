package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

var (
	ErrInvoiceAlreadyPaid = errors.New("invoice is already paid")
	ErrOverpayment        = errors.New("payment exceeds remaining invoice amount")
	ErrWalletMethodOnly   = errors.New("recharge amount only applies to wallet payments")
)

const defaultDueDays = 7

// billingService owns the invoice lifecycle, the payment protocol and
// direct expenses.
type billingService struct {
	invoiceRepo portsrepo.InvoiceRepository
	expenseRepo portsrepo.ExpenseRepository
	userRepo    portsrepo.UserRepository
	walletRepo  portsrepo.WalletRepository
	journalRepo portsrepo.JournalRepository

	// settleTolerance lets an invoice count as settled while a small
	// remainder is still open, so commission is not held up by rounding.
	settleTolerance decimal.Decimal
}

// NewBillingService creates a new BillingService.
func NewBillingService(
	invoiceRepo portsrepo.InvoiceRepository,
	expenseRepo portsrepo.ExpenseRepository,
	userRepo portsrepo.UserRepository,
	walletRepo portsrepo.WalletRepository,
	journalRepo portsrepo.JournalRepository,
	settleTolerance decimal.Decimal,
) portssvc.BillingSvcFacade {
	return &billingService{
		invoiceRepo:     invoiceRepo,
		expenseRepo:     expenseRepo,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		journalRepo:     journalRepo,
		settleTolerance: settleTolerance,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// CreateInvoice opens an invoice and posts the receivable recognition entry:
// trade receivables debit against the category revenue account.
func (s *billingService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: invoice amount must be positive", apperrors.ErrValidation)
	}
	if req.Discount.IsNegative() || req.Discount.GreaterThan(req.Amount) {
		return nil, fmt.Errorf("%w: discount must be between zero and the invoice amount", apperrors.ErrValidation)
	}

	payer, err := s.userRepo.FindUserByID(ctx, req.PayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payer %s: %w", req.PayerID, err)
	}
	if req.ProviderID != "" {
		if _, err := s.userRepo.FindUserByID(ctx, req.ProviderID); err != nil {
			return nil, fmt.Errorf("failed to find provider %s: %w", req.ProviderID, err)
		}
	}

	now := time.Now().UTC()
	dueDate := now.AddDate(0, 0, defaultDueDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	finalAmount := req.Amount.Sub(req.Discount)
	invoice := domain.Invoice{
		InvoiceID:                uuid.NewString(),
		PayerID:                  req.PayerID,
		ServiceCategory:          req.ServiceCategory,
		ServiceName:              req.ServiceName,
		ProviderID:               req.ProviderID,
		DefaultCommissionPercent: req.DefaultCommissionPercent,
		Amount:                   req.Amount,
		Discount:                 req.Discount,
		FinalAmount:              finalAmount,
		PaidAmount:               decimal.Zero,
		Status:                   domain.InvoicePending,
		IssueDate:                now,
		DueDate:                  dueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if err := s.invoiceRepo.SaveInvoiceInTx(ctx, tx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	entry := newEntry(
		fmt.Sprintf("Invoice: %s for %s", req.ServiceName, payer.Name),
		invoice.InvoiceID,
		invoice.InvoiceID,
		creatorUserID,
		now,
		[]domain.JournalLine{
			domain.DebitLine(domain.AccountTradeReceivables, finalAmount, payer.Name),
			domain.CreditLine(domain.RevenueAccountForCategory(req.ServiceCategory), finalAmount, req.ServiceName),
		},
	)
	if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit invoice: %w", err)
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("payer_id", invoice.PayerID),
		slog.String("final_amount", finalAmount.String()),
	)
	return &invoice, nil
}

// GetInvoiceByID retrieves one invoice.
func (s *billingService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListInvoices retrieves invoices, newest first.
func (s *billingService) ListInvoices(ctx context.Context, params dto.ListParams) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoices(ctx, params.Limit, params.Offset)
}

// ListInvoicesByPayer retrieves one member's invoices.
func (s *billingService) ListInvoicesByPayer(ctx context.Context, payerID string) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoicesByPayer(ctx, payerID)
}

// PayInvoice records a payment against the invoice. The whole protocol runs
// in one transaction: optional wallet recharge, the settlement posting, the
// status flip, and the provider commission payout when the invoice settles.
func (s *billingService) PayInvoice(ctx context.Context, invoiceID string, req dto.PayInvoiceRequest, requestingUser *domain.User) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RechargeAmount != nil && req.Method != domain.PayWallet {
		return nil, fmt.Errorf("%w", ErrWalletMethodOnly)
	}

	actorID := ""
	if requestingUser != nil {
		actorID = requestingUser.UserID
	}
	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoicePaid {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceAlreadyPaid, invoiceID)
	}

	amount := invoice.Remaining()
	if req.Amount != nil {
		amount = *req.Amount
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if amount.GreaterThan(invoice.Remaining()) {
		return nil, fmt.Errorf("%w: remaining %s, requested %s", ErrOverpayment, invoice.Remaining(), amount)
	}

	payer, err := s.userRepo.FindUserByIDForUpdate(ctx, tx, invoice.PayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock payer %s: %w", invoice.PayerID, err)
	}

	if req.Method == domain.PayWallet {
		// Recharge first so the wallet can cover the payment.
		if req.RechargeAmount != nil && req.RechargeAmount.IsPositive() {
			if _, err := creditWalletInTx(ctx, tx, s.userRepo, s.walletRepo, payer, *req.RechargeAmount, domain.WalletDeposit, "Recharge before invoice payment", actorID, now); err != nil {
				return nil, err
			}
			rechargeEntry := newEntry(
				fmt.Sprintf("Wallet recharge for %s", payer.Name),
				invoice.InvoiceID,
				payer.UserID,
				actorID,
				now,
				[]domain.JournalLine{
					domain.DebitLine(domain.AccountBank, *req.RechargeAmount, ""),
					domain.CreditLine(domain.AccountWalletLiability, *req.RechargeAmount, payer.Name),
				},
			)
			if _, err := postEntry(ctx, s.journalRepo, tx, rechargeEntry); err != nil {
				return nil, err
			}
		}
		if _, err := debitWalletInTx(ctx, tx, s.userRepo, s.walletRepo, payer, amount, domain.WalletPayment, fmt.Sprintf("Payment for %s", invoice.ServiceName), actorID, now); err != nil {
			return nil, err
		}
	}

	// Settlement posting: the method's source account against the
	// receivable raised at invoice creation.
	paymentEntry := newEntry(
		fmt.Sprintf("Payment: %s from %s", invoice.ServiceName, payer.Name),
		invoice.InvoiceID,
		invoice.InvoiceID,
		actorID,
		now,
		[]domain.JournalLine{
			domain.DebitLine(req.Method.DebitAccount(), amount, payer.Name),
			domain.CreditLine(domain.AccountTradeReceivables, amount, payer.Name),
		},
	)
	if _, err := postEntry(ctx, s.journalRepo, tx, paymentEntry); err != nil {
		return nil, err
	}

	invoice.PaidAmount = invoice.PaidAmount.Add(amount)
	invoice.PaymentMethod = req.Method
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = actorID

	settled := invoice.IsSettled(s.settleTolerance)
	if settled {
		invoice.Status = domain.InvoicePaid
	}

	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	if settled && invoice.ProviderID != "" {
		if err := s.payCommissionInTx(ctx, tx, invoice, actorID, now); err != nil {
			return nil, err
		}
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	logger.Info("Invoice payment recorded",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("method", string(req.Method)),
		slog.String("amount", amount.String()),
		slog.Bool("settled", settled),
	)
	return invoice, nil
}

// payCommissionInTx credits the provider's wallet with the commission on the
// settled invoice and posts the commission expense.
func (s *billingService) payCommissionInTx(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice, actorID string, now time.Time) error {
	provider, err := s.userRepo.FindUserByIDForUpdate(ctx, tx, invoice.ProviderID)
	if err != nil {
		return fmt.Errorf("failed to lock provider %s: %w", invoice.ProviderID, err)
	}

	pct := provider.CommissionPercentFor(invoice.ServiceCategory, invoice.DefaultCommissionPercent)
	commission := invoice.FinalAmount.Mul(pct).Div(decimal.NewFromInt(100))
	if !commission.IsPositive() {
		return nil
	}

	desc := fmt.Sprintf("Commission for %s", invoice.ServiceName)
	if _, err := creditWalletInTx(ctx, tx, s.userRepo, s.walletRepo, provider, commission, domain.WalletCommission, desc, actorID, now); err != nil {
		return err
	}

	entry := newEntry(desc, invoice.InvoiceID, provider.UserID, actorID, now, []domain.JournalLine{
		domain.DebitLine(domain.AccountCommissionExpense, commission, provider.Name),
		domain.CreditLine(domain.AccountWalletLiability, commission, provider.Name),
	})
	if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
		return err
	}
	return nil
}

// RecordExpense records an operating expense paid immediately and posts the
// mapped expense account against the payment source.
func (s *billingService) RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, creatorUserID string) (*domain.ExpenseRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	expense := domain.ExpenseRecord{
		ExpenseID:   uuid.NewString(),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		ExpenseDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if err := s.expenseRepo.SaveExpenseInTx(ctx, tx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	entry := newEntry(
		fmt.Sprintf("Expense: %s", req.Description),
		expense.ExpenseID,
		expense.ExpenseID,
		creatorUserID,
		now,
		[]domain.JournalLine{
			domain.DebitLine(domain.ExpenseAccountForCategory(req.Category), req.Amount, req.Category),
			domain.CreditLine(req.PaymentMethod.DebitAccount(), req.Amount, ""),
		},
	)
	if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	logger.Info("Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("category", req.Category),
		slog.String("amount", req.Amount.String()),
	)
	return &expense, nil
}

// ListExpenses retrieves expenses, newest first.
func (s *billingService) ListExpenses(ctx context.Context, params dto.ListParams) ([]domain.ExpenseRecord, error) {
	return s.expenseRepo.ListExpenses(ctx, params.Limit, params.Offset)
}

// OutstandingDebt sums the unpaid remainder over all pending invoices.
func (s *billingService) OutstandingDebt(ctx context.Context) (decimal.Decimal, error) {
	_, pendingDebts, err := s.invoiceRepo.RevenueAndDebtTotals(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total outstanding debt: %w", err)
	}
	return pendingDebts, nil
}
