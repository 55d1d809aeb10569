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
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrAmountNotPositive = errors.New("amount must be positive")
)

// walletService manages member wallets. Every mutation runs in one
// transaction covering the balance update, the wallet log record and the
// journal posting against the member-wallet liability account.
type walletService struct {
	userRepo    portsrepo.UserRepository
	walletRepo  portsrepo.WalletRepository
	journalRepo portsrepo.JournalRepository
}

// NewWalletService creates a new WalletService.
func NewWalletService(userRepo portsrepo.UserRepository, walletRepo portsrepo.WalletRepository, journalRepo portsrepo.JournalRepository) portssvc.WalletSvcFacade {
	return &walletService{
		userRepo:    userRepo,
		walletRepo:  walletRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// creditWalletInTx raises the locked user's balance and appends the wallet
// log record. The caller posts the matching journal entry.
func creditWalletInTx(ctx context.Context, tx pgx.Tx, userRepo portsrepo.UserRepository, walletRepo portsrepo.WalletRepository, user *domain.User, amount decimal.Decimal, txnType domain.WalletTxnType, description, actorUserID string, now time.Time) (*domain.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, amount)
	}

	newBalance := user.Balance.Add(amount)
	if err := userRepo.UpdateBalanceInTx(ctx, tx, user.UserID, newBalance, actorUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	user.Balance = newBalance

	txn := domain.WalletTransaction{
		TxnID:       uuid.NewString(),
		UserID:      user.UserID,
		Amount:      amount,
		Type:        txnType,
		Description: description,
		IsCredit:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := walletRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save wallet transaction: %w", err)
	}
	return &txn, nil
}

// debitWalletInTx lowers the locked user's balance after an availability
// check and appends the wallet log record.
func debitWalletInTx(ctx context.Context, tx pgx.Tx, userRepo portsrepo.UserRepository, walletRepo portsrepo.WalletRepository, user *domain.User, amount decimal.Decimal, txnType domain.WalletTxnType, description, actorUserID string, now time.Time) (*domain.WalletTransaction, error) {
	if user.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, user.Balance, amount)
	}
	return forceDebitWalletInTx(ctx, tx, userRepo, walletRepo, user, amount, txnType, description, actorUserID, now)
}

// forceDebitWalletInTx lowers the locked user's balance without an
// availability check; the balance may go negative. Used by administrator
// adjustments, which override the usual funds guard.
func forceDebitWalletInTx(ctx context.Context, tx pgx.Tx, userRepo portsrepo.UserRepository, walletRepo portsrepo.WalletRepository, user *domain.User, amount decimal.Decimal, txnType domain.WalletTxnType, description, actorUserID string, now time.Time) (*domain.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, amount)
	}

	newBalance := user.Balance.Sub(amount)
	if err := userRepo.UpdateBalanceInTx(ctx, tx, user.UserID, newBalance, actorUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	user.Balance = newBalance

	txn := domain.WalletTransaction{
		TxnID:       uuid.NewString(),
		UserID:      user.UserID,
		Amount:      amount,
		Type:        txnType,
		Description: description,
		IsCredit:    false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := walletRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save wallet transaction: %w", err)
	}
	return &txn, nil
}

// GetBalance reports one user's wallet balance.
func (s *walletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user.Balance, nil
}

// ListTransactions retrieves a user's wallet history, newest first.
func (s *walletService) ListTransactions(ctx context.Context, userID string, params dto.ListParams) ([]domain.WalletTransaction, error) {
	return s.walletRepo.ListTransactionsByUser(ctx, userID, params.Limit, params.Offset)
}

// adjustmentExpenseAccount picks the expense account debited when an
// administrator credits a wallet, based on the adjustment type.
func adjustmentExpenseAccount(txnType domain.WalletTxnType) string {
	switch txnType {
	case domain.WalletSalary:
		return domain.AccountSalaryExpense
	case domain.WalletCommission:
		return domain.AccountCommissionExpense
	default:
		return domain.AccountSuppliesExpense
	}
}

// AdminUpdateWallet applies a manual administrator adjustment. A positive
// amount credits the wallet against an expense account picked by type; a
// negative amount debits it against cash. The debit skips the funds check,
// so an adjustment may leave the balance negative.
func (s *walletService) AdminUpdateWallet(ctx context.Context, userID string, req dto.AdminWalletUpdateRequest, requestingUser *domain.User) (*domain.WalletTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requestingUser == nil || !requestingUser.HasRole(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: only admins may adjust wallets", apperrors.ErrForbidden)
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: adjustment amount must be nonzero", apperrors.ErrValidation)
	}

	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	user, err := s.userRepo.FindUserByIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock user %s: %w", userID, err)
	}

	var txn *domain.WalletTransaction
	var lines []domain.JournalLine
	if req.Amount.IsPositive() {
		txn, err = creditWalletInTx(ctx, tx, s.userRepo, s.walletRepo, user, req.Amount, req.Type, req.Description, requestingUser.UserID, now)
		if err != nil {
			return nil, err
		}
		lines = []domain.JournalLine{
			domain.DebitLine(adjustmentExpenseAccount(req.Type), req.Amount, ""),
			domain.CreditLine(domain.AccountWalletLiability, req.Amount, user.Name),
		}
	} else {
		amount := req.Amount.Neg()
		txn, err = forceDebitWalletInTx(ctx, tx, s.userRepo, s.walletRepo, user, amount, req.Type, req.Description, requestingUser.UserID, now)
		if err != nil {
			return nil, err
		}
		lines = []domain.JournalLine{
			domain.DebitLine(domain.AccountWalletLiability, amount, user.Name),
			domain.CreditLine(domain.AccountCashOnHand, amount, ""),
		}
	}

	entry := newEntry(fmt.Sprintf("Wallet adjustment: %s", req.Description), "", userID, requestingUser.UserID, now, lines)
	if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit wallet adjustment: %w", err)
	}

	logger.Info("Wallet adjusted",
		slog.String("user_id", userID),
		slog.String("amount", req.Amount.String()),
		slog.String("adjusted_by", requestingUser.UserID),
	)
	return txn, nil
}

// ChargeWallet tops up the member's own wallet through an online payment.
// The posting debits the bank account and credits the wallet liability.
func (s *walletService) ChargeWallet(ctx context.Context, userID string, req dto.ChargeWalletRequest) (*domain.WalletTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, req.Amount)
	}

	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	user, err := s.userRepo.FindUserByIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock user %s: %w", userID, err)
	}

	txn, err := creditWalletInTx(ctx, tx, s.userRepo, s.walletRepo, user, req.Amount, domain.WalletDeposit, "Online wallet recharge", userID, now)
	if err != nil {
		return nil, err
	}

	entry := newEntry("Wallet recharge", "", userID, userID, now, []domain.JournalLine{
		domain.DebitLine(domain.AccountBank, req.Amount, ""),
		domain.CreditLine(domain.AccountWalletLiability, req.Amount, user.Name),
	})
	if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit wallet recharge: %w", err)
	}

	logger.Info("Wallet recharged", slog.String("user_id", userID), slog.String("amount", req.Amount.String()))
	return txn, nil
}
