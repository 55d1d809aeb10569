package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletSvcFacade manages member wallets. Every mutation writes the wallet
// transaction log, the user balance and a journal entry atomically.
type WalletSvcFacade interface {
	// GetBalance reports one user's wallet balance.
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)

	// ListTransactions retrieves a user's wallet history, newest first.
	ListTransactions(ctx context.Context, userID string, params dto.ListParams) ([]domain.WalletTransaction, error)

	// AdminUpdateWallet applies a manual administrator adjustment. A positive
	// amount credits the wallet, a negative amount debits it.
	AdminUpdateWallet(ctx context.Context, userID string, req dto.AdminWalletUpdateRequest, requestingUser *domain.User) (*domain.WalletTransaction, error)

	// ChargeWallet tops up the member's own wallet through an online payment.
	ChargeWallet(ctx context.Context, userID string, req dto.ChargeWalletRequest) (*domain.WalletTransaction, error)
}
