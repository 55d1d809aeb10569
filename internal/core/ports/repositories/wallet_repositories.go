package repositories

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WalletRepository persists the append-only wallet transaction log. Balances
// live on the user row; see UserRepository.
type WalletRepository interface {
	// SaveTransactionInTx appends a wallet transaction within the same
	// transaction as the balance update and journal posting it mirrors.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.WalletTransaction) error

	// ListTransactionsByUser retrieves a user's wallet history, newest first.
	ListTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.WalletTransaction, error)
}
