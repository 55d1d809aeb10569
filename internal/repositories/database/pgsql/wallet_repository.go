package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
)

const walletTxnColumns = `txn_id, user_id, amount, txn_type, description, is_credit,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxWalletRepository struct {
	pool *pgxpool.Pool
}

// newPgxWalletRepository creates a new repository for wallet transaction data.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepository {
	return &PgxWalletRepository{pool: pool}
}

var _ portsrepo.WalletRepository = (*PgxWalletRepository)(nil)

// SaveTransactionInTx appends a wallet transaction within the same
// transaction as the balance update it mirrors.
func (r *PgxWalletRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transactions (` + walletTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		txn.TxnID,
		txn.UserID,
		txn.Amount,
		txn.Type,
		txn.Description,
		txn.IsCredit,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save wallet transaction %s: %w", txn.TxnID, err)
	}
	return nil
}

// ListTransactionsByUser retrieves a user's wallet history, newest first.
func (r *PgxWalletRepository) ListTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.WalletTransaction, error) {
	query := `
		SELECT ` + walletTxnColumns + `
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var txns []domain.WalletTransaction
	for rows.Next() {
		var t domain.WalletTransaction
		if err := rows.Scan(
			&t.TxnID,
			&t.UserID,
			&t.Amount,
			&t.Type,
			&t.Description,
			&t.IsCredit,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet transaction rows: %w", err)
	}
	return txns, nil
}
