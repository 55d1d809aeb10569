package repositories

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts.
type AccountReader interface {
	// FindAccountByCode retrieves an account by its posting code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the full chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListChildren retrieves the direct children of an account.
	ListChildren(ctx context.Context, parentCode string) ([]domain.Account, error)

	// CountAccounts reports how many accounts exist; used by the seeder.
	CountAccounts(ctx context.Context) (int64, error)
}

// AccountWriter defines write operations for the chart of accounts.
// Accounts are never deleted, only updated or deactivated.
type AccountWriter interface {
	// SaveAccount persists a new account; ErrDuplicate if the code exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepository combines chart-of-accounts persistence operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
