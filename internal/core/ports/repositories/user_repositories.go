package repositories

import (
	"context"
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository persists users and their denormalized wallet balances.
type UserRepository interface {
	// SaveUser persists a new user; ErrDuplicate if the phone exists.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByPhone retrieves a user by login phone number.
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// UpdateUser updates profile fields (name, roles, salary, overrides).
	UpdateUser(ctx context.Context, user domain.User) error

	// FindUserByIDForUpdate locks the user's row for the duration of the
	// transaction; wallet mutations must go through this lock.
	FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error)

	// UpdateBalanceInTx writes the new wallet balance within the transaction.
	UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, balance decimal.Decimal, updatedBy string, now time.Time) error

	// ListEmployeesForUpdate locks and returns every user with a positive
	// base salary; used by the payroll run.
	ListEmployeesForUpdate(ctx context.Context, tx pgx.Tx) ([]domain.User, error)

	// TotalWalletLiability sums all positive wallet balances.
	TotalWalletLiability(ctx context.Context) (decimal.Decimal, error)
}
