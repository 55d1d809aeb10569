package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
)

const userColumns = `user_id, name, phone, password_hash, roles, balance, base_salary, commission_overrides, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var roles []string
	var overridesJSON []byte
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Phone,
		&user.PasswordHash,
		&roles,
		&user.Balance,
		&user.BaseSalary,
		&overridesJSON,
		&user.IsActive,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.LastUpdatedAt,
		&user.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	user.Roles = make([]domain.Role, len(roles))
	for i, r := range roles {
		user.Roles[i] = domain.Role(r)
	}
	if len(overridesJSON) > 0 {
		if err := json.Unmarshal(overridesJSON, &user.CommissionOverrides); err != nil {
			return nil, fmt.Errorf("failed to decode commission overrides for user %s: %w", user.UserID, err)
		}
	}
	return &user, nil
}

func rolesAsStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func overridesAsJSON(overrides map[domain.ServiceCategory]decimal.Decimal) ([]byte, error) {
	if len(overrides) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(overrides)
}

// SaveUser persists a new user; ErrDuplicate if the phone exists.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	overrides, err := overridesAsJSON(user.CommissionOverrides)
	if err != nil {
		return fmt.Errorf("failed to encode commission overrides: %w", err)
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Phone,
		user.PasswordHash,
		rolesAsStrings(user.Roles),
		user.Balance,
		user.BaseSalary,
		overrides,
		user.IsActive,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// FindUserByPhone retrieves a user by login phone number.
func (r *PgxUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1;`
	user, err := scanUser(r.pool.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// UpdateUser updates profile fields. The wallet balance is updated only
// through UpdateBalanceInTx.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	overrides, err := overridesAsJSON(user.CommissionOverrides)
	if err != nil {
		return fmt.Errorf("failed to encode commission overrides: %w", err)
	}
	query := `
		UPDATE users
		SET name = $2, phone = $3, roles = $4, base_salary = $5, commission_overrides = $6,
		    is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE user_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Phone,
		rolesAsStrings(user.Roles),
		user.BaseSalary,
		overrides,
		user.IsActive,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindUserByIDForUpdate locks the user's row for the duration of the
// transaction.
func (r *PgxUserRepository) FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 FOR UPDATE;`
	user, err := scanUser(tx.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock user %s: %w", userID, err)
	}
	return user, nil
}

// UpdateBalanceInTx writes the new wallet balance within the transaction.
func (r *PgxUserRepository) UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, balance decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	tag, err := tx.Exec(ctx, query, userID, balance, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update balance for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListEmployeesForUpdate locks and returns every active user with a positive
// base salary, in a stable order to avoid lock ordering deadlocks.
func (r *PgxUserRepository) ListEmployeesForUpdate(ctx context.Context, tx pgx.Tx) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_active AND base_salary > 0
		ORDER BY user_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to lock employees: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

// TotalWalletLiability sums all positive wallet balances.
func (r *PgxUserRepository) TotalWalletLiability(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM users WHERE balance > 0;`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum wallet liability: %w", err)
	}
	return total, nil
}
