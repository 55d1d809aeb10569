package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
)

const checkColumns = `check_id, check_type, amount, check_number, bank_name, due_date, counterparty, status, registered_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCheckRepository struct {
	pool *pgxpool.Pool
}

// newPgxCheckRepository creates a new repository for check data.
func newPgxCheckRepository(pool *pgxpool.Pool) portsrepo.CheckRepository {
	return &PgxCheckRepository{pool: pool}
}

var _ portsrepo.CheckRepository = (*PgxCheckRepository)(nil)

func scanCheck(row rowScanner) (*domain.Check, error) {
	var check domain.Check
	err := row.Scan(
		&check.CheckID,
		&check.Type,
		&check.Amount,
		&check.CheckNumber,
		&check.BankName,
		&check.DueDate,
		&check.Counterparty,
		&check.Status,
		&check.RegisteredDate,
		&check.CreatedAt,
		&check.CreatedBy,
		&check.LastUpdatedAt,
		&check.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &check, nil
}

// SaveCheckInTx persists a new check within the transaction that posts its
// recognition entry.
func (r *PgxCheckRepository) SaveCheckInTx(ctx context.Context, tx pgx.Tx, check domain.Check) error {
	query := `
		INSERT INTO checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		check.CheckID,
		check.Type,
		check.Amount,
		check.CheckNumber,
		check.BankName,
		check.DueDate,
		check.Counterparty,
		check.Status,
		check.RegisteredDate,
		check.CreatedAt,
		check.CreatedBy,
		check.LastUpdatedAt,
		check.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save check %s: %w", check.CheckID, err)
	}
	return nil
}

// FindCheckByID retrieves a check.
func (r *PgxCheckRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE check_id = $1;`
	check, err := scanCheck(r.pool.QueryRow(ctx, query, checkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check %s: %w", checkID, err)
	}
	return check, nil
}

// FindCheckByIDForUpdate locks the check row for a status transition.
func (r *PgxCheckRepository) FindCheckByIDForUpdate(ctx context.Context, tx pgx.Tx, checkID string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE check_id = $1 FOR UPDATE;`
	check, err := scanCheck(tx.QueryRow(ctx, query, checkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock check %s: %w", checkID, err)
	}
	return check, nil
}

// UpdateStatusInTx writes the new status inside the transition transaction.
func (r *PgxCheckRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, checkID string, status domain.CheckStatus, updatedBy string, now time.Time) error {
	query := `
		UPDATE checks
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE check_id = $1;
	`
	tag, err := tx.Exec(ctx, query, checkID, status, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status for check %s: %w", checkID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListChecks retrieves checks, newest first.
func (r *PgxCheckRepository) ListChecks(ctx context.Context, limit, offset int) ([]domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks ORDER BY registered_date DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	var checks []domain.Check
	for rows.Next() {
		check, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check row: %w", err)
		}
		checks = append(checks, *check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check rows: %w", err)
	}
	return checks, nil
}

const payslipColumns = `payslip_id, user_id, user_name, period, base_salary, commission, bonuses, deductions, net_payable, payment_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPayslipRepository struct {
	pool *pgxpool.Pool
}

// newPgxPayslipRepository creates a new repository for payslip data.
func newPgxPayslipRepository(pool *pgxpool.Pool) portsrepo.PayslipRepository {
	return &PgxPayslipRepository{pool: pool}
}

var _ portsrepo.PayslipRepository = (*PgxPayslipRepository)(nil)

// SavePayslipInTx appends one payslip within the payroll transaction.
func (r *PgxPayslipRepository) SavePayslipInTx(ctx context.Context, tx pgx.Tx, payslip domain.Payslip) error {
	query := `
		INSERT INTO payslips (` + payslipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		payslip.PayslipID,
		payslip.UserID,
		payslip.UserName,
		payslip.Period,
		payslip.BaseSalary,
		payslip.Commission,
		payslip.Bonuses,
		payslip.Deductions,
		payslip.NetPayable,
		payslip.PaymentDate,
		payslip.CreatedAt,
		payslip.CreatedBy,
		payslip.LastUpdatedAt,
		payslip.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payslip %s: %w", payslip.PayslipID, err)
	}
	return nil
}

// ListPayslips retrieves payslips, optionally filtered by period.
func (r *PgxPayslipRepository) ListPayslips(ctx context.Context, period string, limit, offset int) ([]domain.Payslip, error) {
	query := `
		SELECT ` + payslipColumns + `
		FROM payslips
		WHERE $1 = '' OR period = $1
		ORDER BY payment_date DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, period, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []domain.Payslip
	for rows.Next() {
		var p domain.Payslip
		if err := rows.Scan(
			&p.PayslipID,
			&p.UserID,
			&p.UserName,
			&p.Period,
			&p.BaseSalary,
			&p.Commission,
			&p.Bonuses,
			&p.Deductions,
			&p.NetPayable,
			&p.PaymentDate,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payslip row: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payslip rows: %w", err)
	}
	return payslips, nil
}
