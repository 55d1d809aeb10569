package repositories

import (
	"context"
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CheckRepository persists payment instruments.
type CheckRepository interface {
	// SaveCheckInTx persists a new check within the transaction that posts
	// its recognition entry.
	SaveCheckInTx(ctx context.Context, tx pgx.Tx, check domain.Check) error

	// FindCheckByID retrieves a check.
	FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error)

	// FindCheckByIDForUpdate locks the check row for a status transition.
	FindCheckByIDForUpdate(ctx context.Context, tx pgx.Tx, checkID string) (*domain.Check, error)

	// UpdateStatusInTx writes the new status inside the transition transaction.
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, checkID string, status domain.CheckStatus, updatedBy string, now time.Time) error

	// ListChecks retrieves checks, newest first.
	ListChecks(ctx context.Context, limit, offset int) ([]domain.Check, error)
}

// PayslipRepository persists payroll payslips.
type PayslipRepository interface {
	// SavePayslipInTx appends one payslip within the payroll transaction.
	SavePayslipInTx(ctx context.Context, tx pgx.Tx, payslip domain.Payslip) error

	// ListPayslips retrieves payslips, optionally filtered by period.
	ListPayslips(ctx context.Context, period string, limit, offset int) ([]domain.Payslip, error)
}
