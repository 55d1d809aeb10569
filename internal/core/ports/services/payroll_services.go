package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/dto"
)

// PayrollSvcFacade runs payroll and exposes payslip history.
type PayrollSvcFacade interface {
	// RunMonthlyPayroll credits every salaried employee's wallet, emits one
	// payslip each, and posts a single aggregate salary entry.
	RunMonthlyPayroll(ctx context.Context, req dto.RunPayrollRequest, requestingUser *domain.User) (*dto.PayrollRunResponse, error)

	// ListPayslips retrieves payslips, optionally filtered by period.
	ListPayslips(ctx context.Context, period string, params dto.ListParams) ([]domain.Payslip, error)
}
