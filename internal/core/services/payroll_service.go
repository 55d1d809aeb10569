package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

var (
	ErrNoEmployees   = errors.New("no salaried employees to pay")
	ErrInvalidPeriod = errors.New("period must be formatted as YYYY-MM")
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// payrollService runs the monthly payroll. One run credits every salaried
// employee's wallet, emits one payslip per employee and posts a single
// aggregate salary entry for the gross total.
type payrollService struct {
	userRepo    portsrepo.UserRepository
	walletRepo  portsrepo.WalletRepository
	payslipRepo portsrepo.PayslipRepository
	journalRepo portsrepo.JournalRepository
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(userRepo portsrepo.UserRepository, walletRepo portsrepo.WalletRepository, payslipRepo portsrepo.PayslipRepository, journalRepo portsrepo.JournalRepository) portssvc.PayrollSvcFacade {
	return &payrollService{
		userRepo:    userRepo,
		walletRepo:  walletRepo,
		payslipRepo: payslipRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// RunMonthlyPayroll executes one payroll run for the period.
func (s *payrollService) RunMonthlyPayroll(ctx context.Context, req dto.RunPayrollRequest, requestingUser *domain.User) (*dto.PayrollRunResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requestingUser == nil || !requestingUser.HasRole(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: only admins may run payroll", apperrors.ErrForbidden)
	}
	if !periodPattern.MatchString(req.Period) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidPeriod, req.Period)
	}

	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	employees, err := s.userRepo.ListEmployeesForUpdate(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to lock employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, ErrNoEmployees
	}

	totalGross := decimal.Zero
	payslips := make([]domain.Payslip, 0, len(employees))
	for i := range employees {
		emp := &employees[i]

		bonus := req.Bonuses[emp.UserID]
		deduction := req.Deductions[emp.UserID]
		if bonus.IsNegative() || deduction.IsNegative() {
			return nil, fmt.Errorf("%w: bonuses and deductions must be non-negative", apperrors.ErrValidation)
		}
		net := emp.BaseSalary.Add(bonus).Sub(deduction)
		if !net.IsPositive() {
			continue
		}

		desc := fmt.Sprintf("Salary for %s", req.Period)
		if _, err := creditWalletInTx(ctx, tx, s.userRepo, s.walletRepo, emp, net, domain.WalletSalary, desc, requestingUser.UserID, now); err != nil {
			return nil, fmt.Errorf("payroll failed for %s: %w", emp.UserID, err)
		}

		payslip := domain.Payslip{
			PayslipID:   uuid.NewString(),
			UserID:      emp.UserID,
			UserName:    emp.Name,
			Period:      req.Period,
			BaseSalary:  emp.BaseSalary,
			Commission:  decimal.Zero,
			Bonuses:     bonus,
			Deductions:  deduction,
			NetPayable:  net,
			PaymentDate: now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUser.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUser.UserID,
			},
		}
		if err := s.payslipRepo.SavePayslipInTx(ctx, tx, payslip); err != nil {
			return nil, fmt.Errorf("failed to save payslip for %s: %w", emp.UserID, err)
		}

		payslips = append(payslips, payslip)
		totalGross = totalGross.Add(net)
	}
	if len(payslips) == 0 {
		return nil, ErrNoEmployees
	}

	// One aggregate posting for the whole run: salary expense against the
	// wallet liability that just absorbed the individual credits.
	entry := newEntry(
		fmt.Sprintf("Payroll %s (%d employees)", req.Period, len(payslips)),
		req.Period,
		"",
		requestingUser.UserID,
		now,
		[]domain.JournalLine{
			domain.DebitLine(domain.AccountSalaryExpense, totalGross, req.Period),
			domain.CreditLine(domain.AccountWalletLiability, totalGross, req.Period),
		},
	)
	if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit payroll: %w", err)
	}

	logger.Info("Payroll completed",
		slog.String("period", req.Period),
		slog.Int("employees", len(payslips)),
		slog.String("total_gross", totalGross.String()),
	)
	return &dto.PayrollRunResponse{
		Period:     req.Period,
		TotalGross: totalGross,
		Payslips:   dto.ToPayslipResponses(payslips),
	}, nil
}

// ListPayslips retrieves payslips, optionally filtered by period.
func (s *payrollService) ListPayslips(ctx context.Context, period string, params dto.ListParams) ([]domain.Payslip, error) {
	return s.payslipRepo.ListPayslips(ctx, period, params.Limit, params.Offset)
}
