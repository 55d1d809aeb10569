package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/core/services"
	"github.com/clubops/clubledger/internal/dto"
)

type PayrollServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockWalletRepo  *MockWalletRepository
	mockPayslipRepo *MockPayslipRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.PayrollSvcFacade
	admin           *domain.User

	postedEntries []domain.JournalEntry
	savedPayslips []domain.Payslip
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockPayslipRepo = new(MockPayslipRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewPayrollService(suite.mockUserRepo, suite.mockWalletRepo, suite.mockPayslipRepo, suite.mockJournalRepo)

	suite.admin = &domain.User{UserID: uuid.NewString(), Name: "Admin", Roles: []domain.Role{domain.RoleAdmin}}

	suite.postedEntries = nil
	suite.savedPayslips = nil
}

func (suite *PayrollServiceTestSuite) expectTx() {
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
}

func (suite *PayrollServiceTestSuite) capturePostings() {
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			suite.postedEntries = append(suite.postedEntries, args.Get(2).(domain.JournalEntry))
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), DocumentNumber: 1001}, nil)
}

func (suite *PayrollServiceTestSuite) capturePayslips() {
	suite.mockPayslipRepo.On("SavePayslipInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Payslip")).
		Run(func(args mock.Arguments) {
			suite.savedPayslips = append(suite.savedPayslips, args.Get(2).(domain.Payslip))
		}).
		Return(nil)
}

func employee(name string, salary int64) domain.User {
	return domain.User{
		UserID:     uuid.NewString(),
		Name:       name,
		Roles:      []domain.Role{domain.RoleStaff},
		BaseSalary: decimal.NewFromInt(salary),
		Balance:    decimal.Zero,
		IsActive:   true,
	}
}

func (suite *PayrollServiceTestSuite) TestRunMonthlyPayroll_PostsAggregateSalaryEntry() {
	ctx := context.Background()
	staff := employee("Coach", 5000)
	keeper := employee("Keeper", 3000)
	req := dto.RunPayrollRequest{
		Period:     "2025-06",
		Bonuses:    map[string]decimal.Decimal{staff.UserID: decimal.NewFromInt(500)},
		Deductions: map[string]decimal.Decimal{keeper.UserID: decimal.NewFromInt(200)},
	}

	suite.expectTx()
	suite.capturePostings()
	suite.capturePayslips()
	suite.mockUserRepo.On("ListEmployeesForUpdate", mock.Anything, mock.Anything).Return([]domain.User{staff, keeper}, nil).Once()
	suite.mockUserRepo.On("UpdateBalanceInTx", mock.Anything, mock.Anything, staff.UserID, decimal.NewFromInt(5500), suite.admin.UserID, mock.Anything).Return(nil).Once()
	suite.mockUserRepo.On("UpdateBalanceInTx", mock.Anything, mock.Anything, keeper.UserID, decimal.NewFromInt(2800), suite.admin.UserID, mock.Anything).Return(nil).Once()
	suite.mockWalletRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.WalletTransaction")).Return(nil).Twice()

	result, err := suite.service.RunMonthlyPayroll(ctx, req, suite.admin)

	suite.Require().NoError(err)
	suite.Equal("2025-06", result.Period)
	suite.True(result.TotalGross.Equal(decimal.NewFromInt(8300)))
	suite.Len(result.Payslips, 2)

	suite.Require().Len(suite.savedPayslips, 2)
	suite.True(suite.savedPayslips[0].NetPayable.Equal(decimal.NewFromInt(5500)))
	suite.True(suite.savedPayslips[1].NetPayable.Equal(decimal.NewFromInt(2800)))

	suite.Require().Len(suite.postedEntries, 1)
	amounts := lineAmounts(suite.postedEntries[0])
	suite.True(amounts[domain.AccountSalaryExpense].Equal(decimal.NewFromInt(8300)))
	suite.True(amounts[domain.AccountWalletLiability].Equal(decimal.NewFromInt(-8300)))
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestRunMonthlyPayroll_SkipsNonPositiveNet() {
	ctx := context.Background()
	staff := employee("Coach", 5000)
	intern := employee("Intern", 1000)
	req := dto.RunPayrollRequest{
		Period:     "2025-06",
		Deductions: map[string]decimal.Decimal{intern.UserID: decimal.NewFromInt(1000)},
	}

	suite.expectTx()
	suite.capturePostings()
	suite.capturePayslips()
	suite.mockUserRepo.On("ListEmployeesForUpdate", mock.Anything, mock.Anything).Return([]domain.User{staff, intern}, nil).Once()
	suite.mockUserRepo.On("UpdateBalanceInTx", mock.Anything, mock.Anything, staff.UserID, decimal.NewFromInt(5000), suite.admin.UserID, mock.Anything).Return(nil).Once()
	suite.mockWalletRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.WalletTransaction")).Return(nil).Once()

	result, err := suite.service.RunMonthlyPayroll(ctx, req, suite.admin)

	suite.Require().NoError(err)
	suite.Len(result.Payslips, 1)
	suite.True(result.TotalGross.Equal(decimal.NewFromInt(5000)))
	suite.Require().Len(suite.savedPayslips, 1)
	suite.Equal(staff.UserID, suite.savedPayslips[0].UserID)
}

func (suite *PayrollServiceTestSuite) TestRunMonthlyPayroll_NoEmployees() {
	ctx := context.Background()
	req := dto.RunPayrollRequest{Period: "2025-06"}

	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockUserRepo.On("ListEmployeesForUpdate", mock.Anything, mock.Anything).Return([]domain.User{}, nil).Once()

	_, err := suite.service.RunMonthlyPayroll(ctx, req, suite.admin)

	suite.Require().ErrorIs(err, services.ErrNoEmployees)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestRunMonthlyPayroll_InvalidPeriod() {
	ctx := context.Background()

	for _, period := range []string{"2025-13", "2025-1", "202506", "25-06", ""} {
		_, err := suite.service.RunMonthlyPayroll(ctx, dto.RunPayrollRequest{Period: period}, suite.admin)
		suite.Require().ErrorIs(err, services.ErrInvalidPeriod, "period %q", period)
	}
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestRunMonthlyPayroll_NegativeAdjustment() {
	ctx := context.Background()
	staff := employee("Coach", 5000)
	req := dto.RunPayrollRequest{
		Period:  "2025-06",
		Bonuses: map[string]decimal.Decimal{staff.UserID: decimal.NewFromInt(-100)},
	}

	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockUserRepo.On("ListEmployeesForUpdate", mock.Anything, mock.Anything).Return([]domain.User{staff}, nil).Once()

	_, err := suite.service.RunMonthlyPayroll(ctx, req, suite.admin)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestRunMonthlyPayroll_RequiresAdmin() {
	ctx := context.Background()
	staffUser := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleStaff}}

	_, err := suite.service.RunMonthlyPayroll(ctx, dto.RunPayrollRequest{Period: "2025-06"}, staffUser)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
