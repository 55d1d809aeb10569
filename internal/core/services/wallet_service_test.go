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

type WalletServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockWalletRepo  *MockWalletRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.WalletSvcFacade
	admin           *domain.User
	member          *domain.User

	postedEntries []domain.JournalEntry
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewWalletService(suite.mockUserRepo, suite.mockWalletRepo, suite.mockJournalRepo)

	suite.admin = &domain.User{UserID: uuid.NewString(), Name: "Admin", Roles: []domain.Role{domain.RoleAdmin}}
	suite.member = &domain.User{UserID: uuid.NewString(), Name: "Member", Roles: []domain.Role{domain.RoleClient}, Balance: decimal.NewFromInt(200), IsActive: true}

	suite.postedEntries = nil
}

func (suite *WalletServiceTestSuite) expectTx() {
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
}

func (suite *WalletServiceTestSuite) capturePostings() {
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			suite.postedEntries = append(suite.postedEntries, args.Get(2).(domain.JournalEntry))
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), DocumentNumber: 1001}, nil)
}

func (suite *WalletServiceTestSuite) TestAdminUpdateWallet_CreditPostsExpense() {
	ctx := context.Background()
	req := dto.AdminWalletUpdateRequest{
		Amount:      decimal.NewFromInt(150),
		Type:        domain.WalletAdjustment,
		Description: "Front desk top-up",
	}

	suite.expectTx()
	suite.capturePostings()
	suite.mockUserRepo.On("FindUserByIDForUpdate", mock.Anything, mock.Anything, suite.member.UserID).Return(suite.member, nil).Once()
	suite.mockUserRepo.On("UpdateBalanceInTx", mock.Anything, mock.Anything, suite.member.UserID, decimal.NewFromInt(350), suite.admin.UserID, mock.Anything).Return(nil).Once()

	var saved domain.WalletTransaction
	suite.mockWalletRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.WalletTransaction")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(domain.WalletTransaction) }).
		Return(nil).Once()

	txn, err := suite.service.AdminUpdateWallet(ctx, suite.member.UserID, req, suite.admin)

	suite.Require().NoError(err)
	suite.True(txn.IsCredit)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(150)))
	suite.Equal(domain.WalletAdjustment, saved.Type)
	suite.True(suite.member.Balance.Equal(decimal.NewFromInt(350)))

	suite.Require().Len(suite.postedEntries, 1)
	amounts := lineAmounts(suite.postedEntries[0])
	suite.True(amounts[domain.AccountSuppliesExpense].Equal(decimal.NewFromInt(150)))
	suite.True(amounts[domain.AccountWalletLiability].Equal(decimal.NewFromInt(-150)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestAdminUpdateWallet_SalaryCreditDebitsSalaryExpense() {
	ctx := context.Background()
	req := dto.AdminWalletUpdateRequest{
		Amount:      decimal.NewFromInt(400),
		Type:        domain.WalletSalary,
		Description: "Salary correction",
	}

	suite.expectTx()
	suite.capturePostings()
	suite.mockUserRepo.On("FindUserByIDForUpdate", mock.Anything, mock.Anything, suite.member.UserID).Return(suite.member, nil).Once()
	suite.mockUserRepo.On("UpdateBalanceInTx", mock.Anything, mock.Anything, suite.member.UserID, decimal.NewFromInt(600), suite.admin.UserID, mock.Anything).Return(nil).Once()
	suite.mockWalletRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.WalletTransaction")).Return(nil).Once()

	_, err := suite.service.AdminUpdateWallet(ctx, suite.member.UserID, req, suite.admin)

	suite.Require().NoError(err)
	suite.Require().Len(suite.postedEntries, 1)
	amounts := lineAmounts(suite.postedEntries[0])
	suite.True(amounts[domain.AccountSalaryExpense].Equal(decimal.NewFromInt(400)))
	suite.True(amounts[domain.AccountWalletLiability].Equal(decimal.NewFromInt(-400)))
}

func (suite *WalletServiceTestSuite) TestAdminUpdateWallet_DebitPostsCashWithdrawal() {
	ctx := context.Background()
	req := dto.AdminWalletUpdateRequest{
		Amount:      decimal.NewFromInt(-80),
		Type:        domain.WalletWithdrawal,
		Description: "Cash-out",
	}

	suite.expectTx()
	suite.capturePostings()
	suite.mockUserRepo.On("FindUserByIDForUpdate", mock.Anything, mock.Anything, suite.member.UserID).Return(suite.member, nil).Once()
	suite.mockUserRepo.On("UpdateBalanceInTx", mock.Anything, mock.Anything, suite.member.UserID, decimal.NewFromInt(120), suite.admin.UserID, mock.Anything).Return(nil).Once()
	suite.mockWalletRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.WalletTransaction")).Return(nil).Once()

	txn, err := suite.service.AdminUpdateWallet(ctx, suite.member.UserID, req, suite.admin)

	suite.Require().NoError(err)
	suite.False(txn.IsCredit)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(80)))

	suite.Require().Len(suite.postedEntries, 1)
	amounts := lineAmounts(suite.postedEntries[0])
	suite.True(amounts[domain.AccountWalletLiability].Equal(decimal.NewFromInt(80)))
	suite.True(amounts[domain.AccountCashOnHand].Equal(decimal.NewFromInt(-80)))
}

func (suite *WalletServiceTestSuite) TestAdminUpdateWallet_DebitMayDriveBalanceNegative() {
	ctx := context.Background()
	req := dto.AdminWalletUpdateRequest{
		Amount:      decimal.NewFromInt(-500),
		Type:        domain.WalletWithdrawal,
		Description: "Cash-out",
	}

	suite.expectTx()
	suite.capturePostings()
	suite.mockUserRepo.On("FindUserByIDForUpdate", mock.Anything, mock.Anything, suite.member.UserID).Return(suite.member, nil).Once()
	suite.mockUserRepo.On("UpdateBalanceInTx", mock.Anything, mock.Anything, suite.member.UserID, decimal.NewFromInt(-300), suite.admin.UserID, mock.Anything).Return(nil).Once()
	suite.mockWalletRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.WalletTransaction")).Return(nil).Once()

	txn, err := suite.service.AdminUpdateWallet(ctx, suite.member.UserID, req, suite.admin)

	suite.Require().NoError(err)
	suite.False(txn.IsCredit)
	suite.True(suite.member.Balance.Equal(decimal.NewFromInt(-300)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestAdminUpdateWallet_ZeroAmount() {
	ctx := context.Background()
	req := dto.AdminWalletUpdateRequest{
		Amount:      decimal.Zero,
		Type:        domain.WalletAdjustment,
		Description: "Nothing",
	}

	_, err := suite.service.AdminUpdateWallet(ctx, suite.member.UserID, req, suite.admin)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *WalletServiceTestSuite) TestAdminUpdateWallet_RequiresAdmin() {
	ctx := context.Background()
	req := dto.AdminWalletUpdateRequest{
		Amount:      decimal.NewFromInt(50),
		Type:        domain.WalletDeposit,
		Description: "Top-up",
	}

	_, err := suite.service.AdminUpdateWallet(ctx, suite.member.UserID, req, suite.member)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *WalletServiceTestSuite) TestChargeWallet_PostsBankDeposit() {
	ctx := context.Background()
	req := dto.ChargeWalletRequest{Amount: decimal.NewFromInt(300)}

	suite.expectTx()
	suite.capturePostings()
	suite.mockUserRepo.On("FindUserByIDForUpdate", mock.Anything, mock.Anything, suite.member.UserID).Return(suite.member, nil).Once()
	suite.mockUserRepo.On("UpdateBalanceInTx", mock.Anything, mock.Anything, suite.member.UserID, decimal.NewFromInt(500), suite.member.UserID, mock.Anything).Return(nil).Once()

	var saved domain.WalletTransaction
	suite.mockWalletRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.WalletTransaction")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(domain.WalletTransaction) }).
		Return(nil).Once()

	txn, err := suite.service.ChargeWallet(ctx, suite.member.UserID, req)

	suite.Require().NoError(err)
	suite.True(txn.IsCredit)
	suite.Equal(domain.WalletDeposit, saved.Type)

	suite.Require().Len(suite.postedEntries, 1)
	amounts := lineAmounts(suite.postedEntries[0])
	suite.True(amounts[domain.AccountBank].Equal(decimal.NewFromInt(300)))
	suite.True(amounts[domain.AccountWalletLiability].Equal(decimal.NewFromInt(-300)))
}

func (suite *WalletServiceTestSuite) TestChargeWallet_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.ChargeWalletRequest{Amount: decimal.NewFromInt(-10)}

	_, err := suite.service.ChargeWallet(ctx, suite.member.UserID, req)

	suite.Require().ErrorIs(err, services.ErrAmountNotPositive)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *WalletServiceTestSuite) TestGetBalance() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.member.UserID).Return(suite.member, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.member.UserID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(200)))
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
