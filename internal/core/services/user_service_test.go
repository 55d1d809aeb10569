package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/core/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	tokenSvc     portssvc.TokenSvcFacade
	service      portssvc.UserSvcFacade
	admin        *domain.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.tokenSvc = services.NewTokenService("test-secret", time.Hour, "clubledger-test")
	suite.service = services.NewUserService(suite.mockUserRepo, suite.tokenSvc)

	suite.admin = &domain.User{UserID: uuid.NewString(), Name: "Admin", Roles: []domain.Role{domain.RoleAdmin}, IsActive: true}
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:       "New Member",
		Phone:      "0521234567",
		Password:   "sup3r-secret",
		Roles:      []domain.Role{domain.RoleClient},
		BaseSalary: decimal.Zero,
	}

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.True(user.IsActive)
	suite.True(user.Balance.IsZero())
	suite.NotEqual("sup3r-secret", saved.PasswordHash)
	suite.True(utils.CheckPasswordHash("sup3r-secret", saved.PasswordHash))
}

func (suite *UserServiceTestSuite) TestCreateUser_RejectsNegativeSalary() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:       "New Staff",
		Phone:      "0521234567",
		Password:   "sup3r-secret",
		Roles:      []domain.Role{domain.RoleStaff},
		BaseSalary: decimal.NewFromInt(-100),
	}

	_, err := suite.service.CreateUser(ctx, req, suite.admin.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", ctx, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_SelfCannotChangeRoles() {
	ctx := context.Background()
	member := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleClient}, IsActive: true}

	_, err := suite.service.UpdateUser(ctx, member.UserID, dto.UpdateUserRequest{
		Roles: []domain.Role{domain.RoleAdmin},
	}, member)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", ctx, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_CannotUpdateAnotherUser() {
	ctx := context.Background()
	member := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleClient}, IsActive: true}
	name := "Impostor"

	_, err := suite.service.UpdateUser(ctx, uuid.NewString(), dto.UpdateUserRequest{Name: &name}, member)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestUpdateUser_AdminChangesSalaryAndRoles() {
	ctx := context.Background()
	staff := &domain.User{UserID: uuid.NewString(), Name: "Keeper", Roles: []domain.Role{domain.RoleClient}, IsActive: true}
	salary := decimal.NewFromInt(4000)

	suite.mockUserRepo.On("FindUserByID", ctx, staff.UserID).Return(staff, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, staff.UserID, dto.UpdateUserRequest{
		Roles:      []domain.Role{domain.RoleStaff},
		BaseSalary: &salary,
	}, suite.admin)

	suite.Require().NoError(err)
	suite.Equal([]domain.Role{domain.RoleStaff}, user.Roles)
	suite.True(user.BaseSalary.Equal(salary))
	suite.Equal(suite.admin.UserID, user.LastUpdatedBy)
}

func (suite *UserServiceTestSuite) TestDeactivateUser_RequiresAdmin() {
	ctx := context.Background()
	member := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleClient}, IsActive: true}

	err := suite.service.DeactivateUser(ctx, uuid.NewString(), member)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	member := &domain.User{
		UserID:       uuid.NewString(),
		Phone:        "0521234567",
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleClient},
		IsActive:     true,
	}

	suite.mockUserRepo.On("FindUserByPhone", ctx, member.Phone).Return(member, nil).Once()

	user, token, err := suite.service.Login(ctx, dto.LoginRequest{Phone: member.Phone, Password: "sup3r-secret"})

	suite.Require().NoError(err)
	suite.Equal(member.UserID, user.UserID)

	subject, roles, err := suite.tokenSvc.ValidateAccessToken(ctx, token)
	suite.Require().NoError(err)
	suite.Equal(member.UserID, subject)
	suite.Equal(member.Roles, roles)
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	member := &domain.User{UserID: uuid.NewString(), Phone: "0521234567", PasswordHash: hash, IsActive: true}

	suite.mockUserRepo.On("FindUserByPhone", ctx, member.Phone).Return(member, nil).Once()

	_, _, err = suite.service.Login(ctx, dto.LoginRequest{Phone: member.Phone, Password: "wrong"})

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestLogin_UnknownPhoneMasksNotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByPhone", ctx, "0500000000").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Phone: "0500000000", Password: "whatever"})

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestLogin_DeactivatedAccount() {
	ctx := context.Background()
	hash, err := utils.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	member := &domain.User{UserID: uuid.NewString(), Phone: "0521234567", PasswordHash: hash, IsActive: false}

	suite.mockUserRepo.On("FindUserByPhone", ctx, member.Phone).Return(member, nil).Once()

	_, _, err = suite.service.Login(ctx, dto.LoginRequest{Phone: member.Phone, Password: "sup3r-secret"})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
