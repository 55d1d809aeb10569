package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
	"github.com/clubops/clubledger/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid phone or password")

// userService manages users and authentication.
type userService struct {
	userRepo portsrepo.UserRepository
	tokenSvc portssvc.TokenSvcFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, tokenSvc portssvc.TokenSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// ListUsers retrieves users with pagination.
func (s *userService) ListUsers(ctx context.Context, params dto.ListParams) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, params.Limit, params.Offset)
}

// CreateUser registers a new member or employee.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.BaseSalary.IsNegative() {
		return nil, fmt.Errorf("%w: base salary must be non-negative", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:              uuid.NewString(),
		Name:                req.Name,
		Phone:               req.Phone,
		PasswordHash:        hash,
		Roles:               req.Roles,
		Balance:             decimal.Zero,
		BaseSalary:          req.BaseSalary,
		CommissionOverrides: req.CommissionOverrides,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("phone", req.Phone), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("name", user.Name))
	return &user, nil
}

// UpdateUser partially updates a user's profile. Role, salary and commission
// changes are admin only.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUser *domain.User) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	isAdmin := requestingUser != nil && requestingUser.HasRole(domain.RoleAdmin)
	isSelf := requestingUser != nil && requestingUser.UserID == userID
	if !isAdmin && !isSelf {
		return nil, fmt.Errorf("%w: cannot update another user", apperrors.ErrForbidden)
	}
	if !isAdmin && (req.Roles != nil || req.BaseSalary != nil || req.CommissionOverrides != nil || req.IsActive != nil) {
		return nil, fmt.Errorf("%w: only admins may change roles, salary or commissions", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.Roles != nil {
		user.Roles = req.Roles
	}
	if req.BaseSalary != nil {
		if req.BaseSalary.IsNegative() {
			return nil, fmt.Errorf("%w: base salary must be non-negative", apperrors.ErrValidation)
		}
		user.BaseSalary = *req.BaseSalary
	}
	if req.CommissionOverrides != nil {
		user.CommissionOverrides = req.CommissionOverrides
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUser.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeactivateUser marks a user inactive. Wallet history is retained.
func (s *userService) DeactivateUser(ctx context.Context, userID string, requestingUser *domain.User) error {
	if requestingUser == nil || !requestingUser.HasRole(domain.RoleAdmin) {
		return fmt.Errorf("%w: only admins may deactivate users", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	user.IsActive = false
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUser.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// Login verifies phone and password and returns the user with a signed
// access token.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, "", fmt.Errorf("%w: account is deactivated", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("phone", req.Phone))
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return user, token, nil
}
