package services

import (
	"context"
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves users with pagination.
	ListUsers(ctx context.Context, params dto.ListParams) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser registers a new member or employee.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser partially updates a user's profile.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUser *domain.User) (*domain.User, error)

	// DeactivateUser marks a user inactive. Wallet history is retained.
	DeactivateUser(ctx context.Context, userID string, requestingUser *domain.User) error
}

// AuthSvcFacade authenticates users.
type AuthSvcFacade interface {
	// Login verifies phone and password and returns the user with a signed
	// access token.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error)
}

// TokenSvcFacade issues and verifies access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a token carrying the user's ID and roles.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAccessToken parses a token and returns the user ID and roles.
	ValidateAccessToken(ctx context.Context, tokenString string) (string, []domain.Role, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AuthSvcFacade
}
