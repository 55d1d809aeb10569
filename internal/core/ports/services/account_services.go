package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/dto"
)

// AccountReaderSvc defines read operations over the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByCode retrieves a single account by posting code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves the full chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListChildAccounts retrieves the direct children of one account.
	ListChildAccounts(ctx context.Context, parentCode string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations over the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount adds a new account to the chart.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates mutable account details. Code and type are fixed.
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// EnsureDefaultChart seeds the built-in chart when the table is empty.
	EnsureDefaultChart(ctx context.Context) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
