package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/dto"
)

// CheckSvcFacade manages the check lifecycle.
type CheckSvcFacade interface {
	// RegisterCheck records a new check and posts its recognition entry.
	RegisterCheck(ctx context.Context, req dto.RegisterCheckRequest, creatorUserID string) (*domain.Check, error)

	// ClearCheck settles a pending check and posts the clearing entry.
	ClearCheck(ctx context.Context, checkID string, requestingUserID string) (*domain.Check, error)

	// BounceCheck marks a pending check bounced. Status only; no posting.
	BounceCheck(ctx context.Context, checkID string, requestingUserID string) (*domain.Check, error)

	// ListChecks retrieves checks, newest first.
	ListChecks(ctx context.Context, params dto.ListParams) ([]domain.Check, error)
}
