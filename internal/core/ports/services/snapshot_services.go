package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// SnapshotSvcFacade exports and restores the whole ledger state.
type SnapshotSvcFacade interface {
	// Export reads every collection into one versioned snapshot document.
	Export(ctx context.Context, requestingUser *domain.User) (*domain.Snapshot, error)

	// Restore replaces all state from a snapshot. Admin only, irreversible;
	// the document counter continues after the highest restored number.
	Restore(ctx context.Context, snapshot *domain.Snapshot, requestingUser *domain.User) error
}
