package repositories

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// SnapshotRepository exports and restores the whole persisted state.
type SnapshotRepository interface {
	// ExportAll reads every collection into one document.
	ExportAll(ctx context.Context) (*domain.SnapshotData, error)

	// RestoreAll replaces every collection wholesale in one transaction and
	// resets the document counter so the next posting continues after the
	// highest restored document number (never below docBase).
	RestoreAll(ctx context.Context, data *domain.SnapshotData, docBase int64) error
}
