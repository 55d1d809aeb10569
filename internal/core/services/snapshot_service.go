package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/middleware"
)

// snapshotService exports and restores the whole ledger state.
type snapshotService struct {
	snapshotRepo portsrepo.SnapshotRepository

	// docBase is the floor for document numbers after a restore; the
	// counter continues from the highest restored number or this base,
	// whichever is greater.
	docBase int64
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(snapshotRepo portsrepo.SnapshotRepository, docBase int64) portssvc.SnapshotSvcFacade {
	return &snapshotService{
		snapshotRepo: snapshotRepo,
		docBase:      docBase,
	}
}

var _ portssvc.SnapshotSvcFacade = (*snapshotService)(nil)

// Export reads every collection into one versioned snapshot document.
func (s *snapshotService) Export(ctx context.Context, requestingUser *domain.User) (*domain.Snapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requestingUser == nil || !requestingUser.HasRole(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: only admins may export snapshots", apperrors.ErrForbidden)
	}

	data, err := s.snapshotRepo.ExportAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export snapshot: %w", err)
	}

	snapshot := &domain.Snapshot{
		Metadata: domain.SnapshotMetadata{
			Timestamp:  time.Now().UTC(),
			Version:    domain.SnapshotVersion,
			ExportedBy: requestingUser.UserID,
		},
		Data: *data,
	}

	logger.Info("Snapshot exported",
		slog.String("exported_by", requestingUser.UserID),
		slog.Int("journal_entries", len(data.JournalEntries)),
	)
	return snapshot, nil
}

// Restore replaces all state from a snapshot. Irreversible; the document
// counter continues after the highest restored number.
func (s *snapshotService) Restore(ctx context.Context, snapshot *domain.Snapshot, requestingUser *domain.User) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requestingUser == nil || !requestingUser.HasRole(domain.RoleAdmin) {
		return fmt.Errorf("%w: only admins may restore snapshots", apperrors.ErrForbidden)
	}
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot is required", apperrors.ErrValidation)
	}
	if snapshot.Metadata.Version != domain.SnapshotVersion {
		return fmt.Errorf("%w: unsupported snapshot version %q", apperrors.ErrValidation, snapshot.Metadata.Version)
	}

	// The restored journal must still satisfy the double-entry invariants.
	for _, entry := range snapshot.Data.JournalEntries {
		diff := entry.TotalDebits().Sub(entry.TotalCredits()).Abs()
		if diff.GreaterThan(domain.BalanceTolerance) {
			return fmt.Errorf("%w: entry %s does not balance", apperrors.ErrValidation, entry.EntryID)
		}
	}

	if err := s.snapshotRepo.RestoreAll(ctx, &snapshot.Data, s.docBase); err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}

	logger.Warn("Snapshot restored",
		slog.String("restored_by", requestingUser.UserID),
		slog.Time("snapshot_time", snapshot.Metadata.Timestamp),
		slog.Int("journal_entries", len(snapshot.Data.JournalEntries)),
	)
	return nil
}
