package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDescriptionMissing = errors.New("entry description is required")
)

// journalService posts manual journal entries and reads the posted journal.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GetEntryByID retrieves one posted entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves entries, newest document number first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListParams) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListEntries(ctx, params.Limit, params.Offset)
}

// RecordEntry validates, balances and posts a manual journal entry.
func (s *journalService) RecordEntry(ctx context.Context, req dto.RecordEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	lines := req.ToDomainLines()

	// Every referenced account must exist and be active.
	codes := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountCode] {
			seen[l.AccountCode] = true
			codes = append(codes, l.AccountCode)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		logger.Error("Failed to fetch accounts for entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, code := range codes {
		acc, found := accounts[code]
		if !found {
			return nil, fmt.Errorf("%w: code %s", ErrAccountNotFound, code)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, code)
		}
	}

	entry := newEntry(req.Description, req.Reference, req.RelatedEntityID, creatorUserID, req.Date, lines)

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	posted, err := postEntry(ctx, s.journalRepo, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit entry: %w", err)
	}

	logger.Info("Journal entry posted",
		slog.Int64("document_number", posted.DocumentNumber),
		slog.String("entry_id", posted.EntryID),
	)
	return posted, nil
}

// DeleteEntry removes a posted entry. Admin only; projections are not
// recomputed, so this is reserved for correcting bad manual postings.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, requestingUser *domain.User) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requestingUser == nil || !requestingUser.HasRole(domain.RoleAdmin) {
		return fmt.Errorf("%w: only admins may delete journal entries", apperrors.ErrForbidden)
	}

	if _, err := s.journalRepo.FindEntryByID(ctx, entryID); err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if err := s.journalRepo.DeleteEntryInTx(ctx, tx, entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit deletion: %w", err)
	}

	logger.Warn("Journal entry deleted",
		slog.String("entry_id", entryID),
		slog.String("deleted_by", requestingUser.UserID),
	)
	return nil
}
