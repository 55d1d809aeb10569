package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

var ErrCheckNotPending = errors.New("check is not pending")

// checkService manages the check lifecycle. Registration and clearing post
// journal entries; a bounce only moves the status.
type checkService struct {
	checkRepo   portsrepo.CheckRepository
	journalRepo portsrepo.JournalRepository
}

// NewCheckService creates a new CheckService.
func NewCheckService(checkRepo portsrepo.CheckRepository, journalRepo portsrepo.JournalRepository) portssvc.CheckSvcFacade {
	return &checkService{
		checkRepo:   checkRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.CheckSvcFacade = (*checkService)(nil)

// registrationLines is the recognition posting for a new check. A received
// check raises checks receivable against the member receivable; an issued
// check raises the supplier payable against checks payable.
func registrationLines(check domain.Check) []domain.JournalLine {
	if check.Type == domain.CheckReceived {
		return []domain.JournalLine{
			domain.DebitLine(domain.AccountChecksReceivable, check.Amount, check.Counterparty),
			domain.CreditLine(domain.AccountTradeReceivables, check.Amount, check.Counterparty),
		}
	}
	return []domain.JournalLine{
		domain.DebitLine(domain.AccountTradePayables, check.Amount, check.Counterparty),
		domain.CreditLine(domain.AccountChecksPayable, check.Amount, check.Counterparty),
	}
}

// clearingLines is the settlement posting when a check clears at the bank.
func clearingLines(check domain.Check) []domain.JournalLine {
	if check.Type == domain.CheckReceived {
		return []domain.JournalLine{
			domain.DebitLine(domain.AccountBank, check.Amount, check.Counterparty),
			domain.CreditLine(domain.AccountChecksReceivable, check.Amount, check.Counterparty),
		}
	}
	return []domain.JournalLine{
		domain.DebitLine(domain.AccountChecksPayable, check.Amount, check.Counterparty),
		domain.CreditLine(domain.AccountBank, check.Amount, check.Counterparty),
	}
}

// RegisterCheck records a new check and posts its recognition entry.
func (s *checkService) RegisterCheck(ctx context.Context, req dto.RegisterCheckRequest, creatorUserID string) (*domain.Check, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: check amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	check := domain.Check{
		CheckID:        uuid.NewString(),
		Type:           req.Type,
		Amount:         req.Amount,
		CheckNumber:    req.CheckNumber,
		BankName:       req.BankName,
		DueDate:        req.DueDate,
		Counterparty:   req.Counterparty,
		Status:         domain.CheckPending,
		RegisteredDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if err := s.checkRepo.SaveCheckInTx(ctx, tx, check); err != nil {
		return nil, fmt.Errorf("failed to save check: %w", err)
	}

	entry := newEntry(
		fmt.Sprintf("Check registered: #%s %s", check.CheckNumber, check.Counterparty),
		check.CheckNumber,
		check.CheckID,
		creatorUserID,
		now,
		registrationLines(check),
	)
	if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit check registration: %w", err)
	}

	logger.Info("Check registered",
		slog.String("check_id", check.CheckID),
		slog.String("type", string(check.Type)),
		slog.String("amount", check.Amount.String()),
	)
	return &check, nil
}

// ClearCheck settles a pending check and posts the clearing entry.
func (s *checkService) ClearCheck(ctx context.Context, checkID string, requestingUserID string) (*domain.Check, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	check, err := s.checkRepo.FindCheckByIDForUpdate(ctx, tx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock check %s: %w", checkID, err)
	}
	if check.Status != domain.CheckPending {
		return nil, fmt.Errorf("%w: status is %s", ErrCheckNotPending, check.Status)
	}

	entry := newEntry(
		fmt.Sprintf("Check cleared: #%s %s", check.CheckNumber, check.Counterparty),
		check.CheckNumber,
		check.CheckID,
		requestingUserID,
		now,
		clearingLines(*check),
	)
	if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
		return nil, err
	}

	if err := s.checkRepo.UpdateStatusInTx(ctx, tx, checkID, domain.CheckCleared, requestingUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update check status: %w", err)
	}
	check.Status = domain.CheckCleared
	check.LastUpdatedAt = now
	check.LastUpdatedBy = requestingUserID

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit check clearing: %w", err)
	}

	logger.Info("Check cleared", slog.String("check_id", checkID))
	return check, nil
}

// BounceCheck marks a pending check bounced. The recognition entry stands;
// recovery is handled manually through the journal.
func (s *checkService) BounceCheck(ctx context.Context, checkID string, requestingUserID string) (*domain.Check, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	check, err := s.checkRepo.FindCheckByIDForUpdate(ctx, tx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock check %s: %w", checkID, err)
	}
	if check.Status != domain.CheckPending {
		return nil, fmt.Errorf("%w: status is %s", ErrCheckNotPending, check.Status)
	}

	if err := s.checkRepo.UpdateStatusInTx(ctx, tx, checkID, domain.CheckBounced, requestingUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update check status: %w", err)
	}
	check.Status = domain.CheckBounced
	check.LastUpdatedAt = now
	check.LastUpdatedBy = requestingUserID

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit check bounce: %w", err)
	}

	logger.Warn("Check bounced", slog.String("check_id", checkID))
	return check, nil
}

// ListChecks retrieves checks, newest first.
func (s *checkService) ListChecks(ctx context.Context, params dto.ListParams) ([]domain.Check, error) {
	return s.checkRepo.ListChecks(ctx, params.Limit, params.Offset)
}
