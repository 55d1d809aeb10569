package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/dto"
)

// JournalReaderSvc defines read operations over the posted journal.
type JournalReaderSvc interface {
	// GetEntryByID retrieves one posted entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries, newest document number first.
	ListEntries(ctx context.Context, params dto.ListParams) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations on the journal.
type JournalWriterSvc interface {
	// RecordEntry validates, balances and posts a manual journal entry,
	// allocating the next document number.
	RecordEntry(ctx context.Context, req dto.RecordEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a posted entry. Admin only; projections are not
	// recomputed.
	DeleteEntry(ctx context.Context, entryID string, requestingUser *domain.User) error
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// LedgerSvcFacade derives reporting views from the posted journal.
type LedgerSvcFacade interface {
	// AccountStatement builds the per-account statement with running balance.
	AccountStatement(ctx context.Context, accountCode string) (*dto.StatementResponse, error)

	// TrialBalance aggregates debit/credit totals per account with activity.
	TrialBalance(ctx context.Context) (*dto.TrialBalanceResponse, error)

	// FinancialSummary reports headline revenue, expense, debt and wallet
	// liability totals.
	FinancialSummary(ctx context.Context) (*dto.FinancialSummaryResponse, error)
}
