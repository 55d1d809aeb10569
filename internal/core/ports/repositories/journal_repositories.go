package repositories

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations over the posted journal.
type JournalReader interface {
	// FindEntryByID retrieves one entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries with lines, newest document number first.
	ListEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error)

	// ListStatementRows retrieves every line touching the account joined
	// with its entry header, ordered by document number. Running balances
	// are not filled in.
	ListStatementRows(ctx context.Context, accountCode string) ([]domain.StatementRow, error)

	// TrialBalanceData aggregates debit/credit totals per account with
	// nonzero activity.
	TrialBalanceData(ctx context.Context) ([]domain.TrialBalanceRow, error)
}

// JournalWriter defines write operations on the journal.
type JournalWriter interface {
	// SaveEntryInTx inserts the entry and its lines within the given
	// transaction, allocating the next gapless document number atomically
	// with the insert. The returned entry carries the assigned number.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// DeleteEntryInTx removes an entry and its lines. Privileged and
	// irreversible; projections are not adjusted.
	DeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string) error
}

// JournalRepository combines journal persistence with transaction control.
// The journal repository owns Begin/Commit/Rollback for all compound
// money-moving operations.
type JournalRepository interface {
	JournalReader
	JournalWriter
	TransactionManager
}
