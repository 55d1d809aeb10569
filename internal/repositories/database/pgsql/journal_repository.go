package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// nextDocumentNumber allocates the next gapless document number inside the
// caller's transaction. The single counter row serializes concurrent
// postings.
func nextDocumentNumber(ctx context.Context, tx pgx.Tx) (int64, error) {
	var number int64
	err := tx.QueryRow(ctx, `
		UPDATE document_counters
		SET next_number = next_number + 1
		WHERE counter_name = 'journal'
		RETURNING next_number - 1;
	`).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate document number: %w", err)
	}
	return number, nil
}

// SaveEntryInTx inserts the entry and its lines within the given transaction,
// allocating the next document number atomically with the insert.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	number, err := nextDocumentNumber(ctx, tx)
	if err != nil {
		return nil, err
	}
	entry.DocumentNumber = number

	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, document_number, entry_date, description, reference, related_entity_id, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.DocumentNumber,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		entry.RelatedEntityID,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_code, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range entry.Lines {
		batch.Queue(lineQuery, line.LineID, entry.EntryID, line.AccountCode, line.Debit, line.Credit, line.Memo)
	}
	br := tx.SendBatch(ctx, batch)
	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, fmt.Errorf("failed to insert journal line: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to close line batch: %w", err)
	}

	return &entry, nil
}

// DeleteEntryInTx removes an entry and its lines.
func (r *PgxJournalRepository) DeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete journal lines for %s: %w", entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntryByID retrieves one entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, document_number, entry_date, description, reference, related_entity_id, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE entry_id = $1;
	`
	var entry domain.JournalEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&entry.EntryID,
		&entry.DocumentNumber,
		&entry.EntryDate,
		&entry.Description,
		&entry.Reference,
		&entry.RelatedEntityID,
		&entry.Status,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := r.loadLines(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

// ListEntries retrieves entries with lines, newest document number first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_id, document_number, entry_date, description, reference, related_entity_id, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		ORDER BY document_number DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	var entryIDs []string
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(
			&e.EntryID,
			&e.DocumentNumber,
			&e.EntryDate,
			&e.Description,
			&e.Reference,
			&e.RelatedEntityID,
			&e.Status,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, e)
		entryIDs = append(entryIDs, e.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	linesByEntry, err := r.loadLines(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}

func (r *PgxJournalRepository) loadLines(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT line_id, entry_id, account_code, debit, credit, memo
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountCode, &l.Debit, &l.Credit, &l.Memo); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		result[l.EntryID] = append(result[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return result, nil
}

// ListStatementRows retrieves every line touching the account joined with
// its entry header, ordered by document number.
func (r *PgxJournalRepository) ListStatementRows(ctx context.Context, accountCode string) ([]domain.StatementRow, error) {
	query := `
		SELECT e.document_number, e.entry_date, e.description, e.reference, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1
		ORDER BY e.document_number;
	`
	rows, err := r.Pool.Query(ctx, query, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list statement rows for %s: %w", accountCode, err)
	}
	defer rows.Close()

	var result []domain.StatementRow
	for rows.Next() {
		var row domain.StatementRow
		if err := rows.Scan(&row.DocumentNumber, &row.EntryDate, &row.Description, &row.Reference, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement rows: %w", err)
	}
	return result, nil
}

// TrialBalanceData aggregates debit/credit totals per account with nonzero
// activity.
func (r *PgxJournalRepository) TrialBalanceData(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT l.account_code, a.name, a.account_type, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN accounts a ON a.code = l.account_code
		GROUP BY l.account_code, a.name, a.account_type
		HAVING SUM(l.debit) <> 0 OR SUM(l.credit) <> 0
		ORDER BY l.account_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}
