package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates a new repository for full-state export and
// restore.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepository {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotRepository = (*PgxSnapshotRepository)(nil)

// ExportAll reads every collection into one document.
func (r *PgxSnapshotRepository) ExportAll(ctx context.Context) (*domain.SnapshotData, error) {
	data := &domain.SnapshotData{}

	users, err := r.exportUsers(ctx)
	if err != nil {
		return nil, err
	}
	data.Users = users

	accounts, err := r.exportAccounts(ctx)
	if err != nil {
		return nil, err
	}
	data.Accounts = accounts

	entries, err := r.exportJournalEntries(ctx)
	if err != nil {
		return nil, err
	}
	data.JournalEntries = entries

	if err := r.exportRest(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *PgxSnapshotRepository) exportUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *PgxSnapshotRepository) exportAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code;`)
	if err != nil {
		return nil, fmt.Errorf("failed to export accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxSnapshotRepository) exportJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	journal := PgxJournalRepository{BaseRepository: r.BaseRepository}

	query := `SELECT COUNT(*) FROM journal_entries;`
	var count int
	if err := r.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count journal entries: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	entries, err := journal.ListEntries(ctx, count, 0)
	if err != nil {
		return nil, err
	}
	// Export in ascending document order so restore replays naturally.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (r *PgxSnapshotRepository) exportRest(ctx context.Context, data *domain.SnapshotData) error {
	wallet := PgxWalletRepository{pool: r.Pool}
	inventory := PgxInventoryRepository{pool: r.Pool}
	invoiceRepo := PgxInvoiceRepository{pool: r.Pool}
	expenseRepo := PgxExpenseRepository{pool: r.Pool}
	checkRepo := PgxCheckRepository{pool: r.Pool}
	payslipRepo := PgxPayslipRepository{pool: r.Pool}

	const all = 1 << 30

	var err error
	for _, u := range data.Users {
		var txns []domain.WalletTransaction
		txns, err = wallet.ListTransactionsByUser(ctx, u.UserID, all, 0)
		if err != nil {
			return err
		}
		data.WalletTransactions = append(data.WalletTransactions, txns...)
	}
	if data.InventoryItems, err = inventory.ListItems(ctx); err != nil {
		return err
	}
	if data.InventoryTransactions, err = inventory.ListMovements(ctx, "", all, 0); err != nil {
		return err
	}
	if data.Invoices, err = invoiceRepo.ListInvoices(ctx, all, 0); err != nil {
		return err
	}
	if data.Expenses, err = expenseRepo.ListExpenses(ctx, all, 0); err != nil {
		return err
	}
	if data.Checks, err = checkRepo.ListChecks(ctx, all, 0); err != nil {
		return err
	}
	if data.Payslips, err = payslipRepo.ListPayslips(ctx, "", all, 0); err != nil {
		return err
	}
	return nil
}

// RestoreAll replaces every collection wholesale in one transaction and
// resets the document counter so the next posting continues after the highest
// restored document number, never below docBase.
func (r *PgxSnapshotRepository) RestoreAll(ctx context.Context, data *domain.SnapshotData, docBase int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	truncate := `
		TRUNCATE journal_lines, journal_entries, wallet_transactions, inventory_transactions,
		         payslips, checks, expenses, invoices, inventory_items, users, accounts;
	`
	if _, err := tx.Exec(ctx, truncate); err != nil {
		return fmt.Errorf("failed to clear existing state: %w", err)
	}

	if err := r.restoreAccounts(ctx, tx, data.Accounts); err != nil {
		return err
	}
	if err := r.restoreUsers(ctx, tx, data.Users); err != nil {
		return err
	}
	highest, err := r.restoreJournal(ctx, tx, data.JournalEntries)
	if err != nil {
		return err
	}
	if err := r.restoreRest(ctx, tx, data); err != nil {
		return err
	}

	next := highest + 1
	if next < docBase {
		next = docBase
	}
	counterQuery := `UPDATE document_counters SET next_number = $1 WHERE counter_name = 'journal';`
	if _, err := tx.Exec(ctx, counterQuery, next); err != nil {
		return fmt.Errorf("failed to reset document counter: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSnapshotRepository) restoreAccounts(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, a := range accounts {
		var parent any
		if a.ParentCode != "" {
			parent = a.ParentCode
		}
		_, err := tx.Exec(ctx, query,
			a.Code, a.Name, a.AccountType, parent, a.Description, a.IsActive,
			a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to restore account %s: %w", a.Code, err)
		}
	}
	return nil
}

func (r *PgxSnapshotRepository) restoreUsers(ctx context.Context, tx pgx.Tx, users []domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, u := range users {
		overrides, err := overridesAsJSON(u.CommissionOverrides)
		if err != nil {
			return fmt.Errorf("failed to encode commission overrides for user %s: %w", u.UserID, err)
		}
		_, err = tx.Exec(ctx, query,
			u.UserID, u.Name, u.Phone, u.PasswordHash, rolesAsStrings(u.Roles),
			u.Balance, u.BaseSalary, overrides, u.IsActive,
			u.CreatedAt, u.CreatedBy, u.LastUpdatedAt, u.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to restore user %s: %w", u.UserID, err)
		}
	}
	return nil
}

// restoreJournal reinserts entries preserving their original document numbers
// and returns the highest number seen.
func (r *PgxSnapshotRepository) restoreJournal(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) (int64, error) {
	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, document_number, entry_date, description, reference, related_entity_id, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_code, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	var highest int64
	for _, e := range entries {
		if e.DocumentNumber > highest {
			highest = e.DocumentNumber
		}
		_, err := tx.Exec(ctx, entryQuery,
			e.EntryID, e.DocumentNumber, e.EntryDate, e.Description, e.Reference, e.RelatedEntityID, e.Status,
			e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to restore journal entry %s: %w", e.EntryID, err)
		}
		batch := &pgx.Batch{}
		for _, l := range e.Lines {
			batch.Queue(lineQuery, l.LineID, e.EntryID, l.AccountCode, l.Debit, l.Credit, l.Memo)
		}
		br := tx.SendBatch(ctx, batch)
		for range e.Lines {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return 0, fmt.Errorf("failed to restore journal line: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return 0, fmt.Errorf("failed to close restore batch: %w", err)
		}
	}
	return highest, nil
}

func (r *PgxSnapshotRepository) restoreRest(ctx context.Context, tx pgx.Tx, data *domain.SnapshotData) error {
	wallet := PgxWalletRepository{pool: r.Pool}
	for _, t := range data.WalletTransactions {
		if err := wallet.SaveTransactionInTx(ctx, tx, t); err != nil {
			return err
		}
	}

	itemQuery := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, i := range data.InventoryItems {
		_, err := tx.Exec(ctx, itemQuery,
			i.ItemID, i.Name, i.Category, i.Quantity, i.Unit, i.MinQuantity, i.AverageCost, i.Description,
			i.CreatedAt, i.CreatedBy, i.LastUpdatedAt, i.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to restore inventory item %s: %w", i.ItemID, err)
		}
	}

	inventory := PgxInventoryRepository{pool: r.Pool}
	for _, t := range data.InventoryTransactions {
		if err := inventory.SaveMovementInTx(ctx, tx, t); err != nil {
			return err
		}
	}

	invoiceRepo := PgxInvoiceRepository{pool: r.Pool}
	for _, inv := range data.Invoices {
		if err := invoiceRepo.SaveInvoiceInTx(ctx, tx, inv); err != nil {
			return err
		}
	}

	expenseRepo := PgxExpenseRepository{pool: r.Pool}
	for _, e := range data.Expenses {
		if err := expenseRepo.SaveExpenseInTx(ctx, tx, e); err != nil {
			return err
		}
	}

	checkRepo := PgxCheckRepository{pool: r.Pool}
	for _, c := range data.Checks {
		if err := checkRepo.SaveCheckInTx(ctx, tx, c); err != nil {
			return err
		}
	}

	payslipRepo := PgxPayslipRepository{pool: r.Pool}
	for _, p := range data.Payslips {
		if err := payslipRepo.SavePayslipInTx(ctx, tx, p); err != nil {
			return err
		}
	}
	return nil
}
