package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
)

const invoiceColumns = `invoice_id, payer_id, service_category, service_name, provider_id, default_commission_percent,
	amount, discount, final_amount, paid_amount, status, issue_date, due_date, payment_method,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepository {
	return &PgxInvoiceRepository{pool: pool}
}

var _ portsrepo.InvoiceRepository = (*PgxInvoiceRepository)(nil)

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.PayerID,
		&inv.ServiceCategory,
		&inv.ServiceName,
		&inv.ProviderID,
		&inv.DefaultCommissionPercent,
		&inv.Amount,
		&inv.Discount,
		&inv.FinalAmount,
		&inv.PaidAmount,
		&inv.Status,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.PaymentMethod,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// SaveInvoiceInTx persists a new invoice within the transaction that posts
// its receivable recognition entry.
func (r *PgxInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.PayerID,
		invoice.ServiceCategory,
		invoice.ServiceName,
		invoice.ProviderID,
		invoice.DefaultCommissionPercent,
		invoice.Amount,
		invoice.Discount,
		invoice.FinalAmount,
		invoice.PaidAmount,
		invoice.Status,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.PaymentMethod,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return inv, nil
}

// FindInvoiceByIDForUpdate locks the invoice row for the payment protocol.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`
	inv, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
	}
	return inv, nil
}

// UpdateInvoiceInTx writes paid amount, status and method inside the payment
// transaction.
func (r *PgxInvoiceRepository) UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	query := `
		UPDATE invoices
		SET paid_amount = $2, status = $3, payment_method = $4, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.PaidAmount,
		invoice.Status,
		invoice.PaymentMethod,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListInvoices retrieves invoices, newest first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, limit, offset int) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issue_date DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// ListInvoicesByPayer retrieves all invoices owed by one member.
func (r *PgxInvoiceRepository) ListInvoicesByPayer(ctx context.Context, payerID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE payer_id = $1 ORDER BY issue_date DESC;`
	rows, err := r.pool.Query(ctx, query, payerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for payer %s: %w", payerID, err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func collectInvoices(rows pgx.Rows) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// RevenueAndDebtTotals reports the paid revenue total and the outstanding
// remainder over pending invoices.
func (r *PgxInvoiceRepository) RevenueAndDebtTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(paid_amount), 0),
			COALESCE(SUM(final_amount - paid_amount) FILTER (WHERE status = 'PENDING'), 0)
		FROM invoices;
	`
	var revenue, pendingDebts decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&revenue, &pendingDebts); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to aggregate invoice totals: %w", err)
	}
	return revenue, pendingDebts, nil
}

const expenseColumns = `expense_id, category, amount, description, related_entity_id, related_entity_name, expense_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	pool *pgxpool.Pool
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{pool: pool}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

// SaveExpenseInTx persists an expense within the transaction that posts its
// journal entry.
func (r *PgxExpenseRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.ExpenseRecord) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		expense.ExpenseID,
		expense.Category,
		expense.Amount,
		expense.Description,
		expense.RelatedEntityID,
		expense.RelatedEntityName,
		expense.ExpenseDate,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

// ListExpenses retrieves expenses, newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, limit, offset int) ([]domain.ExpenseRecord, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY expense_date DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.ExpenseRecord
	for rows.Next() {
		var e domain.ExpenseRecord
		if err := rows.Scan(
			&e.ExpenseID,
			&e.Category,
			&e.Amount,
			&e.Description,
			&e.RelatedEntityID,
			&e.RelatedEntityName,
			&e.ExpenseDate,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// TotalExpenses sums all recorded expenses.
func (r *PgxExpenseRepository) TotalExpenses(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses;`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}
