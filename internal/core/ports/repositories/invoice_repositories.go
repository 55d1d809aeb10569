package repositories

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InvoiceRepository persists invoices. Invoices are never deleted; payment
// postings are the only writers of paidAmount and status.
type InvoiceRepository interface {
	// SaveInvoiceInTx persists a new invoice within the transaction that
	// posts its receivable recognition entry.
	SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error

	// FindInvoiceByID retrieves an invoice.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByIDForUpdate locks the invoice row for the payment
	// protocol; concurrent payments on the same invoice serialize here.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoiceInTx writes paidAmount/status/method inside the payment
	// transaction.
	UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error

	// ListInvoices retrieves invoices, newest first.
	ListInvoices(ctx context.Context, limit, offset int) ([]domain.Invoice, error)

	// ListInvoicesByPayer retrieves all invoices owed by one member.
	ListInvoicesByPayer(ctx context.Context, payerID string) ([]domain.Invoice, error)

	// RevenueAndDebtTotals reports the paid revenue total and the
	// outstanding remainder over all invoices, for the financial summary.
	RevenueAndDebtTotals(ctx context.Context) (revenue, pendingDebts decimal.Decimal, err error)
}

// ExpenseRepository persists direct operating expenses.
type ExpenseRepository interface {
	// SaveExpenseInTx persists an expense within the transaction that posts
	// its journal entry.
	SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.ExpenseRecord) error

	// ListExpenses retrieves expenses, newest first.
	ListExpenses(ctx context.Context, limit, offset int) ([]domain.ExpenseRecord, error)

	// TotalExpenses sums all recorded expenses.
	TotalExpenses(ctx context.Context) (decimal.Decimal, error)
}
