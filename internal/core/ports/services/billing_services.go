package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/shopspring/decimal"
)

// BillingSvcFacade owns the invoice lifecycle, the payment protocol and
// direct expenses.
type BillingSvcFacade interface {
	// CreateInvoice opens an invoice and posts the receivable recognition
	// entry.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// GetInvoiceByID retrieves one invoice.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices, newest first.
	ListInvoices(ctx context.Context, params dto.ListParams) ([]domain.Invoice, error)

	// ListInvoicesByPayer retrieves one member's invoices.
	ListInvoicesByPayer(ctx context.Context, payerID string) ([]domain.Invoice, error)

	// PayInvoice records a payment against the invoice: settles the
	// receivable, optionally recharges the wallet first, and pays out the
	// provider commission when the invoice settles.
	PayInvoice(ctx context.Context, invoiceID string, req dto.PayInvoiceRequest, requestingUser *domain.User) (*domain.Invoice, error)

	// RecordExpense records an operating expense paid immediately and posts
	// its journal entry.
	RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, creatorUserID string) (*domain.ExpenseRecord, error)

	// ListExpenses retrieves expenses, newest first.
	ListExpenses(ctx context.Context, params dto.ListParams) ([]domain.ExpenseRecord, error)

	// OutstandingDebt sums the unpaid remainder over all pending invoices.
	OutstandingDebt(ctx context.Context) (decimal.Decimal, error)
}
