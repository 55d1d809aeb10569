package dto

import (
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest opens a new invoice for a billable service or sale.
type CreateInvoiceRequest struct {
	PayerID                  string                 `json:"payerID" binding:"required"`
	ServiceCategory          domain.ServiceCategory `json:"serviceCategory" binding:"required,oneof=TRAINING BOARDING MEDICAL GROOMING GOODS"`
	ServiceName              string                 `json:"serviceName" binding:"required"`
	ProviderID               string                 `json:"providerID"`
	DefaultCommissionPercent decimal.Decimal        `json:"defaultCommissionPercent"`
	Amount                   decimal.Decimal        `json:"amount" binding:"required"`
	Discount                 decimal.Decimal        `json:"discount"`
	DueDate                  *time.Time             `json:"dueDate,omitempty"`
}

// PayInvoiceRequest records a payment against an invoice. Amount defaults to
// the remaining balance when omitted. RechargeAmount only applies to WALLET
// payments and tops the wallet up before the payment is taken from it.
type PayInvoiceRequest struct {
	Method         domain.PaymentMethod `json:"method" binding:"required,oneof=CASH CARD ONLINE WALLET"`
	Amount         *decimal.Decimal     `json:"amount,omitempty"`
	RechargeAmount *decimal.Decimal     `json:"rechargeAmount,omitempty"`
}

// InvoiceResponse mirrors domain.Invoice.
type InvoiceResponse struct {
	InvoiceID       string                 `json:"invoiceID"`
	PayerID         string                 `json:"payerID"`
	ServiceCategory domain.ServiceCategory `json:"serviceCategory"`
	ServiceName     string                 `json:"serviceName"`
	ProviderID      string                 `json:"providerID,omitempty"`
	Amount          decimal.Decimal        `json:"amount"`
	Discount        decimal.Decimal        `json:"discount"`
	FinalAmount     decimal.Decimal        `json:"finalAmount"`
	PaidAmount      decimal.Decimal        `json:"paidAmount"`
	Remaining       decimal.Decimal        `json:"remaining"`
	Status          domain.InvoiceStatus   `json:"status"`
	IssueDate       time.Time              `json:"issueDate"`
	DueDate         time.Time              `json:"dueDate"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// ToInvoiceResponse converts a domain invoice.
func ToInvoiceResponse(inv domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		PayerID:         inv.PayerID,
		ServiceCategory: inv.ServiceCategory,
		ServiceName:     inv.ServiceName,
		ProviderID:      inv.ProviderID,
		Amount:          inv.Amount,
		Discount:        inv.Discount,
		FinalAmount:     inv.FinalAmount,
		PaidAmount:      inv.PaidAmount,
		Remaining:       inv.Remaining(),
		Status:          inv.Status,
		IssueDate:       inv.IssueDate,
		DueDate:         inv.DueDate,
		PaymentMethod:   inv.PaymentMethod,
		CreatedAt:       inv.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain invoices.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(inv)
	}
	return res
}

// RecordExpenseRequest records an operating expense paid immediately.
type RecordExpenseRequest struct {
	Category      string               `json:"category" binding:"required"`
	Description   string               `json:"description" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH CARD ONLINE"`
}

// ExpenseResponse mirrors domain.ExpenseRecord.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToExpenseResponse converts one domain expense.
func ToExpenseResponse(e domain.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseResponses converts domain expenses.
func ToExpenseResponses(expenses []domain.ExpenseRecord) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		res[i] = ToExpenseResponse(e)
	}
	return res
}
