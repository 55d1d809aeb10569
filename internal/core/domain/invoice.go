package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceCategory selects the revenue account an invoice recognizes against
// and the commission override bucket for its provider.
type ServiceCategory string

const (
	ServiceTraining ServiceCategory = "TRAINING"
	ServiceBoarding ServiceCategory = "BOARDING"
	ServiceMedical  ServiceCategory = "MEDICAL"
	ServiceGrooming ServiceCategory = "GROOMING"
	ServiceGoods    ServiceCategory = "GOODS"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "PENDING"
	InvoicePaid    InvoiceStatus = "PAID"
)

// PaymentMethod selects the source account a payment debits.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "CASH"
	PayCard   PaymentMethod = "CARD"
	PayOnline PaymentMethod = "ONLINE"
	PayWallet PaymentMethod = "WALLET"
	PayCheck  PaymentMethod = "CHECK"
)

// DebitAccount is the account a payment with this method debits.
func (m PaymentMethod) DebitAccount() string {
	switch m {
	case PayCard, PayOnline:
		return AccountBank
	case PayWallet:
		return AccountWalletLiability
	default:
		return AccountCashOnHand
	}
}

// Invoice is an amount owed by a member. paidAmount only grows, via payment
// postings; invoices are never deleted.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"`
	PayerID         string          `json:"payerID"`
	ServiceCategory ServiceCategory `json:"serviceCategory"`
	ServiceName     string          `json:"serviceName"`
	// ProviderID, when set, makes the invoice commission-eligible on full
	// settlement. DefaultCommissionPercent is captured at issue time from
	// the service definition; the provider's category override beats it.
	ProviderID               string          `json:"providerID"`
	DefaultCommissionPercent decimal.Decimal `json:"defaultCommissionPercent"`
	Amount                   decimal.Decimal `json:"amount"`
	Discount                 decimal.Decimal `json:"discount"`
	FinalAmount              decimal.Decimal `json:"finalAmount"`
	PaidAmount               decimal.Decimal `json:"paidAmount"`
	Status                   InvoiceStatus   `json:"status"`
	IssueDate                time.Time       `json:"issueDate"`
	DueDate                  time.Time       `json:"dueDate"`
	PaymentMethod            PaymentMethod   `json:"paymentMethod,omitempty"`
	AuditFields
}

// Remaining is the unpaid portion of the invoice.
func (i *Invoice) Remaining() decimal.Decimal {
	return i.FinalAmount.Sub(i.PaidAmount)
}

// IsSettled reports whether paidAmount covers the final amount within the
// given settlement tolerance.
func (i *Invoice) IsSettled(tolerance decimal.Decimal) bool {
	return i.PaidAmount.GreaterThanOrEqual(i.FinalAmount.Sub(tolerance))
}
