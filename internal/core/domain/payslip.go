package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payslip records one employee's pay for a period; emitted by the monthly
// payroll run alongside the wallet credit.
type Payslip struct {
	PayslipID   string          `json:"payslipID"`
	UserID      string          `json:"userID"`
	UserName    string          `json:"userName"`
	Period      string          `json:"period"` // e.g. "2026-08"
	BaseSalary  decimal.Decimal `json:"baseSalary"`
	Commission  decimal.Decimal `json:"commission"`
	Bonuses     decimal.Decimal `json:"bonuses"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetPayable  decimal.Decimal `json:"netPayable"`
	PaymentDate time.Time       `json:"paymentDate"`
	AuditFields
}
