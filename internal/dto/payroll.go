package dto

import (
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RunPayrollRequest triggers the payroll run for one period. Bonuses and
// deductions are optional per-employee adjustments keyed by user ID.
type RunPayrollRequest struct {
	Period     string                     `json:"period" binding:"required"`
	Bonuses    map[string]decimal.Decimal `json:"bonuses,omitempty"`
	Deductions map[string]decimal.Decimal `json:"deductions,omitempty"`
}

// PayslipResponse mirrors domain.Payslip.
type PayslipResponse struct {
	PayslipID   string          `json:"payslipID"`
	UserID      string          `json:"userID"`
	UserName    string          `json:"userName"`
	Period      string          `json:"period"`
	BaseSalary  decimal.Decimal `json:"baseSalary"`
	Commission  decimal.Decimal `json:"commission"`
	Bonuses     decimal.Decimal `json:"bonuses"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetPayable  decimal.Decimal `json:"netPayable"`
	PaymentDate time.Time       `json:"paymentDate"`
}

// ToPayslipResponses converts domain payslips.
func ToPayslipResponses(slips []domain.Payslip) []PayslipResponse {
	res := make([]PayslipResponse, len(slips))
	for i, p := range slips {
		res[i] = PayslipResponse{
			PayslipID:   p.PayslipID,
			UserID:      p.UserID,
			UserName:    p.UserName,
			Period:      p.Period,
			BaseSalary:  p.BaseSalary,
			Commission:  p.Commission,
			Bonuses:     p.Bonuses,
			Deductions:  p.Deductions,
			NetPayable:  p.NetPayable,
			PaymentDate: p.PaymentDate,
		}
	}
	return res
}

// PayrollRunResponse summarizes one completed payroll run.
type PayrollRunResponse struct {
	Period     string            `json:"period"`
	TotalGross decimal.Decimal   `json:"totalGross"`
	Payslips   []PayslipResponse `json:"payslips"`
}
