package dto

import (
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterCheckRequest registers a received or issued check.
type RegisterCheckRequest struct {
	Type         domain.CheckType `json:"type" binding:"required,oneof=RECEIVED PAID"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	CheckNumber  string           `json:"checkNumber" binding:"required"`
	BankName     string           `json:"bankName" binding:"required"`
	DueDate      time.Time        `json:"dueDate" binding:"required"`
	Counterparty string           `json:"counterparty" binding:"required"`
}

// CheckResponse mirrors domain.Check.
type CheckResponse struct {
	CheckID        string             `json:"checkID"`
	Type           domain.CheckType   `json:"type"`
	Amount         decimal.Decimal    `json:"amount"`
	CheckNumber    string             `json:"checkNumber"`
	BankName       string             `json:"bankName"`
	DueDate        time.Time          `json:"dueDate"`
	Counterparty   string             `json:"counterparty"`
	Status         domain.CheckStatus `json:"status"`
	RegisteredDate time.Time          `json:"registeredDate"`
}

// ToCheckResponse converts a domain check.
func ToCheckResponse(c domain.Check) CheckResponse {
	return CheckResponse{
		CheckID:        c.CheckID,
		Type:           c.Type,
		Amount:         c.Amount,
		CheckNumber:    c.CheckNumber,
		BankName:       c.BankName,
		DueDate:        c.DueDate,
		Counterparty:   c.Counterparty,
		Status:         c.Status,
		RegisteredDate: c.RegisteredDate,
	}
}

// ToCheckResponses converts a slice of domain checks.
func ToCheckResponses(checks []domain.Check) []CheckResponse {
	res := make([]CheckResponse, len(checks))
	for i, c := range checks {
		res[i] = ToCheckResponse(c)
	}
	return res
}
