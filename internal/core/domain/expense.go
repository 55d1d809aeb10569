package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRecord is a direct operating expense paid from the cash register. It is
// recorded alongside its journal posting against the mapped expense account.
type ExpenseRecord struct {
	ExpenseID         string          `json:"expenseID"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	RelatedEntityID   string          `json:"relatedEntityID"`
	RelatedEntityName string          `json:"relatedEntityName"`
	ExpenseDate       time.Time       `json:"expenseDate"`
	AuditFields
}
