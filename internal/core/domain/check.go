package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckType distinguishes instruments received from members and issued to
// suppliers.
type CheckType string

const (
	CheckReceived CheckType = "RECEIVED"
	CheckPaid     CheckType = "PAID"
)

// CheckStatus is the lifecycle state of a check. Pending is the only state
// transitions are allowed from; Cleared and Bounced are terminal.
type CheckStatus string

const (
	CheckPending CheckStatus = "PENDING"
	CheckCleared CheckStatus = "CLEARED"
	CheckBounced CheckStatus = "BOUNCED"
)

// Check is a received or issued payment instrument. Registration and
// clearing post journal entries; a bounce is status-only (source parity,
// see DESIGN.md).
type Check struct {
	CheckID        string          `json:"checkID"`
	Type           CheckType       `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	CheckNumber    string          `json:"checkNumber"`
	BankName       string          `json:"bankName"`
	DueDate        time.Time       `json:"dueDate"`
	Counterparty   string          `json:"counterparty"` // issuer or payee name
	Status         CheckStatus     `json:"status"`
	RegisteredDate time.Time       `json:"registeredDate"`
	AuditFields
}
