package domain

import "github.com/shopspring/decimal"

// WalletTxnType categorizes wallet movements.
type WalletTxnType string

const (
	WalletDeposit    WalletTxnType = "DEPOSIT"
	WalletWithdrawal WalletTxnType = "WITHDRAWAL"
	WalletPayment    WalletTxnType = "PAYMENT"
	WalletSalary     WalletTxnType = "SALARY"
	WalletBonus      WalletTxnType = "BONUS"
	WalletCommission WalletTxnType = "COMMISSION"
	WalletRefund     WalletTxnType = "REFUND"
	WalletAdjustment WalletTxnType = "MANUAL_ADJUSTMENT"
)

// WalletTransaction is an append-only audit record of a single wallet
// movement. It parallels the journal postings against the member-wallet
// liability account but is not a substitute for them.
type WalletTransaction struct {
	TxnID       string          `json:"txnID"`
	UserID      string          `json:"userID"`
	Amount      decimal.Decimal `json:"amount"` // always non-negative
	Type        WalletTxnType   `json:"type"`
	Description string          `json:"description"`
	IsCredit    bool            `json:"isCredit"`
	AuditFields
}
