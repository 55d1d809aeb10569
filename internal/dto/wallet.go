package dto

import (
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AdminWalletUpdateRequest is a manual administrator adjustment of a wallet.
type AdminWalletUpdateRequest struct {
	Amount      decimal.Decimal      `json:"amount" binding:"required"`
	Type        domain.WalletTxnType `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL BONUS REFUND MANUAL_ADJUSTMENT"`
	Description string               `json:"description" binding:"required"`
}

// ChargeWalletRequest is a member's self-service online recharge.
type ChargeWalletRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// WalletTransactionResponse mirrors domain.WalletTransaction.
type WalletTransactionResponse struct {
	TxnID       string               `json:"txnID"`
	UserID      string               `json:"userID"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        domain.WalletTxnType `json:"type"`
	Description string               `json:"description"`
	IsCredit    bool                 `json:"isCredit"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ToWalletTransactionResponse converts one wallet transaction.
func ToWalletTransactionResponse(t domain.WalletTransaction) WalletTransactionResponse {
	return WalletTransactionResponse{
		TxnID:       t.TxnID,
		UserID:      t.UserID,
		Amount:      t.Amount,
		Type:        t.Type,
		Description: t.Description,
		IsCredit:    t.IsCredit,
		CreatedAt:   t.CreatedAt,
	}
}

// ToWalletTransactionResponses converts wallet transactions.
func ToWalletTransactionResponses(txns []domain.WalletTransaction) []WalletTransactionResponse {
	res := make([]WalletTransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToWalletTransactionResponse(t)
	}
	return res
}

// WalletBalanceResponse reports one user's wallet balance.
type WalletBalanceResponse struct {
	UserID  string          `json:"userID"`
	Balance decimal.Decimal `json:"balance"`
}
