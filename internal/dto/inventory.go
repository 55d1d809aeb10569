package dto

import (
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest defines a new stock item.
type CreateInventoryItemRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Category    domain.InventoryCategory `json:"category" binding:"required,oneof=FOOD MEDICAL EQUIPMENT"`
	Unit        string                   `json:"unit" binding:"required"`
	MinQuantity decimal.Decimal          `json:"minQuantity"`
	Description string                   `json:"description"`
}

// UpdateInventoryItemRequest updates descriptive fields of an item.
// Quantity and average cost only move through stock operations.
type UpdateInventoryItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	MinQuantity *decimal.Decimal `json:"minQuantity,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// StockInRequest records a purchase receipt into stock.
type StockInRequest struct {
	ItemID        string               `json:"itemID" binding:"required"`
	Quantity      decimal.Decimal      `json:"quantity" binding:"required"`
	UnitPrice     decimal.Decimal      `json:"unitPrice" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH CARD ONLINE"`
	Reference     string               `json:"reference"`
}

// StockOutRequest records consumption of stock. RelatedEntityID optionally
// links the movement to whatever consumed it, such as a dog or a booking.
type StockOutRequest struct {
	ItemID          string          `json:"itemID" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	Reason          string          `json:"reason"`
	RelatedEntityID string          `json:"relatedEntityID"`
}

// BatchIngredientRequest is one ingredient consumed by a production batch.
type BatchIngredientRequest struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ProduceBatchRequest converts ingredient stock into a produced output item.
type ProduceBatchRequest struct {
	OutputItemID string                   `json:"outputItemID" binding:"required"`
	OutputWeight decimal.Decimal          `json:"outputWeight" binding:"required"`
	Ingredients  []BatchIngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
}

// InventoryItemResponse mirrors domain.InventoryItem.
type InventoryItemResponse struct {
	ItemID      string                   `json:"itemID"`
	Name        string                   `json:"name"`
	Category    domain.InventoryCategory `json:"category"`
	Quantity    decimal.Decimal          `json:"quantity"`
	Unit        string                   `json:"unit"`
	MinQuantity decimal.Decimal          `json:"minQuantity"`
	AverageCost decimal.Decimal          `json:"averageCost"`
	Description string                   `json:"description"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// ToInventoryItemResponse converts a domain item.
func ToInventoryItemResponse(item domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Category:    item.Category,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		MinQuantity: item.MinQuantity,
		AverageCost: item.AverageCost,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.LastUpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of domain items.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	res := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		res[i] = ToInventoryItemResponse(item)
	}
	return res
}

// InventoryMovementResponse mirrors domain.InventoryTransaction.
type InventoryMovementResponse struct {
	TxnID       string                   `json:"txnID"`
	ItemID      string                   `json:"itemID"`
	ItemName    string                   `json:"itemName"`
	Type        domain.StockMovementType `json:"type"`
	Quantity    decimal.Decimal          `json:"quantity"`
	UnitPrice   decimal.Decimal          `json:"unitPrice"`
	TotalPrice  decimal.Decimal          `json:"totalPrice"`
	Description string                   `json:"description"`
	CreatedAt   time.Time                `json:"createdAt"`
}

// ToInventoryMovementResponses converts stock movements.
func ToInventoryMovementResponses(moves []domain.InventoryTransaction) []InventoryMovementResponse {
	res := make([]InventoryMovementResponse, len(moves))
	for i, m := range moves {
		res[i] = InventoryMovementResponse{
			TxnID:       m.TxnID,
			ItemID:      m.ItemID,
			ItemName:    m.ItemName,
			Type:        m.Type,
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			TotalPrice:  m.TotalPrice,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		}
	}
	return res
}
