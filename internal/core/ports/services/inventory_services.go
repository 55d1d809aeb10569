package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/dto"
)

// InventorySvcFacade manages stock items, movements and production batches.
type InventorySvcFacade interface {
	// CreateItem registers a new stock item with zero quantity.
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, creatorUserID string) (*domain.InventoryItem, error)

	// UpdateItem updates item master data. Quantity and average cost only
	// move through stock operations.
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest, requestingUserID string) (*domain.InventoryItem, error)

	// GetItemByID retrieves one item.
	GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// ListItems retrieves all items ordered by name.
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)

	// ListItemsBelowMin retrieves items under their minimum quantity.
	ListItemsBelowMin(ctx context.Context) ([]domain.InventoryItem, error)

	// ListMovements retrieves the stock movement log, optionally per item.
	ListMovements(ctx context.Context, itemID string, params dto.ListParams) ([]domain.InventoryTransaction, error)

	// StockIn receives purchased stock, recomputes the weighted-average cost
	// and posts the purchase entry.
	StockIn(ctx context.Context, req dto.StockInRequest, requestingUserID string) (*domain.InventoryItem, error)

	// StockOut consumes stock at average cost and posts the consumption
	// entry. Quantity clamps at zero.
	StockOut(ctx context.Context, req dto.StockOutRequest, requestingUserID string) (*domain.InventoryItem, error)

	// ProduceBatch consumes ingredient stock and receives the produced
	// output item at the batch's aggregate unit cost.
	ProduceBatch(ctx context.Context, req dto.ProduceBatchRequest, requestingUserID string) (*domain.InventoryItem, error)
}
