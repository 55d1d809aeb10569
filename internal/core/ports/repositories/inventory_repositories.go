package repositories

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InventoryRepository persists stock items and their movement log.
type InventoryRepository interface {
	// SaveItem persists a new inventory item.
	SaveItem(ctx context.Context, item domain.InventoryItem) error

	// FindItemByID retrieves an item.
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// FindItemByIDForUpdate locks the item row; all quantity/cost mutations
	// must go through this lock.
	FindItemByIDForUpdate(ctx context.Context, tx pgx.Tx, itemID string) (*domain.InventoryItem, error)

	// UpdateItem updates item master data outside a stock movement.
	UpdateItem(ctx context.Context, item domain.InventoryItem) error

	// UpdateItemInTx writes quantity and average cost inside a movement
	// transaction.
	UpdateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error

	// ListItems retrieves all items ordered by name.
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)

	// ListItemsBelowMin retrieves items whose quantity is under their
	// configured minimum.
	ListItemsBelowMin(ctx context.Context) ([]domain.InventoryItem, error)

	// SaveMovementInTx appends the audit record for one stock movement.
	// Written for every movement whether or not a journal entry accompanies it.
	SaveMovementInTx(ctx context.Context, tx pgx.Tx, txn domain.InventoryTransaction) error

	// ListMovements retrieves movements, optionally filtered by item.
	ListMovements(ctx context.Context, itemID string, limit, offset int) ([]domain.InventoryTransaction, error)
}
