package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
)

const itemColumns = `item_id, name, category, quantity, unit, min_quantity, average_cost, description,
	created_at, created_by, last_updated_at, last_updated_by`

const movementColumns = `txn_id, item_id, item_name, movement_type, quantity, unit_price, total_price, description, related_entity_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxInventoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{pool: pool}
}

var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

func scanItem(row rowScanner) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(
		&item.ItemID,
		&item.Name,
		&item.Category,
		&item.Quantity,
		&item.Unit,
		&item.MinQuantity,
		&item.AverageCost,
		&item.Description,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem persists a new inventory item.
func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		item.ItemID,
		item.Name,
		item.Category,
		item.Quantity,
		item.Unit,
		item.MinQuantity,
		item.AverageCost,
		item.Description,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save inventory item %s: %w", item.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves an item.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = $1;`
	item, err := scanItem(r.pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	return item, nil
}

// FindItemByIDForUpdate locks the item row for the duration of the
// transaction.
func (r *PgxInventoryRepository) FindItemByIDForUpdate(ctx context.Context, tx pgx.Tx, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = $1 FOR UPDATE;`
	item, err := scanItem(tx.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock inventory item %s: %w", itemID, err)
	}
	return item, nil
}

// UpdateItem updates item master data outside a stock movement.
func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category = $3, unit = $4, min_quantity = $5, description = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE item_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		item.ItemID,
		item.Name,
		item.Category,
		item.Unit,
		item.MinQuantity,
		item.Description,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateItemInTx writes quantity and average cost inside a movement
// transaction.
func (r *PgxInventoryRepository) UpdateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET quantity = $2, average_cost = $3, last_updated_at = $4, last_updated_by = $5
		WHERE item_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		item.ItemID,
		item.Quantity,
		item.AverageCost,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock for item %s: %w", item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListItems retrieves all items ordered by name.
func (r *PgxInventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY name;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListItemsBelowMin retrieves items whose quantity is under their configured
// minimum.
func (r *PgxInventoryRepository) ListItemsBelowMin(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE quantity < min_quantity ORDER BY name;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory item rows: %w", err)
	}
	return items, nil
}

// SaveMovementInTx appends the audit record for one stock movement.
func (r *PgxInventoryRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, txn domain.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		txn.TxnID,
		txn.ItemID,
		txn.ItemName,
		txn.Type,
		txn.Quantity,
		txn.UnitPrice,
		txn.TotalPrice,
		txn.Description,
		txn.RelatedEntityID,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory movement %s: %w", txn.TxnID, err)
	}
	return nil
}

// ListMovements retrieves movements, optionally filtered by item.
func (r *PgxInventoryRepository) ListMovements(ctx context.Context, itemID string, limit, offset int) ([]domain.InventoryTransaction, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_transactions
		WHERE $1 = '' OR item_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory movements: %w", err)
	}
	defer rows.Close()

	var txns []domain.InventoryTransaction
	for rows.Next() {
		var t domain.InventoryTransaction
		if err := rows.Scan(
			&t.TxnID,
			&t.ItemID,
			&t.ItemName,
			&t.Type,
			&t.Quantity,
			&t.UnitPrice,
			&t.TotalPrice,
			&t.Description,
			&t.RelatedEntityID,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory movement row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory movement rows: %w", err)
	}
	return txns, nil
}
