package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

var (
	ErrQuantityNotPositive = errors.New("quantity must be positive")
	ErrEmptyBatch          = errors.New("production batch has no ingredients")
)

// inventoryService manages stock items, the movement log and production
// batches. Costing is weighted average; consumption posts at the current
// average cost and quantities clamp at zero.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepository
	journalRepo   portsrepo.JournalRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepository, journalRepo portsrepo.JournalRepository) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		journalRepo:   journalRepo,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateItem registers a new stock item with zero quantity.
func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, creatorUserID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.MinQuantity.IsNegative() {
		return nil, fmt.Errorf("%w: minimum quantity must be non-negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.InventoryItem{
		ItemID:      uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    decimal.Zero,
		Unit:        req.Unit,
		MinQuantity: req.MinQuantity,
		AverageCost: decimal.Zero,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	logger.Info("Inventory item created", slog.String("item_id", item.ItemID), slog.String("name", item.Name))
	return &item, nil
}

// UpdateItem updates item master data. Quantity and average cost only move
// through stock operations.
func (s *inventoryService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest, requestingUserID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.MinQuantity != nil {
		if req.MinQuantity.IsNegative() {
			return nil, fmt.Errorf("%w: minimum quantity must be non-negative", apperrors.ErrValidation)
		}
		item.MinQuantity = *req.MinQuantity
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = requestingUserID

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// GetItemByID retrieves one item.
func (s *inventoryService) GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}
	return item, nil
}

// ListItems retrieves all items ordered by name.
func (s *inventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.inventoryRepo.ListItems(ctx)
}

// ListItemsBelowMin retrieves items under their minimum quantity.
func (s *inventoryService) ListItemsBelowMin(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.inventoryRepo.ListItemsBelowMin(ctx)
}

// ListMovements retrieves the stock movement log, optionally per item.
func (s *inventoryService) ListMovements(ctx context.Context, itemID string, params dto.ListParams) ([]domain.InventoryTransaction, error) {
	return s.inventoryRepo.ListMovements(ctx, itemID, params.Limit, params.Offset)
}

// StockIn receives purchased stock. Priced receipts recompute the
// weighted-average cost before quantities move; the purchase posts the
// category asset account against the payment source.
func (s *inventoryService) StockIn(ctx context.Context, req dto.StockInRequest, requestingUserID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrQuantityNotPositive, req.Quantity)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must be non-negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	item, err := s.inventoryRepo.FindItemByIDForUpdate(ctx, tx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock item %s: %w", req.ItemID, err)
	}

	total := req.Quantity.Mul(req.UnitPrice)

	// Free receipts (donations, corrections) keep the current average cost.
	if req.UnitPrice.IsPositive() {
		item.AverageCost = item.WeightedAverageCost(req.Quantity, req.UnitPrice)
	}
	item.Quantity = item.Quantity.Add(req.Quantity)
	item.LastUpdatedAt = now
	item.LastUpdatedBy = requestingUserID

	if err := s.inventoryRepo.UpdateItemInTx(ctx, tx, *item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if err := s.saveMovementInTx(ctx, tx, item, domain.StockIn, req.Quantity, req.UnitPrice, total, "Stock received", req.Reference, requestingUserID, now); err != nil {
		return nil, err
	}

	if total.IsPositive() {
		entry := newEntry(
			fmt.Sprintf("Stock purchase: %s", item.Name),
			req.Reference,
			item.ItemID,
			requestingUserID,
			now,
			[]domain.JournalLine{
				domain.DebitLine(item.Category.AssetAccount(), total, item.Name),
				domain.CreditLine(req.PaymentMethod.DebitAccount(), total, ""),
			},
		)
		if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit stock in: %w", err)
	}

	logger.Info("Stock received",
		slog.String("item_id", item.ItemID),
		slog.String("quantity", req.Quantity.String()),
		slog.String("average_cost", item.AverageCost.String()),
	)
	return item, nil
}

// StockOut consumes stock at the current average cost and posts the
// category cost account against the category asset account. The on-hand
// quantity clamps at zero when consumption exceeds it.
func (s *inventoryService) StockOut(ctx context.Context, req dto.StockOutRequest, requestingUserID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrQuantityNotPositive, req.Quantity)
	}

	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	item, err := s.consumeInTx(ctx, tx, req.ItemID, req.Quantity, req.Reason, req.RelatedEntityID, requestingUserID, now, true)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit stock out: %w", err)
	}

	logger.Info("Stock consumed",
		slog.String("item_id", item.ItemID),
		slog.String("quantity", req.Quantity.String()),
	)
	return item, nil
}

// consumeInTx performs one stock-out under the row lock. When postJournal is
// set, the consumption cost posts to the category cost account; production
// batches post their own aggregate entry instead.
func (s *inventoryService) consumeInTx(ctx context.Context, tx pgx.Tx, itemID string, qty decimal.Decimal, reason, relatedID, actorID string, now time.Time, postJournal bool) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByIDForUpdate(ctx, tx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock item %s: %w", itemID, err)
	}

	cost := qty.Mul(item.AverageCost)

	item.Quantity = item.Quantity.Sub(qty)
	if item.Quantity.IsNegative() {
		item.Quantity = decimal.Zero
	}
	item.LastUpdatedAt = now
	item.LastUpdatedBy = actorID

	if err := s.inventoryRepo.UpdateItemInTx(ctx, tx, *item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if err := s.saveMovementInTx(ctx, tx, item, domain.StockOut, qty, item.AverageCost, cost, reason, relatedID, actorID, now); err != nil {
		return nil, err
	}

	if postJournal && cost.IsPositive() {
		entry := newEntry(
			fmt.Sprintf("Stock consumption: %s", item.Name),
			"",
			item.ItemID,
			actorID,
			now,
			[]domain.JournalLine{
				domain.DebitLine(item.Category.ExpenseAccount(), cost, item.Name),
				domain.CreditLine(item.Category.AssetAccount(), cost, item.Name),
			},
		)
		if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// ProduceBatch consumes ingredient stock and receives the produced output
// item. The batch's aggregate ingredient cost divided by the output weight
// becomes the received unit cost, folded into the output's weighted average.
func (s *inventoryService) ProduceBatch(ctx context.Context, req dto.ProduceBatchRequest, requestingUserID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.OutputWeight.IsPositive() {
		return nil, fmt.Errorf("%w: output weight must be positive", apperrors.ErrValidation)
	}
	if len(req.Ingredients) == 0 {
		return nil, ErrEmptyBatch
	}

	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	totalCost := decimal.Zero
	consumedByAccount := make(map[string]decimal.Decimal)
	for _, ing := range req.Ingredients {
		if !ing.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: got %s", ErrQuantityNotPositive, ing.Quantity)
		}
		item, err := s.consumeInTx(ctx, tx, ing.ItemID, ing.Quantity, "Consumed by production batch", req.OutputItemID, requestingUserID, now, false)
		if err != nil {
			return nil, err
		}
		cost := ing.Quantity.Mul(item.AverageCost)
		totalCost = totalCost.Add(cost)
		account := item.Category.AssetAccount()
		consumedByAccount[account] = consumedByAccount[account].Add(cost)
	}
	// Ingredients that never carried a cost still produce: the batch lands
	// at unit cost zero and no value moves between asset accounts.
	unitCost := totalCost.Div(req.OutputWeight)

	output, err := s.inventoryRepo.FindItemByIDForUpdate(ctx, tx, req.OutputItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock output item %s: %w", req.OutputItemID, err)
	}

	if unitCost.IsPositive() {
		output.AverageCost = output.WeightedAverageCost(req.OutputWeight, unitCost)
	}
	output.Quantity = output.Quantity.Add(req.OutputWeight)
	output.LastUpdatedAt = now
	output.LastUpdatedBy = requestingUserID

	if err := s.inventoryRepo.UpdateItemInTx(ctx, tx, *output); err != nil {
		return nil, fmt.Errorf("failed to update output item: %w", err)
	}

	if err := s.saveMovementInTx(ctx, tx, output, domain.StockIn, req.OutputWeight, unitCost, totalCost, "Produced by batch", "", requestingUserID, now); err != nil {
		return nil, err
	}

	// One aggregate posting moves the batch cost from the ingredient asset
	// accounts into the output's asset account.
	if totalCost.IsPositive() {
		outputAccount := output.Category.AssetAccount()
		lines := []domain.JournalLine{domain.DebitLine(outputAccount, totalCost, output.Name)}
		for account, cost := range consumedByAccount {
			if cost.IsPositive() {
				lines = append(lines, domain.CreditLine(account, cost, ""))
			}
		}
		entry := newEntry(
			fmt.Sprintf("Production batch: %s", output.Name),
			"",
			output.ItemID,
			requestingUserID,
			now,
			lines,
		)
		if _, err := postEntry(ctx, s.journalRepo, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit production batch: %w", err)
	}

	logger.Info("Production batch completed",
		slog.String("output_item_id", output.ItemID),
		slog.String("output_weight", req.OutputWeight.String()),
		slog.String("unit_cost", unitCost.String()),
	)
	return output, nil
}

func (s *inventoryService) saveMovementInTx(ctx context.Context, tx pgx.Tx, item *domain.InventoryItem, movType domain.StockMovementType, qty, unitPrice, total decimal.Decimal, description, relatedID, actorID string, now time.Time) error {
	txn := domain.InventoryTransaction{
		TxnID:           uuid.NewString(),
		ItemID:          item.ItemID,
		ItemName:        item.Name,
		Type:            movType,
		Quantity:        qty,
		UnitPrice:       unitPrice,
		TotalPrice:      total,
		Description:     description,
		RelatedEntityID: relatedID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.inventoryRepo.SaveMovementInTx(ctx, tx, txn); err != nil {
		return fmt.Errorf("failed to save stock movement: %w", err)
	}
	return nil
}
