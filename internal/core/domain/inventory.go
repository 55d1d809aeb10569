package domain

import "github.com/shopspring/decimal"

// InventoryCategory groups stock items and selects their posting accounts.
type InventoryCategory string

const (
	InventoryFood      InventoryCategory = "FOOD"
	InventoryMedical   InventoryCategory = "MEDICAL"
	InventoryEquipment InventoryCategory = "EQUIPMENT"
)

// AssetAccount is the inventory asset account stock of this category sits in.
func (c InventoryCategory) AssetAccount() string {
	switch c {
	case InventoryFood:
		return AccountFoodInventory
	case InventoryMedical:
		return AccountMedicalInventory
	default:
		return AccountSupplyInventory
	}
}

// ExpenseAccount is the cost-of-goods account consumption posts against.
func (c InventoryCategory) ExpenseAccount() string {
	switch c {
	case InventoryFood:
		return AccountFeedingExpense
	case InventoryMedical:
		return AccountTreatmentExpense
	default:
		return AccountSuppliesExpense
	}
}

// InventoryItem tracks on-hand quantity and the weighted-average unit cost.
// Quantity never goes negative: over-consumption clamps at zero, absorbing
// the shortfall silently (source parity; see DESIGN.md).
type InventoryItem struct {
	ItemID      string            `json:"itemID"`
	Name        string            `json:"name"`
	Category    InventoryCategory `json:"category"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Unit        string            `json:"unit"`
	MinQuantity decimal.Decimal   `json:"minQuantity"`
	AverageCost decimal.Decimal   `json:"averageCost"`
	Description string            `json:"description"`
	AuditFields
}

// WeightedAverageCost recomputes the unit cost after receiving qty units at
// unitPrice. The current quantity and cost are taken from the item.
func (i *InventoryItem) WeightedAverageCost(qty, unitPrice decimal.Decimal) decimal.Decimal {
	newQty := i.Quantity.Add(qty)
	if newQty.LessThanOrEqual(decimal.Zero) {
		return i.AverageCost
	}
	current := i.Quantity.Mul(i.AverageCost)
	incoming := qty.Mul(unitPrice)
	return current.Add(incoming).Div(newQty)
}

// StockMovementType distinguishes incoming and outgoing stock.
type StockMovementType string

const (
	StockIn  StockMovementType = "IN"
	StockOut StockMovementType = "OUT"
)

// InventoryTransaction is the append-only audit record of one stock movement.
// It is written for every movement whether or not a journal entry accompanies it.
type InventoryTransaction struct {
	TxnID           string            `json:"txnID"`
	ItemID          string            `json:"itemID"`
	ItemName        string            `json:"itemName"`
	Type            StockMovementType `json:"type"`
	Quantity        decimal.Decimal   `json:"quantity"`
	UnitPrice       decimal.Decimal   `json:"unitPrice"`
	TotalPrice      decimal.Decimal   `json:"totalPrice"`
	Description     string            `json:"description"`
	RelatedEntityID string            `json:"relatedEntityID"`
	AuditFields
}

// BatchIngredient is one input to a production batch.
type BatchIngredient struct {
	ItemID   string          `json:"itemID"`
	Quantity decimal.Decimal `json:"quantity"`
}
