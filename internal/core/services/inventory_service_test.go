package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/core/services"
	"github.com/clubops/clubledger/internal/dto"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	mockJournalRepo   *MockJournalRepository
	service           portssvc.InventorySvcFacade
	userID            string

	postedEntries []domain.JournalEntry
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo, suite.mockJournalRepo)
	suite.userID = uuid.NewString()
	suite.postedEntries = nil
}

func (suite *InventoryServiceTestSuite) expectTx() {
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
}

func (suite *InventoryServiceTestSuite) capturePostings() {
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			suite.postedEntries = append(suite.postedEntries, args.Get(2).(domain.JournalEntry))
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), DocumentNumber: 1001}, nil)
}

func foodItem(qty, avgCost int64) *domain.InventoryItem {
	return &domain.InventoryItem{
		ItemID:      uuid.NewString(),
		Name:        "Dry feed",
		Category:    domain.InventoryFood,
		Quantity:    decimal.NewFromInt(qty),
		Unit:        "kg",
		AverageCost: decimal.NewFromInt(avgCost),
	}
}

func (suite *InventoryServiceTestSuite) TestStockIn_RecomputesWeightedAverage() {
	ctx := context.Background()
	item := foodItem(10, 100)

	suite.expectTx()
	suite.capturePostings()
	suite.mockInventoryRepo.On("FindItemByIDForUpdate", mock.Anything, mock.Anything, item.ItemID).Return(item, nil).Once()

	var updated domain.InventoryItem
	suite.mockInventoryRepo.On("UpdateItemInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.InventoryItem")).
		Run(func(args mock.Arguments) { updated = args.Get(2).(domain.InventoryItem) }).
		Return(nil).Once()
	suite.mockInventoryRepo.On("SaveMovementInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(txn domain.InventoryTransaction) bool {
		return txn.Type == domain.StockIn && txn.Quantity.Equal(decimal.NewFromInt(10))
	})).Return(nil).Once()

	req := dto.StockInRequest{
		ItemID:        item.ItemID,
		Quantity:      decimal.NewFromInt(10),
		UnitPrice:     decimal.NewFromInt(200),
		PaymentMethod: domain.PayCash,
	}
	result, err := suite.service.StockIn(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// 10 @ 100 plus 10 @ 200 averages to 150.
	suite.True(result.AverageCost.Equal(decimal.NewFromInt(150)))
	suite.True(result.Quantity.Equal(decimal.NewFromInt(20)))
	suite.True(updated.AverageCost.Equal(decimal.NewFromInt(150)))

	suite.Require().Len(suite.postedEntries, 1)
	amounts := lineAmounts(suite.postedEntries[0])
	suite.True(amounts[domain.AccountFoodInventory].Equal(decimal.NewFromInt(2000)))
	suite.True(amounts[domain.AccountCashOnHand].Equal(decimal.NewFromInt(-2000)))
}

func (suite *InventoryServiceTestSuite) TestStockIn_ZeroPriceKeepsAverageAndSkipsPosting() {
	ctx := context.Background()
	item := foodItem(5, 100)

	suite.expectTx()
	suite.mockInventoryRepo.On("FindItemByIDForUpdate", mock.Anything, mock.Anything, item.ItemID).Return(item, nil).Once()
	suite.mockInventoryRepo.On("UpdateItemInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockInventoryRepo.On("SaveMovementInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.StockInRequest{
		ItemID:        item.ItemID,
		Quantity:      decimal.NewFromInt(3),
		UnitPrice:     decimal.Zero,
		PaymentMethod: domain.PayCash,
	}
	result, err := suite.service.StockIn(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// A free receipt raises quantity but must not dilute the average cost.
	suite.True(result.Quantity.Equal(decimal.NewFromInt(8)))
	suite.True(result.AverageCost.Equal(decimal.NewFromInt(100)))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestStockOut_PostsCostAndClampsAtZero() {
	ctx := context.Background()
	item := foodItem(4, 50)

	suite.expectTx()
	suite.capturePostings()
	suite.mockInventoryRepo.On("FindItemByIDForUpdate", mock.Anything, mock.Anything, item.ItemID).Return(item, nil).Once()

	var updated domain.InventoryItem
	suite.mockInventoryRepo.On("UpdateItemInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.InventoryItem")).
		Run(func(args mock.Arguments) { updated = args.Get(2).(domain.InventoryItem) }).
		Return(nil).Once()
	var movement domain.InventoryTransaction
	suite.mockInventoryRepo.On("SaveMovementInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.InventoryTransaction")).
		Run(func(args mock.Arguments) { movement = args.Get(2).(domain.InventoryTransaction) }).
		Return(nil).Once()

	dogID := uuid.NewString()
	req := dto.StockOutRequest{ItemID: item.ItemID, Quantity: decimal.NewFromInt(6), Reason: "Feeding", RelatedEntityID: dogID}
	result, err := suite.service.StockOut(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// Consumption exceeds on-hand quantity; the item clamps at zero but the
	// cost posts for the full requested quantity.
	suite.True(result.Quantity.IsZero())
	suite.True(updated.Quantity.IsZero())
	suite.Equal(dogID, movement.RelatedEntityID)

	suite.Require().Len(suite.postedEntries, 1)
	amounts := lineAmounts(suite.postedEntries[0])
	suite.True(amounts[domain.AccountFeedingExpense].Equal(decimal.NewFromInt(300)))
	suite.True(amounts[domain.AccountFoodInventory].Equal(decimal.NewFromInt(-300)))
}

func (suite *InventoryServiceTestSuite) TestStockOut_RejectsNonPositiveQuantity() {
	ctx := context.Background()

	_, err := suite.service.StockOut(ctx, dto.StockOutRequest{ItemID: uuid.NewString(), Quantity: decimal.Zero}, suite.userID)

	suite.Require().ErrorIs(err, services.ErrQuantityNotPositive)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestProduceBatch_AggregatesCostIntoOutput() {
	ctx := context.Background()
	meat := foodItem(20, 30)
	rice := foodItem(50, 6)
	rice.Name = "Rice"
	output := foodItem(0, 0)
	output.Name = "Cooked meal"

	suite.expectTx()
	suite.capturePostings()
	suite.mockInventoryRepo.On("FindItemByIDForUpdate", mock.Anything, mock.Anything, meat.ItemID).Return(meat, nil).Once()
	suite.mockInventoryRepo.On("FindItemByIDForUpdate", mock.Anything, mock.Anything, rice.ItemID).Return(rice, nil).Once()
	suite.mockInventoryRepo.On("FindItemByIDForUpdate", mock.Anything, mock.Anything, output.ItemID).Return(output, nil).Once()
	suite.mockInventoryRepo.On("UpdateItemInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(3)
	suite.mockInventoryRepo.On("SaveMovementInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(3)

	req := dto.ProduceBatchRequest{
		OutputItemID: output.ItemID,
		OutputWeight: decimal.NewFromInt(25),
		Ingredients: []dto.BatchIngredientRequest{
			{ItemID: meat.ItemID, Quantity: decimal.NewFromInt(10)},
			{ItemID: rice.ItemID, Quantity: decimal.NewFromInt(25)},
		},
	}
	result, err := suite.service.ProduceBatch(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// 10*30 + 25*6 = 450 total cost over 25 kg output = 18 per kg.
	suite.True(result.AverageCost.Equal(decimal.NewFromInt(18)))
	suite.True(result.Quantity.Equal(decimal.NewFromInt(25)))

	// Single aggregate asset-to-asset entry.
	suite.Require().Len(suite.postedEntries, 1)
	entry := suite.postedEntries[0]
	suite.True(entry.TotalDebits().Equal(decimal.NewFromInt(450)))
	suite.True(entry.TotalCredits().Equal(decimal.NewFromInt(450)))
}

func (suite *InventoryServiceTestSuite) TestProduceBatch_NoIngredients() {
	ctx := context.Background()

	req := dto.ProduceBatchRequest{
		OutputItemID: uuid.NewString(),
		OutputWeight: decimal.NewFromInt(5),
	}
	_, err := suite.service.ProduceBatch(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, services.ErrEmptyBatch)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestProduceBatch_ZeroCostIngredientsProduceFreeOutput() {
	ctx := context.Background()
	freebie := foodItem(10, 0)
	output := foodItem(0, 0)
	output.Name = "Cooked meal"

	suite.expectTx()
	suite.mockInventoryRepo.On("FindItemByIDForUpdate", mock.Anything, mock.Anything, freebie.ItemID).Return(freebie, nil).Once()
	suite.mockInventoryRepo.On("FindItemByIDForUpdate", mock.Anything, mock.Anything, output.ItemID).Return(output, nil).Once()
	suite.mockInventoryRepo.On("UpdateItemInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
	suite.mockInventoryRepo.On("SaveMovementInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)

	req := dto.ProduceBatchRequest{
		OutputItemID: output.ItemID,
		OutputWeight: decimal.NewFromInt(5),
		Ingredients:  []dto.BatchIngredientRequest{{ItemID: freebie.ItemID, Quantity: decimal.NewFromInt(2)}},
	}
	result, err := suite.service.ProduceBatch(ctx, req, suite.userID)

	// Donated ingredients carry no cost; the batch still yields stock and
	// moves no value between asset accounts.
	suite.Require().NoError(err)
	suite.True(result.Quantity.Equal(decimal.NewFromInt(5)))
	suite.True(result.AverageCost.IsZero())
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestCreateItem_StartsEmpty() {
	ctx := context.Background()
	req := dto.CreateInventoryItemRequest{
		Name:        "Shampoo",
		Category:    domain.InventoryEquipment,
		Unit:        "bottle",
		MinQuantity: decimal.NewFromInt(2),
	}

	suite.mockInventoryRepo.On("SaveItem", ctx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.Quantity.IsZero() && item.AverageCost.IsZero() && item.Name == "Shampoo"
	})).Return(nil).Once()

	item, err := suite.service.CreateItem(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(item.ItemID)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
