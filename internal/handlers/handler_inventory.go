package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

// inventoryHandler handles HTTP requests for stock items and movements.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes related to inventory.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("/items", h.createItem)
		inventory.GET("/items", h.listItems)
		inventory.GET("/items/low-stock", h.listItemsBelowMin)
		inventory.GET("/items/:id", h.getItem)
		inventory.PUT("/items/:id", h.updateItem)
		inventory.GET("/movements", h.listMovements)
		inventory.POST("/stock-in", h.stockIn)
		inventory.POST("/stock-out", h.stockOut)
		inventory.POST("/produce", h.produceBatch)
	}
}

// createItem godoc
// @Summary Create a stock item
// @Tags inventory
// @Accept json
// @Produce json
// @Param item body dto.CreateInventoryItemRequest true "Item details"
// @Success 201 {object} dto.InventoryItemResponse
// @Security BearerAuth
// @Router /inventory/items [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "create item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(*item))
}

// listItems godoc
// @Summary List stock items
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.InventoryItemResponse
// @Security BearerAuth
// @Router /inventory/items [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	items, err := h.inventoryService.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err, "list items")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponses(items))
}

// listItemsBelowMin godoc
// @Summary List items under their minimum quantity
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.InventoryItemResponse
// @Security BearerAuth
// @Router /inventory/items/low-stock [get]
func (h *inventoryHandler) listItemsBelowMin(c *gin.Context) {
	items, err := h.inventoryService.ListItemsBelowMin(c.Request.Context())
	if err != nil {
		respondError(c, err, "list low stock items")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponses(items))
}

// getItem godoc
// @Summary Get a stock item by ID
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /inventory/items/{id} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	item, err := h.inventoryService.GetItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "get item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(*item))
}

// updateItem godoc
// @Summary Update a stock item's master data
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body dto.UpdateInventoryItemRequest true "Fields to update"
// @Success 200 {object} dto.InventoryItemResponse
// @Security BearerAuth
// @Router /inventory/items/{id} [put]
func (h *inventoryHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "update item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(*item))
}

// listMovements godoc
// @Summary List stock movements
// @Tags inventory
// @Produce json
// @Param itemID query string false "Filter by item ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.InventoryMovementResponse
// @Security BearerAuth
// @Router /inventory/movements [get]
func (h *inventoryHandler) listMovements(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	moves, err := h.inventoryService.ListMovements(c.Request.Context(), c.Query("itemID"), params)
	if err != nil {
		respondError(c, err, "list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryMovementResponses(moves))
}

// stockIn godoc
// @Summary Receive purchased stock
// @Description Recomputes the weighted-average cost and posts the purchase entry
// @Tags inventory
// @Accept json
// @Produce json
// @Param movement body dto.StockInRequest true "Receipt details"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /inventory/stock-in [post]
func (h *inventoryHandler) stockIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StockIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.StockIn(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "receive stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(*item))
}

// stockOut godoc
// @Summary Consume stock
// @Description Posts consumption at average cost; quantity clamps at zero
// @Tags inventory
// @Accept json
// @Produce json
// @Param movement body dto.StockOutRequest true "Consumption details"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /inventory/stock-out [post]
func (h *inventoryHandler) stockOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StockOut", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.StockOut(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "consume stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(*item))
}

// produceBatch godoc
// @Summary Run a production batch
// @Description Consumes ingredients and receives the output item at the batch unit cost
// @Tags inventory
// @Accept json
// @Produce json
// @Param batch body dto.ProduceBatchRequest true "Batch details"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /inventory/produce [post]
func (h *inventoryHandler) produceBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProduceBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProduceBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.ProduceBatch(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "produce batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(*item))
}
