package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

// invoiceHandler handles HTTP requests for invoices and expenses.
type invoiceHandler struct {
	billingService portssvc.BillingSvcFacade
	userService    portssvc.UserSvcFacade
}

func newInvoiceHandler(bs portssvc.BillingSvcFacade, us portssvc.UserSvcFacade) *invoiceHandler {
	return &invoiceHandler{billingService: bs, userService: us}
}

// registerInvoiceRoutes registers routes related to billing.
func registerInvoiceRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade, userService portssvc.UserSvcFacade) {
	h := newInvoiceHandler(billingService, userService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/pay", h.payInvoice)
		invoices.GET("/payer/:payerID", h.listInvoicesByPayer)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.recordExpense)
		expenses.GET("", h.listExpenses)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Opens an invoice and posts the receivable recognition entry
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Payer or provider not found"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	invoice, err := h.billingService.CreateInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(*invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.InvoiceResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	invoices, err := h.billingService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoice, err := h.billingService.GetInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "get invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(*invoice))
}

// payInvoice godoc
// @Summary Pay an invoice
// @Description Records a payment; wallet payments may recharge first, and settlement pays out provider commission
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param payment body dto.PayInvoiceRequest true "Payment details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 409 {object} map[string]string "Already paid or insufficient wallet balance"
// @Security BearerAuth
// @Router /invoices/{id}/pay [post]
func (h *invoiceHandler) payInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUser, ok := mustRequestingUser(c, h.userService)
	if !ok {
		return
	}

	invoice, err := h.billingService.PayInvoice(c.Request.Context(), c.Param("id"), req, requestingUser)
	if err != nil {
		respondError(c, err, "pay invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(*invoice))
}

// listInvoicesByPayer godoc
// @Summary List one member's invoices
// @Tags invoices
// @Produce json
// @Param payerID path string true "Payer user ID"
// @Success 200 {array} dto.InvoiceResponse
// @Security BearerAuth
// @Router /invoices/payer/{payerID} [get]
func (h *invoiceHandler) listInvoicesByPayer(c *gin.Context) {
	invoices, err := h.billingService.ListInvoicesByPayer(c.Request.Context(), c.Param("payerID"))
	if err != nil {
		respondError(c, err, "list payer invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

// recordExpense godoc
// @Summary Record an operating expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.RecordExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *invoiceHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.billingService.RecordExpense(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "record expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(*expense))
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.ExpenseResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *invoiceHandler) listExpenses(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, err := h.billingService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}
