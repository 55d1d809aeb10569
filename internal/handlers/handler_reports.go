package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
)

// reportHandler serves the derived reporting views.
type reportHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newReportHandler(ls portssvc.LedgerSvcFacade) *reportHandler {
	return &reportHandler{ledgerService: ls}
}

// registerReportRoutes registers the reporting routes.
func registerReportRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newReportHandler(ledgerService)

	reports := rg.Group("/reports")
	{
		reports.GET("/statement/:code", h.accountStatement)
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/summary", h.financialSummary)
	}
}

// accountStatement godoc
// @Summary Account statement with running balance
// @Tags reports
// @Produce json
// @Param code path string true "Account code"
// @Success 200 {object} dto.StatementResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /reports/statement/{code} [get]
func (h *reportHandler) accountStatement(c *gin.Context) {
	statement, err := h.ledgerService.AccountStatement(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "build statement")
		return
	}
	c.JSON(200, statement)
}

// trialBalance godoc
// @Summary Trial balance over all accounts with activity
// @Tags reports
// @Produce json
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportHandler) trialBalance(c *gin.Context) {
	report, err := h.ledgerService.TrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, err, "build trial balance")
		return
	}
	c.JSON(200, report)
}

// financialSummary godoc
// @Summary Headline financial totals
// @Tags reports
// @Produce json
// @Success 200 {object} dto.FinancialSummaryResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportHandler) financialSummary(c *gin.Context) {
	summary, err := h.ledgerService.FinancialSummary(c.Request.Context())
	if err != nil {
		respondError(c, err, "build financial summary")
		return
	}
	c.JSON(200, summary)
}
