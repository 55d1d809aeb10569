package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

// payrollHandler handles HTTP requests for payroll.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
	userService    portssvc.UserSvcFacade
}

func newPayrollHandler(ps portssvc.PayrollSvcFacade, us portssvc.UserSvcFacade) *payrollHandler {
	return &payrollHandler{payrollService: ps, userService: us}
}

// registerPayrollRoutes registers routes related to payroll.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade, userService portssvc.UserSvcFacade) {
	h := newPayrollHandler(payrollService, userService)

	payroll := rg.Group("/payroll")
	{
		payroll.POST("/run", middleware.RequireAdmin(), h.runPayroll)
		payroll.GET("/payslips", h.listPayslips)
	}
}

// runPayroll godoc
// @Summary Run monthly payroll
// @Description Credits every salaried employee's wallet and posts one aggregate salary entry
// @Tags payroll
// @Accept json
// @Produce json
// @Param run body dto.RunPayrollRequest true "Payroll period and adjustments"
// @Success 200 {object} dto.PayrollRunResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 409 {object} map[string]string "No salaried employees"
// @Security BearerAuth
// @Router /payroll/run [post]
func (h *payrollHandler) runPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RunPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RunPayroll", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUser, ok := mustRequestingUser(c, h.userService)
	if !ok {
		return
	}

	result, err := h.payrollService.RunMonthlyPayroll(c.Request.Context(), req, requestingUser)
	if err != nil {
		respondError(c, err, "run payroll")
		return
	}
	c.JSON(http.StatusOK, result)
}

// listPayslips godoc
// @Summary List payslips
// @Tags payroll
// @Produce json
// @Param period query string false "Filter by period (YYYY-MM)"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.PayslipResponse
// @Security BearerAuth
// @Router /payroll/payslips [get]
func (h *payrollHandler) listPayslips(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	payslips, err := h.payrollService.ListPayslips(c.Request.Context(), c.Query("period"), params)
	if err != nil {
		respondError(c, err, "list payslips")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayslipResponses(payslips))
}
