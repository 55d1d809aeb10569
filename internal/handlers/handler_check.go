package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

// checkHandler handles HTTP requests for payment checks.
type checkHandler struct {
	checkService portssvc.CheckSvcFacade
}

func newCheckHandler(cs portssvc.CheckSvcFacade) *checkHandler {
	return &checkHandler{checkService: cs}
}

// registerCheckRoutes registers routes related to checks.
func registerCheckRoutes(rg *gin.RouterGroup, checkService portssvc.CheckSvcFacade) {
	h := newCheckHandler(checkService)

	checks := rg.Group("/checks")
	{
		checks.POST("", h.registerCheck)
		checks.GET("", h.listChecks)
		checks.POST("/:id/clear", h.clearCheck)
		checks.POST("/:id/bounce", h.bounceCheck)
	}
}

// registerCheck godoc
// @Summary Register a received or issued check
// @Tags checks
// @Accept json
// @Produce json
// @Param check body dto.RegisterCheckRequest true "Check details"
// @Success 201 {object} dto.CheckResponse
// @Security BearerAuth
// @Router /checks [post]
func (h *checkHandler) registerCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterCheck", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	check, err := h.checkService.RegisterCheck(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "register check")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCheckResponse(*check))
}

// listChecks godoc
// @Summary List checks
// @Tags checks
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.CheckResponse
// @Security BearerAuth
// @Router /checks [get]
func (h *checkHandler) listChecks(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	checks, err := h.checkService.ListChecks(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list checks")
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckResponses(checks))
}

// clearCheck godoc
// @Summary Clear a pending check
// @Description Settles the check and posts the clearing entry
// @Tags checks
// @Produce json
// @Param id path string true "Check ID"
// @Success 200 {object} dto.CheckResponse
// @Failure 409 {object} map[string]string "Check is not pending"
// @Security BearerAuth
// @Router /checks/{id}/clear [post]
func (h *checkHandler) clearCheck(c *gin.Context) {
	requestingUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	check, err := h.checkService.ClearCheck(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondError(c, err, "clear check")
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckResponse(*check))
}

// bounceCheck godoc
// @Summary Mark a pending check bounced
// @Tags checks
// @Produce json
// @Param id path string true "Check ID"
// @Success 200 {object} dto.CheckResponse
// @Failure 409 {object} map[string]string "Check is not pending"
// @Security BearerAuth
// @Router /checks/{id}/bounce [post]
func (h *checkHandler) bounceCheck(c *gin.Context) {
	requestingUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	check, err := h.checkService.BounceCheck(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondError(c, err, "bounce check")
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckResponse(*check))
}
