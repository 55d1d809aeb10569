package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	userService    portssvc.UserSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade, us portssvc.UserSvcFacade) *journalHandler {
	return &journalHandler{journalService: js, userService: us}
}

// registerJournalRoutes registers routes related to the journal.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, userService portssvc.UserSvcFacade) {
	h := newJournalHandler(journalService, userService)

	journal := rg.Group("/journal")
	{
		journal.POST("/entries", h.recordEntry)
		journal.GET("/entries", h.listEntries)
		journal.GET("/entries/:id", h.getEntry)
		journal.DELETE("/entries/:id", middleware.RequireAdmin(), h.deleteEntry)
	}
}

// recordEntry godoc
// @Summary Post a manual journal entry
// @Description Validates and posts a balanced journal entry, allocating the next document number
// @Tags journal
// @Accept json
// @Produce json
// @Param entry body dto.RecordEntryRequest true "Entry lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Unbalanced or invalid entry"
// @Security BearerAuth
// @Router /journal/entries [post]
func (h *journalHandler) recordEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.RecordEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "record entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Tags journal
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.JournalEntryResponse
// @Security BearerAuth
// @Router /journal/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /journal/entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "get entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Description Removes a posted entry. Admin only and irreversible.
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.OperationResult
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /journal/entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	requestingUser, ok := mustRequestingUser(c, h.userService)
	if !ok {
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), c.Param("id"), requestingUser); err != nil {
		respondError(c, err, "delete entry")
		return
	}
	c.JSON(http.StatusOK, dto.OperationResult{Success: true, Message: "Entry deleted"})
}
