package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

// snapshotHandler handles HTTP requests for backup and restore.
type snapshotHandler struct {
	snapshotService portssvc.SnapshotSvcFacade
	userService     portssvc.UserSvcFacade
}

func newSnapshotHandler(ss portssvc.SnapshotSvcFacade, us portssvc.UserSvcFacade) *snapshotHandler {
	return &snapshotHandler{snapshotService: ss, userService: us}
}

// registerSnapshotRoutes registers the backup and restore routes.
func registerSnapshotRoutes(rg *gin.RouterGroup, snapshotService portssvc.SnapshotSvcFacade, userService portssvc.UserSvcFacade) {
	h := newSnapshotHandler(snapshotService, userService)

	snapshots := rg.Group("/snapshots", middleware.RequireAdmin())
	{
		snapshots.GET("/export", h.exportSnapshot)
		snapshots.POST("/restore", h.restoreSnapshot)
	}
}

// exportSnapshot godoc
// @Summary Export a full state snapshot
// @Tags snapshots
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /snapshots/export [get]
func (h *snapshotHandler) exportSnapshot(c *gin.Context) {
	requestingUser, ok := mustRequestingUser(c, h.userService)
	if !ok {
		return
	}

	snapshot, err := h.snapshotService.Export(c.Request.Context(), requestingUser)
	if err != nil {
		respondError(c, err, "export snapshot")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// restoreSnapshot godoc
// @Summary Restore state from a snapshot
// @Description Replaces all persisted state wholesale. Irreversible.
// @Tags snapshots
// @Accept json
// @Produce json
// @Param snapshot body domain.Snapshot true "Snapshot document"
// @Success 200 {object} dto.OperationResult
// @Failure 400 {object} map[string]string "Invalid or unbalanced snapshot"
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /snapshots/restore [post]
func (h *snapshotHandler) restoreSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var snapshot domain.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		logger.Warn("Failed to bind JSON for RestoreSnapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUser, ok := mustRequestingUser(c, h.userService)
	if !ok {
		return
	}

	if err := h.snapshotService.Restore(c.Request.Context(), &snapshot, requestingUser); err != nil {
		respondError(c, err, "restore snapshot")
		return
	}
	c.JSON(http.StatusOK, dto.OperationResult{Success: true, Message: "Snapshot restored"})
}
