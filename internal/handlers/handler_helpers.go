package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/core/services"
	"github.com/clubops/clubledger/internal/middleware"
)

// respondError maps service errors to HTTP statuses with a JSON error body.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrAmountNotPositive),
		errors.Is(err, services.ErrQuantityNotPositive),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrDescriptionMissing),
		errors.Is(err, services.ErrInvalidPeriod),
		errors.Is(err, services.ErrEmptyBatch),
		errors.Is(err, services.ErrWalletMethodOnly),
		errors.Is(err, services.ErrOverpayment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, services.ErrInvoiceAlreadyPaid),
		errors.Is(err, services.ErrCheckNotPending),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrNoEmployees):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// mustUserID pulls the authenticated user ID from the context, aborting with
// 401 when it is missing.
func mustUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// mustRequestingUser loads the authenticated user for services that check
// roles themselves.
func mustRequestingUser(c *gin.Context, userSvc portssvc.UserReaderSvc) (*domain.User, bool) {
	userID, ok := mustUserID(c)
	if !ok {
		return nil, false
	}
	user, err := userSvc.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "load requesting user")
		return nil, false
	}
	return user, true
}
