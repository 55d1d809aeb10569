package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
)

// walletHandler handles HTTP requests for member wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
	userService   portssvc.UserSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade, us portssvc.UserSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws, userService: us}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade, userService portssvc.UserSvcFacade) {
	h := newWalletHandler(walletService, userService)

	wallets := rg.Group("/wallets")
	{
		wallets.GET("/:userID/balance", h.getBalance)
		wallets.GET("/:userID/transactions", h.listTransactions)
		wallets.POST("/:userID/adjust", middleware.RequireAdmin(), h.adminUpdateWallet)
		wallets.POST("/charge", h.chargeWallet)
	}
}

// getBalance godoc
// @Summary Get a user's wallet balance
// @Tags wallets
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.WalletBalanceResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /wallets/{userID}/balance [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	userID := c.Param("userID")
	balance, err := h.walletService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "get wallet balance")
		return
	}
	c.JSON(http.StatusOK, dto.WalletBalanceResponse{UserID: userID, Balance: balance})
}

// listTransactions godoc
// @Summary List a user's wallet transactions
// @Tags wallets
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.WalletTransactionResponse
// @Security BearerAuth
// @Router /wallets/{userID}/transactions [get]
func (h *walletHandler) listTransactions(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.walletService.ListTransactions(c.Request.Context(), c.Param("userID"), params)
	if err != nil {
		respondError(c, err, "list wallet transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletTransactionResponses(txns))
}

// adminUpdateWallet godoc
// @Summary Manually adjust a user's wallet
// @Description Applies an administrator adjustment; positive credits, negative debits
// @Tags wallets
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param adjustment body dto.AdminWalletUpdateRequest true "Adjustment details"
// @Success 200 {object} dto.WalletTransactionResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 409 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /wallets/{userID}/adjust [post]
func (h *walletHandler) adminUpdateWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AdminWalletUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdminUpdateWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUser, ok := mustRequestingUser(c, h.userService)
	if !ok {
		return
	}

	txn, err := h.walletService.AdminUpdateWallet(c.Request.Context(), c.Param("userID"), req, requestingUser)
	if err != nil {
		respondError(c, err, "adjust wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletTransactionResponse(*txn))
}

// chargeWallet godoc
// @Summary Recharge the caller's own wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param recharge body dto.ChargeWalletRequest true "Recharge amount"
// @Success 200 {object} dto.WalletTransactionResponse
// @Security BearerAuth
// @Router /wallets/charge [post]
func (h *walletHandler) chargeWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChargeWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChargeWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	txn, err := h.walletService.ChargeWallet(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "charge wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletTransactionResponse(*txn))
}
