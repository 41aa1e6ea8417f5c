package handlers

import (
	"log"
	"net/http"

	"trading-admin-service/internal/middleware"
	"trading-admin-service/internal/services"
	"trading-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// WalletHandler is the user-facing provider wallet surface: provisioning,
// lookup with auto-sync, transaction listing and withdrawal requests.
type WalletHandler struct {
	Provider    *services.MyPayVerseService
	Sync        *services.SyncService
	Withdrawals *services.WithdrawalService
}

func NewWalletHandler(provider *services.MyPayVerseService, sync *services.SyncService, withdrawals *services.WithdrawalService) *WalletHandler {
	return &WalletHandler{Provider: provider, Sync: sync, Withdrawals: withdrawals}
}

func (h *WalletHandler) CreateWallet(c *gin.Context) {
	if !h.Provider.Configured() {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Payment service not configured", nil, http.StatusInternalServerError))
		return
	}

	userId := c.GetString(middleware.ContextUserId)
	wallet, err := h.Provider.CreateWallet(userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(wallet.Raw, "Wallet created successfully"))
}

// GetWallet returns the user's provider wallet and opportunistically ingests
// any deposits the provider reports that the ledger has not seen. A sync
// failure is logged but never hides the wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	if !h.Provider.Configured() {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Payment service not configured", nil, http.StatusInternalServerError))
		return
	}

	userId := c.GetString(middleware.ContextUserId)
	wallet, err := h.Provider.GetWallet(userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	if wallet == nil {
		c.JSON(http.StatusNotFound,
			common.NewErrorResponse("Wallet not found", nil, http.StatusNotFound))
		return
	}

	response := map[string]interface{}{"wallet": wallet.Raw}
	if wallet.Address != "" {
		syncResult, err := h.Sync.SyncUser(userId, wallet.Address)
		if err != nil {
			log.Printf("Auto-sync failed for user %s: %v", userId, err)
		} else if syncResult.NewDeposits > 0 {
			response["sync"] = syncResult
		}
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(response, "Successful"))
}

func (h *WalletHandler) GetTransactions(c *gin.Context) {
	walletAddress := c.Query("walletAddress")
	if walletAddress == "" {
		c.JSON(http.StatusBadRequest,
			common.NewErrorResponse("walletAddress is required", nil, http.StatusBadRequest))
		return
	}

	transactions, err := h.Provider.GetTransactions(walletAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(transactions, "Transactions fetched successfully"))
}

type withdrawRequest struct {
	Amount        float64 `json:"amount" binding:"required"`
	WalletAddress string  `json:"walletAddress" binding:"required"`
}

// RequestWithdrawal creates a pending withdrawal for the caller; settlement
// happens later through the admin surface.
func (h *WalletHandler) RequestWithdrawal(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Withdrawals.RequestWithdrawal(services.RequestWithdrawalDTO{
		UserId:        c.GetString(middleware.ContextUserId),
		Amount:        req.Amount,
		WalletAddress: req.WalletAddress,
	})
	respond(c, result, err)
}
