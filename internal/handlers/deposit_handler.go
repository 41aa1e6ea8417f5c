package handlers

import (
	"net/http"
	"strconv"

	"trading-admin-service/internal/middleware"
	"trading-admin-service/internal/services"
	"trading-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type DepositHandler struct {
	Deposits *services.DepositService
}

func NewDepositHandler(deposits *services.DepositService) *DepositHandler {
	return &DepositHandler{Deposits: deposits}
}

type createDepositRequest struct {
	Amount             float64 `json:"amount" binding:"required"`
	TransactionHash    string  `json:"transactionHash"`
	AdminWalletAddress string  `json:"adminWalletAddress"`
}

func (h *DepositHandler) CreateDeposit(c *gin.Context) {
	var req createDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Deposits.CreateDeposit(services.CreateDepositDTO{
		UserId:             c.GetString(middleware.ContextUserId),
		Amount:             req.Amount,
		TransactionHash:    req.TransactionHash,
		AdminWalletAddress: req.AdminWalletAddress,
	})
	respond(c, result, err)
}

func (h *DepositHandler) ApproveDeposit(c *gin.Context) {
	result, err := h.Deposits.ApproveDeposit(c.Param("id"), c.GetString(middleware.ContextUserId))
	respond(c, result, err)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *DepositHandler) RejectDeposit(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Deposits.RejectDeposit(c.Param("id"), c.GetString(middleware.ContextUserId), req.Reason)
	respond(c, result, err)
}

func (h *DepositHandler) ListDeposits(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.Deposits.ListDeposits(services.ListDepositsDTO{
		Status: c.Query("status"),
		UserId: c.Query("userId"),
		Source: c.Query("source"),
		Page:   page,
		Limit:  limit,
	})
	respond(c, result, err)
}
