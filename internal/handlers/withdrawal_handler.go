package handlers

import (
	"net/http"
	"strconv"

	"trading-admin-service/internal/middleware"
	"trading-admin-service/internal/services"
	"trading-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	Withdrawals *services.WithdrawalService
}

func NewWithdrawalHandler(withdrawals *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{Withdrawals: withdrawals}
}

// ProcessWithdrawal settles a pending withdrawal via the provider.
func (h *WithdrawalHandler) ProcessWithdrawal(c *gin.Context) {
	result, err := h.Withdrawals.ProcessWithdrawal(c.Param("id"), c.GetString(middleware.ContextUserId))
	respond(c, result, err)
}

func (h *WithdrawalHandler) RejectWithdrawal(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Withdrawals.RejectWithdrawal(c.Param("id"), c.GetString(middleware.ContextUserId), req.Reason)
	respond(c, result, err)
}

func (h *WithdrawalHandler) ListWithdrawals(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.Withdrawals.ListWithdrawals(services.ListWithdrawalsDTO{
		Status: c.Query("status"),
		UserId: c.Query("userId"),
		Page:   page,
		Limit:  limit,
	})
	respond(c, result, err)
}
