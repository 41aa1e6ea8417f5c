package handlers

import (
	"net/http"
	"strconv"

	"trading-admin-service/internal/middleware"
	"trading-admin-service/internal/services"
	"trading-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers the user-management surface: listings, the detail
// view, balance adjustments and the trade progress controls.
type AdminHandler struct {
	Profiles *services.ProfileService
}

func NewAdminHandler(profiles *services.ProfileService) *AdminHandler {
	return &AdminHandler{Profiles: profiles}
}

func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	result, err := h.Profiles.GetPlatformStats()
	respond(c, result, err)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.Profiles.ListUsers(services.ListUsersDTO{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	respond(c, result, err)
}

func (h *AdminHandler) GetUserDetails(c *gin.Context) {
	result, err := h.Profiles.GetUserDetails(c.Param("id"))
	respond(c, result, err)
}

type adjustBalanceRequest struct {
	Action string  `json:"action" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

func (h *AdminHandler) AdjustBalance(c *gin.Context) {
	var req adjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Profiles.AdjustBalance(services.AdjustBalanceDTO{
		UserId:  c.Param("id"),
		Action:  req.Action,
		Amount:  req.Amount,
		AdminId: c.GetString(middleware.ContextUserId),
	})
	respond(c, result, err)
}

type updateProfileRequest struct {
	Fields map[string]float64 `json:"fields" binding:"required"`
}

func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Profiles.UpdateProfile(c.Param("id"), c.GetString(middleware.ContextUserId), req.Fields)
	respond(c, result, err)
}

func (h *AdminHandler) ResetProgress(c *gin.Context) {
	result, err := h.Profiles.ResetProgress(c.Param("id"), c.GetString(middleware.ContextUserId))
	respond(c, result, err)
}

type togglePenaltyRequest struct {
	IsPenaltyMode bool `json:"isPenaltyMode"`
}

func (h *AdminHandler) TogglePenaltyMode(c *gin.Context) {
	var req togglePenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Profiles.TogglePenaltyMode(c.Param("id"), c.GetString(middleware.ContextUserId), req.IsPenaltyMode)
	respond(c, result, err)
}

type updateCycleRequest struct {
	Amount          float64 `json:"amount" binding:"required"`
	ClearAdditional bool    `json:"clearAdditional"`
}

func (h *AdminHandler) UpdateCycle(c *gin.Context) {
	var req updateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Profiles.UpdateCycle(services.UpdateCycleDTO{
		CycleId:         c.Param("cycleId"),
		Amount:          req.Amount,
		ClearAdditional: req.ClearAdditional,
		AdminId:         c.GetString(middleware.ContextUserId),
	})
	respond(c, result, err)
}

func (h *AdminHandler) DeleteCycle(c *gin.Context) {
	result, err := h.Profiles.DeleteCycle(c.Param("cycleId"), c.GetString(middleware.ContextUserId))
	respond(c, result, err)
}

func (h *AdminHandler) DeleteUserHistory(c *gin.Context) {
	historyType := c.Query("type")
	if historyType == "" {
		historyType = "all"
	}

	result, err := h.Profiles.DeleteUserHistory(c.Param("id"), c.GetString(middleware.ContextUserId), historyType)
	respond(c, result, err)
}
