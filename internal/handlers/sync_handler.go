package handlers

import (
	"log"
	"net/http"

	"trading-admin-service/internal/services"
	"trading-admin-service/internal/worker"
	"trading-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// SyncHandler exposes the reconciliation jobs. Each runs synchronously and
// returns the summary; the enqueue variants hand the job to the worker and
// return immediately.
type SyncHandler struct {
	Sync        *services.SyncService
	AsynqClient *asynq.Client
}

func NewSyncHandler(sync *services.SyncService, asynqClient *asynq.Client) *SyncHandler {
	return &SyncHandler{Sync: sync, AsynqClient: asynqClient}
}

func (h *SyncHandler) SyncAll(c *gin.Context) {
	result, err := h.Sync.SyncAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(result, "Deposit sync complete"))
}

func (h *SyncHandler) Backfill(c *gin.Context) {
	result, err := h.Sync.Backfill()
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(result, "Wallet address backfill complete"))
}

func (h *SyncHandler) EnqueueSyncAll(c *gin.Context) {
	if h.AsynqClient == nil {
		c.JSON(http.StatusServiceUnavailable,
			common.NewErrorResponse("Background queue not available", nil, http.StatusServiceUnavailable))
		return
	}

	info, err := h.AsynqClient.Enqueue(worker.NewDepositSyncTask())
	if err != nil {
		log.Printf("Failed to enqueue deposit sync: %v", err)
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Failed to enqueue sync", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusAccepted, common.NewSuccessResponse(gin.H{"taskId": info.ID}, "Deposit sync enqueued"))
}

func (h *SyncHandler) EnqueueBackfill(c *gin.Context) {
	if h.AsynqClient == nil {
		c.JSON(http.StatusServiceUnavailable,
			common.NewErrorResponse("Background queue not available", nil, http.StatusServiceUnavailable))
		return
	}

	info, err := h.AsynqClient.Enqueue(worker.NewWalletBackfillTask(), asynq.Queue("low"))
	if err != nil {
		log.Printf("Failed to enqueue backfill: %v", err)
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Failed to enqueue backfill", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusAccepted, common.NewSuccessResponse(gin.H{"taskId": info.ID}, "Backfill enqueued"))
}
