package services

import (
	"net/http"
	"time"

	"trading-admin-service/internal/models"
	"trading-admin-service/pkg/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepositService struct {
	DB     *gorm.DB
	Helper *HelperService
}

func NewDepositService(db *gorm.DB, helper *HelperService) *DepositService {
	return &DepositService{DB: db, Helper: helper}
}

type CreateDepositDTO struct {
	UserId             string  `json:"userId"`
	Amount             float64 `json:"amount"`
	TransactionHash    string  `json:"transactionHash"`
	AdminWalletAddress string  `json:"adminWalletAddress"`
}

// CreateDeposit records a manual (user-reported) deposit in pending state.
// Provider-synced deposits never come through here; SyncService inserts
// those directly as approved.
func (s *DepositService) CreateDeposit(data CreateDepositDTO) (interface{}, error) {
	if data.Amount <= 0 {
		return common.NewErrorResponse("Invalid amount", nil, http.StatusBadRequest), nil
	}

	deposit := models.Deposit{
		ID:                 uuid.NewString(),
		UserId:             data.UserId,
		Amount:             data.Amount,
		Status:             models.DepositPending,
		AdminWalletAddress: data.AdminWalletAddress,
	}
	if data.TransactionHash != "" {
		deposit.TransactionHash = &data.TransactionHash
	}

	if err := s.DB.Create(&deposit).Error; err != nil {
		return common.NewErrorResponse("Failed to create deposit", nil, http.StatusInternalServerError), nil
	}

	return common.NewSuccessResponse(deposit, "Deposit submitted for review"), nil
}

// ApproveDeposit moves a pending deposit to approved and credits the
// profile. Approval and credit run in one transaction; approving twice is a
// 404 on the second call because the row is no longer pending.
func (s *DepositService) ApproveDeposit(depositId, adminId string) (interface{}, error) {
	var deposit models.Deposit
	err := s.DB.Where("id = ? AND status = ?", depositId, models.DepositPending).First(&deposit).Error
	if err != nil {
		return common.NewErrorResponse("Deposit not found or already processed", nil, http.StatusNotFound), nil
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Deposit{}).Where("id = ?", depositId).Updates(map[string]interface{}{
			"status":      models.DepositApproved,
			"approved_at": now,
		}).Error
		if err != nil {
			return err
		}
		return s.Helper.CreditDeposit(tx, deposit.UserId, deposit.Amount)
	})
	if err != nil {
		return common.NewErrorResponse("Failed to approve deposit", nil, http.StatusInternalServerError), nil
	}

	s.Helper.LogAudit(adminId, "APPROVE_DEPOSIT", "deposit", depositId, map[string]interface{}{
		"user_id": deposit.UserId,
		"amount":  deposit.Amount,
	})

	return common.NewSuccessResponse(nil, "Deposit approved"), nil
}

// RejectDeposit marks a pending deposit rejected. Nothing to refund; funds
// are only credited on approval.
func (s *DepositService) RejectDeposit(depositId, adminId, reason string) (interface{}, error) {
	var deposit models.Deposit
	err := s.DB.Where("id = ? AND status = ?", depositId, models.DepositPending).First(&deposit).Error
	if err != nil {
		return common.NewErrorResponse("Deposit not found or already processed", nil, http.StatusNotFound), nil
	}

	err = s.DB.Model(&models.Deposit{}).Where("id = ?", depositId).Updates(map[string]interface{}{
		"status":        models.DepositRejected,
		"reject_reason": reason,
	}).Error
	if err != nil {
		return common.NewErrorResponse("Failed to reject deposit", nil, http.StatusInternalServerError), nil
	}

	s.Helper.LogAudit(adminId, "REJECT_DEPOSIT", "deposit", depositId, map[string]interface{}{
		"user_id": deposit.UserId,
		"amount":  deposit.Amount,
		"reason":  reason,
	})

	return common.NewSuccessResponse(nil, "Deposit rejected"), nil
}

type ListDepositsDTO struct {
	Status string
	UserId string
	Source string // "provider" or "manual"
	Page   int
	Limit  int
}

func (s *DepositService) ListDeposits(data ListDepositsDTO) (common.PaginationResult, error) {
	page, limit, offset := common.NormalizePage(data.Page, data.Limit)

	query := s.DB.Model(&models.Deposit{})
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}
	if data.UserId != "" {
		query = query.Where("user_id = ?", data.UserId)
	}
	switch data.Source {
	case "provider":
		query = query.Where("transaction_hash LIKE ?", models.ProviderHashPrefix+"%")
	case "manual":
		query = query.Where("transaction_hash IS NULL OR transaction_hash NOT LIKE ?", models.ProviderHashPrefix+"%")
	}

	var total int64
	query.Count(&total)

	var list []models.Deposit
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(list, total, page, limit, "Deposits fetched successfully"), nil
}
