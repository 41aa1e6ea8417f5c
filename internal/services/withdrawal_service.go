package services

import (
	"net/http"
	"time"

	"trading-admin-service/internal/models"
	"trading-admin-service/pkg/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WithdrawalTaxRate is the platform-wide withholding applied to every
// withdrawal. Not configurable per request.
const WithdrawalTaxRate = 0.15

type WithdrawalService struct {
	DB       *gorm.DB
	Helper   *HelperService
	Provider *MyPayVerseService
}

func NewWithdrawalService(db *gorm.DB, helper *HelperService, provider *MyPayVerseService) *WithdrawalService {
	return &WithdrawalService{DB: db, Helper: helper, Provider: provider}
}

// TaxBreakdown is the settlement split for one withdrawal. Net is what the
// user receives (the stored amount), Original the pre-tax figure, and
// Original == Net + Tax always holds exactly.
type TaxBreakdown struct {
	Net      float64 `json:"net_amount"`
	Original float64 `json:"original_amount"`
	Tax      float64 `json:"tax_amount"`
}

// ComputeTaxBreakdown derives the gross amount from a stored net amount:
// original = net / (1 - rate). Done in decimal so $85.00 nets out to exactly
// $100.00 gross / $15.00 tax.
func ComputeTaxBreakdown(netAmount float64) TaxBreakdown {
	net := decimal.NewFromFloat(netAmount)
	rate := decimal.NewFromFloat(WithdrawalTaxRate)

	original := net.Div(decimal.NewFromInt(1).Sub(rate)).Round(2)
	tax := original.Sub(net)

	originalF, _ := original.Float64()
	taxF, _ := tax.Float64()
	return TaxBreakdown{Net: netAmount, Original: originalF, Tax: taxF}
}

type RequestWithdrawalDTO struct {
	UserId        string  `json:"userId"`
	Amount        float64 `json:"amount"`
	WalletAddress string  `json:"walletAddress"`
}

// RequestWithdrawal creates a pending withdrawal. The gross amount is
// debited from the main wallet immediately; the stored row carries the net
// (post-tax) amount, which is all settlement will ever send.
func (s *WithdrawalService) RequestWithdrawal(data RequestWithdrawalDTO) (interface{}, error) {
	if data.Amount <= 0 {
		return common.NewErrorResponse("Invalid amount", nil, http.StatusBadRequest), nil
	}
	if data.WalletAddress == "" {
		return common.NewErrorResponse("Wallet address required", nil, http.StatusBadRequest), nil
	}

	gross := decimal.NewFromFloat(data.Amount)
	net := gross.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(WithdrawalTaxRate))).Round(2)
	netF, _ := net.Float64()

	var withdrawal models.Withdrawal
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("id = ?", data.UserId).First(&profile).Error; err != nil {
			return err
		}
		if profile.WalletBalance < data.Amount {
			return gorm.ErrInvalidData
		}

		if err := tx.Model(&models.Profile{}).Where("id = ?", data.UserId).
			UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", data.Amount)).Error; err != nil {
			return err
		}

		withdrawal = models.Withdrawal{
			ID:            uuid.NewString(),
			UserId:        data.UserId,
			Amount:        netF,
			WalletAddress: data.WalletAddress,
			Status:        models.WithdrawalPending,
		}
		return tx.Create(&withdrawal).Error
	})
	if err == gorm.ErrInvalidData {
		return common.NewErrorResponse("Insufficient balance for this withdrawal", nil, http.StatusBadRequest), nil
	}
	if err != nil {
		return common.NewErrorResponse("Failed to create withdrawal request", nil, http.StatusInternalServerError), nil
	}

	return common.NewSuccessResponse(withdrawal, "Withdrawal request submitted"), nil
}

// ProcessWithdrawal settles a pending withdrawal: computes the tax split,
// instructs the provider to transfer exactly the net amount, and only on
// provider success transitions the row to paid and appends the audit record.
// Any provider failure leaves the row untouched and pending.
func (s *WithdrawalService) ProcessWithdrawal(withdrawalId, adminId string) (interface{}, error) {
	var withdrawal models.Withdrawal
	err := s.DB.Where("id = ? AND status = ?", withdrawalId, models.WithdrawalPending).First(&withdrawal).Error
	if err != nil {
		return common.NewErrorResponse("Withdrawal not found or already processed", nil, http.StatusNotFound), nil
	}

	breakdown := ComputeTaxBreakdown(withdrawal.Amount)

	receipt, err := s.Provider.WithdrawAsset(withdrawal.UserId, breakdown.Net, withdrawal.WalletAddress)
	if err != nil {
		if upstream, ok := err.(*UpstreamError); ok {
			return common.NewErrorResponse(upstream.Message, nil, http.StatusInternalServerError), nil
		}
		return common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError), nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.WithdrawalPaid,
		"processed_at": now,
		"processed_by": adminId,
	}
	if receipt.TransactionHash != "" {
		updates["transaction_hash"] = receipt.TransactionHash
	}
	if err := s.DB.Model(&models.Withdrawal{}).Where("id = ?", withdrawalId).Updates(updates).Error; err != nil {
		return common.NewErrorResponse("Transfer sent but status update failed", nil, http.StatusInternalServerError), nil
	}

	s.Helper.LogAudit(adminId, "APPROVE_WITHDRAWAL_MYPAYVERSE", "withdrawal", withdrawalId, map[string]interface{}{
		"user_id":          withdrawal.UserId,
		"original_amount":  breakdown.Original,
		"tax_amount":       breakdown.Tax,
		"net_amount":       breakdown.Net,
		"tax_rate":         "15%",
		"wallet_address":   withdrawal.WalletAddress,
		"transaction_hash": receipt.TransactionHash,
		"mpv_response":     receipt.Raw,
	})

	return common.NewSuccessResponse(map[string]interface{}{
		"transaction_hash": receipt.TransactionHash,
		"net_amount":       breakdown.Net,
		"original_amount":  breakdown.Original,
		"tax_amount":       breakdown.Tax,
	}, "Withdrawal processed and sent via MyPayVerse"), nil
}

// RejectWithdrawal marks a pending withdrawal rejected and refunds the gross
// amount, since the gross was debited at request time.
func (s *WithdrawalService) RejectWithdrawal(withdrawalId, adminId, reason string) (interface{}, error) {
	var withdrawal models.Withdrawal
	err := s.DB.Where("id = ? AND status = ?", withdrawalId, models.WithdrawalPending).First(&withdrawal).Error
	if err != nil {
		return common.NewErrorResponse("Withdrawal not found or already processed", nil, http.StatusNotFound), nil
	}

	breakdown := ComputeTaxBreakdown(withdrawal.Amount)

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Withdrawal{}).Where("id = ?", withdrawalId).Updates(map[string]interface{}{
			"status":        models.WithdrawalRejected,
			"reject_reason": reason,
			"processed_at":  now,
			"processed_by":  adminId,
		}).Error
		if err != nil {
			return err
		}
		return s.Helper.RefundWithdrawal(tx, withdrawal.UserId, breakdown.Original)
	})
	if err != nil {
		return common.NewErrorResponse("Failed to reject withdrawal", nil, http.StatusInternalServerError), nil
	}

	s.Helper.LogAudit(adminId, "REJECT_WITHDRAWAL", "withdrawal", withdrawalId, map[string]interface{}{
		"user_id":         withdrawal.UserId,
		"refunded_amount": breakdown.Original,
		"reason":          reason,
	})

	return common.NewSuccessResponse(nil, "Withdrawal rejected and refunded"), nil
}

type ListWithdrawalsDTO struct {
	Status string
	UserId string
	Page   int
	Limit  int
}

func (s *WithdrawalService) ListWithdrawals(data ListWithdrawalsDTO) (common.PaginationResult, error) {
	page, limit, offset := common.NormalizePage(data.Page, data.Limit)

	query := s.DB.Model(&models.Withdrawal{})
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}
	if data.UserId != "" {
		query = query.Where("user_id = ?", data.UserId)
	}

	var total int64
	query.Count(&total)

	var list []models.Withdrawal
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var totalAmount float64
	sumQuery := s.DB.Model(&models.Withdrawal{})
	if data.Status != "" {
		sumQuery = sumQuery.Where("status = ?", data.Status)
	}
	sumQuery.Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount)

	return common.PaginateResponse(map[string]interface{}{
		"data":        list,
		"totalAmount": totalAmount,
	}, total, page, limit, "Withdrawal requests fetched successfully"), nil
}
