package services

import (
	"math"
	"net/http"

	"trading-admin-service/internal/models"
	"trading-admin-service/pkg/common"

	"gorm.io/gorm"
)

type ProfileService struct {
	DB     *gorm.DB
	Helper *HelperService
}

func NewProfileService(db *gorm.DB, helper *HelperService) *ProfileService {
	return &ProfileService{DB: db, Helper: helper}
}

type AdjustBalanceDTO struct {
	UserId  string  `json:"userId"`
	Action  string  `json:"action"`
	Amount  float64 `json:"amount"`
	AdminId string  `json:"-"`
}

// AdjustBalance applies one of the admin quick actions. Additions are
// unbounded; deductions floor at zero. add_main also counts toward
// total_deposits, add_team toward total_referral_earnings and add_direct
// toward total_direct_earnings, mirroring how the dashboard surfaces these
// figures.
func (s *ProfileService) AdjustBalance(data AdjustBalanceDTO) (interface{}, error) {
	if data.Amount <= 0 {
		return common.NewErrorResponse("Please enter a valid amount", nil, http.StatusBadRequest), nil
	}

	var profile models.Profile
	if err := s.DB.Where("id = ?", data.UserId).First(&profile).Error; err != nil {
		return common.NewErrorResponse("User not found", nil, http.StatusNotFound), nil
	}

	deduct := func(current float64) float64 {
		return math.Max(0, current-data.Amount)
	}

	var updates map[string]interface{}
	switch data.Action {
	case "add_main":
		updates = map[string]interface{}{
			"wallet_balance": profile.WalletBalance + data.Amount,
			"total_deposits": profile.TotalDeposits + data.Amount,
		}
	case "deduct_main":
		updates = map[string]interface{}{"wallet_balance": deduct(profile.WalletBalance)}
	case "add_cycle":
		updates = map[string]interface{}{"cycle_wallet_balance": profile.CycleWalletBalance + data.Amount}
	case "deduct_cycle":
		updates = map[string]interface{}{"cycle_wallet_balance": deduct(profile.CycleWalletBalance)}
	case "add_team":
		updates = map[string]interface{}{
			"referral_balance":        profile.ReferralBalance + data.Amount,
			"total_referral_earnings": profile.TotalReferralEarnings + data.Amount,
		}
	case "deduct_team":
		updates = map[string]interface{}{"referral_balance": deduct(profile.ReferralBalance)}
	case "add_direct":
		updates = map[string]interface{}{
			"direct_earnings_balance": profile.DirectEarningsBalance + data.Amount,
			"total_direct_earnings":   profile.TotalDirectEarnings + data.Amount,
		}
	case "deduct_direct":
		updates = map[string]interface{}{"direct_earnings_balance": deduct(profile.DirectEarningsBalance)}
	case "add_deposits":
		updates = map[string]interface{}{"total_deposits": profile.TotalDeposits + data.Amount}
	case "deduct_deposits":
		updates = map[string]interface{}{"total_deposits": deduct(profile.TotalDeposits)}
	case "add_withdrawals":
		updates = map[string]interface{}{"total_withdrawals": profile.TotalWithdrawals + data.Amount}
	case "deduct_withdrawals":
		updates = map[string]interface{}{"total_withdrawals": deduct(profile.TotalWithdrawals)}
	case "add_total_direct":
		updates = map[string]interface{}{"total_direct_earnings": profile.TotalDirectEarnings + data.Amount}
	case "deduct_total_direct":
		updates = map[string]interface{}{"total_direct_earnings": deduct(profile.TotalDirectEarnings)}
	default:
		return common.NewErrorResponse("Unknown adjustment action", nil, http.StatusBadRequest), nil
	}

	if err := s.DB.Model(&models.Profile{}).Where("id = ?", data.UserId).Updates(updates).Error; err != nil {
		return common.NewErrorResponse("Failed to update user", nil, http.StatusInternalServerError), nil
	}

	s.Helper.LogAudit(data.AdminId, "ADJUST_BALANCE", "profile", data.UserId, map[string]interface{}{
		"action":  data.Action,
		"amount":  data.Amount,
		"updates": updates,
	})

	return common.NewSuccessResponse(updates, "User data updated successfully"), nil
}

// editableFields is the whitelist for direct profile edits.
var editableFields = map[string]bool{
	"wallet_balance":          true,
	"cycle_wallet_balance":    true,
	"referral_balance":        true,
	"direct_earnings_balance": true,
	"total_deposits":          true,
	"total_withdrawals":       true,
	"total_profit":            true,
	"total_referral_earnings": true,
	"total_direct_earnings":   true,
}

// UpdateProfile sets balance fields to explicit values (the dialog's edit
// form). Unknown fields are rejected rather than ignored.
func (s *ProfileService) UpdateProfile(userId, adminId string, fields map[string]float64) (interface{}, error) {
	if len(fields) == 0 {
		return common.NewErrorResponse("No fields to update", nil, http.StatusBadRequest), nil
	}

	updates := make(map[string]interface{}, len(fields))
	for field, value := range fields {
		if !editableFields[field] {
			return common.NewErrorResponse("Field cannot be edited: "+field, nil, http.StatusBadRequest), nil
		}
		updates[field] = value
	}

	result := s.DB.Model(&models.Profile{}).Where("id = ?", userId).Updates(updates)
	if result.Error != nil {
		return common.NewErrorResponse("Failed to update user", nil, http.StatusInternalServerError), nil
	}
	if result.RowsAffected == 0 {
		return common.NewErrorResponse("User not found", nil, http.StatusNotFound), nil
	}

	s.Helper.LogAudit(adminId, "EDIT_PROFILE", "profile", userId, map[string]interface{}{
		"updates": updates,
	})

	return common.NewSuccessResponse(nil, "User data updated successfully"), nil
}

// ResetProgress clears the user's cycle/chance tracking back to defaults.
func (s *ProfileService) ResetProgress(userId, adminId string) (interface{}, error) {
	err := s.DB.Model(&models.UserTradeProgress{}).Where("user_id = ?", userId).Updates(map[string]interface{}{
		"completed_cycles": "[]",
		"is_penalty_mode":  false,
		"active_chance":    nil,
		"chance_1_status":  models.ChanceAvailable,
		"chance_2_status":  models.ChanceLocked,
		"penalty_chance":   nil,
	}).Error
	if err != nil {
		return common.NewErrorResponse("Failed to reset progress", nil, http.StatusInternalServerError), nil
	}

	s.Helper.LogAudit(adminId, "RESET_PROGRESS", "profile", userId, nil)
	return common.NewSuccessResponse(nil, "User progress has been reset"), nil
}

func (s *ProfileService) TogglePenaltyMode(userId, adminId string, isPenalty bool) (interface{}, error) {
	err := s.DB.Model(&models.UserTradeProgress{}).Where("user_id = ?", userId).
		Update("is_penalty_mode", isPenalty).Error
	if err != nil {
		return common.NewErrorResponse("Failed to toggle penalty mode", nil, http.StatusInternalServerError), nil
	}

	s.Helper.LogAudit(adminId, "TOGGLE_PENALTY", "profile", userId, map[string]interface{}{
		"is_penalty_mode": isPenalty,
	})
	return common.NewSuccessResponse(nil, "Penalty mode toggled"), nil
}

type UpdateCycleDTO struct {
	CycleId         string  `json:"cycleId"`
	Amount          float64 `json:"amount"`
	ClearAdditional bool    `json:"clearAdditional"`
	AdminId         string  `json:"-"`
}

func (s *ProfileService) UpdateCycle(data UpdateCycleDTO) (interface{}, error) {
	updates := map[string]interface{}{"investment_amount": data.Amount}
	if data.ClearAdditional {
		updates["additional_investments"] = "[]"
	}

	result := s.DB.Model(&models.TradeCycle{}).Where("id = ?", data.CycleId).Updates(updates)
	if result.Error != nil {
		return common.NewErrorResponse("Failed to update cycle", nil, http.StatusInternalServerError), nil
	}
	if result.RowsAffected == 0 {
		return common.NewErrorResponse("Cycle not found", nil, http.StatusNotFound), nil
	}

	s.Helper.LogAudit(data.AdminId, "EDIT_CYCLE", "trade_cycle", data.CycleId, map[string]interface{}{
		"investment_amount": data.Amount,
		"clear_additional":  data.ClearAdditional,
	})
	return common.NewSuccessResponse(nil, "Cycle investment updated"), nil
}

func (s *ProfileService) DeleteCycle(cycleId, adminId string) (interface{}, error) {
	result := s.DB.Where("id = ?", cycleId).Delete(&models.TradeCycle{})
	if result.Error != nil {
		return common.NewErrorResponse("Failed to delete cycle", nil, http.StatusInternalServerError), nil
	}
	if result.RowsAffected == 0 {
		return common.NewErrorResponse("Cycle not found", nil, http.StatusNotFound), nil
	}

	s.Helper.LogAudit(adminId, "DELETE_CYCLE", "trade_cycle", cycleId, nil)
	return common.NewSuccessResponse(nil, "Cycle deleted"), nil
}

// DeleteUserHistory removes a user's rows for one history type, or every
// type when "all" is passed. Balances are left untouched.
func (s *ProfileService) DeleteUserHistory(userId, adminId, historyType string) (interface{}, error) {
	deleters := map[string]func(tx *gorm.DB) error{
		"deposits": func(tx *gorm.DB) error {
			return tx.Where("user_id = ?", userId).Delete(&models.Deposit{}).Error
		},
		"withdrawals": func(tx *gorm.DB) error {
			return tx.Where("user_id = ?", userId).Delete(&models.Withdrawal{}).Error
		},
		"cycles": func(tx *gorm.DB) error {
			return tx.Where("user_id = ?", userId).Delete(&models.TradeCycle{}).Error
		},
		"earnings": func(tx *gorm.DB) error {
			return tx.Where("referrer_id = ?", userId).Delete(&models.ReferralEarning{}).Error
		},
		"transfers": func(tx *gorm.DB) error {
			return tx.Where("user_id = ?", userId).Delete(&models.WalletTransfer{}).Error
		},
	}

	var selected []func(tx *gorm.DB) error
	if historyType == "all" {
		for _, fn := range deleters {
			selected = append(selected, fn)
		}
	} else if fn, ok := deleters[historyType]; ok {
		selected = append(selected, fn)
	} else {
		return common.NewErrorResponse("Unknown history type", nil, http.StatusBadRequest), nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, fn := range selected {
			if err := fn(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return common.NewErrorResponse("Failed to delete history", nil, http.StatusInternalServerError), nil
	}

	s.Helper.LogAudit(adminId, "DELETE_HISTORY", "profile", userId, map[string]interface{}{
		"type": historyType,
	})
	return common.NewSuccessResponse(nil, "History deleted"), nil
}

type ListUsersDTO struct {
	Search string
	Page   int
	Limit  int
}

func (s *ProfileService) ListUsers(data ListUsersDTO) (common.PaginationResult, error) {
	page, limit, offset := common.NormalizePage(data.Page, data.Limit)

	query := s.DB.Model(&models.Profile{})
	if data.Search != "" {
		like := "%" + data.Search + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ? OR referral_code LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.Profile
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(users, total, page, limit, "Users fetched successfully"), nil
}

// GetPlatformStats aggregates the dashboard card figures.
func (s *ProfileService) GetPlatformStats() (interface{}, error) {
	var userCount int64
	s.DB.Model(&models.Profile{}).Count(&userCount)

	var depositTotal, withdrawalTotal float64
	s.DB.Model(&models.Deposit{}).Where("status = ?", models.DepositApproved).
		Select("COALESCE(SUM(amount), 0)").Scan(&depositTotal)
	s.DB.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&withdrawalTotal)

	var pendingDeposits, pendingWithdrawals int64
	s.DB.Model(&models.Deposit{}).Where("status = ?", models.DepositPending).Count(&pendingDeposits)
	s.DB.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalPending).Count(&pendingWithdrawals)

	return common.NewSuccessResponse(map[string]interface{}{
		"total_users":         userCount,
		"total_deposits":      depositTotal,
		"total_withdrawals":   withdrawalTotal,
		"pending_deposits":    pendingDeposits,
		"pending_withdrawals": pendingWithdrawals,
	}, "Successful"), nil
}

type ReferralLink struct {
	models.Referral
	Profile models.Profile `json:"profile"`
}

// GetUserDetails assembles the enhanced detail view: the profile, trade
// progress, recent ledger history, and the direct upline/downline of the
// referral network.
func (s *ProfileService) GetUserDetails(userId string) (interface{}, error) {
	var profile models.Profile
	if err := s.DB.Where("id = ?", userId).First(&profile).Error; err != nil {
		return common.NewErrorResponse("User not found", nil, http.StatusNotFound), nil
	}

	var progress models.UserTradeProgress
	hasProgress := s.DB.Where("user_id = ?", userId).First(&progress).Error == nil

	var deposits []models.Deposit
	s.DB.Where("user_id = ?", userId).Order("created_at DESC").Limit(20).Find(&deposits)

	var withdrawals []models.Withdrawal
	s.DB.Where("user_id = ?", userId).Order("created_at DESC").Limit(20).Find(&withdrawals)

	var cycles []models.TradeCycle
	s.DB.Where("user_id = ?", userId).Order("created_at DESC").Find(&cycles)

	var earnings []models.ReferralEarning
	s.DB.Where("referrer_id = ?", userId).Order("created_at DESC").Limit(20).Find(&earnings)

	var transfers []models.WalletTransfer
	s.DB.Where("user_id = ?", userId).Order("created_at DESC").Limit(20).Find(&transfers)

	upline := s.referralLinks("referred_id", userId, "referrer_id")
	downline := s.referralLinks("referrer_id", userId, "referred_id")

	details := map[string]interface{}{
		"profile":     profile,
		"deposits":    deposits,
		"withdrawals": withdrawals,
		"cycles":      cycles,
		"earnings":    earnings,
		"transfers":   transfers,
		"upline":      upline,
		"downline":    downline,
	}
	if hasProgress {
		details["progress"] = progress
	}

	return common.NewSuccessResponse(details, "Successful"), nil
}

// referralLinks loads referral edges touching the user on filterColumn and
// attaches the profile on the other end.
func (s *ProfileService) referralLinks(filterColumn, userId, otherColumn string) []ReferralLink {
	var referrals []models.Referral
	s.DB.Where(filterColumn+" = ?", userId).Order("level ASC").Find(&referrals)

	links := make([]ReferralLink, 0, len(referrals))
	for _, r := range referrals {
		otherId := r.ReferrerId
		if otherColumn == "referred_id" {
			otherId = r.ReferredId
		}

		var other models.Profile
		if err := s.DB.Where("id = ?", otherId).First(&other).Error; err == nil {
			links = append(links, ReferralLink{Referral: r, Profile: other})
		}
	}
	return links
}
