package services

import (
	"net/http"
	"testing"

	"trading-admin-service/internal/models"
	"trading-admin-service/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestAdjustBalanceAddMainBumpsTotalDeposits(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "alice@example.com", 100)

	svc := NewProfileService(db, NewHelperService(db))
	result, err := svc.AdjustBalance(AdjustBalanceDTO{
		UserId:  profile.ID,
		Action:  "add_main",
		Amount:  50,
		AdminId: "admin-1",
	})
	assert.NoError(t, err)
	assert.IsType(t, common.SuccessResponse{}, result)

	var updated models.Profile
	db.First(&updated, "id = ?", profile.ID)
	assert.Equal(t, 150.0, updated.WalletBalance)
	assert.Equal(t, 50.0, updated.TotalDeposits)
	assert.Equal(t, int64(1), auditCount(db))
}

func TestAdjustBalanceDeductClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "alice@example.com", 30)

	svc := NewProfileService(db, NewHelperService(db))
	_, err := svc.AdjustBalance(AdjustBalanceDTO{
		UserId:  profile.ID,
		Action:  "deduct_main",
		Amount:  50,
		AdminId: "admin-1",
	})
	assert.NoError(t, err)

	var updated models.Profile
	db.First(&updated, "id = ?", profile.ID)
	assert.Equal(t, 0.0, updated.WalletBalance)
}

func TestAdjustBalanceTeamAndDirectSideEffects(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "alice@example.com", 0)

	svc := NewProfileService(db, NewHelperService(db))
	svc.AdjustBalance(AdjustBalanceDTO{UserId: profile.ID, Action: "add_team", Amount: 20, AdminId: "admin-1"})
	svc.AdjustBalance(AdjustBalanceDTO{UserId: profile.ID, Action: "add_direct", Amount: 10, AdminId: "admin-1"})

	var updated models.Profile
	db.First(&updated, "id = ?", profile.ID)
	assert.Equal(t, 20.0, updated.ReferralBalance)
	assert.Equal(t, 20.0, updated.TotalReferralEarnings)
	assert.Equal(t, 10.0, updated.DirectEarningsBalance)
	assert.Equal(t, 10.0, updated.TotalDirectEarnings)
	// Main wallet untouched by team/direct actions.
	assert.Equal(t, 0.0, updated.WalletBalance)
}

func TestAdjustBalanceRejectsUnknownAction(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "alice@example.com", 0)

	svc := NewProfileService(db, NewHelperService(db))
	result, err := svc.AdjustBalance(AdjustBalanceDTO{
		UserId:  profile.ID,
		Action:  "add_everything",
		Amount:  1,
		AdminId: "admin-1",
	})
	assert.NoError(t, err)

	errRes, ok := result.(common.ErrorResponse)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errRes.Status)
	assert.Equal(t, int64(0), auditCount(db))
}

func TestUpdateProfileRejectsUnknownField(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "alice@example.com", 0)

	svc := NewProfileService(db, NewHelperService(db))
	result, err := svc.UpdateProfile(profile.ID, "admin-1", map[string]float64{"email": 1})
	assert.NoError(t, err)

	errRes, ok := result.(common.ErrorResponse)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errRes.Status)

	result, err = svc.UpdateProfile(profile.ID, "admin-1", map[string]float64{"total_profit": 123.45})
	assert.NoError(t, err)
	assert.IsType(t, common.SuccessResponse{}, result)

	var updated models.Profile
	db.First(&updated, "id = ?", profile.ID)
	assert.Equal(t, 123.45, updated.TotalProfit)
}

func TestResetProgress(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "alice@example.com", 0)

	active := "chance_1"
	penalty := "penalty_1"
	db.Create(&models.UserTradeProgress{
		UserId:          profile.ID,
		CompletedCycles: `[1,2,3]`,
		IsPenaltyMode:   true,
		ActiveChance:    &active,
		Chance1Status:   models.ChanceUsed,
		Chance2Status:   models.ChanceAvailable,
		PenaltyChance:   &penalty,
	})

	svc := NewProfileService(db, NewHelperService(db))
	result, err := svc.ResetProgress(profile.ID, "admin-1")
	assert.NoError(t, err)
	assert.IsType(t, common.SuccessResponse{}, result)

	var progress models.UserTradeProgress
	db.Where("user_id = ?", profile.ID).First(&progress)
	assert.Equal(t, "[]", progress.CompletedCycles)
	assert.False(t, progress.IsPenaltyMode)
	assert.Nil(t, progress.ActiveChance)
	assert.Equal(t, models.ChanceAvailable, progress.Chance1Status)
	assert.Equal(t, models.ChanceLocked, progress.Chance2Status)
	assert.Nil(t, progress.PenaltyChance)
}

func TestDeleteUserHistoryAll(t *testing.T) {
	db := newTestDB(t)
	alice := seedProfile(t, db, "alice@example.com", 0)
	bob := seedProfile(t, db, "bob@example.com", 0)

	db.Create(&models.Deposit{ID: "d-1", UserId: alice.ID, Amount: 10})
	db.Create(&models.Withdrawal{ID: "w-1", UserId: alice.ID, Amount: 10, WalletAddress: "0x1"})
	db.Create(&models.TradeCycle{ID: "c-1", UserId: alice.ID, CycleNumber: 1, InvestmentAmount: 100})
	db.Create(&models.ReferralEarning{ID: "e-1", ReferrerId: alice.ID, ReferredId: bob.ID, Amount: 5})
	db.Create(&models.WalletTransfer{ID: "t-1", UserId: alice.ID, FromWallet: "main", ToWallet: "cycle", Amount: 7})
	db.Create(&models.Deposit{ID: "d-2", UserId: bob.ID, Amount: 99})

	svc := NewProfileService(db, NewHelperService(db))
	result, err := svc.DeleteUserHistory(alice.ID, "admin-1", "all")
	assert.NoError(t, err)
	assert.IsType(t, common.SuccessResponse{}, result)

	var count int64
	db.Model(&models.Deposit{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.Withdrawal{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.TradeCycle{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.ReferralEarning{}).Where("referrer_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Other users' rows survive.
	db.Model(&models.Deposit{}).Where("user_id = ?", bob.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetUserDetailsIncludesReferralNetwork(t *testing.T) {
	db := newTestDB(t)
	alice := seedProfile(t, db, "alice@example.com", 0)
	bob := seedProfile(t, db, "bob@example.com", 0)
	carol := seedProfile(t, db, "carol@example.com", 0)

	// bob referred alice; alice referred carol.
	db.Create(&models.Referral{ReferrerId: bob.ID, ReferredId: alice.ID, Level: 1})
	db.Create(&models.Referral{ReferrerId: alice.ID, ReferredId: carol.ID, Level: 1})

	svc := NewProfileService(db, NewHelperService(db))
	result, err := svc.GetUserDetails(alice.ID)
	assert.NoError(t, err)

	details := result.(common.SuccessResponse).Data.(map[string]interface{})
	upline := details["upline"].([]ReferralLink)
	downline := details["downline"].([]ReferralLink)

	assert.Len(t, upline, 1)
	assert.Equal(t, "bob@example.com", upline[0].Profile.Email)
	assert.Len(t, downline, 1)
	assert.Equal(t, "carol@example.com", downline[0].Profile.Email)
}

func TestGetPlatformStats(t *testing.T) {
	db := newTestDB(t)
	alice := seedProfile(t, db, "alice@example.com", 0)
	seedProfile(t, db, "bob@example.com", 0)

	db.Create(&models.Deposit{ID: "d-1", UserId: alice.ID, Amount: 100, Status: models.DepositApproved})
	db.Create(&models.Deposit{ID: "d-2", UserId: alice.ID, Amount: 50, Status: models.DepositPending})
	db.Create(&models.Withdrawal{ID: "w-1", UserId: alice.ID, Amount: 85, WalletAddress: "0x1", Status: models.WithdrawalPaid})

	svc := NewProfileService(db, NewHelperService(db))
	result, err := svc.GetPlatformStats()
	assert.NoError(t, err)

	stats := result.(common.SuccessResponse).Data.(map[string]interface{})
	assert.Equal(t, int64(2), stats["total_users"])
	assert.Equal(t, 100.0, stats["total_deposits"])
	assert.Equal(t, 85.0, stats["total_withdrawals"])
	assert.Equal(t, int64(1), stats["pending_deposits"])
	assert.Equal(t, int64(0), stats["pending_withdrawals"])
}

func TestListUsersSearch(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, "alice@example.com", 0)
	seedProfile(t, db, "bob@example.com", 0)

	svc := NewProfileService(db, NewHelperService(db))
	result, err := svc.ListUsers(ListUsersDTO{Search: "alice"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Count)

	all, err := svc.ListUsers(ListUsersDTO{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), all.Count)
}
