package services

import (
	"encoding/json"
	"log"

	"trading-admin-service/internal/models"

	"gorm.io/gorm"
)

type HelperService struct {
	DB *gorm.DB
}

func NewHelperService(db *gorm.DB) *HelperService {
	return &HelperService{DB: db}
}

// HasRole checks the user_roles table. Role checks live here, server-side,
// instead of as a database function.
func (s *HelperService) HasRole(userId, role string) bool {
	var count int64
	s.DB.Model(&models.UserRole{}).Where("user_id = ? AND role = ?", userId, role).Count(&count)
	return count > 0
}

// LogAudit appends an audit record. Audit failures are logged and swallowed;
// they never fail the action being audited.
func (s *HelperService) LogAudit(adminId, actionType, targetType, targetId string, details map[string]interface{}) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		log.Printf("Failed to marshal audit details for %s: %v", actionType, err)
		detailsJSON = []byte("{}")
	}

	entry := models.AuditLog{
		AdminId:    adminId,
		ActionType: actionType,
		TargetType: targetType,
		TargetId:   targetId,
		Details:    string(detailsJSON),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to write audit log (%s on %s %s): %v", actionType, targetType, targetId, err)
	}
}

// CreditDeposit applies a deposit credit to the profile as atomic SQL
// increments, never read-modify-write, so concurrent syncs cannot lose or
// double a credit.
func (s *HelperService) CreditDeposit(tx *gorm.DB, userId string, amount float64) error {
	return tx.Model(&models.Profile{}).Where("id = ?", userId).Updates(map[string]interface{}{
		"wallet_balance": gorm.Expr("wallet_balance + ?", amount),
		"total_deposits": gorm.Expr("total_deposits + ?", amount),
	}).Error
}

// RefundWithdrawal returns a rejected withdrawal's debited amount to the
// main wallet.
func (s *HelperService) RefundWithdrawal(tx *gorm.DB, userId string, amount float64) error {
	return tx.Model(&models.Profile{}).Where("id = ?", userId).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error
}
