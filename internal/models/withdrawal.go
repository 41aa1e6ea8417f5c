package models

import (
	"time"
)

// Withdrawal statuses. Amount always holds the net (post-tax) figure; the
// gross amount is derived at settlement time, never stored.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalPaid     = "paid"
	WithdrawalRejected = "rejected"
)

type Withdrawal struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	UserId          string     `gorm:"column:user_id;size:36;not null;index:idx_withdrawal_user" json:"user_id"`
	Amount          float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	WalletAddress   string     `gorm:"column:wallet_address;size:255;not null" json:"wallet_address"`
	Status          string     `gorm:"column:status;size:20;default:pending" json:"status"`
	TransactionHash *string    `gorm:"column:transaction_hash;size:255" json:"transaction_hash"`
	RejectReason    string     `gorm:"column:reject_reason;type:text" json:"reject_reason"`
	ProcessedAt     *time.Time `gorm:"column:processed_at" json:"processed_at"`
	ProcessedBy     string     `gorm:"column:processed_by;size:36" json:"processed_by"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
