package models

import (
	"time"
)

// Deposit statuses. A provider-synced deposit is created directly in
// DepositApproved; manual deposits start pending and are moved by an admin.
const (
	DepositPending  = "pending"
	DepositApproved = "approved"
	DepositRejected = "rejected"
)

// ProviderHashPrefix marks transaction hashes that originate from the
// custodial provider rather than an on-chain hash supplied by the user.
const ProviderHashPrefix = "mypayverse_"

type Deposit struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	UserId             string     `gorm:"column:user_id;size:36;not null;index:idx_deposit_user" json:"user_id"`
	Amount             float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Status             string     `gorm:"column:status;size:20;default:pending" json:"status"`
	AdminWalletAddress string     `gorm:"column:admin_wallet_address;size:255" json:"admin_wallet_address"`
	TransactionHash    *string    `gorm:"column:transaction_hash;size:255;uniqueIndex" json:"transaction_hash"`
	RejectReason       string     `gorm:"column:reject_reason;type:text" json:"reject_reason"`
	ApprovedAt         *time.Time `gorm:"column:approved_at" json:"approved_at"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Deposit) TableName() string {
	return "deposits"
}
