package models

import (
	"time"
)

// WalletTransfer records a user-initiated move between the profile's internal
// wallets (main, cycle, team, direct).
type WalletTransfer struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserId     string    `gorm:"column:user_id;size:36;not null;index:idx_transfer_user" json:"user_id"`
	FromWallet string    `gorm:"column:from_wallet;size:20;not null" json:"from_wallet"`
	ToWallet   string    `gorm:"column:to_wallet;size:20;not null" json:"to_wallet"`
	Amount     float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WalletTransfer) TableName() string {
	return "wallet_transfers"
}
