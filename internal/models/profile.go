package models

import (
	"time"
)

type Profile struct {
	ID                    string    `gorm:"primaryKey;size:36" json:"id"`
	Email                 string    `gorm:"column:email;size:255;not null;index" json:"email"`
	FullName              string    `gorm:"column:full_name;size:255" json:"full_name"`
	ReferralCode          string    `gorm:"column:referral_code;size:20;index" json:"referral_code"`
	ReferredBy            *string   `gorm:"column:referred_by;size:36" json:"referred_by"`
	WalletBalance         float64   `gorm:"column:wallet_balance;type:decimal(20,2);default:0.00" json:"wallet_balance"`
	CycleWalletBalance    float64   `gorm:"column:cycle_wallet_balance;type:decimal(20,2);default:0.00" json:"cycle_wallet_balance"`
	ReferralBalance       float64   `gorm:"column:referral_balance;type:decimal(20,2);default:0.00" json:"referral_balance"`
	DirectEarningsBalance float64   `gorm:"column:direct_earnings_balance;type:decimal(20,2);default:0.00" json:"direct_earnings_balance"`
	TotalDeposits         float64   `gorm:"column:total_deposits;type:decimal(20,2);default:0.00" json:"total_deposits"`
	TotalWithdrawals      float64   `gorm:"column:total_withdrawals;type:decimal(20,2);default:0.00" json:"total_withdrawals"`
	TotalProfit           float64   `gorm:"column:total_profit;type:decimal(20,2);default:0.00" json:"total_profit"`
	TotalReferralEarnings float64   `gorm:"column:total_referral_earnings;type:decimal(20,2);default:0.00" json:"total_referral_earnings"`
	TotalDirectEarnings   float64   `gorm:"column:total_direct_earnings;type:decimal(20,2);default:0.00" json:"total_direct_earnings"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
