package models

import (
	"time"
)

type ReferralEarning struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	ReferrerId string    `gorm:"column:referrer_id;size:36;not null;index" json:"referrer_id"`
	ReferredId string    `gorm:"column:referred_id;size:36;not null" json:"referred_id"`
	Amount     float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Level      int       `gorm:"column:level;default:1" json:"level"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ReferralEarning) TableName() string {
	return "referral_earnings_history"
}
