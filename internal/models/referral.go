package models

import (
	"time"
)

// Referral links one user to another in the multi-level network. Level 1 is a
// direct referral; deeper levels are materialized by the signup flow so the
// admin views don't have to walk the tree.
type Referral struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferrerId string    `gorm:"column:referrer_id;size:36;not null;index:idx_referral_referrer" json:"referrer_id"`
	ReferredId string    `gorm:"column:referred_id;size:36;not null;index:idx_referral_referred" json:"referred_id"`
	Level      int       `gorm:"column:level;default:1" json:"level"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}
