package models

import (
	"time"
)

// Chance slot states used by the trading cycle UI.
const (
	ChanceAvailable = "available"
	ChanceLocked    = "locked"
	ChanceUsed      = "used"
)

// UserTradeProgress tracks where a user is in the whale-trading cycle flow.
// CompletedCycles is a JSON array of cycle numbers.
type UserTradeProgress struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId          string    `gorm:"column:user_id;size:36;not null;uniqueIndex" json:"user_id"`
	CompletedCycles string    `gorm:"column:completed_cycles;type:longtext" json:"completed_cycles"`
	IsPenaltyMode   bool      `gorm:"column:is_penalty_mode;default:false" json:"is_penalty_mode"`
	ActiveChance    *string   `gorm:"column:active_chance;size:20" json:"active_chance"`
	Chance1Status   string    `gorm:"column:chance_1_status;size:20;default:available" json:"chance_1_status"`
	Chance2Status   string    `gorm:"column:chance_2_status;size:20;default:locked" json:"chance_2_status"`
	PenaltyChance   *string   `gorm:"column:penalty_chance;size:20" json:"penalty_chance"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserTradeProgress) TableName() string {
	return "user_trade_progress"
}
