package models

import (
	"time"
)

// TradeCycle is one whale-trading investment cycle. AdditionalInvestments is
// a JSON array of top-up amounts added while the cycle was running.
type TradeCycle struct {
	ID                    string    `gorm:"primaryKey;size:36" json:"id"`
	UserId                string    `gorm:"column:user_id;size:36;not null;index:idx_cycle_user" json:"user_id"`
	CycleNumber           int       `gorm:"column:cycle_number;default:1" json:"cycle_number"`
	InvestmentAmount      float64   `gorm:"column:investment_amount;type:decimal(20,2);not null" json:"investment_amount"`
	AdditionalInvestments string    `gorm:"column:additional_investments;type:longtext" json:"additional_investments"`
	ProfitAmount          float64   `gorm:"column:profit_amount;type:decimal(20,2);default:0.00" json:"profit_amount"`
	Status                string    `gorm:"column:status;size:20;default:active" json:"status"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TradeCycle) TableName() string {
	return "ai_trade_cycles"
}
