package models

import (
	"time"
)

type AuditLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminId    string    `gorm:"column:admin_id;size:36;not null;index" json:"admin_id"`
	ActionType string    `gorm:"column:action_type;size:100;not null" json:"action_type"`
	TargetType string    `gorm:"column:target_type;size:50" json:"target_type"`
	TargetId   string    `gorm:"column:target_id;size:36" json:"target_id"`
	Details    string    `gorm:"column:details;type:longtext" json:"details"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
