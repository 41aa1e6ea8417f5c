package models

import (
	"time"
)

type UserRole struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    string    `gorm:"column:user_id;size:36;not null;uniqueIndex:idx_user_role" json:"user_id"`
	Role      string    `gorm:"column:role;size:50;not null;uniqueIndex:idx_user_role" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
