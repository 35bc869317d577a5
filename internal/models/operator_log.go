package models

import (
	"time"
)

// OperatorLog is an audit record of an admin action
type OperatorLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OperatorID uint      `gorm:"not null;index" json:"operator_id"`
	Action     string    `gorm:"size:100;not null;index" json:"action"`
	TargetType string    `gorm:"size:50" json:"target_type"`
	TargetID   string    `gorm:"size:100" json:"target_id"`
	Detail     string    `gorm:"type:text" json:"detail"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (OperatorLog) TableName() string {
	return "operator_logs"
}
