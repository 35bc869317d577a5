package models

import (
	"time"
)

// Attendance records a member's daily check-in. One row per member per
// date, enforced by the composite unique index.
type Attendance struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MemberID      uint      `gorm:"not null;uniqueIndex:idx_attendance_member_date" json:"member_id"`
	Date          string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_member_date" json:"date"`
	PointsAwarded int64     `gorm:"not null" json:"points_awarded"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
