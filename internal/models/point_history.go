package models

import (
	"time"

	"github.com/google/uuid"
)

type PointHistoryType string

const (
	PointHistoryBettingUse  PointHistoryType = "betting_use"
	PointHistoryBettingWin  PointHistoryType = "betting_win"
	PointHistoryBettingLoss PointHistoryType = "betting_loss"
	PointHistoryAttendance  PointHistoryType = "attendance"
	PointHistoryAdminAdjust PointHistoryType = "admin_adjust"
)

// PointHistory is an append-only ledger entry. Amount is signed: negative
// for debits, positive for credits. betting_loss entries are record-only:
// the stake was already debited by the betting_use entry, so they carry
// the lost amount for display without affecting the balance again.
type PointHistory struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID    uint             `gorm:"not null;index" json:"member_id"`
	Type        PointHistoryType `gorm:"size:30;not null;index" json:"type"`
	Amount      int64            `gorm:"not null" json:"amount"`
	GameNumber  int              `json:"game_number"`
	Prediction  string           `gorm:"size:100" json:"prediction"`
	GameDate    string           `gorm:"size:10;index" json:"game_date"`
	Description string           `gorm:"type:text" json:"description"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
}

func (PointHistory) TableName() string {
	return "point_histories"
}
