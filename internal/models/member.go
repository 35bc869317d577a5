package models

import (
	"time"
)

// Member represents a registered fan on the platform
type Member struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	LoginID       string    `gorm:"size:100;uniqueIndex;not null" json:"login_id"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	Nickname      string    `gorm:"size:100;uniqueIndex;not null" json:"nickname"`
	Points        int64     `gorm:"not null;default:0" json:"points"`
	TotalBetting  int64     `gorm:"not null;default:0" json:"total_betting"`
	TotalWinnings int64     `gorm:"not null;default:0" json:"total_winnings"`
	WinCount      int64     `gorm:"not null;default:0" json:"win_count"`
	Role          string    `gorm:"size:20;not null;default:member;index" json:"role"` // member, admin
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for Member model
func (Member) TableName() string {
	return "members"
}

// RegisterRequest represents a member registration request
type RegisterRequest struct {
	LoginID  string `json:"login_id" binding:"required,min=4,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Nickname string `json:"nickname" binding:"required,max=100"`
}

// LoginRequest represents a member login request
type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// MemberProfile is the public view of a member
type MemberProfile struct {
	ID            uint   `json:"id"`
	LoginID       string `json:"login_id"`
	Nickname      string `json:"nickname"`
	Points        int64  `json:"points"`
	TotalBetting  int64  `json:"total_betting"`
	TotalWinnings int64  `json:"total_winnings"`
	WinCount      int64  `json:"win_count"`
	Role          string `json:"role"`
}

// Profile converts a Member to its public profile view
func (m *Member) Profile() MemberProfile {
	return MemberProfile{
		ID:            m.ID,
		LoginID:       m.LoginID,
		Nickname:      m.Nickname,
		Points:        m.Points,
		TotalBetting:  m.TotalBetting,
		TotalWinnings: m.TotalWinnings,
		WinCount:      m.WinCount,
		Role:          m.Role,
	}
}
