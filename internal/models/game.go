package models

import (
	"time"
)

type GameProgress string

const (
	GameProgressScheduled  GameProgress = "SCHEDULED"
	GameProgressInProgress GameProgress = "IN_PROGRESS"
	GameProgressFinished   GameProgress = "FINISHED"
)

// Game is schedule metadata for one game on one date. Progress is a
// display-only hint refreshed by a background job; betting session state
// never derives from it.
type Game struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	GameDate   string       `gorm:"size:10;not null;uniqueIndex:idx_games_date_number" json:"game_date"`
	GameNumber int          `gorm:"not null;uniqueIndex:idx_games_date_number" json:"game_number"`
	HomeTeam   string       `gorm:"size:100;not null" json:"home_team"`
	AwayTeam   string       `gorm:"size:100;not null" json:"away_team"`
	Stadium    string       `gorm:"size:100" json:"stadium"`
	StartTime  time.Time    `gorm:"not null" json:"start_time"`
	Progress   GameProgress `gorm:"size:20;not null;default:SCHEDULED;index" json:"progress"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (Game) TableName() string {
	return "games"
}

// GameRequest creates or updates a game schedule entry
type GameRequest struct {
	GameDate   string    `json:"date" binding:"required"`
	GameNumber int       `json:"game_number" binding:"required,gt=0"`
	HomeTeam   string    `json:"home_team" binding:"required,max=100"`
	AwayTeam   string    `json:"away_team" binding:"required,max=100"`
	Stadium    string    `json:"stadium"`
	StartTime  time.Time `json:"start_time" binding:"required"`
}
