package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "ACTIVE"
	SessionStatusStopped SessionStatus = "STOPPED"
)

// CanTransition reports whether a session may move to the given status.
// The only legal transition is ACTIVE -> STOPPED; a stopped session never
// reopens, re-betting on the same game requires a new session.
func (s SessionStatus) CanTransition(to SessionStatus) bool {
	return s == SessionStatusActive && to == SessionStatusStopped
}

type GameType string

const (
	GameTypeBaseReached GameType = "BASE_REACHED" // which base the lead-off batter reaches
	GameTypeWinLoss     GameType = "WIN_LOSS"
	GameTypeOverUnder   GameType = "OVER_UNDER"
)

// BettingConfig is the single-row system-wide betting toggle. Version is
// bumped on every change so operators can audit toggles.
type BettingConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Enabled   bool      `gorm:"not null;default:false" json:"enabled"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BettingConfig) TableName() string {
	return "betting_config"
}

// BettingSession is one open betting window for a single game number on a
// single date. At most one ACTIVE session may exist per (game_date, game_number).
type BettingSession struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	GameDate   string        `gorm:"size:10;not null;index:idx_sessions_date_game" json:"game_date"`
	GameNumber int           `gorm:"not null;index:idx_sessions_date_game" json:"game_number"`
	GameType   GameType      `gorm:"size:50;not null" json:"game_type"`
	Status     SessionStatus `gorm:"size:20;not null;default:ACTIVE;index" json:"status"`
	StartedAt  time.Time     `json:"started_at"`
	StoppedAt  *time.Time    `json:"stopped_at"`
}

func (BettingSession) TableName() string {
	return "betting_sessions"
}

// Prediction is a member's staked wager inside a session. The composite
// unique index enforces one wager per member per session.
type Prediction struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_predictions_session_member" json:"session_id"`
	MemberID     uint      `gorm:"not null;uniqueIndex:idx_predictions_session_member" json:"member_id"`
	Outcome      string    `gorm:"size:100;not null" json:"outcome"`
	PointsStaked int64     `gorm:"not null" json:"points_staked"`
	GameNumber   int       `gorm:"not null" json:"game_number"`
	GameDate     string    `gorm:"size:10;not null;index" json:"game_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Prediction) TableName() string {
	return "predictions"
}

// BettingResult records the declared outcome of a settled session. The unique
// index on session_id is the settlement idempotency guard: a session settles
// exactly once.
type BettingResult struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
	GameNumber      int       `gorm:"not null" json:"game_number"`
	Outcome         string    `gorm:"size:100;not null" json:"outcome"`
	GameDate        string    `gorm:"size:10;not null;index" json:"game_date"`
	WinnerCount     int       `gorm:"not null" json:"winner_count"`
	LoserCount      int       `gorm:"not null" json:"loser_count"`
	PointsPerWinner int64     `gorm:"not null" json:"points_per_winner"`
	TotalWinnings   int64     `gorm:"not null" json:"total_winnings"`
	CreatedAt       time.Time `json:"created_at"`
}

func (BettingResult) TableName() string {
	return "betting_results"
}

// StartSessionRequest opens a betting session for a game
type StartSessionRequest struct {
	GameDate   string   `json:"date" binding:"required"`
	GameNumber int      `json:"game_number" binding:"required,gt=0"`
	GameType   GameType `json:"game_type" binding:"required"`
}

// StopSessionRequest closes the active session for a game
type StopSessionRequest struct {
	GameDate   string `json:"date" binding:"required"`
	GameNumber int    `json:"game_number" binding:"required,gt=0"`
}

// PlaceWagerRequest stakes points on an outcome within a session
type PlaceWagerRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Outcome   string `json:"prediction" binding:"required"`
	Points    int64  `json:"points" binding:"required,gt=0"`
}

// SettleRequest declares an outcome for a stopped session's game
type SettleRequest struct {
	GameDate   string `json:"date" binding:"required"`
	GameNumber int    `json:"game_number" binding:"required,gt=0"`
	Outcome    string `json:"prediction" binding:"required"`
}

// WinnerOdds is the preview payout multiple for one winning wager.
type WinnerOdds struct {
	MemberID     uint            `json:"member_id"`
	PointsStaked int64           `json:"points_staked"`
	Odds         decimal.Decimal `json:"odds"`
}

// Settlement is the computed pari-mutuel redistribution for a session:
// losers' stakes pooled and split evenly among winners, fractional
// remainder dropped.
type Settlement struct {
	SessionID        uuid.UUID     `json:"session_id"`
	Outcome          string        `json:"outcome"`
	Winners          []*Prediction `json:"winners"`
	Losers           []*Prediction `json:"losers"`
	TotalLoserPoints int64         `json:"total_loser_points"`
	PointsPerWinner  int64         `json:"points_per_winner"`
	TotalWinnings    int64         `json:"total_winnings"`
	Odds             []WinnerOdds  `json:"odds"`
}

// SettlementReport is the outcome of applying a settlement: per-winner
// payouts are best effort, failed member IDs are surfaced for remediation.
type SettlementReport struct {
	Result          *BettingResult `json:"result"`
	PaidMemberIDs   []uint         `json:"paid_member_ids"`
	FailedMemberIDs []uint         `json:"failed_member_ids"`
}
