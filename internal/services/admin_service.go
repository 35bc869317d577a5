package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fanclub-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdminService handles operator member management, platform stats and the
// operator audit log
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ListMembers returns members ordered by points, highest first
func (s *AdminService) ListMembers(limit, offset int) ([]models.Member, int64, error) {
	var total int64
	if err := s.db.Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.Member
	err := s.db.Order("points DESC").
		Limit(limit).
		Offset(offset).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// AdjustPoints applies an operator point correction to a member, paired
// with an admin_adjust ledger entry in the same transaction.
func (s *AdminService) AdjustPoints(operatorID, memberID uint, delta int64, reason string) (*models.Member, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Member{}).
			Where("id = ? AND points + ? >= 0", memberID, delta).
			Update("points", gorm.Expr("points + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var member models.Member
			if errors.Is(tx.First(&member, memberID).Error, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return ErrInsufficientBalance
		}

		history := &models.PointHistory{
			ID:          uuid.New(),
			MemberID:    memberID,
			Type:        models.PointHistoryAdminAdjust,
			Amount:      delta,
			Description: reason,
			CreatedAt:   time.Now(),
		}
		return tx.Create(history).Error
	})
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) || errors.Is(err, ErrInsufficientBalance) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to adjust points: %w", err)
	}

	s.LogAction(operatorID, "ADJUST_POINTS", "MEMBER", fmt.Sprintf("%d", memberID),
		fmt.Sprintf("delta=%d reason=%s", delta, reason))

	var member models.Member
	if err := s.db.First(&member, memberID).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// PromoteMember grants a member the admin role
func (s *AdminService) PromoteMember(operatorID, memberID uint) (*models.Member, error) {
	var member models.Member
	err := s.db.First(&member, memberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	if member.Role == "admin" {
		return &member, nil
	}

	member.Role = "admin"
	if err := s.db.Save(&member).Error; err != nil {
		return nil, fmt.Errorf("failed to promote member: %w", err)
	}

	s.LogAction(operatorID, "PROMOTE_MEMBER", "MEMBER", fmt.Sprintf("%d", memberID), "")
	log.Printf("Member %d promoted to admin by operator %d", memberID, operatorID)
	return &member, nil
}

// PlatformStats aggregates platform-wide betting figures
type PlatformStats struct {
	MemberCount       int64           `json:"member_count"`
	SessionCount      int64           `json:"session_count"`
	PredictionCount   int64           `json:"prediction_count"`
	TotalPointsStaked int64           `json:"total_points_staked"`
	TotalPointsPaid   int64           `json:"total_points_paid"`
	AverageWinRate    decimal.Decimal `json:"average_win_rate"`
}

// GetPlatformStats computes platform-wide figures for the admin dashboard
func (s *AdminService) GetPlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{}

	if err := s.db.Model(&models.Member{}).Count(&stats.MemberCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.BettingSession{}).Count(&stats.SessionCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Prediction{}).Count(&stats.PredictionCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Prediction{}).
		Select("COALESCE(SUM(points_staked), 0)").Scan(&stats.TotalPointsStaked).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.BettingResult{}).
		Select("COALESCE(SUM(total_winnings), 0)").Scan(&stats.TotalPointsPaid).Error; err != nil {
		return nil, err
	}

	// Average win rate: winning wagers over total wagers, platform-wide.
	var wins, bets int64
	if err := s.db.Model(&models.Member{}).
		Select("COALESCE(SUM(win_count), 0)").Scan(&wins).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.PointHistory{}).
		Where("type = ?", models.PointHistoryBettingUse).
		Count(&bets).Error; err != nil {
		return nil, err
	}
	if bets > 0 {
		stats.AverageWinRate = decimal.NewFromInt(wins).
			Div(decimal.NewFromInt(bets)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return stats, nil
}

// LogAction appends an operator audit record. Failures are logged, not
// propagated; the audited action itself already succeeded.
func (s *AdminService) LogAction(operatorID uint, action, targetType, targetID, detail string) {
	entry := &models.OperatorLog{
		OperatorID: operatorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
	}
	if err := s.db.Create(entry).Error; err != nil {
		log.Printf("Failed to write operator log (%s by %d): %v", action, operatorID, err)
	}
}

// GetOperatorLogs lists audit records, newest first
func (s *AdminService) GetOperatorLogs(limit, offset int) ([]models.OperatorLog, error) {
	var logs []models.OperatorLog
	err := s.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
