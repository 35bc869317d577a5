package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fanclub-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceService handles daily check-ins. A check-in awards points
// through the same append-only ledger the betting engine writes to.
type AttendanceService struct {
	db     *gorm.DB
	reward int64
}

func NewAttendanceService(db *gorm.DB, reward int64) *AttendanceService {
	return &AttendanceService{db: db, reward: reward}
}

// CheckIn records today's attendance for a member and credits the reward.
// The unique (member_id, date) index rejects a second check-in; the
// attendance row, the balance credit and the ledger entry are one
// transaction.
func (s *AttendanceService) CheckIn(memberID uint) (*models.Attendance, error) {
	today := time.Now().Format("2006-01-02")

	attendance := &models.Attendance{
		MemberID:      memberID,
		Date:          today,
		PointsAwarded: s.reward,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attendance).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyCheckedIn
			}
			return err
		}

		res := tx.Model(&models.Member{}).
			Where("id = ?", memberID).
			Update("points", gorm.Expr("points + ?", s.reward))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMemberNotFound
		}

		history := &models.PointHistory{
			ID:          uuid.New(),
			MemberID:    memberID,
			Type:        models.PointHistoryAttendance,
			Amount:      s.reward,
			GameDate:    today,
			Description: "daily attendance reward",
			CreatedAt:   time.Now(),
		}
		return tx.Create(history).Error
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) || errors.Is(err, ErrMemberNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	log.Printf("Member %d checked in on %s (+%d points)", memberID, today, s.reward)
	return attendance, nil
}

// GetAttendance lists a member's check-ins, newest first
func (s *AttendanceService) GetAttendance(memberID uint, limit, offset int) ([]models.Attendance, int64, error) {
	var total int64
	err := s.db.Model(&models.Attendance{}).
		Where("member_id = ?", memberID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var records []models.Attendance
	err = s.db.Where("member_id = ?", memberID).
		Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
