package services

import (
	"errors"
	"testing"

	"fanclub-backend/internal/models"
)

func TestCheckInAwardsPoints(t *testing.T) {
	db := setupTestDB(t)
	member := createTestMember(t, db, "fan_a", 3000)
	service := NewAttendanceService(db, 100)

	attendance, err := service.CheckIn(member.ID)
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if attendance.PointsAwarded != 100 {
		t.Errorf("expected 100 points awarded, got %d", attendance.PointsAwarded)
	}

	if m := reloadMember(t, db, member.ID); m.Points != 3100 {
		t.Errorf("expected balance 3100 after check-in, got %d", m.Points)
	}

	var entry models.PointHistory
	err = db.Where("member_id = ? AND type = ?", member.ID, models.PointHistoryAttendance).
		First(&entry).Error
	if err != nil {
		t.Fatalf("expected an attendance ledger entry: %v", err)
	}
	if entry.Amount != 100 {
		t.Errorf("expected ledger amount 100, got %d", entry.Amount)
	}
}

func TestCheckInTwiceSameDay(t *testing.T) {
	db := setupTestDB(t)
	member := createTestMember(t, db, "fan_a", 3000)
	service := NewAttendanceService(db, 100)

	if _, err := service.CheckIn(member.ID); err != nil {
		t.Fatalf("first CheckIn failed: %v", err)
	}

	_, err := service.CheckIn(member.ID)
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}

	// The failed second check-in must not credit again.
	if m := reloadMember(t, db, member.ID); m.Points != 3100 {
		t.Errorf("expected balance still 3100, got %d", m.Points)
	}
	var entries int64
	db.Model(&models.PointHistory{}).Where("member_id = ?", member.ID).Count(&entries)
	if entries != 1 {
		t.Errorf("expected one ledger entry, got %d", entries)
	}
}

func TestCheckInUnknownMember(t *testing.T) {
	db := setupTestDB(t)
	service := NewAttendanceService(db, 100)

	_, err := service.CheckIn(9999)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}
