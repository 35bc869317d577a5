package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fanclub-backend/internal/models"
	"fanclub-backend/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// TranslateError is required here just as in production: duplicate
	// wager and re-settlement detection rely on gorm.ErrDuplicatedKey.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Member{},
		&models.BettingConfig{},
		&models.BettingSession{},
		&models.Prediction{},
		&models.BettingResult{},
		&models.PointHistory{},
		&models.Attendance{},
		&models.Notice{},
		&models.Game{},
		&models.OperatorLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestMember(t *testing.T, db *gorm.DB, loginID string, points int64) *models.Member {
	t.Helper()
	member := &models.Member{
		LoginID:      loginID,
		PasswordHash: "not-a-real-hash",
		Nickname:     loginID,
		Points:       points,
		Role:         "member",
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create member %s: %v", loginID, err)
	}
	return member
}

func reloadMember(t *testing.T, db *gorm.DB, id uint) *models.Member {
	t.Helper()
	var member models.Member
	if err := db.First(&member, id).Error; err != nil {
		t.Fatalf("failed to reload member %d: %v", id, err)
	}
	return &member
}

// newBettingService returns a betting service with the system flag enabled.
func newBettingService(t *testing.T, db *gorm.DB) *BettingService {
	t.Helper()
	service := NewBettingService(repository.NewRepository(db))
	if _, err := service.Activate(context.Background()); err != nil {
		t.Fatalf("failed to activate betting: %v", err)
	}
	return service
}

func TestActivateDeactivate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := NewBettingService(repository.NewRepository(db))

	// Before any toggle the system defaults to disabled.
	cfg, err := service.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if cfg.Enabled {
		t.Error("expected betting disabled by default")
	}

	cfg, err = service.Activate(ctx)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !cfg.Enabled {
		t.Error("expected betting enabled after Activate")
	}
	firstVersion := cfg.Version

	cfg, err = service.Deactivate(ctx)
	if err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if cfg.Enabled {
		t.Error("expected betting disabled after Deactivate")
	}
	if cfg.Version <= firstVersion {
		t.Errorf("expected version bump on toggle, got %d -> %d", firstVersion, cfg.Version)
	}
}

func TestStartSessionRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := newBettingService(t, db)

	req := &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 1,
		GameType:   models.GameTypeBaseReached,
	}

	session, err := service.StartSession(ctx, req)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if session.Status != models.SessionStatusActive {
		t.Errorf("expected ACTIVE session, got %s", session.Status)
	}

	// Second start for the same game while the first is still active.
	_, err = service.StartSession(ctx, req)
	if !errors.Is(err, ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}

	// A different game number on the same date is fine.
	_, err = service.StartSession(ctx, &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 2,
		GameType:   models.GameTypeBaseReached,
	})
	if err != nil {
		t.Fatalf("StartSession for second game failed: %v", err)
	}
}

func TestStopSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := newBettingService(t, db)

	stopReq := &models.StopSessionRequest{GameDate: "2025-07-01", GameNumber: 1}

	// Nothing to stop yet.
	_, err := service.StopSession(ctx, stopReq)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	startReq := &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 1,
		GameType:   models.GameTypeBaseReached,
	}
	started, err := service.StartSession(ctx, startReq)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	stopped, err := service.StopSession(ctx, stopReq)
	if err != nil {
		t.Fatalf("StopSession failed: %v", err)
	}
	if stopped.ID != started.ID {
		t.Errorf("stopped a different session: %s vs %s", stopped.ID, started.ID)
	}
	if stopped.Status != models.SessionStatusStopped {
		t.Errorf("expected STOPPED status, got %s", stopped.Status)
	}
	if stopped.StoppedAt == nil {
		t.Error("expected StoppedAt to be set")
	}

	// Already stopped, nothing active to stop.
	_, err = service.StopSession(ctx, stopReq)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second stop, got %v", err)
	}

	// A stopped session does not block a fresh one for the same game.
	restarted, err := service.StartSession(ctx, startReq)
	if err != nil {
		t.Fatalf("restart after stop failed: %v", err)
	}
	if restarted.ID == started.ID {
		t.Error("expected a new session id on restart")
	}
}

func TestPlaceWagerDebitsAndRecords(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := newBettingService(t, db)
	member := createTestMember(t, db, "fan_a", 3000)

	session, err := service.StartSession(ctx, &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 1,
		GameType:   models.GameTypeBaseReached,
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	prediction, err := service.PlaceWager(ctx, member.ID, &models.PlaceWagerRequest{
		SessionID: session.ID.String(),
		Outcome:   "1루",
		Points:    100,
	})
	if err != nil {
		t.Fatalf("PlaceWager failed: %v", err)
	}
	if prediction.GameDate != "2025-07-01" || prediction.GameNumber != 1 {
		t.Errorf("prediction did not inherit session game: %s game %d", prediction.GameDate, prediction.GameNumber)
	}

	after := reloadMember(t, db, member.ID)
	if after.Points != 2900 {
		t.Errorf("expected balance 2900, got %d", after.Points)
	}
	if after.TotalBetting != 100 {
		t.Errorf("expected total_betting 100, got %d", after.TotalBetting)
	}

	var history models.PointHistory
	err = db.Where("member_id = ? AND type = ?", member.ID, models.PointHistoryBettingUse).
		First(&history).Error
	if err != nil {
		t.Fatalf("expected a betting_use ledger entry: %v", err)
	}
	if history.Amount != -100 {
		t.Errorf("expected ledger amount -100, got %d", history.Amount)
	}
	if history.Prediction != "1루" {
		t.Errorf("expected ledger prediction 1루, got %s", history.Prediction)
	}
}

func TestPlaceWagerSystemDisabled(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := newBettingService(t, db)
	member := createTestMember(t, db, "fan_a", 3000)

	session, err := service.StartSession(ctx, &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 1,
		GameType:   models.GameTypeBaseReached,
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	if _, err := service.Deactivate(ctx); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	_, err = service.PlaceWager(ctx, member.ID, &models.PlaceWagerRequest{
		SessionID: session.ID.String(),
		Outcome:   "1루",
		Points:    100,
	})
	if !errors.Is(err, ErrSystemDisabled) {
		t.Fatalf("expected ErrSystemDisabled, got %v", err)
	}

	if after := reloadMember(t, db, member.ID); after.Points != 3000 {
		t.Errorf("balance should be untouched, got %d", after.Points)
	}
}

func TestPlaceWagerOnStoppedSession(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := newBettingService(t, db)
	member := createTestMember(t, db, "fan_a", 3000)

	session, err := service.StartSession(ctx, &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 1,
		GameType:   models.GameTypeBaseReached,
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, err := service.StopSession(ctx, &models.StopSessionRequest{GameDate: "2025-07-01", GameNumber: 1}); err != nil {
		t.Fatalf("StopSession failed: %v", err)
	}

	_, err = service.PlaceWager(ctx, member.ID, &models.PlaceWagerRequest{
		SessionID: session.ID.String(),
		Outcome:   "1루",
		Points:    100,
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	if after := reloadMember(t, db, member.ID); after.Points != 3000 {
		t.Errorf("balance should be untouched, got %d", after.Points)
	}
	var count int64
	db.Model(&models.Prediction{}).Where("session_id = ?", session.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected no predictions on stopped session, got %d", count)
	}
}

func TestPlaceWagerRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := newBettingService(t, db)
	member := createTestMember(t, db, "fan_a", 3000)

	session, err := service.StartSession(ctx, &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 1,
		GameType:   models.GameTypeBaseReached,
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	req := &models.PlaceWagerRequest{SessionID: session.ID.String(), Outcome: "1루", Points: 100}
	if _, err := service.PlaceWager(ctx, member.ID, req); err != nil {
		t.Fatalf("first wager failed: %v", err)
	}

	// Same member, same session: rejected even with a different outcome.
	_, err = service.PlaceWager(ctx, member.ID, &models.PlaceWagerRequest{
		SessionID: session.ID.String(),
		Outcome:   "홈런",
		Points:    50,
	})
	if !errors.Is(err, ErrDuplicateWager) {
		t.Fatalf("expected ErrDuplicateWager, got %v", err)
	}

	// Only the first stake was debited.
	if after := reloadMember(t, db, member.ID); after.Points != 2900 {
		t.Errorf("expected balance 2900 after rejected duplicate, got %d", after.Points)
	}
}

func TestPlaceWagerInsufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := newBettingService(t, db)
	member := createTestMember(t, db, "fan_a", 50)

	session, err := service.StartSession(ctx, &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 1,
		GameType:   models.GameTypeBaseReached,
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	_, err = service.PlaceWager(ctx, member.ID, &models.PlaceWagerRequest{
		SessionID: session.ID.String(),
		Outcome:   "1루",
		Points:    100,
	})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	// Nothing committed: no prediction, no ledger entry, balance intact.
	if after := reloadMember(t, db, member.ID); after.Points != 50 {
		t.Errorf("balance should be untouched, got %d", after.Points)
	}
	var predictions, entries int64
	db.Model(&models.Prediction{}).Where("member_id = ?", member.ID).Count(&predictions)
	db.Model(&models.PointHistory{}).Where("member_id = ?", member.ID).Count(&entries)
	if predictions != 0 || entries != 0 {
		t.Errorf("expected no rows committed, got %d predictions and %d ledger entries", predictions, entries)
	}
}

func TestListWagersUnknownSession(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := newBettingService(t, db)

	_, err := service.ListWagers(ctx, uuid.New())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for unknown session, got %v", err)
	}

	// A known session with no wagers is an empty list, not an error.
	session, err := service.StartSession(ctx, &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 1,
		GameType:   models.GameTypeBaseReached,
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	wagers, err := service.ListWagers(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListWagers failed: %v", err)
	}
	if len(wagers) != 0 {
		t.Errorf("expected no wagers, got %d", len(wagers))
	}
}

func TestPlaceWagerValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := newBettingService(t, db)
	member := createTestMember(t, db, "fan_a", 3000)

	session, err := service.StartSession(ctx, &models.StartSessionRequest{
		GameDate:   "2025-07-01",
		GameNumber: 1,
		GameType:   models.GameTypeBaseReached,
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	_, err = service.PlaceWager(ctx, member.ID, &models.PlaceWagerRequest{
		SessionID: "not-a-uuid",
		Outcome:   "1루",
		Points:    100,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad session id, got %v", err)
	}

	_, err = service.PlaceWager(ctx, member.ID, &models.PlaceWagerRequest{
		SessionID: session.ID.String(),
		Outcome:   "1루",
		Points:    -10,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative stake, got %v", err)
	}

	_, err = service.PlaceWager(ctx, 9999, &models.PlaceWagerRequest{
		SessionID: session.ID.String(),
		Outcome:   "1루",
		Points:    100,
	})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound for unknown member, got %v", err)
	}
}
