package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fanclub-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func newSession(gameDate string, gameNumber int) *models.BettingSession {
	return &models.BettingSession{
		ID:         uuid.New(),
		GameDate:   gameDate,
		GameNumber: gameNumber,
		GameType:   models.GameTypeBaseReached,
		Status:     models.SessionStatusActive,
		StartedAt:  time.Now(),
	}
}

func TestCreateSessionConflicts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := newSession("2025-07-01", 1)
	if err := repo.CreateSessionIfNoneActive(ctx, first); err != nil {
		t.Fatalf("CreateSessionIfNoneActive failed: %v", err)
	}

	// The in-statement guard rejects a second active session for the
	// same game.
	err := repo.CreateSessionIfNoneActive(ctx, newSession("2025-07-01", 1))
	if !errors.Is(err, ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists from the guard, got %v", err)
	}

	// A storage-level duplicate key on the insert itself (what the
	// partial unique index raises when two starts race past the guard)
	// must surface as the same conflict, never a raw driver error.
	raced := newSession("2025-07-01", 2)
	raced.ID = first.ID
	err = repo.CreateSessionIfNoneActive(ctx, raced)
	if !errors.Is(err, ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists from a duplicate key, got %v", err)
	}

	var count int64
	db.Model(&models.BettingSession{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single session row, got %d", count)
	}
}
