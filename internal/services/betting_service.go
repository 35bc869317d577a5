package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fanclub-backend/internal/models"
	"fanclub-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BettingService owns the betting session lifecycle and the prediction
// ledger: the system-wide toggle, session start/stop, and wager placement.
type BettingService struct {
	repo *repository.Repository
}

func NewBettingService(repo *repository.Repository) *BettingService {
	return &BettingService{repo: repo}
}

// Activate turns the system-wide betting flag on.
func (s *BettingService) Activate(ctx context.Context) (*models.BettingConfig, error) {
	cfg, err := s.repo.SetEnabled(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to activate betting: %w", err)
	}
	log.Printf("Betting system activated (config version %d)", cfg.Version)
	return cfg, nil
}

// Deactivate turns the system-wide betting flag off. Running sessions stay
// in their current state; only wager acceptance is gated.
func (s *BettingService) Deactivate(ctx context.Context) (*models.BettingConfig, error) {
	cfg, err := s.repo.SetEnabled(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate betting: %w", err)
	}
	log.Printf("Betting system deactivated (config version %d)", cfg.Version)
	return cfg, nil
}

// Status returns the current betting toggle.
func (s *BettingService) Status(ctx context.Context) (*models.BettingConfig, error) {
	return s.repo.GetConfig(ctx)
}

// StartSession opens a new betting session for (date, gameNumber). Fails
// with ErrDuplicateSession when an active session already exists for the
// game; a stopped prior session does not block a new one.
func (s *BettingService) StartSession(ctx context.Context, req *models.StartSessionRequest) (*models.BettingSession, error) {
	session := &models.BettingSession{
		ID:         uuid.New(),
		GameDate:   req.GameDate,
		GameNumber: req.GameNumber,
		GameType:   req.GameType,
		Status:     models.SessionStatusActive,
		StartedAt:  time.Now(),
	}

	err := s.repo.CreateSessionIfNoneActive(ctx, session)
	if errors.Is(err, repository.ErrActiveSessionExists) {
		return nil, ErrDuplicateSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	log.Printf("Betting session %s started for %s game %d", session.ID, session.GameDate, session.GameNumber)
	return session, nil
}

// StopSession closes the active session for (date, gameNumber). No wagers
// are accepted against the session afterwards.
func (s *BettingService) StopSession(ctx context.Context, req *models.StopSessionRequest) (*models.BettingSession, error) {
	session, err := s.repo.StopActiveSession(ctx, req.GameDate, req.GameNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stop session: %w", err)
	}

	log.Printf("Betting session %s stopped for %s game %d", session.ID, session.GameDate, session.GameNumber)
	return session, nil
}

// PlaceWager records a member's prediction against an active session,
// debiting the staked points and appending the betting_use ledger entry
// atomically. Gate order: system flag, session, member, balance, duplicate.
func (s *BettingService) PlaceWager(ctx context.Context, memberID uint, req *models.PlaceWagerRequest) (*models.Prediction, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read betting config: %w", err)
	}
	if !cfg.Enabled {
		return nil, ErrSystemDisabled
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session id", ErrValidation)
	}
	if req.Points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", ErrValidation)
	}

	prediction := &models.Prediction{
		ID:           uuid.New(),
		SessionID:    sessionID,
		MemberID:     memberID,
		Outcome:      req.Outcome,
		PointsStaked: req.Points,
		CreatedAt:    time.Now(),
	}

	err = s.repo.PlaceWager(ctx, prediction)
	switch {
	case errors.Is(err, repository.ErrSessionNotActive):
		return nil, ErrSessionNotFound
	case errors.Is(err, repository.ErrMemberNotFound):
		return nil, ErrMemberNotFound
	case errors.Is(err, repository.ErrInsufficientBalance):
		return nil, ErrInsufficientBalance
	case errors.Is(err, repository.ErrDuplicateWager):
		return nil, ErrDuplicateWager
	case err != nil:
		return nil, fmt.Errorf("failed to place wager: %w", err)
	}

	log.Printf("Member %d staked %d points on %q in session %s", memberID, req.Points, req.Outcome, sessionID)
	return prediction, nil
}

// ListWagers returns all predictions recorded against a session. The session
// must exist; an unknown id is a not-found, not an empty list.
func (s *BettingService) ListWagers(ctx context.Context, sessionID uuid.UUID) ([]*models.Prediction, error) {
	if _, err := s.repo.GetSessionByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.repo.ListWagersBySession(ctx, sessionID)
}

// ListSessions returns all sessions for a date together with their results
// where settled.
func (s *BettingService) ListSessions(ctx context.Context, gameDate string) ([]*models.BettingSession, error) {
	return s.repo.ListSessionsByDate(ctx, gameDate)
}
