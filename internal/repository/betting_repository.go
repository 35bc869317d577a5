package repository

import (
	"context"
	"errors"
	"time"

	"fanclub-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetConfig returns the betting toggle singleton, defaulting to disabled
// when no row exists yet.
func (r *Repository) GetConfig(ctx context.Context) (*models.BettingConfig, error) {
	var cfg models.BettingConfig
	err := r.db.WithContext(ctx).Where("id = ?", 1).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.BettingConfig{ID: 1, Enabled: false, Version: 0}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetEnabled upserts the betting toggle and bumps its version.
func (r *Repository) SetEnabled(ctx context.Context, enabled bool) (*models.BettingConfig, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"enabled":    enabled,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&models.BettingConfig{ID: 1, Enabled: enabled, Version: 1}).Error
	if err != nil {
		return nil, err
	}
	return r.GetConfig(ctx)
}

// CreateSessionIfNoneActive inserts a new active session unless one already
// exists for (gameDate, gameNumber). The existence check and the insert are
// a single statement, so two concurrent starts cannot both succeed.
func (r *Repository) CreateSessionIfNoneActive(ctx context.Context, session *models.BettingSession) error {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO betting_sessions (id, game_date, game_number, game_type, status, started_at)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM betting_sessions
			WHERE game_date = ? AND game_number = ? AND status = ?
		)`,
		session.ID, session.GameDate, session.GameNumber, session.GameType, session.Status, session.StartedAt,
		session.GameDate, session.GameNumber, models.SessionStatusActive,
	)
	if res.Error != nil {
		// The partial unique index on active sessions backstops the
		// guard under true concurrency; its violation is the same
		// conflict.
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrActiveSessionExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrActiveSessionExists
	}
	return nil
}

// StopActiveSession transitions the newest session for (gameDate, gameNumber)
// to stopped and returns it. gorm.ErrRecordNotFound when no session exists or
// the state machine rejects the transition. The write itself remains a
// conditional update keyed on the current status, so a concurrent stop cannot
// apply twice.
func (r *Repository) StopActiveSession(ctx context.Context, gameDate string, gameNumber int) (*models.BettingSession, error) {
	var session models.BettingSession
	err := r.db.WithContext(ctx).
		Where("game_date = ? AND game_number = ?", gameDate, gameNumber).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	if !session.Status.CanTransition(models.SessionStatusStopped) {
		return nil, gorm.ErrRecordNotFound
	}

	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.BettingSession{}).
		Where("id = ? AND status = ?", session.ID, models.SessionStatusActive).
		Updates(map[string]interface{}{
			"status":     models.SessionStatusStopped,
			"stopped_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	session.Status = models.SessionStatusStopped
	session.StoppedAt = &now
	return &session, nil
}

// GetSessionByID retrieves a session by its unique identifier.
func (r *Repository) GetSessionByID(ctx context.Context, sessionID uuid.UUID) (*models.BettingSession, error) {
	var session models.BettingSession
	err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetStoppedSession retrieves the most recently stopped session for a game.
func (r *Repository) GetStoppedSession(ctx context.Context, gameDate string, gameNumber int) (*models.BettingSession, error) {
	var session models.BettingSession
	err := r.db.WithContext(ctx).
		Where("game_date = ? AND game_number = ? AND status = ?", gameDate, gameNumber, models.SessionStatusStopped).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessionsByDate retrieves all sessions for a date, newest first.
func (r *Repository) ListSessionsByDate(ctx context.Context, gameDate string) ([]*models.BettingSession, error) {
	var sessions []*models.BettingSession
	err := r.db.WithContext(ctx).
		Where("game_date = ?", gameDate).
		Order("game_number ASC, started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// PlaceWager records a prediction, debits the member's balance and appends
// the betting_use ledger entry as one transaction. The debit is a
// conditional update guarded on the current balance, so concurrent wagers
// from the same member cannot overdraw; the composite unique index on
// (session_id, member_id) rejects concurrent duplicates.
func (r *Repository) PlaceWager(ctx context.Context, prediction *models.Prediction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.BettingSession
		err := tx.Where("id = ? AND status = ?", prediction.SessionID, models.SessionStatusActive).
			First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotActive
		}
		if err != nil {
			return err
		}
		prediction.GameNumber = session.GameNumber
		prediction.GameDate = session.GameDate

		var member models.Member
		err = tx.Where("id = ?", prediction.MemberID).First(&member).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		if err != nil {
			return err
		}
		if member.Points < prediction.PointsStaked {
			return ErrInsufficientBalance
		}

		if err := tx.Create(prediction).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateWager
			}
			return err
		}

		// The read above is advisory; this conditional update is the
		// authoritative balance check under concurrency.
		res := tx.Model(&models.Member{}).
			Where("id = ? AND points >= ?", prediction.MemberID, prediction.PointsStaked).
			Updates(map[string]interface{}{
				"points":        gorm.Expr("points - ?", prediction.PointsStaked),
				"total_betting": gorm.Expr("total_betting + ?", prediction.PointsStaked),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		history := &models.PointHistory{
			ID:          uuid.New(),
			MemberID:    prediction.MemberID,
			Type:        models.PointHistoryBettingUse,
			Amount:      -prediction.PointsStaked,
			GameNumber:  prediction.GameNumber,
			Prediction:  prediction.Outcome,
			GameDate:    prediction.GameDate,
			Description: "points staked on prediction",
			CreatedAt:   time.Now(),
		}
		return tx.Create(history).Error
	})
}

// ListWagersBySession retrieves all predictions recorded against a session.
func (r *Repository) ListWagersBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.Prediction, error) {
	var predictions []*models.Prediction
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// CreateResult records the declared outcome for a session. The unique index
// on session_id makes re-settlement a constraint violation rather than a
// double payout.
func (r *Repository) CreateResult(ctx context.Context, result *models.BettingResult) error {
	err := r.db.WithContext(ctx).Create(result).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadySettled
	}
	return err
}

// GetResultBySession retrieves the recorded result for a session.
func (r *Repository) GetResultBySession(ctx context.Context, sessionID uuid.UUID) (*models.BettingResult, error) {
	var result models.BettingResult
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreditWinner pays a settlement share to one member and appends the
// betting_win ledger entry as one transaction.
func (r *Repository) CreditWinner(ctx context.Context, memberID uint, amount int64, gameNumber int, outcome, gameDate string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Member{}).
			Where("id = ?", memberID).
			Updates(map[string]interface{}{
				"points":         gorm.Expr("points + ?", amount),
				"total_winnings": gorm.Expr("total_winnings + ?", amount),
				"win_count":      gorm.Expr("win_count + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		history := &models.PointHistory{
			ID:          uuid.New(),
			MemberID:    memberID,
			Type:        models.PointHistoryBettingWin,
			Amount:      amount,
			GameNumber:  gameNumber,
			Prediction:  outcome,
			GameDate:    gameDate,
			Description: "pari-mutuel settlement payout",
			CreatedAt:   time.Now(),
		}
		return tx.Create(history).Error
	})
}

// AppendLossRecord writes the record-only betting_loss ledger entry for a
// loser. The stake was already debited at wager time, so no balance change.
func (r *Repository) AppendLossRecord(ctx context.Context, p *models.Prediction, outcome string) error {
	history := &models.PointHistory{
		ID:          uuid.New(),
		MemberID:    p.MemberID,
		Type:        models.PointHistoryBettingLoss,
		Amount:      -p.PointsStaked,
		GameNumber:  p.GameNumber,
		Prediction:  p.Outcome,
		GameDate:    p.GameDate,
		Description: "lost stake, declared outcome: " + outcome,
		CreatedAt:   time.Now(),
	}
	return r.db.WithContext(ctx).Create(history).Error
}

// GetMemberByID retrieves a member by primary key.
func (r *Repository) GetMemberByID(ctx context.Context, memberID uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}
