package services

import (
	"errors"
	"time"

	"fanclub-backend/internal/models"

	"gorm.io/gorm"
)

// Rough display window for an in-progress baseball game. Progress is a
// best-effort hint for the schedule page, never an input to session state.
const gameDisplayDuration = 4 * time.Hour

// GameService handles game schedule metadata
type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

// ListGamesByDate returns the schedule for one date
func (s *GameService) ListGamesByDate(gameDate string) ([]models.Game, error) {
	var games []models.Game
	err := s.db.Where("game_date = ?", gameDate).
		Order("game_number ASC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

// GetGame returns one game by (date, gameNumber)
func (s *GameService) GetGame(gameDate string, gameNumber int) (*models.Game, error) {
	var game models.Game
	err := s.db.Where("game_date = ? AND game_number = ?", gameDate, gameNumber).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// CreateGame adds a game to the schedule
func (s *GameService) CreateGame(req *models.GameRequest) (*models.Game, error) {
	game := &models.Game{
		GameDate:   req.GameDate,
		GameNumber: req.GameNumber,
		HomeTeam:   req.HomeTeam,
		AwayTeam:   req.AwayTeam,
		Stadium:    req.Stadium,
		StartTime:  req.StartTime,
		Progress:   models.GameProgressScheduled,
	}
	if err := s.db.Create(game).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateGame
		}
		return nil, err
	}
	return game, nil
}

// DeleteGame removes a game from the schedule
func (s *GameService) DeleteGame(gameDate string, gameNumber int) error {
	res := s.db.Where("game_date = ? AND game_number = ?", gameDate, gameNumber).
		Delete(&models.Game{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGameNotFound
	}
	return nil
}

// RefreshProgress recomputes display progress for games whose start time
// has passed. Called by the background job.
func (s *GameService) RefreshProgress(now time.Time) error {
	err := s.db.Model(&models.Game{}).
		Where("progress = ? AND start_time <= ?", models.GameProgressScheduled, now).
		Update("progress", models.GameProgressInProgress).Error
	if err != nil {
		return err
	}

	return s.db.Model(&models.Game{}).
		Where("progress = ? AND start_time <= ?", models.GameProgressInProgress, now.Add(-gameDisplayDuration)).
		Update("progress", models.GameProgressFinished).Error
}
