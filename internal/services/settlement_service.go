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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SettlementService settles stopped betting sessions: it partitions wagers
// into winners and losers, computes the pari-mutuel redistribution, records
// the result exactly once, and applies payouts through the point ledger.
type SettlementService struct {
	repo *repository.Repository
}

func NewSettlementService(repo *repository.Repository) *SettlementService {
	return &SettlementService{repo: repo}
}

// CalculateWinnings computes the pari-mutuel settlement for the stopped
// session of (date, gameNumber) without mutating anything. Losers' stakes
// are pooled and divided evenly among winners; integer division truncates
// and the remainder is not distributed. An empty winner or loser side means
// no redistribution. Each winner carries a decimal odds preview relative to
// their stake.
func (s *SettlementService) CalculateWinnings(ctx context.Context, req *models.SettleRequest) (*models.Settlement, error) {
	session, err := s.repo.GetStoppedSession(ctx, req.GameDate, req.GameNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotStopped
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	predictions, err := s.repo.ListWagersBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wagers: %w", err)
	}

	return computeSettlement(session.ID, req.Outcome, predictions), nil
}

// computeSettlement is the pure pari-mutuel partition and payout math,
// including the per-winner odds preview.
func computeSettlement(sessionID uuid.UUID, outcome string, predictions []*models.Prediction) *models.Settlement {
	settlement := &models.Settlement{
		SessionID: sessionID,
		Outcome:   outcome,
		Winners:   []*models.Prediction{},
		Losers:    []*models.Prediction{},
		Odds:      []models.WinnerOdds{},
	}

	for _, p := range predictions {
		if p.Outcome == outcome {
			settlement.Winners = append(settlement.Winners, p)
		} else {
			settlement.Losers = append(settlement.Losers, p)
			settlement.TotalLoserPoints += p.PointsStaked
		}
	}

	if len(settlement.Winners) > 0 {
		settlement.PointsPerWinner = settlement.TotalLoserPoints / int64(len(settlement.Winners))
		settlement.TotalWinnings = settlement.PointsPerWinner * int64(len(settlement.Winners))
	}

	for _, w := range settlement.Winners {
		settlement.Odds = append(settlement.Odds, models.WinnerOdds{
			MemberID:     w.MemberID,
			PointsStaked: w.PointsStaked,
			Odds:         Odds(settlement.PointsPerWinner, w.PointsStaked),
		})
	}

	return settlement
}

// Odds returns the payout multiple a winner receives relative to their
// stake, as a display-precision decimal. Zero when nothing was staked.
func Odds(pointsPerWinner, pointsStaked int64) decimal.Decimal {
	if pointsStaked == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(pointsPerWinner).
		Div(decimal.NewFromInt(pointsStaked)).
		Round(2)
}

// DistributeWinnings settles the stopped session of (date, gameNumber):
// records the result, credits each winner with the computed share, and
// appends record-only loss entries for losers. The result row is written
// first under a unique session constraint, so a retry cannot double-pay.
// Per-winner payout failures are logged and surfaced in the report, never
// aborting the remaining payouts.
func (s *SettlementService) DistributeWinnings(ctx context.Context, req *models.SettleRequest) (*models.SettlementReport, error) {
	session, err := s.repo.GetStoppedSession(ctx, req.GameDate, req.GameNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotStopped
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	predictions, err := s.repo.ListWagersBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wagers: %w", err)
	}

	settlement := computeSettlement(session.ID, req.Outcome, predictions)

	result := &models.BettingResult{
		ID:              uuid.New(),
		SessionID:       session.ID,
		GameNumber:      session.GameNumber,
		Outcome:         req.Outcome,
		GameDate:        session.GameDate,
		WinnerCount:     len(settlement.Winners),
		LoserCount:      len(settlement.Losers),
		PointsPerWinner: settlement.PointsPerWinner,
		TotalWinnings:   settlement.TotalWinnings,
		CreatedAt:       time.Now(),
	}

	err = s.repo.CreateResult(ctx, result)
	if errors.Is(err, repository.ErrAlreadySettled) {
		return nil, ErrAlreadySettled
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	report := &models.SettlementReport{
		Result:          result,
		PaidMemberIDs:   []uint{},
		FailedMemberIDs: []uint{},
	}

	for _, winner := range settlement.Winners {
		if settlement.PointsPerWinner == 0 {
			// Nothing to redistribute; winners keep their stake debit as-is.
			report.PaidMemberIDs = append(report.PaidMemberIDs, winner.MemberID)
			continue
		}
		err := s.repo.CreditWinner(ctx, winner.MemberID, settlement.PointsPerWinner,
			session.GameNumber, req.Outcome, session.GameDate)
		if err != nil {
			log.Printf("Failed to pay winner %d for session %s: %v", winner.MemberID, session.ID, err)
			report.FailedMemberIDs = append(report.FailedMemberIDs, winner.MemberID)
			continue
		}
		report.PaidMemberIDs = append(report.PaidMemberIDs, winner.MemberID)
	}

	for _, loser := range settlement.Losers {
		if err := s.repo.AppendLossRecord(ctx, loser, req.Outcome); err != nil {
			log.Printf("Failed to record loss for member %d in session %s: %v", loser.MemberID, session.ID, err)
		}
	}

	log.Printf("Session %s settled: outcome %q, %d winners paid %d each (%d failed)",
		session.ID, req.Outcome, len(settlement.Winners), settlement.PointsPerWinner, len(report.FailedMemberIDs))

	return report, nil
}

// GetResult returns the recorded result for a session.
func (s *SettlementService) GetResult(ctx context.Context, sessionID uuid.UUID) (*models.BettingResult, error) {
	result, err := s.repo.GetResultBySession(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
