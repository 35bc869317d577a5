package services

import (
	"errors"
	"fmt"
	"log"

	"fanclub-backend/internal/auth"
	"fanclub-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MemberService handles registration, login and member-facing reads
type MemberService struct {
	db            *gorm.DB
	initialPoints int64
}

// NewMemberService creates a new MemberService. New members start with
// initialPoints on their balance.
func NewMemberService(db *gorm.DB, initialPoints int64) *MemberService {
	return &MemberService{db: db, initialPoints: initialPoints}
}

// Register creates a new member with the configured starting balance
func (s *MemberService) Register(req *models.RegisterRequest) (*models.Member, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &models.Member{
		LoginID:      req.LoginID,
		PasswordHash: string(hash),
		Nickname:     req.Nickname,
		Points:       s.initialPoints,
		Role:         "member",
	}

	if err := s.db.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Member
			if s.db.Where("login_id = ?", req.LoginID).First(&existing).Error == nil {
				return nil, ErrLoginIDTaken
			}
			return nil, ErrNicknameTaken
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	log.Printf("Member registered: %s (id %d)", member.LoginID, member.ID)
	return member, nil
}

// Login verifies credentials and issues a JWT
func (s *MemberService) Login(req *models.LoginRequest) (string, *models.Member, error) {
	var member models.Member
	err := s.db.Where("login_id = ?", req.LoginID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(member.ID, member.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, &member, nil
}

// GetMemberByID retrieves a member by ID
func (s *MemberService) GetMemberByID(memberID uint) (*models.Member, error) {
	var member models.Member
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetPointHistory retrieves a member's ledger entries, newest first
func (s *MemberService) GetPointHistory(memberID uint, limit, offset int) ([]models.PointHistory, int64, error) {
	var total int64
	err := s.db.Model(&models.PointHistory{}).
		Where("member_id = ?", memberID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var entries []models.PointHistory
	err = s.db.Where("member_id = ?", memberID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// GetPointHistoryByDate retrieves a member's ledger entries for one date
func (s *MemberService) GetPointHistoryByDate(memberID uint, gameDate string) ([]models.PointHistory, error) {
	var entries []models.PointHistory
	err := s.db.Where("member_id = ? AND game_date = ?", memberID, gameDate).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
