package services

import (
	"errors"

	"fanclub-backend/internal/models"

	"gorm.io/gorm"
)

// NoticeService handles the operator notice board
type NoticeService struct {
	db *gorm.DB
}

func NewNoticeService(db *gorm.DB) *NoticeService {
	return &NoticeService{db: db}
}

// ListNotices returns notices, pinned first then newest
func (s *NoticeService) ListNotices(limit, offset int) ([]models.Notice, int64, error) {
	var total int64
	if err := s.db.Model(&models.Notice{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notices []models.Notice
	err := s.db.Order("pinned DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notices).Error
	if err != nil {
		return nil, 0, err
	}

	return notices, total, nil
}

// GetNotice returns one notice and bumps its view count
func (s *NoticeService) GetNotice(noticeID uint) (*models.Notice, error) {
	var notice models.Notice
	err := s.db.First(&notice, noticeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoticeNotFound
	}
	if err != nil {
		return nil, err
	}

	s.db.Model(&notice).Update("view_count", gorm.Expr("view_count + 1"))
	notice.ViewCount++

	return &notice, nil
}

// CreateNotice posts a new notice
func (s *NoticeService) CreateNotice(authorID uint, req *models.NoticeRequest) (*models.Notice, error) {
	notice := &models.Notice{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
		Pinned:   req.Pinned,
	}
	if err := s.db.Create(notice).Error; err != nil {
		return nil, err
	}
	return notice, nil
}

// UpdateNotice edits an existing notice
func (s *NoticeService) UpdateNotice(noticeID uint, req *models.NoticeRequest) (*models.Notice, error) {
	var notice models.Notice
	err := s.db.First(&notice, noticeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoticeNotFound
	}
	if err != nil {
		return nil, err
	}

	notice.Title = req.Title
	notice.Content = req.Content
	notice.Pinned = req.Pinned

	if err := s.db.Save(&notice).Error; err != nil {
		return nil, err
	}
	return &notice, nil
}

// DeleteNotice removes a notice
func (s *NoticeService) DeleteNotice(noticeID uint) error {
	res := s.db.Delete(&models.Notice{}, noticeID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoticeNotFound
	}
	return nil
}
