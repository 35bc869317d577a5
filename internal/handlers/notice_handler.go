package handlers

import (
	"net/http"
	"strconv"

	"fanclub-backend/internal/auth"
	"fanclub-backend/internal/models"
	"fanclub-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// NoticeHandler handles the notice board endpoints
type NoticeHandler struct {
	noticeService *services.NoticeService
}

func NewNoticeHandler(noticeService *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// ListNotices returns the notice board, pinned first
// GET /api/notices
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	limit, offset := parsePagination(c)

	notices, total, err := h.noticeService.ListNotices(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notices": notices, "total": total})
}

// GetNotice returns a single notice
// GET /api/notices/:id
func (h *NoticeHandler) GetNotice(c *gin.Context) {
	noticeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice id"})
		return
	}

	notice, err := h.noticeService.GetNotice(uint(noticeID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notice)
}

// CreateNotice posts a new notice (admin only)
// POST /api/admin/notices
func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	authorID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notice, err := h.noticeService.CreateNotice(authorID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notice)
}

// UpdateNotice edits a notice (admin only)
// PUT /api/admin/notices/:id
func (h *NoticeHandler) UpdateNotice(c *gin.Context) {
	noticeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice id"})
		return
	}

	var req models.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notice, err := h.noticeService.UpdateNotice(uint(noticeID), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notice)
}

// DeleteNotice removes a notice (admin only)
// DELETE /api/admin/notices/:id
func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	noticeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice id"})
		return
	}

	if err := h.noticeService.DeleteNotice(uint(noticeID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": noticeID})
}
