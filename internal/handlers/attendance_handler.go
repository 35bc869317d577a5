package handlers

import (
	"net/http"

	"fanclub-backend/internal/auth"
	"fanclub-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler handles daily check-in endpoints
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// CheckIn records today's attendance for the authenticated member
// POST /api/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	attendance, err := h.attendanceService.CheckIn(memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attendance)
}

// GetAttendance lists the authenticated member's check-ins
// GET /api/attendance
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := parsePagination(c)

	records, total, err := h.attendanceService.GetAttendance(memberID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": records, "total": total})
}
