package handlers

import (
	"net/http"
	"strconv"

	"fanclub-backend/internal/auth"
	"fanclub-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles operator endpoints: member management, platform
// stats and the audit log
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListMembers returns members ordered by points (admin only)
// GET /api/admin/members
func (h *AdminHandler) ListMembers(c *gin.Context) {
	limit, offset := parsePagination(c)

	members, total, err := h.adminService.ListMembers(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	profiles := make([]interface{}, 0, len(members))
	for i := range members {
		profiles = append(profiles, members[i].Profile())
	}

	c.JSON(http.StatusOK, gin.H{"members": profiles, "total": total})
}

// AdjustPoints applies an operator point correction (admin only)
// POST /api/admin/members/:id/points
func (h *AdminHandler) AdjustPoints(c *gin.Context) {
	operatorID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	var req struct {
		Delta  int64  `json:"delta" binding:"required"`
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.adminService.AdjustPoints(operatorID, uint(memberID), req.Delta, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member.Profile())
}

// PromoteMember grants a member the admin role (admin only)
// POST /api/admin/members/:id/promote
func (h *AdminHandler) PromoteMember(c *gin.Context) {
	operatorID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	member, err := h.adminService.PromoteMember(operatorID, uint(memberID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member.Profile())
}

// GetStats returns platform-wide figures (admin only)
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetPlatformStats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetLogs returns the operator audit log (admin only)
// GET /api/admin/logs
func (h *AdminHandler) GetLogs(c *gin.Context) {
	limit, offset := parsePagination(c)

	logs, err := h.adminService.GetOperatorLogs(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
