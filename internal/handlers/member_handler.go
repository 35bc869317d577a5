package handlers

import (
	"net/http"
	"strconv"

	"fanclub-backend/internal/auth"
	"fanclub-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MemberHandler handles member profile and point-history endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// GetProfile returns the authenticated member's profile
// GET /api/members/profile
func (h *MemberHandler) GetProfile(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	member, err := h.memberService.GetMemberByID(memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member.Profile())
}

// GetPointHistory lists the authenticated member's ledger entries
// GET /api/members/points/history
func (h *MemberHandler) GetPointHistory(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := parsePagination(c)

	if gameDate := c.Query("date"); gameDate != "" {
		entries, err := h.memberService.GetPointHistoryByDate(memberID, gameDate)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"history": entries, "total": len(entries)})
		return
	}

	entries, total, err := h.memberService.GetPointHistory(memberID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries, "total": total})
}

// parsePagination reads limit/offset query parameters with sane bounds
func parsePagination(c *gin.Context) (int, int) {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
