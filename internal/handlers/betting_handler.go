package handlers

import (
	"net/http"

	"fanclub-backend/internal/auth"
	"fanclub-backend/internal/models"
	"fanclub-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BettingHandler exposes the betting engine: system toggle, session
// lifecycle, wagers, and settlement.
type BettingHandler struct {
	bettingService    *services.BettingService
	settlementService *services.SettlementService
}

func NewBettingHandler(bettingService *services.BettingService, settlementService *services.SettlementService) *BettingHandler {
	return &BettingHandler{
		bettingService:    bettingService,
		settlementService: settlementService,
	}
}

// Activate turns the system-wide betting flag on
// POST /api/betting/activate
func (h *BettingHandler) Activate(c *gin.Context) {
	cfg, err := h.bettingService.Activate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Deactivate turns the system-wide betting flag off
// POST /api/betting/deactivate
func (h *BettingHandler) Deactivate(c *gin.Context) {
	cfg, err := h.bettingService.Deactivate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Status returns the current betting toggle
// GET /api/betting/status
func (h *BettingHandler) Status(c *gin.Context) {
	cfg, err := h.bettingService.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// StartSession opens a betting session for a game
// POST /api/betting/start
func (h *BettingHandler) StartSession(c *gin.Context) {
	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.bettingService.StartSession(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// StopSession closes the active session for a game
// POST /api/betting/stop
func (h *BettingHandler) StopSession(c *gin.Context) {
	var req models.StopSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.bettingService.StopSession(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Predict places the authenticated member's wager on a session
// POST /api/betting/predict
func (h *BettingHandler) Predict(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.PlaceWagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.bettingService.PlaceWager(c.Request.Context(), memberID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prediction)
}

// CalculateWinnings previews the settlement for a declared outcome without
// mutating anything
// POST /api/betting/calculate-winnings
func (h *BettingHandler) CalculateWinnings(c *gin.Context) {
	var req models.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settlement, err := h.settlementService.CalculateWinnings(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// DistributeWinnings declares the outcome and commits payouts. The payout
// set is recomputed server-side from the recorded wagers; a second call for
// the same session returns 409 without paying again.
// POST /api/betting/distribute-winnings
func (h *BettingHandler) DistributeWinnings(c *gin.Context) {
	var req models.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.settlementService.DistributeWinnings(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetSessions lists all sessions for a date
// GET /api/betting/sessions/:date
func (h *BettingHandler) GetSessions(c *gin.Context) {
	gameDate := c.Param("date")

	sessions, err := h.bettingService.ListSessions(c.Request.Context(), gameDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     gameDate,
		"sessions": sessions,
	})
}

// GetSessionWagers lists all wagers recorded against a session
// GET /api/betting/sessions/:date/wagers/:sessionId
func (h *BettingHandler) GetSessionWagers(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	wagers, err := h.bettingService.ListWagers(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"wagers":     wagers,
	})
}

// GetSessionResult returns the recorded result for a settled session
// GET /api/betting/results/:sessionId
func (h *BettingHandler) GetSessionResult(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	result, err := h.settlementService.GetResult(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
