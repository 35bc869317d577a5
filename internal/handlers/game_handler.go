package handlers

import (
	"net/http"
	"strconv"

	"fanclub-backend/internal/models"
	"fanclub-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GameHandler handles game schedule endpoints
type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// ListGames returns the schedule for a date
// GET /api/games/:date
func (h *GameHandler) ListGames(c *gin.Context) {
	gameDate := c.Param("date")

	games, err := h.gameService.ListGamesByDate(gameDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": gameDate, "games": games})
}

// CreateGame adds a game to the schedule (admin only)
// POST /api/admin/games
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req models.GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.CreateGame(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

// DeleteGame removes a game from the schedule (admin only)
// DELETE /api/admin/games/:date/:number
func (h *GameHandler) DeleteGame(c *gin.Context) {
	gameDate := c.Param("date")
	gameNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game number"})
		return
	}

	if err := h.gameService.DeleteGame(gameDate, gameNumber); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": gin.H{"date": gameDate, "game_number": gameNumber}})
}
