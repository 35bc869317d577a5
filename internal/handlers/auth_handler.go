package handlers

import (
	"errors"
	"net/http"

	"fanclub-backend/internal/auth"
	"fanclub-backend/internal/models"
	"fanclub-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	memberService *services.MemberService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(memberService *services.MemberService) *AuthHandler {
	return &AuthHandler{memberService: memberService}
}

// Register creates a new member account
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrLoginIDTaken) || errors.Is(err, services.ErrNicknameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, member.Profile())
}

// Login verifies credentials and returns a JWT
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, member, err := h.memberService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"member": member.Profile(),
	})
}

// GetMe returns the authenticated member's profile
// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	member, err := h.memberService.GetMemberByID(memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}

	c.JSON(http.StatusOK, member.Profile())
}
