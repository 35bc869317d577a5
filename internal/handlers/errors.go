package handlers

import (
	"errors"
	"net/http"

	"fanclub-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. Unknown
// errors become a generic 500 so storage details never leak to clients.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInsufficientBalance):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrSystemDisabled):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrNoticeNotFound),
		errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrResultNotFound),
		errors.Is(err, services.ErrSessionNotStopped):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateWager),
		errors.Is(err, services.ErrDuplicateSession),
		errors.Is(err, services.ErrDuplicateGame),
		errors.Is(err, services.ErrAlreadySettled),
		errors.Is(err, services.ErrAlreadyCheckedIn):
		status = http.StatusConflict
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
