package handlers

import (
	"errors"
	"net/http"

	"uzazi-salama-backend/section"
	"uzazi-salama-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes the failure envelope. message is kept at the top level
// for browser clients; error carries a machine-readable code.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps service and codec errors onto HTTP statuses
func respondServiceError(c *gin.Context, log *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, section.ErrValidation), errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrExportNotFound):
		respondError(c, http.StatusNotFound, "EXPORT_NOT_FOUND", "Export not found")
	case errors.Is(err, service.ErrUnauthorized):
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to access this user's data")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "EMAIL_TAKEN", "User already exists with this email")
	default:
		log.Errorw("request failed",
			"requestID", c.GetString(requestIDKey),
			"path", c.FullPath(),
			"error", err,
		)
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "Server error")
	}
}
