package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes err as JSON. AppErrors keep their status and reason;
// anything else is reported as a 500 without its details.
func respondError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error(msg, slog.String("error", err.Error()))
		} else {
			logger.Warn(msg, slog.String("reason", appErr.Reason), slog.String("error", err.Error()))
		}
		c.JSON(appErr.Code, appErr)
		return
	}
	logger.Error(msg, slog.String("error", err.Error()))
	internal := apperrors.NewInternalServerError(msg)
	c.JSON(internal.Code, internal)
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}

// requireOwnUser checks that the path user is the authenticated principal.
func requireOwnUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	loggedInUserID, ok := getUserIDOrAbort(c, logger)
	if !ok {
		return "", false
	}
	userID := c.Param("userID")
	if loggedInUserID != userID {
		logger.Warn("User forbidden to access another user's data", slog.String("accessor_id", loggedInUserID), slog.String("target_id", userID))
		appErr := apperrors.NewForbiddenError("Forbidden")
		c.JSON(appErr.Code, appErr)
		return "", false
	}
	return userID, true
}

func getUserIDOrAbort(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		appErr := apperrors.NewUnauthorizedError("Unauthorized")
		c.JSON(appErr.Code, appErr)
		return "", false
	}
	return userID, true
}
