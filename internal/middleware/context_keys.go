package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = contextKey("userID")
	partnerIDKey = contextKey("partnerID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx retrieves the authenticated principal from a request context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetPartnerIDFromContext returns the partner application a token was issued to,
// or "" for tokens of the first-party app.
func GetPartnerIDFromContext(c *gin.Context) string {
	partnerID, _ := c.Request.Context().Value(partnerIDKey).(string)
	return partnerID
}
