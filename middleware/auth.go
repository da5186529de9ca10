package middleware

import (
	"context"
	"net/http"
	"strings"

	"moodtracker-backend/crypto"
	"moodtracker-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by Authenticate for downstream handlers
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "userId"
)

// UserResolver resolves a verified token's user id to a stored identity
type UserResolver interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Authenticate returns middleware that gates every protected route. It
// requires an Authorization header of exactly "Bearer <token>", verifies the
// token, resolves the user, and aborts with 401 before any handler runs when
// any step fails. Expired and malformed tokens get distinct messages so
// clients can tell "log in again" from "bad token".
func Authenticate(secret string, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, http.StatusUnauthorized, "NO_TOKEN", "No token provided")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		if secret == "" {
			abort(c, http.StatusInternalServerError, "CONFIG_ERROR", "Server configuration error")
			return
		}

		status, userID := crypto.VerifyToken(token, secret)
		switch status {
		case crypto.TokenExpired:
			abort(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Token expired")
			return
		case crypto.TokenMalformed:
			abort(c, http.StatusUnauthorized, "TOKEN_INVALID", "Invalid token")
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			abort(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// UserFromContext returns the authenticated user attached by Authenticate
func UserFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// UserIDFromContext returns the authenticated user id attached by Authenticate
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
