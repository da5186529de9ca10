package handlers

import (
	"net/http"

	"moodtracker-backend/middleware"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for the user profile
type UserHandler struct{}

// NewUserHandler creates a new user handler
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me handles GET /api/user/me
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   errorBody("USER_NOT_FOUND", "User not found", nil, false),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user.Public(),
	})
}
