package handlers

import (
	"errors"
	"net/http"

	"moodtracker-backend/crypto"
	"moodtracker-backend/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for signup and signin
type AuthHandler struct {
	authService *service.AuthService
	dev         bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, dev bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		dev:         dev,
	}
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("INVALID_REQUEST", "Please provide name, email, and password", err, h.dev),
		})
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   errorBody("MISSING_FIELDS", "Please provide name, email, and password", nil, h.dev),
			})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   errorBody("EMAIL_TAKEN", "User with this email already exists", nil, h.dev),
			})
		case errors.Is(err, crypto.ErrSecretNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   errorBody("CONFIG_ERROR", "Server configuration error. Please contact administrator.", nil, h.dev),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   errorBody("SIGNUP_FAILED", "Server error during signup", err, h.dev),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"token":   result.Token,
		"user":    result.User.Public(),
	})
}

// SigninRequest represents the request body for signin. Either email+password
// or a Google ID token must be provided.
type SigninRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	GoogleToken string `json:"googleToken"`
}

// Signin handles POST /api/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("INVALID_REQUEST", "Please provide email and password", err, h.dev),
		})
		return
	}

	var result *service.AuthResult
	var err error
	if req.GoogleToken != "" {
		result, err = h.authService.SigninWithGoogle(c.Request.Context(), req.GoogleToken)
	} else {
		result, err = h.authService.Signin(c.Request.Context(), req.Email, req.Password)
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   errorBody("MISSING_FIELDS", "Please provide email and password", nil, h.dev),
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   errorBody("INVALID_CREDENTIALS", "Invalid email or password", nil, h.dev),
			})
		case errors.Is(err, crypto.ErrInvalidGoogleToken):
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   errorBody("INVALID_GOOGLE_TOKEN", "Invalid Google sign-in token", err, h.dev),
			})
		case errors.Is(err, crypto.ErrSecretNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   errorBody("CONFIG_ERROR", "Server configuration error. Please contact administrator.", nil, h.dev),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   errorBody("SIGNIN_FAILED", "Server error during sign in", err, h.dev),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sign in successful",
		"token":   result.Token,
		"user":    result.User.Public(),
	})
}
