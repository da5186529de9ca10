package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"moodtracker-backend/middleware"
	"moodtracker-backend/models"
	"moodtracker-backend/service"

	"github.com/gin-gonic/gin"
)

// MoodHandler handles HTTP requests for the mood journal
type MoodHandler struct {
	moodService *service.MoodService
	dev         bool
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(moodService *service.MoodService, dev bool) *MoodHandler {
	return &MoodHandler{
		moodService: moodService,
		dev:         dev,
	}
}

// GetToday handles GET /api/mood/today, returning the most recent entry
func (h *MoodHandler) GetToday(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	mood, err := h.moodService.LatestMood(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("FETCH_FAILED", "Server error while fetching mood", err, h.dev),
		})
		return
	}

	if mood == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    nil,
			"message": "No mood logged yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    mood,
	})
}

// LogMoodRequest represents the request body for logging a mood
type LogMoodRequest struct {
	Mood  string `json:"mood"`
	Notes string `json:"notes"`
}

// PostToday handles POST /api/mood/today, always appending a new entry
func (h *MoodHandler) PostToday(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req LogMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("INVALID_REQUEST", "Mood is required", err, h.dev),
		})
		return
	}
	if req.Mood == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("MISSING_MOOD", "Mood is required", nil, h.dev),
		})
		return
	}

	mood, err := h.moodService.LogMood(c.Request.Context(), userID, models.MoodLabel(req.Mood), req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMood) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   errorBody("INVALID_MOOD", err.Error(), nil, h.dev),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("LOG_FAILED", "Server error while logging mood", err, h.dev),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Mood logged successfully",
		"data":    mood,
	})
}

// GetRange handles GET /api/mood/range for chart queries
func (h *MoodHandler) GetRange(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	start, ok := parseDateParam(c, "startDate")
	if !ok {
		return
	}
	end, ok := parseDateParam(c, "endDate")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   errorBody("INVALID_LIMIT", "limit must be a number", nil, h.dev),
			})
			return
		}
		limit = parsed
	}

	moods, err := h.moodService.MoodRange(c.Request.Context(), userID, start, end, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("FETCH_FAILED", "Server error while fetching moods", err, h.dev),
		})
		return
	}

	if moods == nil {
		moods = []*models.Mood{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    moods,
		"count":   len(moods),
	})
}

// parseDateParam reads an optional RFC 3339 or YYYY-MM-DD query parameter.
// A zero time means the parameter was absent.
func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INVALID_DATE",
			"message": name + " must be an ISO 8601 date",
		},
	})
	return time.Time{}, false
}
