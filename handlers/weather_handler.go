package handlers

import (
	"net/http"
	"strconv"

	"moodtracker-backend/middleware"
	"moodtracker-backend/models"
	"moodtracker-backend/service"

	"github.com/gin-gonic/gin"
)

// WeatherHandler handles HTTP requests for weather snapshots
type WeatherHandler struct {
	weatherService *service.WeatherService
	dev            bool
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherService *service.WeatherService, dev bool) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		dev:            dev,
	}
}

// GetCurrent handles GET /api/weather/current
func (h *WeatherHandler) GetCurrent(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	result, err := h.weatherService.CurrentWeather(c.Request.Context(), userID, c.Query("lat"), c.Query("lon"))
	if err != nil {
		if status, detail, ok := upstreamStatus(err); ok {
			c.JSON(status, gin.H{
				"success": false,
				"error":   errorBody("UPSTREAM_ERROR", detail, err, h.dev),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("FETCH_FAILED", "Server error while fetching weather", err, h.dev),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Weather,
		"cached":  result.Cached,
	})
}

// GetHistory handles GET /api/weather/history
func (h *WeatherHandler) GetHistory(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

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

	history, err := h.weatherService.WeatherHistory(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("FETCH_FAILED", "Server error while fetching weather history", err, h.dev),
		})
		return
	}

	if history == nil {
		history = []*models.Weather{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
		"count":   len(history),
	})
}
