package handlers

import (
	"net/http"

	"moodtracker-backend/models"
	"moodtracker-backend/service"

	"github.com/gin-gonic/gin"
)

// ReflectionHandler handles HTTP requests for AI reflection recommendations
type ReflectionHandler struct {
	reflectionService *service.ReflectionService
	dev               bool
}

// NewReflectionHandler creates a new reflection handler
func NewReflectionHandler(reflectionService *service.ReflectionService, dev bool) *ReflectionHandler {
	return &ReflectionHandler{
		reflectionService: reflectionService,
		dev:               dev,
	}
}

// RecommendationRequest represents the request body for a reflection
type RecommendationRequest struct {
	Mood    string                     `json:"mood"`
	Weather *service.ReflectionWeather `json:"weather"`
}

// GetRecommendation handles POST /api/reflection/recommendation
func (h *ReflectionHandler) GetRecommendation(c *gin.Context) {
	var req RecommendationRequest
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

	reflection, err := h.reflectionService.Recommend(c.Request.Context(), models.MoodLabel(req.Mood), req.Weather)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("REFLECTION_FAILED", "Server error while fetching reflection recommendation", err, h.dev),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reflection,
	})
}
