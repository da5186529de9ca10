package handlers

import (
	"errors"
	"net/http"

	"moodtracker-backend/models"
	"moodtracker-backend/service"

	"github.com/gin-gonic/gin"
)

// MovieHandler handles HTTP requests for mood-matched movies
type MovieHandler struct {
	movieService *service.MovieService
	dev          bool
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(movieService *service.MovieService, dev bool) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		dev:          dev,
	}
}

// GetMoviesByMood handles GET /api/movie/movies?mood=happy
func (h *MovieHandler) GetMoviesByMood(c *gin.Context) {
	mood := c.Query("mood")
	if mood == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("MISSING_MOOD", "Mood parameter is required", nil, h.dev),
		})
		return
	}

	result, err := h.movieService.MoviesByMood(c.Request.Context(), models.MoodLabel(mood))
	if err != nil {
		h.respondError(c, err, "Server error while fetching movies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Movies,
		"mood":    mood,
		"genreId": result.GenreID,
		"count":   len(result.Movies),
	})
}

// GetMovieDetails handles GET /api/movie/:movieId
func (h *MovieHandler) GetMovieDetails(c *gin.Context) {
	movieID := c.Param("movieId")
	if movieID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("MISSING_MOVIE_ID", "Movie ID is required", nil, h.dev),
		})
		return
	}

	movie, err := h.movieService.MovieDetails(c.Request.Context(), movieID)
	if err != nil {
		h.respondError(c, err, "Server error while fetching movie details")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    movie,
	})
}

func (h *MovieHandler) respondError(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrTMDBNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("CONFIG_ERROR", "TMDB API key not configured", nil, h.dev),
		})
		return
	}
	if status, detail, ok := upstreamStatus(err); ok {
		c.JSON(status, gin.H{
			"success": false,
			"error":   errorBody("UPSTREAM_ERROR", detail, err, h.dev),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   errorBody("FETCH_FAILED", message, err, h.dev),
	})
}
