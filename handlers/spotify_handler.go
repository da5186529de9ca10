package handlers

import (
	"errors"
	"net/http"

	"moodtracker-backend/models"
	"moodtracker-backend/service"

	"github.com/gin-gonic/gin"
)

// SpotifyHandler handles HTTP requests for mood-matched playlists
type SpotifyHandler struct {
	spotifyService *service.SpotifyService
	dev            bool
}

// NewSpotifyHandler creates a new Spotify handler
func NewSpotifyHandler(spotifyService *service.SpotifyService, dev bool) *SpotifyHandler {
	return &SpotifyHandler{
		spotifyService: spotifyService,
		dev:            dev,
	}
}

// GetPlaylists handles GET /api/spotify/playlists?mood=happy
func (h *SpotifyHandler) GetPlaylists(c *gin.Context) {
	mood := c.Query("mood")
	if mood == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("MISSING_MOOD", "Mood parameter is required", nil, h.dev),
		})
		return
	}

	playlists, err := h.spotifyService.PlaylistsByMood(c.Request.Context(), models.MoodLabel(mood))
	if err != nil {
		h.respondError(c, err, "Server error while fetching Spotify playlists")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    playlists,
		"mood":    mood,
		"count":   len(playlists),
	})
}

// GetPlaylistTracks handles GET /api/spotify/playlists/:playlistId/tracks
func (h *SpotifyHandler) GetPlaylistTracks(c *gin.Context) {
	playlistID := c.Param("playlistId")
	if playlistID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("MISSING_PLAYLIST_ID", "Playlist ID is required", nil, h.dev),
		})
		return
	}

	tracks, err := h.spotifyService.PlaylistTracks(c.Request.Context(), playlistID)
	if err != nil {
		h.respondError(c, err, "Server error while fetching playlist tracks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tracks,
		"count":   len(tracks),
	})
}

func (h *SpotifyHandler) respondError(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrSpotifyNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("CONFIG_ERROR", "Spotify credentials not configured", nil, h.dev),
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
