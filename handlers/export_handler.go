package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"moodtracker-backend/middleware"
	"moodtracker-backend/repository"
	"moodtracker-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExportHandler handles HTTP requests for mood history exports
type ExportHandler struct {
	exportService *service.ExportService
	dev           bool
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService, dev bool) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		dev:           dev,
	}
}

// CreateExportRequest represents the request body for creating an export
type CreateExportRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CreateExport handles POST /api/mood/export
func (h *ExportHandler) CreateExport(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("INVALID_REQUEST", "Invalid export request", err, h.dev),
		})
		return
	}

	var start, end time.Time
	if req.StartDate != "" && req.EndDate != "" {
		var err error
		start, err = parseExportDate(req.StartDate)
		if err == nil {
			end, err = parseExportDate(req.EndDate)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   errorBody("INVALID_DATE", "startDate and endDate must be ISO 8601 dates", err, h.dev),
			})
			return
		}
	}

	export, err := h.exportService.CreateExport(c.Request.Context(), userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("EXPORT_FAILED", "Server error while creating export", err, h.dev),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    export,
	})
}

// DownloadExport handles GET /api/mood/export/:id
func (h *ExportHandler) DownloadExport(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	exportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errorBody("INVALID_ID", "Invalid export ID format", nil, h.dev),
		})
		return
	}

	reader, export, err := h.exportService.OpenExport(c.Request.Context(), exportID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrExportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   errorBody("NOT_FOUND", "Mood export not found", nil, h.dev),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   errorBody("DOWNLOAD_FAILED", "Server error while downloading export", err, h.dev),
		})
		return
	}
	defer reader.Close()

	filename := fmt.Sprintf("moods_%s.csv", export.CreatedAt.UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}

func parseExportDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
