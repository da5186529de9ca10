package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"moodtracker-backend/models"
	"moodtracker-backend/storage"

	"github.com/google/uuid"
)

// Export at most a year of hourly entries in one file
const exportRangeLimit = 8760

// ExportStore is the persistence contract for export records
type ExportStore interface {
	Create(ctx context.Context, export *models.MoodExport) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.MoodExport, error)
}

// ExportService builds CSV exports of a user's mood history and stores them
// through the configured storage backend.
type ExportService struct {
	moods   MoodStore
	exports ExportStore
	files   storage.Storage
	now     func() time.Time
}

// ExportServiceOption is a functional option for ExportService
type ExportServiceOption func(*ExportService)

// ExportWithMoodStore sets the mood store
func ExportWithMoodStore(moods MoodStore) ExportServiceOption {
	return func(s *ExportService) {
		s.moods = moods
	}
}

// ExportWithExportStore sets the export record store
func ExportWithExportStore(exports ExportStore) ExportServiceOption {
	return func(s *ExportService) {
		s.exports = exports
	}
}

// ExportWithStorage sets the file storage backend
func ExportWithStorage(files storage.Storage) ExportServiceOption {
	return func(s *ExportService) {
		s.files = files
	}
}

// NewExportService creates a new export service
func NewExportService(opts ...ExportServiceOption) *ExportService {
	s := &ExportService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateExport writes the user's mood history for [start, end] as CSV to
// storage and records the export. Zero bounds default to the trailing year.
func (s *ExportService) CreateExport(ctx context.Context, userID uuid.UUID, start, end time.Time) (*models.MoodExport, error) {
	if start.IsZero() || end.IsZero() {
		end = s.now()
		start = end.AddDate(-1, 0, 0)
	}

	moods, err := s.moods.GetRange(ctx, userID, start, end, exportRangeLimit)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "mood", "notes"}); err != nil {
		return nil, err
	}
	for _, mood := range moods {
		record := []string{
			mood.Date.UTC().Format(time.RFC3339),
			string(mood.Mood),
			mood.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	exportID := uuid.New()
	filename := fmt.Sprintf("moods_%s.csv", s.now().UTC().Format("20060102T150405Z"))

	storagePath, err := s.files.Upload(ctx, exportID, filename, &buf)
	if err != nil {
		return nil, err
	}

	export := &models.MoodExport{
		ID:          exportID,
		UserID:      userID,
		StoragePath: storagePath,
		EntryCount:  len(moods),
	}
	if err := s.exports.Create(ctx, export); err != nil {
		return nil, err
	}

	return export, nil
}

// OpenExport streams back a previously generated export owned by the user
func (s *ExportService) OpenExport(ctx context.Context, id, userID uuid.UUID) (io.ReadCloser, *models.MoodExport, error) {
	export, err := s.exports.GetByID(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.files.Download(ctx, export.StoragePath)
	if err != nil {
		return nil, nil, err
	}

	return reader, export, nil
}
