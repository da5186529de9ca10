package service

import (
	"context"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"moodtracker-backend/models"
	"moodtracker-backend/repository"
	"moodtracker-backend/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExportService(t *testing.T, moods *fakeMoodStore, exports *fakeExportStore) *ExportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewExportService(
		ExportWithMoodStore(moods),
		ExportWithExportStore(exports),
		ExportWithStorage(files),
	)
}

func TestCreateExportWritesCSV(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	moods := &fakeMoodStore{moods: []*models.Mood{
		{ID: uuid.New(), UserID: userID, Mood: models.MoodHappy, Notes: "sunny morning", Date: date},
		{ID: uuid.New(), UserID: userID, Mood: models.MoodCalm, Notes: "", Date: date.Add(time.Hour)},
	}}
	exports := newFakeExportStore()
	svc := newTestExportService(t, moods, exports)

	export, err := svc.CreateExport(context.Background(), userID, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 2, export.EntryCount)
	assert.Equal(t, userID, export.UserID)
	assert.NotEmpty(t, export.StoragePath)

	reader, stored, err := svc.OpenExport(context.Background(), export.ID, userID)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, export.ID, stored.ID)

	records, err := csv.NewReader(reader).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"date", "mood", "notes"}, records[0])
	assert.Equal(t, []string{"2026-08-20T09:30:00Z", "happy", "sunny morning"}, records[1])
	assert.Equal(t, []string{"2026-08-20T10:30:00Z", "calm", ""}, records[2])
}

func TestCreateExportEmptyHistory(t *testing.T) {
	svc := newTestExportService(t, &fakeMoodStore{}, newFakeExportStore())

	export, err := svc.CreateExport(context.Background(), uuid.New(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0, export.EntryCount)

	reader, _, err := svc.OpenExport(context.Background(), export.ID, export.UserID)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "date,mood,notes\n", string(data), "header row only")
}

func TestOpenExportEnforcesOwnership(t *testing.T) {
	userID := uuid.New()
	svc := newTestExportService(t, &fakeMoodStore{}, newFakeExportStore())

	export, err := svc.CreateExport(context.Background(), userID, time.Time{}, time.Time{})
	require.NoError(t, err)

	_, _, err = svc.OpenExport(context.Background(), export.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrExportNotFound)
}

func TestOpenExportUnknownID(t *testing.T) {
	svc := newTestExportService(t, &fakeMoodStore{}, newFakeExportStore())

	_, _, err := svc.OpenExport(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrExportNotFound)
}
