package service

import (
	"context"
	"time"

	"moodtracker-backend/crypto"
	"moodtracker-backend/models"
	"moodtracker-backend/repository"

	"github.com/google/uuid"
)

// fakeMoodStore is an in-memory MoodStore for service tests
type fakeMoodStore struct {
	moods     []*models.Mood
	createErr error
}

func (f *fakeMoodStore) Create(ctx context.Context, mood *models.Mood) error {
	if f.createErr != nil {
		return f.createErr
	}
	mood.ID = uuid.New()
	mood.CreatedAt = time.Now()
	f.moods = append(f.moods, mood)
	return nil
}

func (f *fakeMoodStore) GetLatest(ctx context.Context, userID uuid.UUID) (*models.Mood, error) {
	var latest *models.Mood
	for _, m := range f.moods {
		if m.UserID != userID {
			continue
		}
		if latest == nil || m.Date.After(latest.Date) {
			latest = m
		}
	}
	if latest == nil {
		return nil, repository.ErrMoodNotFound
	}
	return latest, nil
}

func (f *fakeMoodStore) GetRange(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]*models.Mood, error) {
	var out []*models.Mood
	for _, m := range f.moods {
		if m.UserID != userID {
			continue
		}
		if m.Date.Before(start) || m.Date.After(end) {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// fakeWeatherStore is an in-memory WeatherStore for service tests
type fakeWeatherStore struct {
	snapshots []*models.Weather
}

func (f *fakeWeatherStore) Create(ctx context.Context, w *models.Weather) error {
	w.ID = uuid.New()
	w.CreatedAt = time.Now()
	f.snapshots = append(f.snapshots, w)
	return nil
}

func (f *fakeWeatherStore) GetRecent(ctx context.Context, userID uuid.UUID, since time.Time) (*models.Weather, error) {
	var recent *models.Weather
	for _, w := range f.snapshots {
		if w.UserID != userID || w.Date.Before(since) {
			continue
		}
		if recent == nil || w.Date.After(recent.Date) {
			recent = w
		}
	}
	if recent == nil {
		return nil, repository.ErrWeatherNotFound
	}
	return recent, nil
}

func (f *fakeWeatherStore) List(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Weather, error) {
	var out []*models.Weather
	for i := len(f.snapshots) - 1; i >= 0 && len(out) < limit; i-- {
		if f.snapshots[i].UserID == userID {
			out = append(out, f.snapshots[i])
		}
	}
	return out, nil
}

// countingProvider counts Fetch calls and returns a fixed forecast
type countingProvider struct {
	forecast *Forecast
	err      error
	calls    int
}

func (p *countingProvider) Fetch(ctx context.Context, lat, lon string) (*Forecast, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.forecast, nil
}

// fakeUserStore is an in-memory UserStore for auth tests
type fakeUserStore struct {
	users     map[uuid.UUID]*models.User
	createErr error
	linkErr   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if user.GoogleID != nil && u.GoogleID != nil && *u.GoogleID == *user.GoogleID {
			return repository.ErrDuplicateGoogleID
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.GoogleID = &googleID
	return nil
}

// fakeGoogleVerifier returns a fixed identity or error
type fakeGoogleVerifier struct {
	identity *crypto.GoogleIdentity
	err      error
}

func (f *fakeGoogleVerifier) Verify(ctx context.Context, token string) (*crypto.GoogleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

// fakeExportStore is an in-memory ExportStore
type fakeExportStore struct {
	exports map[uuid.UUID]*models.MoodExport
}

func newFakeExportStore() *fakeExportStore {
	return &fakeExportStore{exports: map[uuid.UUID]*models.MoodExport{}}
}

func (f *fakeExportStore) Create(ctx context.Context, export *models.MoodExport) error {
	export.CreatedAt = time.Now()
	f.exports[export.ID] = export
	return nil
}

func (f *fakeExportStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.MoodExport, error) {
	export, ok := f.exports[id]
	if !ok || export.UserID != userID {
		return nil, repository.ErrExportNotFound
	}
	return export, nil
}

// fakeGenerator returns canned text for reflection tests
type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
