package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"moodtracker-backend/models"
	"moodtracker-backend/repository"

	"github.com/google/uuid"
)

// Fallback coordinates (New York) used when the client sends none
const (
	defaultLatitude  = "40.7128"
	defaultLongitude = "-74.0060"
)

// weatherFreshness is the window during which a stored snapshot is served
// without hitting the external provider.
const weatherFreshness = time.Hour

const mphToMetersPerSecond = 0.44704

// WeatherStore is the persistence contract for weather snapshots
type WeatherStore interface {
	Create(ctx context.Context, w *models.Weather) error
	GetRecent(ctx context.Context, userID uuid.UUID, since time.Time) (*models.Weather, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Weather, error)
}

// WeatherService handles the weather snapshot cache
type WeatherService struct {
	store    WeatherStore
	provider ForecastProvider
	now      func() time.Time
}

// WeatherServiceOption is a functional option for WeatherService
type WeatherServiceOption func(*WeatherService)

// WeatherWithStore sets the snapshot store
func WeatherWithStore(store WeatherStore) WeatherServiceOption {
	return func(s *WeatherService) {
		s.store = store
	}
}

// WeatherWithProvider sets the external forecast provider
func WeatherWithProvider(provider ForecastProvider) WeatherServiceOption {
	return func(s *WeatherService) {
		s.provider = provider
	}
}

// WeatherWithClock overrides the time source
func WeatherWithClock(now func() time.Time) WeatherServiceOption {
	return func(s *WeatherService) {
		s.now = now
	}
}

// NewWeatherService creates a new weather service
func NewWeatherService(opts ...WeatherServiceOption) *WeatherService {
	s := &WeatherService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentWeatherResult carries a snapshot and whether it was served from cache
type CurrentWeatherResult struct {
	Weather *models.Weather
	Cached  bool
}

// CurrentWeather returns the user's freshest snapshot if it is under an hour
// old, otherwise fetches from the provider, persists a new snapshot and
// returns it. At most one provider call per user per freshness window.
func (s *WeatherService) CurrentWeather(ctx context.Context, userID uuid.UUID, lat, lon string) (*CurrentWeatherResult, error) {
	cutoff := s.now().Add(-weatherFreshness)

	recent, err := s.store.GetRecent(ctx, userID, cutoff)
	if err == nil {
		return &CurrentWeatherResult{Weather: recent, Cached: true}, nil
	}
	if !errors.Is(err, repository.ErrWeatherNotFound) {
		return nil, err
	}

	if lat == "" {
		lat = defaultLatitude
	}
	if lon == "" {
		lon = defaultLongitude
	}

	forecast, err := s.provider.Fetch(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	tempC := fahrenheitToCelsius(forecast.TemperatureF)
	feelsLike := tempC // NWS forecasts carry no feels-like reading
	condition, icon := classifyForecast(forecast.ShortForecast)

	description := forecast.DetailedForecast
	if description == "" {
		description = forecast.ShortForecast
	}
	if description == "" {
		description = "Unknown"
	}

	snapshot := &models.Weather{
		UserID:      userID,
		City:        forecast.City,
		Country:     "US", // NWS covers US locations only
		Temperature: tempC,
		FeelsLike:   &feelsLike,
		Description: description,
		Main:        condition,
		Icon:        icon,
		WindSpeed:   forecast.WindSpeedMph * mphToMetersPerSecond,
		Date:        s.now(),
	}

	if err := s.store.Create(ctx, snapshot); err != nil {
		return nil, err
	}

	return &CurrentWeatherResult{Weather: snapshot, Cached: false}, nil
}

// WeatherHistory returns stored snapshots, newest first, capped at limit
func (s *WeatherService) WeatherHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Weather, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.List(ctx, userID, limit)
}

// fahrenheitToCelsius converts and rounds to the nearest integer
func fahrenheitToCelsius(f float64) int {
	return int(math.Round((f - 32) * 5 / 9))
}

// classifyForecast maps free-text forecast wording to a coarse condition and
// icon code. Keyword order is significant: the first matching branch wins, so
// "rain and thunder" classifies as Rain.
func classifyForecast(shortForecast string) (models.WeatherCondition, string) {
	text := strings.ToLower(shortForecast)

	switch {
	case strings.Contains(text, "sunny") || strings.Contains(text, "clear"):
		return models.ConditionClear, "01d"
	case strings.Contains(text, "cloud"):
		return models.ConditionClouds, "03d"
	case strings.Contains(text, "rain") || strings.Contains(text, "shower"):
		return models.ConditionRain, "10d"
	case strings.Contains(text, "snow"):
		return models.ConditionSnow, "13d"
	case strings.Contains(text, "thunder"):
		return models.ConditionThunderstorm, "11d"
	}

	return models.ConditionUnknown, "01d"
}
