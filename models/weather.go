package models

import (
	"time"

	"github.com/google/uuid"
)

// WeatherCondition is the coarse condition category a forecast is classified into
type WeatherCondition string

const (
	ConditionClear        WeatherCondition = "Clear"
	ConditionClouds       WeatherCondition = "Clouds"
	ConditionRain         WeatherCondition = "Rain"
	ConditionSnow         WeatherCondition = "Snow"
	ConditionThunderstorm WeatherCondition = "Thunderstorm"
	ConditionUnknown      WeatherCondition = "Unknown"
)

// Weather represents a persisted snapshot of an external weather reading.
// Snapshots accumulate as an append-only history; only the freshest one
// (within the last hour) is served from cache.
type Weather struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	City        string           `json:"city"`
	Country     string           `json:"country"`
	Temperature int              `json:"temperature"` // Celsius
	FeelsLike   *int             `json:"feels_like,omitempty"`
	Description string           `json:"description"`
	Main        WeatherCondition `json:"main"`
	Icon        string           `json:"icon,omitempty"`
	Humidity    *int             `json:"humidity,omitempty"`
	WindSpeed   float64          `json:"wind_speed"` // m/s
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"created_at"`
}
