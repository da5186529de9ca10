package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultNWSBaseURL = "https://api.weather.gov"

// UpstreamError reports a failure from an external provider, carrying the
// upstream status code and detail message when the provider supplied them.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("upstream error %d", e.StatusCode)
}

// Forecast is the first forecast period for a grid point, normalized from the
// National Weather Service response. Temperature stays in Fahrenheit and wind
// speed in mph; unit conversion happens in the weather service.
type Forecast struct {
	City             string
	State            string
	TemperatureF     float64
	ShortForecast    string
	DetailedForecast string
	WindSpeedMph     float64
}

// ForecastProvider fetches the current forecast for a coordinate pair
type ForecastProvider interface {
	Fetch(ctx context.Context, lat, lon string) (*Forecast, error)
}

// NWSClient fetches forecasts from the National Weather Service API.
// NWS resolves coordinates to a grid point first, then serves the forecast
// for that grid; both calls require a User-Agent identifying the caller.
type NWSClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NWSOption is a functional option for NWSClient
type NWSOption func(*NWSClient)

// NWSWithBaseURL overrides the API base URL
func NWSWithBaseURL(url string) NWSOption {
	return func(c *NWSClient) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// NWSWithHTTPClient overrides the HTTP client
func NWSWithHTTPClient(client *http.Client) NWSOption {
	return func(c *NWSClient) {
		c.httpClient = client
	}
}

// NewNWSClient creates a new NWS API client
func NewNWSClient(userAgent string, opts ...NWSOption) *NWSClient {
	c := &NWSClient{
		baseURL:    defaultNWSBaseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type nwsPointsResponse struct {
	Properties *struct {
		GridID           string `json:"gridId"`
		GridX            int    `json:"gridX"`
		GridY            int    `json:"gridY"`
		RelativeLocation struct {
			Properties struct {
				City  string `json:"city"`
				State string `json:"state"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

type nwsForecastResponse struct {
	Properties *struct {
		Periods []struct {
			Temperature      float64 `json:"temperature"`
			ShortForecast    string  `json:"shortForecast"`
			DetailedForecast string  `json:"detailedForecast"`
			WindSpeed        string  `json:"windSpeed"`
		} `json:"periods"`
	} `json:"properties"`
}

type nwsProblem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Fetch resolves the grid point for the coordinates and returns the first
// forecast period. Structurally invalid responses are upstream errors, never
// passed through as empty data.
func (c *NWSClient) Fetch(ctx context.Context, lat, lon string) (*Forecast, error) {
	pointsURL := fmt.Sprintf("%s/points/%s,%s", c.baseURL, lat, lon)

	var points nwsPointsResponse
	if err := c.get(ctx, pointsURL, &points); err != nil {
		return nil, err
	}
	if points.Properties == nil || points.Properties.GridID == "" {
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Detail: "invalid response from NWS points endpoint"}
	}

	city := points.Properties.RelativeLocation.Properties.City
	if city == "" {
		city = "Unknown"
	}
	state := points.Properties.RelativeLocation.Properties.State
	if state == "" {
		state = "US"
	}

	forecastURL := fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast",
		c.baseURL, points.Properties.GridID, points.Properties.GridX, points.Properties.GridY)

	var forecast nwsForecastResponse
	if err := c.get(ctx, forecastURL, &forecast); err != nil {
		return nil, err
	}
	if forecast.Properties == nil || len(forecast.Properties.Periods) == 0 {
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Detail: "invalid forecast data from NWS API"}
	}

	period := forecast.Properties.Periods[0]

	return &Forecast{
		City:             city,
		State:            state,
		TemperatureF:     period.Temperature,
		ShortForecast:    period.ShortForecast,
		DetailedForecast: period.DetailedForecast,
		WindSpeedMph:     parseWindSpeedMph(period.WindSpeed),
	}, nil
}

func (c *NWSClient) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{StatusCode: http.StatusBadGateway, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var problem nwsProblem
		detail := "error fetching weather data from NWS"
		if err := json.NewDecoder(resp.Body).Decode(&problem); err == nil {
			if problem.Detail != "" {
				detail = problem.Detail
			} else if problem.Title != "" {
				detail = problem.Title
			}
		}
		return &UpstreamError{StatusCode: resp.StatusCode, Detail: detail}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{StatusCode: http.StatusBadGateway, Detail: "malformed response from NWS API"}
	}

	return nil
}

// parseWindSpeedMph extracts the leading number from NWS wind strings like "10 mph"
func parseWindSpeedMph(s string) float64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	mph, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return mph
}
