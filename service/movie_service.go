package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"moodtracker-backend/models"
)

const (
	defaultTMDBAPIURL = "https://api.themoviedb.org/3"
	tmdbImageURL      = "https://image.tmdb.org/t/p"
)

// ErrTMDBNotConfigured is returned when the TMDB API key is unset
var ErrTMDBNotConfigured = errors.New("TMDB API key not configured")

// Movie is a mood-matched movie suggestion in response shape
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	Rating       float64 `json:"rating"`
	VoteCount    int     `json:"vote_count"`
	Runtime      int     `json:"runtime,omitempty"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	TMDBURL      string  `json:"tmdb_url"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
	Homepage     string  `json:"homepage,omitempty"`
}

// MovieService suggests movies matched to a logged mood via TMDB
type MovieService struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewMovieService creates a new TMDB-backed movie service
func NewMovieService(apiKey string) *MovieService {
	return &MovieService{
		apiKey:     apiKey,
		apiURL:     defaultTMDBAPIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// moodGenreID maps a mood label to a TMDB genre
func moodGenreID(mood models.MoodLabel) int {
	switch mood {
	case models.MoodHappy:
		return 35 // Comedy
	case models.MoodCalm:
		return 16 // Animation
	case models.MoodSad:
		return 18 // Drama
	case models.MoodAngry:
		return 28 // Action
	case models.MoodNeutral:
		return 99 // Documentary
	}
	return 35
}

type tmdbDiscoverResponse struct {
	Results []*struct {
		ID           int     `json:"id"`
		Title        string  `json:"title"`
		Overview     string  `json:"overview"`
		ReleaseDate  string  `json:"release_date"`
		VoteAverage  float64 `json:"vote_average"`
		VoteCount    int     `json:"vote_count"`
		PosterPath   string  `json:"poster_path"`
		BackdropPath string  `json:"backdrop_path"`
		GenreIDs     []int   `json:"genre_ids"`
	} `json:"results"`
}

// MoviesByMoodResult carries the suggestions and the genre they came from
type MoviesByMoodResult struct {
	Movies  []Movie
	GenreID int
}

// MoviesByMood lists up to 20 popular movies in the genre mapped to the mood
func (s *MovieService) MoviesByMood(ctx context.Context, mood models.MoodLabel) (*MoviesByMoodResult, error) {
	if s.apiKey == "" {
		return nil, ErrTMDBNotConfigured
	}

	genreID := moodGenreID(mood)
	discoverURL := fmt.Sprintf("%s/discover/movie?api_key=%s&with_genres=%d&sort_by=popularity.desc&page=1",
		s.apiURL, url.QueryEscape(s.apiKey), genreID)

	var discover tmdbDiscoverResponse
	if err := s.get(ctx, discoverURL, &discover); err != nil {
		return nil, err
	}
	if discover.Results == nil {
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Detail: "invalid response from TMDB API"}
	}

	movies := make([]Movie, 0, 20)
	for _, result := range discover.Results {
		if result == nil || result.ID == 0 {
			continue
		}
		if len(movies) == 20 {
			break
		}

		m := Movie{
			ID:          result.ID,
			Title:       result.Title,
			Overview:    result.Overview,
			ReleaseDate: result.ReleaseDate,
			Rating:      result.VoteAverage,
			VoteCount:   result.VoteCount,
			TMDBURL:     fmt.Sprintf("https://www.themoviedb.org/movie/%d", result.ID),
			GenreIDs:    result.GenreIDs,
		}
		if m.Title == "" {
			m.Title = "Untitled Movie"
		}
		if result.PosterPath != "" {
			poster := tmdbImageURL + "/w500" + result.PosterPath
			m.PosterPath = &poster
		}
		if result.BackdropPath != "" {
			backdrop := tmdbImageURL + "/w1280" + result.BackdropPath
			m.BackdropPath = &backdrop
		}
		movies = append(movies, m)
	}

	return &MoviesByMoodResult{Movies: movies, GenreID: genreID}, nil
}

type tmdbDetailsResponse struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Runtime      int     `json:"runtime"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Homepage     string  `json:"homepage"`
}

// MovieDetails fetches full details for one movie
func (s *MovieService) MovieDetails(ctx context.Context, movieID string) (*Movie, error) {
	if s.apiKey == "" {
		return nil, ErrTMDBNotConfigured
	}

	detailsURL := fmt.Sprintf("%s/movie/%s?api_key=%s", s.apiURL, url.PathEscape(movieID), url.QueryEscape(s.apiKey))

	var details tmdbDetailsResponse
	if err := s.get(ctx, detailsURL, &details); err != nil {
		return nil, err
	}

	m := &Movie{
		ID:          details.ID,
		Title:       details.Title,
		Overview:    details.Overview,
		ReleaseDate: details.ReleaseDate,
		Rating:      details.VoteAverage,
		VoteCount:   details.VoteCount,
		Runtime:     details.Runtime,
		TMDBURL:     fmt.Sprintf("https://www.themoviedb.org/movie/%d", details.ID),
		Homepage:    details.Homepage,
	}
	if details.PosterPath != "" {
		poster := tmdbImageURL + "/w500" + details.PosterPath
		m.PosterPath = &poster
	}
	if details.BackdropPath != "" {
		backdrop := tmdbImageURL + "/w1280" + details.BackdropPath
		m.BackdropPath = &backdrop
	}

	return m, nil
}

func (s *MovieService) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{StatusCode: http.StatusBadGateway, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{StatusCode: resp.StatusCode, Detail: "error fetching data from TMDB"}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{StatusCode: http.StatusBadGateway, Detail: "malformed response from TMDB"}
	}

	return nil
}
