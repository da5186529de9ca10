package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"moodtracker-backend/models"
)

const (
	defaultSpotifyTokenURL = "https://accounts.spotify.com/api/token"
	defaultSpotifyAPIURL   = "https://api.spotify.com/v1"

	// Refresh the token this long before Spotify's stated expiry
	spotifyTokenSafetyMargin = 5 * time.Minute
)

// ErrSpotifyNotConfigured is returned when client credentials are unset
var ErrSpotifyNotConfigured = errors.New("Spotify credentials not configured")

// SpotifyTokenCache holds a client-credentials access token and refreshes it
// when stale. Concurrent refreshes are not coordinated: two requests arriving
// on an expired token may both fetch, and the last write wins. That duplicate
// fetch is harmless, so the cache stays simple.
type SpotifyTokenCache struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	now          func() time.Time

	mu          sync.Mutex
	accessToken string
	expiry      time.Time
}

// NewSpotifyTokenCache creates a token cache for the client-credentials flow
func NewSpotifyTokenCache(clientID, clientSecret string) *SpotifyTokenCache {
	return &SpotifyTokenCache{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     defaultSpotifyTokenURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		now:          time.Now,
	}
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token returns the cached access token, fetching a fresh one when the cached
// value is absent or past its safety-adjusted expiry.
func (c *SpotifyTokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.accessToken != "" && c.now().Before(c.expiry) {
		token := c.accessToken
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrSpotifyNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{StatusCode: http.StatusBadGateway, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Detail: "error fetching Spotify access token"}
	}

	var tokenResp spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil || tokenResp.AccessToken == "" {
		return "", &UpstreamError{StatusCode: http.StatusBadGateway, Detail: "invalid token response from Spotify"}
	}

	c.mu.Lock()
	c.accessToken = tokenResp.AccessToken
	c.expiry = c.now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - spotifyTokenSafetyMargin)
	token := c.accessToken
	c.mu.Unlock()

	return token, nil
}

// Playlist is a mood-matched Spotify playlist in response shape
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
	Owner       string  `json:"owner"`
	Tracks      int     `json:"tracks"`
	SpotifyURL  string  `json:"spotify_url"`
}

// Track is a playlist track in response shape
type Track struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Artists    string  `json:"artists"`
	Album      string  `json:"album"`
	Image      *string `json:"image"`
	DurationMs int     `json:"duration_ms"`
	SpotifyURL string  `json:"spotify_url"`
	PreviewURL *string `json:"preview_url"`
}

// SpotifyService suggests playlists matched to a logged mood
type SpotifyService struct {
	tokens     *SpotifyTokenCache
	apiURL     string
	httpClient *http.Client
}

// NewSpotifyService creates a new Spotify service backed by a token cache
func NewSpotifyService(tokens *SpotifyTokenCache) *SpotifyService {
	return &SpotifyService{
		tokens:     tokens,
		apiURL:     defaultSpotifyAPIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// moodSearchQuery maps a mood label to Spotify search terms
func moodSearchQuery(mood models.MoodLabel) string {
	switch mood {
	case models.MoodHappy:
		return "happy upbeat energetic"
	case models.MoodCalm:
		return "calm peaceful relaxing"
	case models.MoodSad:
		return "sad melancholic emotional"
	case models.MoodAngry:
		return "intense powerful aggressive"
	case models.MoodNeutral:
		return "ambient chill"
	}
	return "chill"
}

type spotifySearchResponse struct {
	Playlists *struct {
		Items []*struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
			Images      []struct {
				URL string `json:"url"`
			} `json:"images"`
			Owner struct {
				DisplayName string `json:"display_name"`
				ID          string `json:"id"`
			} `json:"owner"`
			Tracks struct {
				Total int `json:"total"`
			} `json:"tracks"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"items"`
	} `json:"playlists"`
}

// PlaylistsByMood searches Spotify for playlists matching the mood
func (s *SpotifyService) PlaylistsByMood(ctx context.Context, mood models.MoodLabel) ([]Playlist, error) {
	query := moodSearchQuery(mood)
	searchURL := fmt.Sprintf("%s/search?q=%s&type=playlist&limit=10", s.apiURL, url.QueryEscape(query))

	var searchResp spotifySearchResponse
	if err := s.get(ctx, searchURL, &searchResp); err != nil {
		return nil, err
	}

	if searchResp.Playlists == nil {
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Detail: "invalid response from Spotify API"}
	}

	playlists := make([]Playlist, 0, len(searchResp.Playlists.Items))
	for _, item := range searchResp.Playlists.Items {
		// Spotify search results may contain null entries
		if item == nil || item.ID == "" {
			continue
		}

		p := Playlist{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Owner:       item.Owner.DisplayName,
			Tracks:      item.Tracks.Total,
			SpotifyURL:  item.ExternalURLs.Spotify,
		}
		if p.Name == "" {
			p.Name = "Untitled Playlist"
		}
		if p.Owner == "" {
			p.Owner = item.Owner.ID
		}
		if p.Owner == "" {
			p.Owner = "Spotify"
		}
		if len(item.Images) > 0 {
			image := item.Images[0].URL
			p.Image = &image
		}
		if p.SpotifyURL == "" {
			p.SpotifyURL = "https://open.spotify.com/playlist/" + item.ID
		}
		playlists = append(playlists, p)
	}

	return playlists, nil
}

type spotifyTracksResponse struct {
	Items []struct {
		Track *struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name   string `json:"name"`
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
			} `json:"album"`
			DurationMs   int `json:"duration_ms"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
			PreviewURL *string `json:"preview_url"`
		} `json:"track"`
	} `json:"items"`
}

// PlaylistTracks lists up to 20 tracks from a playlist
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	tracksURL := fmt.Sprintf("%s/playlists/%s/tracks?limit=20", s.apiURL, url.PathEscape(playlistID))

	var tracksResp spotifyTracksResponse
	if err := s.get(ctx, tracksURL, &tracksResp); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(tracksResp.Items))
	for _, item := range tracksResp.Items {
		if item.Track == nil {
			continue
		}

		names := make([]string, 0, len(item.Track.Artists))
		for _, artist := range item.Track.Artists {
			names = append(names, artist.Name)
		}

		t := Track{
			ID:         item.Track.ID,
			Name:       item.Track.Name,
			Artists:    strings.Join(names, ", "),
			Album:      item.Track.Album.Name,
			DurationMs: item.Track.DurationMs,
			SpotifyURL: item.Track.ExternalURLs.Spotify,
			PreviewURL: item.Track.PreviewURL,
		}
		if n := len(item.Track.Album.Images); n > 0 {
			// Smallest image is last
			image := item.Track.Album.Images[n-1].URL
			t.Image = &image
		}
		tracks = append(tracks, t)
	}

	return tracks, nil
}

func (s *SpotifyService) get(ctx context.Context, rawURL string, out interface{}) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{StatusCode: http.StatusBadGateway, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{StatusCode: resp.StatusCode, Detail: "error fetching data from Spotify API"}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{StatusCode: http.StatusBadGateway, Detail: "malformed response from Spotify API"}
	}

	return nil
}
