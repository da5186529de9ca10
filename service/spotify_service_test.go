package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moodtracker-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenCache(tokenURL string, now func() time.Time) *SpotifyTokenCache {
	cache := NewSpotifyTokenCache("client-id", "client-secret")
	cache.tokenURL = tokenURL
	if now != nil {
		cache.now = now
	}
	return cache
}

func TestSpotifyTokenCacheFetchesOnce(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"access_token": "token-1", "expires_in": 3600}`)
	}))
	defer server.Close()

	cache := newTestTokenCache(server.URL, nil)

	token, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	token, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, 1, fetches, "cached token must be reused until stale")
}

func TestSpotifyTokenCacheRefreshesBeforeStatedExpiry(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprintf(w, `{"access_token": "token-%d", "expires_in": 3600}`, fetches)
	}))
	defer server.Close()

	current := time.Now()
	cache := newTestTokenCache(server.URL, func() time.Time { return current })

	token, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	// 56 minutes in: within the stated hour but past the 5 minute safety margin
	current = current.Add(56 * time.Minute)

	token, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, 2, fetches)
}

func TestSpotifyTokenCacheMissingCredentials(t *testing.T) {
	cache := NewSpotifyTokenCache("", "")

	_, err := cache.Token(context.Background())
	assert.ErrorIs(t, err, ErrSpotifyNotConfigured)
}

func TestSpotifyTokenCacheInvalidTokenResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token": ""}`)
	}))
	defer server.Close()

	cache := newTestTokenCache(server.URL, nil)

	_, err := cache.Token(context.Background())
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
}

const spotifySearchBody = `{
	"playlists": {
		"items": [
			{
				"id": "pl-1",
				"name": "Happy Hits",
				"description": "Upbeat songs",
				"images": [{"url": "https://img.example/large.jpg"}, {"url": "https://img.example/small.jpg"}],
				"owner": {"display_name": "Spotify", "id": "spotify"},
				"tracks": {"total": 50},
				"external_urls": {"spotify": "https://open.spotify.com/playlist/pl-1"}
			},
			null,
			{
				"id": "pl-2",
				"name": "",
				"owner": {"display_name": "", "id": "someuser"},
				"tracks": {"total": 12},
				"external_urls": {}
			}
		]
	}
}`

func newTestSpotifyService(t *testing.T, apiHandler http.Handler) (*SpotifyService, func()) {
	t.Helper()
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token": "test-token", "expires_in": 3600}`)
	}))
	apiServer := httptest.NewServer(apiHandler)

	svc := NewSpotifyService(newTestTokenCache(tokenServer.URL, nil))
	svc.apiURL = apiServer.URL

	return svc, func() {
		tokenServer.Close()
		apiServer.Close()
	}
}

func TestPlaylistsByMood(t *testing.T) {
	svc, cleanup := newTestSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.RawQuery, "type=playlist")
		fmt.Fprint(w, spotifySearchBody)
	}))
	defer cleanup()

	playlists, err := svc.PlaylistsByMood(context.Background(), models.MoodHappy)
	require.NoError(t, err)
	require.Len(t, playlists, 2, "null entries must be dropped")

	assert.Equal(t, "pl-1", playlists[0].ID)
	assert.Equal(t, "Happy Hits", playlists[0].Name)
	require.NotNil(t, playlists[0].Image)
	assert.Equal(t, "https://img.example/large.jpg", *playlists[0].Image)

	assert.Equal(t, "Untitled Playlist", playlists[1].Name)
	assert.Equal(t, "someuser", playlists[1].Owner)
	assert.Equal(t, "https://open.spotify.com/playlist/pl-2", playlists[1].SpotifyURL)
	assert.Nil(t, playlists[1].Image)
}

func TestPlaylistsByMoodMissingPlaylistsObject(t *testing.T) {
	svc, cleanup := newTestSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer cleanup()

	_, err := svc.PlaylistsByMood(context.Background(), models.MoodCalm)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "invalid response from Spotify API", upstream.Detail)
}

const spotifyTracksBody = `{
	"items": [
		{
			"track": {
				"id": "tr-1",
				"name": "Good Song",
				"artists": [{"name": "Artist A"}, {"name": "Artist B"}],
				"album": {
					"name": "Great Album",
					"images": [{"url": "https://img.example/640.jpg"}, {"url": "https://img.example/64.jpg"}]
				},
				"duration_ms": 215000,
				"external_urls": {"spotify": "https://open.spotify.com/track/tr-1"},
				"preview_url": null
			}
		},
		{"track": null}
	]
}`

func TestPlaylistTracks(t *testing.T) {
	svc, cleanup := newTestSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, spotifyTracksBody)
	}))
	defer cleanup()

	tracks, err := svc.PlaylistTracks(context.Background(), "pl-1")
	require.NoError(t, err)
	require.Len(t, tracks, 1, "null track entries must be dropped")

	assert.Equal(t, "Good Song", tracks[0].Name)
	assert.Equal(t, "Artist A, Artist B", tracks[0].Artists)
	require.NotNil(t, tracks[0].Image)
	assert.Equal(t, "https://img.example/64.jpg", *tracks[0].Image, "smallest album image is last")
	assert.Nil(t, tracks[0].PreviewURL)
}

func TestMoodSearchQueryCoversAllMoods(t *testing.T) {
	for _, mood := range models.ValidMoods {
		assert.NotEmpty(t, moodSearchQuery(mood))
	}
	assert.Equal(t, "chill", moodSearchQuery(models.MoodLabel("other")))
}
