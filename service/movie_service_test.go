package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"moodtracker-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tmdbDiscoverBody = `{
	"results": [
		{
			"id": 101,
			"title": "A Comedy",
			"overview": "Funny things happen.",
			"release_date": "2024-03-01",
			"vote_average": 7.2,
			"vote_count": 1500,
			"poster_path": "/poster.jpg",
			"backdrop_path": "/backdrop.jpg",
			"genre_ids": [35]
		},
		null,
		{
			"id": 102,
			"title": "",
			"overview": "",
			"release_date": "",
			"vote_average": 0,
			"vote_count": 0,
			"poster_path": "",
			"backdrop_path": ""
		}
	]
}`

func newTestMovieService(handler http.Handler) (*MovieService, func()) {
	server := httptest.NewServer(handler)
	svc := NewMovieService("test-key")
	svc.apiURL = server.URL
	return svc, server.Close
}

func TestMoviesByMood(t *testing.T) {
	svc, cleanup := newTestMovieService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "35", r.URL.Query().Get("with_genres"))
		fmt.Fprint(w, tmdbDiscoverBody)
	}))
	defer cleanup()

	result, err := svc.MoviesByMood(context.Background(), models.MoodHappy)
	require.NoError(t, err)

	assert.Equal(t, 35, result.GenreID)
	require.Len(t, result.Movies, 2, "null entries must be dropped")

	first := result.Movies[0]
	assert.Equal(t, 101, first.ID)
	assert.Equal(t, "A Comedy", first.Title)
	require.NotNil(t, first.PosterPath)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", *first.PosterPath)
	require.NotNil(t, first.BackdropPath)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/backdrop.jpg", *first.BackdropPath)
	assert.Equal(t, "https://www.themoviedb.org/movie/101", first.TMDBURL)

	second := result.Movies[1]
	assert.Equal(t, "Untitled Movie", second.Title)
	assert.Nil(t, second.PosterPath)
}

func TestMoviesByMoodMissingResults(t *testing.T) {
	svc, cleanup := newTestMovieService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer cleanup()

	_, err := svc.MoviesByMood(context.Background(), models.MoodSad)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "invalid response from TMDB API", upstream.Detail)
}

func TestMoviesByMoodNotConfigured(t *testing.T) {
	svc := NewMovieService("")

	_, err := svc.MoviesByMood(context.Background(), models.MoodHappy)
	assert.ErrorIs(t, err, ErrTMDBNotConfigured)
}

func TestMovieDetails(t *testing.T) {
	svc, cleanup := newTestMovieService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/101", r.URL.Path)
		fmt.Fprint(w, `{
			"id": 101,
			"title": "A Comedy",
			"overview": "Funny things happen.",
			"release_date": "2024-03-01",
			"vote_average": 7.2,
			"vote_count": 1500,
			"runtime": 98,
			"poster_path": "/poster.jpg",
			"homepage": "https://example.com"
		}`)
	}))
	defer cleanup()

	movie, err := svc.MovieDetails(context.Background(), "101")
	require.NoError(t, err)

	assert.Equal(t, 98, movie.Runtime)
	assert.Equal(t, "https://example.com", movie.Homepage)
	require.NotNil(t, movie.PosterPath)
	assert.Nil(t, movie.BackdropPath)
}

func TestMovieDetailsUpstreamError(t *testing.T) {
	svc, cleanup := newTestMovieService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer cleanup()

	_, err := svc.MovieDetails(context.Background(), "999999")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
}

func TestMoodGenreID(t *testing.T) {
	assert.Equal(t, 35, moodGenreID(models.MoodHappy))
	assert.Equal(t, 16, moodGenreID(models.MoodCalm))
	assert.Equal(t, 18, moodGenreID(models.MoodSad))
	assert.Equal(t, 28, moodGenreID(models.MoodAngry))
	assert.Equal(t, 99, moodGenreID(models.MoodNeutral))
	assert.Equal(t, 35, moodGenreID(models.MoodLabel("other")))
}
