package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubenote-labs/tubenote_api/shared"
)

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/playlist?list=PLabc123_-X", "PLabc123_-X"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLxyz", "PLxyz"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", ""},
		{"not a url", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractPlaylistID(tt.url), tt.url)
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://example.com/watch?v=dQw4w9WgXcQ", ""},
		{"tooshort", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractVideoID(tt.url), tt.url)
	}
}

func newTestYouTube(apiURL string) *YouTubeService {
	return &YouTubeService{
		httpClient:  &http.Client{Timeout: time.Second},
		apiURL:      apiURL,
		apiKey:      "test-key",
		cacheExpiry: time.Hour,
	}
}

func TestFetchVideosPlaylistPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/playlistItems", r.URL.Path)
		require.Equal(t, "PLtest", r.URL.Query().Get("playlistId"))

		if r.URL.Query().Get("pageToken") == "" {
			fmt.Fprint(w, `{
				"nextPageToken": "page2",
				"items": [
					{"snippet": {"title": "First", "resourceId": {"videoId": "vidAAAAAAAA"}}},
					{"snippet": {"title": "Deleted video", "resourceId": {"videoId": ""}}}
				]
			}`)
			return
		}

		fmt.Fprint(w, `{
			"items": [
				{"snippet": {"title": "Second", "resourceId": {"videoId": "vidBBBBBBBB"}}}
			]
		}`)
	}))
	defer server.Close()

	svc := newTestYouTube(server.URL)

	videos, err := svc.FetchVideos("https://www.youtube.com/playlist?list=PLtest")

	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "vidAAAAAAAA", videos[0].ID)
	assert.Equal(t, "First", videos[0].Title)
	assert.False(t, videos[0].Completed)
	assert.Equal(t, "vidBBBBBBBB", videos[1].ID)
}

func TestFetchVideosSingleVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos", r.URL.Path)
		require.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("id"))

		fmt.Fprint(w, `{"items": [{"id": "dQw4w9WgXcQ", "snippet": {"title": "A Classic"}}]}`)
	}))
	defer server.Close()

	svc := newTestYouTube(server.URL)

	videos, err := svc.FetchVideos("https://youtu.be/dQw4w9WgXcQ")

	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "A Classic", videos[0].Title)
}

func TestFetchVideosUnknownVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer server.Close()

	svc := newTestYouTube(server.URL)

	_, err := svc.FetchVideos("https://youtu.be/dQw4w9WgXcQ")

	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestFetchVideosInvalidURL(t *testing.T) {
	svc := newTestYouTube("http://unused")

	_, err := svc.FetchVideos("https://example.com/nothing-here")

	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestFetchVideosAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"message": "quota exceeded"}}`)
	}))
	defer server.Close()

	svc := newTestYouTube(server.URL)

	_, err := svc.FetchVideos("https://www.youtube.com/playlist?list=PLtest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
