package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/shared"
)

// YouTubeService fetches video lists from the YouTube Data API. Fetched
// videos always come back with Completed=false; rehydrating completion
// state is the playlist service's job.
type YouTubeService struct {
	appContext.DefaultService

	redisSvc *RedisService

	httpClient  *http.Client
	apiURL      string
	apiKey      string
	cacheExpiry time.Duration
}

const YOUTUBE_SVC = "youtube_svc"

var (
	playlistIDPattern = regexp.MustCompile(`[?&]list=([a-zA-Z0-9_-]+)`)
	videoIDPattern    = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`)
	bareVideoID       = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

func (svc YouTubeService) Id() string {
	return YOUTUBE_SVC
}

func (svc *YouTubeService) Configure(ctx *appContext.Context) error {
	svc.httpClient = &http.Client{
		Timeout: 10 * time.Second,
	}
	svc.apiURL = "https://www.googleapis.com/youtube/v3"
	svc.apiKey = os.Getenv("YOUTUBE_API_KEY")
	svc.cacheExpiry = time.Hour
	return svc.DefaultService.Configure(ctx)
}

func (svc *YouTubeService) Start() error {
	if svc.apiKey == "" {
		return errors.New("YOUTUBE_API_KEY environment variable is not set")
	}

	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// FetchVideos resolves a pasted URL to an ordered video list: a playlist
// URL returns the playlist's videos, a video URL returns a single-entry
// list.
func (svc *YouTubeService) FetchVideos(rawURL string) ([]dto.Video, error) {
	if playlistID := ExtractPlaylistID(rawURL); playlistID != "" {
		return svc.fetchPlaylistVideos(playlistID)
	}

	if videoID := ExtractVideoID(rawURL); videoID != "" {
		video, err := svc.fetchVideoDetails(videoID)
		if err != nil {
			return nil, err
		}
		return []dto.Video{*video}, nil
	}

	return nil, shared.NewBadRequestError(nil, "Invalid YouTube URL. Please provide a valid video or playlist URL.")
}

// ExtractPlaylistID pulls the list parameter out of a YouTube URL, or
// returns "".
func ExtractPlaylistID(rawURL string) string {
	if m := playlistIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// ExtractVideoID pulls the 11-character video id out of a YouTube URL or a
// bare id, or returns "".
func ExtractVideoID(rawURL string) string {
	if m := videoIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	if bareVideoID.MatchString(rawURL) {
		return rawURL
	}
	return ""
}

type youtubePlaylistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			Title      string `json:"title"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

type youtubeVideosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type youtubeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (svc *YouTubeService) fetchPlaylistVideos(playlistID string) ([]dto.Video, error) {
	cacheKey := fmt.Sprintf("youtube:playlist:%s", playlistID)

	var cached []dto.Video
	if svc.cacheGet(cacheKey, &cached) {
		return cached, nil
	}

	var videos []dto.Video
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", "50")
		params.Set("key", svc.apiKey)
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page youtubePlaylistItemsResponse
		if err := svc.apiGet("/playlistItems", params, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Snippet.ResourceID.VideoID == "" {
				continue
			}
			videos = append(videos, dto.Video{
				ID:        item.Snippet.ResourceID.VideoID,
				Title:     item.Snippet.Title,
				Completed: false,
			})
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	svc.cacheSet(cacheKey, videos)
	return videos, nil
}

func (svc *YouTubeService) fetchVideoDetails(videoID string) (*dto.Video, error) {
	cacheKey := fmt.Sprintf("youtube:video:%s", videoID)

	var cached dto.Video
	if svc.cacheGet(cacheKey, &cached) {
		return &cached, nil
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)
	params.Set("key", svc.apiKey)

	var resp youtubeVideosResponse
	if err := svc.apiGet("/videos", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Items) == 0 {
		return nil, shared.NewNotFoundError(nil, "Video not found")
	}

	video := dto.Video{
		ID:        resp.Items[0].ID,
		Title:     resp.Items[0].Snippet.Title,
		Completed: false,
	}

	svc.cacheSet(cacheKey, video)
	return &video, nil
}

func (svc *YouTubeService) apiGet(path string, params url.Values, out interface{}) error {
	resp, err := svc.httpClient.Get(svc.apiURL + path + "?" + params.Encode())
	if err != nil {
		return fmt.Errorf("youtube api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr youtubeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("youtube api error: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("youtube api returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (svc *YouTubeService) cacheGet(key string, dest interface{}) bool {
	if svc.redisSvc == nil {
		return false
	}

	raw, err := svc.redisSvc.Get(context.Background(), key)
	if err != nil || raw == "" {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false
	}

	log.WithField("key", key).Debug("YouTube cache hit")
	return true
}

func (svc *YouTubeService) cacheSet(key string, value interface{}) {
	if svc.redisSvc == nil {
		return
	}

	if err := svc.redisSvc.Set(context.Background(), key, value, svc.cacheExpiry); err != nil {
		log.WithError(err).WithField("key", key).Warn("Failed to cache YouTube response")
	}
}
