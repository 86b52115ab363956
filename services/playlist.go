package services

import (
	"github.com/alphabatem/common/context"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/model"
	"github.com/tubenote-labs/tubenote_api/shared"
)

// PlaylistService ties the fetch layer to locally stored completion state
// and manages server-side playlist snapshots for signed-in users.
type PlaylistService struct {
	context.DefaultService

	storageSvc *LocalStorageService
	youtubeSvc *YouTubeService
	sqlSvc     *PostgresService
}

const PLAYLIST_SVC = "playlist_svc"

func (svc PlaylistService) Id() string {
	return PLAYLIST_SVC
}

func (svc *PlaylistService) Start() error {
	svc.storageSvc = svc.Service(LOCAL_STORAGE_SVC).(*LocalStorageService)
	svc.youtubeSvc = svc.Service(YOUTUBE_SVC).(*YouTubeService)
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// FetchPlaylist resolves a pasted URL to its ordered video list and
// rehydrates completion flags from the device's stored state. The playlist
// key is the id of the first fetched video.
func (svc *PlaylistService) FetchPlaylist(deviceID, url string) (*dto.FetchPlaylistResponse, error) {
	videos, err := svc.youtubeSvc.FetchVideos(url)
	if err != nil {
		return nil, err
	}

	playlistKey := shared.DefaultPlaylistKey
	if len(videos) > 0 {
		playlistKey = videos[0].ID
	}

	return &dto.FetchPlaylistResponse{
		PlaylistKey: playlistKey,
		Videos:      svc.MergeVideos(videos, deviceID, playlistKey),
	}, nil
}

// MergeVideos overlays stored completion flags onto a freshly fetched
// list. Order and identity always come from the fetch; storage contributes
// nothing but completion lookup by id, so entries stored for videos no
// longer in the playlist drop out.
func (svc *PlaylistService) MergeVideos(fetched []dto.Video, deviceID, playlistKey string) []dto.Video {
	stored := svc.storageSvc.GetVideoStatus(deviceID, playlistKey)
	if len(stored) == 0 {
		return fetched
	}

	completed := make(map[string]bool, len(stored))
	for _, v := range stored {
		completed[v.ID] = v.Completed
	}

	merged := make([]dto.Video, len(fetched))
	for i, v := range fetched {
		if done, ok := completed[v.ID]; ok {
			v.Completed = done
		}
		merged[i] = v
	}
	return merged
}

// SaveState persists the submitted player state to the device's local
// store. Throttling and failure suppression live in the storage adapter.
func (svc *PlaylistService) SaveState(deviceID string, data dto.PlaylistData) {
	svc.storageSvc.Save(deviceID, data)
}

func (svc *PlaylistService) LoadState(deviceID, playlistKey string) *dto.LoadStateResponse {
	return svc.storageSvc.Load(deviceID, playlistKey)
}

func (svc *PlaylistService) VideoStatus(deviceID, playlistKey string) []model.VideoStatus {
	return svc.storageSvc.GetVideoStatus(deviceID, playlistKey)
}

func (svc *PlaylistService) ClearState(deviceID string) {
	svc.storageSvc.Clear(deviceID)
}

// SavePlaylist upserts a server-side snapshot of the playlist's watch
// position for a signed-in user.
func (svc *PlaylistService) SavePlaylist(userID string, req dto.SavePlaylistRequest) (*model.Playlist, error) {
	playlist := &model.Playlist{
		UserID:       userID,
		PlaylistKey:  req.PlaylistKey,
		Title:        req.Title,
		CurrentIndex: req.CurrentIndex,
		LastPlayedID: req.LastPlayedID,
	}

	if err := svc.sqlSvc.Playlists().UpsertPlaylist(playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (svc *PlaylistService) ListPlaylists(userID string) ([]model.Playlist, error) {
	return svc.sqlSvc.Playlists().ListPlaylists(userID)
}

func (svc *PlaylistService) DeletePlaylist(userID, playlistKey string) error {
	return svc.sqlSvc.Playlists().DeletePlaylist(userID, playlistKey)
}
