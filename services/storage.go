package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/model"
	"github.com/tubenote-labs/tubenote_api/shared"
)

// LocalStorageService owns the device-scoped durable store: the playlist
// blob under shared.PlaylistStorageKey plus one note payload per video.
// By contract it never surfaces storage failures to callers; a broken or
// missing blob degrades to "no data".
type LocalStorageService struct {
	context.DefaultService

	redisSvc *RedisService

	kv  shared.KeyValueStore
	now func() time.Time

	window time.Duration

	mu       sync.Mutex
	cooldown map[string]time.Time

	// writeMu serializes the read-modify-write of the blob; the throttle
	// alone is not a mutual-exclusion guard.
	writeMu sync.Mutex
}

const LOCAL_STORAGE_SVC = "local_storage_svc"

const saveThrottleWindow = 1000 * time.Millisecond

func (svc LocalStorageService) Id() string {
	return LOCAL_STORAGE_SVC
}

// NewLocalStorage builds an adapter around an explicit store and clock.
// The service registry path leaves both nil and wires Redis in Start.
func NewLocalStorage(kv shared.KeyValueStore, now func() time.Time) *LocalStorageService {
	return &LocalStorageService{
		kv:       kv,
		now:      now,
		window:   saveThrottleWindow,
		cooldown: map[string]time.Time{},
	}
}

func (svc *LocalStorageService) Configure(ctx *context.Context) error {
	svc.window = saveThrottleWindow
	svc.cooldown = map[string]time.Time{}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *LocalStorageService) Start() error {
	if svc.kv == nil {
		svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
		svc.kv = svc.redisSvc.KeyValueStore()
	}
	return nil
}

// Store exposes the underlying key-value port; the migration engine scans
// it but never writes through it.
func (svc *LocalStorageService) Store() shared.KeyValueStore {
	return svc.kv
}

// Save persists the playlist blob for a device. Writes are throttled per
// device on the leading edge: the first call in a window is written, calls
// inside the window are dropped, and the window re-arms on the next write.
func (svc *LocalStorageService) Save(deviceID string, data dto.PlaylistData) {
	if !svc.acquireWrite(deviceID) {
		return
	}

	svc.writeMu.Lock()
	defer svc.writeMu.Unlock()

	blob := svc.readBlob(deviceID)

	playlistKey := shared.DefaultPlaylistKey
	if len(data.Videos) > 0 {
		playlistKey = data.Videos[0].ID
	}

	speed := data.PlaybackSpeed
	dark := data.DarkMode
	blob.Settings = model.LocalSettings{
		PlaybackSpeed: &speed,
		DarkMode:      &dark,
	}

	videos := make([]model.VideoStatus, 0, len(data.Videos))
	for _, v := range data.Videos {
		videos = append(videos, model.VideoStatus{ID: v.ID, Completed: v.Completed})
	}

	lastPlayedID := ""
	if data.CurrentIndex >= 0 && data.CurrentIndex < len(data.Videos) {
		lastPlayedID = data.Videos[data.CurrentIndex].ID
	}

	blob.Playlists[playlistKey] = model.LocalPlaylist{
		Videos:       videos,
		CurrentIndex: data.CurrentIndex,
		LastPlayedID: lastPlayedID,
		UpdatedAt:    svc.now().UnixMilli(),
	}

	raw, err := json.Marshal(blob)
	if err != nil {
		log.WithError(err).Error("Failed to encode local storage blob")
		return
	}

	if err := svc.kv.Set(deviceID, shared.PlaylistStorageKey, string(raw)); err != nil {
		log.WithError(err).WithField(shared.DeviceID, deviceID).Error("Failed to save to local storage")
	}
}

// acquireWrite runs the per-device throttle state machine. Idle: record
// the write time and allow. CoolingDown (a write happened inside the
// window): drop the call.
func (svc *LocalStorageService) acquireWrite(deviceID string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	now := svc.now()
	if last, ok := svc.cooldown[deviceID]; ok && now.Sub(last) < svc.window {
		return false
	}

	svc.cooldown[deviceID] = now
	return true
}

// Load returns the global settings (defaulted when absent) and, when a
// playlist key is supplied and known, that playlist's current index.
// Returns nil only when no blob exists or it cannot be read.
func (svc *LocalStorageService) Load(deviceID, playlistKey string) *dto.LoadStateResponse {
	blob, ok := svc.loadBlob(deviceID)
	if !ok {
		return nil
	}

	result := &dto.LoadStateResponse{
		PlaybackSpeed: shared.DefaultPlaybackSpeed,
		DarkMode:      shared.DefaultDarkMode,
	}
	if blob.Settings.PlaybackSpeed != nil {
		result.PlaybackSpeed = *blob.Settings.PlaybackSpeed
	}
	if blob.Settings.DarkMode != nil {
		result.DarkMode = *blob.Settings.DarkMode
	}

	if playlistKey != "" {
		if pl, found := blob.Playlists[playlistKey]; found {
			idx := pl.CurrentIndex
			result.CurrentIndex = &idx
		}
	}

	return result
}

// GetVideoStatus returns the stored completion flags for a playlist key,
// or an empty list when nothing is stored.
func (svc *LocalStorageService) GetVideoStatus(deviceID, playlistKey string) []model.VideoStatus {
	blob, ok := svc.loadBlob(deviceID)
	if !ok {
		return []model.VideoStatus{}
	}

	pl, found := blob.Playlists[playlistKey]
	if !found {
		return []model.VideoStatus{}
	}
	return pl.Videos
}

// Clear removes the playlist blob for a device.
func (svc *LocalStorageService) Clear(deviceID string) {
	if err := svc.kv.Remove(deviceID, shared.PlaylistStorageKey); err != nil {
		log.WithError(err).WithField(shared.DeviceID, deviceID).Error("Failed to clear local storage")
	}
}

// SaveNote stores a structured note payload under the per-video note key.
func (svc *LocalStorageService) SaveNote(deviceID string, note model.LocalNote) {
	raw, err := json.Marshal(note)
	if err != nil {
		log.WithError(err).Error("Failed to encode local note")
		return
	}

	if err := svc.kv.Set(deviceID, shared.NotesKeyPrefix+note.VideoID, string(raw)); err != nil {
		log.WithError(err).WithField("video_id", note.VideoID).Error("Failed to save local note")
	}
}

// GetNote returns the stored note for a video, normalizing the legacy
// plain-string payload, or nil when nothing is stored.
func (svc *LocalStorageService) GetNote(deviceID, videoID string) *model.LocalNote {
	raw, found, err := svc.kv.Get(deviceID, shared.NotesKeyPrefix+videoID)
	if err != nil || !found {
		return nil
	}

	note := ParseLocalNote(videoID, raw, svc.now())
	return &note
}

// ParseLocalNote decodes a stored note payload. Early clients wrote the
// raw markdown string instead of a JSON document; both shapes normalize to
// one canonical note.
func ParseLocalNote(videoID, raw string, now time.Time) model.LocalNote {
	var note model.LocalNote
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		// Legacy payloads are bare markdown, either JSON-quoted or not.
		content := raw
		var quoted string
		if err := json.Unmarshal([]byte(raw), &quoted); err == nil {
			content = quoted
		}

		return model.LocalNote{
			VideoID:   videoID,
			Title:     "Migrated Note",
			Content:   content,
			UpdatedAt: now.UTC().Format(time.RFC3339),
		}
	}

	if note.VideoID == "" {
		note.VideoID = videoID
	}
	if note.Title == "" {
		note.Title = "Migrated Note"
	}
	return note
}

func (svc *LocalStorageService) loadBlob(deviceID string) (*model.LocalData, bool) {
	raw, found, err := svc.kv.Get(deviceID, shared.PlaylistStorageKey)
	if err != nil {
		log.WithError(err).WithField(shared.DeviceID, deviceID).Error("Failed to load from local storage")
		return nil, false
	}
	if !found {
		return nil, false
	}

	var blob model.LocalData
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		log.WithError(err).WithField(shared.DeviceID, deviceID).Error("Failed to parse local storage blob")
		return nil, false
	}
	if blob.Playlists == nil {
		blob.Playlists = map[string]model.LocalPlaylist{}
	}
	return &blob, true
}

// readBlob is loadBlob with the read-modify-write default: failures and
// absence both initialize an empty blob.
func (svc *LocalStorageService) readBlob(deviceID string) *model.LocalData {
	if blob, ok := svc.loadBlob(deviceID); ok {
		return blob
	}
	return model.NewLocalData()
}
