package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/model"
	"github.com/tubenote-labs/tubenote_api/shared"
)

// RemoteStore is the migration engine's write contract against the hosted
// store. Progress and settings writes are upserts and idempotent by
// construction; note inserts rely on duplicate-error suppression instead.
type RemoteStore interface {
	InsertNote(note *model.Note) error
	UpsertProgress(progress *model.VideoProgress) error
	UpsertSettings(settings *model.UserSettings) error
}

// MigrationService pushes a device's locally stored notes, completion
// flags and settings into the hosted store once the user signs in. Every
// remote write is safe to repeat: the orchestrator offers no atomicity, so
// callers retry on partial failure and re-runs must not duplicate state.
type MigrationService struct {
	context.DefaultService

	storageSvc *LocalStorageService

	kv     shared.KeyValueStore
	remote RemoteStore
	now    func() time.Time
}

const MIGRATION_SVC = "migration_svc"

func (svc MigrationService) Id() string {
	return MIGRATION_SVC
}

func (svc *MigrationService) Configure(ctx *context.Context) error {
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *MigrationService) Start() error {
	if svc.kv == nil {
		svc.storageSvc = svc.Service(LOCAL_STORAGE_SVC).(*LocalStorageService)
		svc.kv = svc.storageSvc.Store()
	}
	if svc.remote == nil {
		sqlSvc := svc.Service(POSTGRES_SVC).(*PostgresService)
		svc.remote = &postgresRemoteStore{sqlSvc: sqlSvc}
	}
	return nil
}

// postgresRemoteStore adapts the gorm repositories to the RemoteStore
// contract.
type postgresRemoteStore struct {
	sqlSvc *PostgresService
}

func (rs *postgresRemoteStore) InsertNote(note *model.Note) error {
	return rs.sqlSvc.Notes().InsertNote(note)
}

func (rs *postgresRemoteStore) UpsertProgress(progress *model.VideoProgress) error {
	return rs.sqlSvc.Progress().UpsertProgress(progress)
}

func (rs *postgresRemoteStore) UpsertSettings(settings *model.UserSettings) error {
	return rs.sqlSvc.Settings().UpsertSettings(settings)
}

// MigrateNotes copies every locally stored note to the remote store. Notes
// whose insert hits a duplicate constraint are taken as already migrated
// and skipped; any other failure is recorded per note and the scan
// continues.
func (svc *MigrationService) MigrateNotes(deviceID, userID string) dto.CategoryResult {
	result := dto.CategoryResult{Errors: []string{}}

	keys, err := svc.kv.Keys(deviceID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to scan local notes: %v", err))
		return result
	}

	for _, key := range keys {
		if !strings.HasPrefix(key, shared.NotesKeyPrefix) {
			continue
		}

		raw, found, err := svc.kv.Get(deviceID, key)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to read note %s: %v", key, err))
			continue
		}
		if !found || raw == "" {
			continue
		}

		local := ParseLocalNote(strings.TrimPrefix(key, shared.NotesKeyPrefix), raw, svc.now())
		if local.Content == "" {
			continue
		}

		note := &model.Note{
			UserID:  userID,
			VideoID: local.VideoID,
			Title:   local.Title,
			Content: local.Content,
		}

		if err := svc.remote.InsertNote(note); err != nil {
			if IsDuplicateKeyError(err) {
				// Already migrated on a previous run
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to insert note for video %s: %v", local.VideoID, err))
			continue
		}

		result.Count++
	}

	return result
}

// MigrateProgress upserts a remote progress row for every video marked
// completed in the local blob. Watch time and position are not tracked
// locally, so they migrate as zero.
func (svc *MigrationService) MigrateProgress(deviceID, userID string) dto.CategoryResult {
	result := dto.CategoryResult{Errors: []string{}}

	blob, found, err := svc.loadLocalBlob(deviceID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Migration error: %v", err))
		return result
	}
	if !found {
		return result
	}

	for _, playlist := range blob.Playlists {
		for _, video := range playlist.Videos {
			if !video.Completed {
				continue
			}

			progress := &model.VideoProgress{
				UserID:       userID,
				VideoID:      video.ID,
				Completed:    true,
				WatchTime:    0,
				LastPosition: 0,
			}

			if err := svc.remote.UpsertProgress(progress); err != nil && !IsDuplicateKeyError(err) {
				result.Errors = append(result.Errors, fmt.Sprintf("Failed to migrate progress for video %s: %v", video.ID, err))
				continue
			}

			result.Count++
		}
	}

	return result
}

// MigrateSettings upserts the remote settings row from the local blob,
// defaulting any missing field. A device with no local blob succeeds
// trivially.
func (svc *MigrationService) MigrateSettings(deviceID, userID string) dto.SettingsResult {
	result := dto.SettingsResult{Success: true, Errors: []string{}}

	blob, found, err := svc.loadLocalBlob(deviceID)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("Migration error: %v", err))
		return result
	}
	if !found {
		return result
	}

	settings := &model.UserSettings{
		UserID:        userID,
		DarkMode:      shared.DefaultDarkMode,
		PlaybackSpeed: shared.DefaultPlaybackSpeed,
		Volume:        shared.DefaultVolume,
	}
	if blob.Settings.DarkMode != nil {
		settings.DarkMode = *blob.Settings.DarkMode
	}
	if blob.Settings.PlaybackSpeed != nil {
		settings.PlaybackSpeed = *blob.Settings.PlaybackSpeed
	}
	if blob.Settings.Volume != nil {
		settings.Volume = *blob.Settings.Volume
	}

	if err := svc.remote.UpsertSettings(settings); err != nil && !IsDuplicateKeyError(err) {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to migrate settings: %v", err))
	}

	return result
}

// RunFullMigration runs notes, progress and settings migration in
// sequence. The run is not transactional: partial completion is a valid
// terminal outcome, surfaced through Success=false and the error list.
func (svc *MigrationService) RunFullMigration(deviceID, userID string) dto.MigrationResult {
	result := dto.MigrationResult{Errors: []string{}}

	notes := svc.MigrateNotes(deviceID, userID)
	result.NotesCount = notes.Count
	result.Errors = append(result.Errors, notes.Errors...)

	progress := svc.MigrateProgress(deviceID, userID)
	result.ProgressCount = progress.Count
	result.Errors = append(result.Errors, progress.Errors...)

	settings := svc.MigrateSettings(deviceID, userID)
	result.Errors = append(result.Errors, settings.Errors...)

	result.Success = len(result.Errors) == 0

	log.WithFields(log.Fields{
		shared.DeviceID: deviceID,
		shared.UserID:   userID,
		"notes":         result.NotesCount,
		"progress":      result.ProgressCount,
		"errors":        len(result.Errors),
	}).Info("Migration run finished")

	return result
}

// NeedsMigration reports whether the device still holds any local note
// keys or the playlist blob.
func (svc *MigrationService) NeedsMigration(deviceID string) bool {
	keys, err := svc.kv.Keys(deviceID)
	if err != nil {
		log.WithError(err).WithField(shared.DeviceID, deviceID).Error("Failed to check for local data")
		return false
	}

	for _, key := range keys {
		if strings.HasPrefix(key, shared.NotesKeyPrefix) || key == shared.PlaylistStorageKey {
			return true
		}
	}
	return false
}

// ClearMigratedData removes all local note keys and the playlist blob.
// The engine never calls this itself; the caller decides when a migration
// outcome is good enough to discard local state.
func (svc *MigrationService) ClearMigratedData(deviceID string) {
	keys, err := svc.kv.Keys(deviceID)
	if err != nil {
		log.WithError(err).WithField(shared.DeviceID, deviceID).Error("Failed to enumerate local data for clearing")
		return
	}

	for _, key := range keys {
		if !strings.HasPrefix(key, shared.NotesKeyPrefix) && key != shared.PlaylistStorageKey {
			continue
		}
		if err := svc.kv.Remove(deviceID, key); err != nil {
			log.WithError(err).WithField("key", key).Error("Failed to remove migrated key")
		}
	}
}

func (svc *MigrationService) loadLocalBlob(deviceID string) (*model.LocalData, bool, error) {
	raw, found, err := svc.kv.Get(deviceID, shared.PlaylistStorageKey)
	if err != nil {
		return nil, false, err
	}
	if !found || raw == "" {
		return nil, false, nil
	}

	var blob model.LocalData
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return nil, false, err
	}
	return &blob, true, nil
}
