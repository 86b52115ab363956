package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubenote-labs/tubenote_api/shared"
)

func newTestMigration() (*MigrationService, *memKV, *fakeRemoteStore) {
	kv := newMemKV()
	remote := newFakeRemoteStore()
	clock := newFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return &MigrationService{kv: kv, remote: remote, now: clock.Now}, kv, remote
}

func seedNote(t *testing.T, kv *memKV, videoID, payload string) {
	t.Helper()
	require.NoError(t, kv.Set("dev1", shared.NotesKeyPrefix+videoID, payload))
}

func seedBlob(t *testing.T, kv *memKV, blob string) {
	t.Helper()
	require.NoError(t, kv.Set("dev1", shared.PlaylistStorageKey, blob))
}

func TestRunFullMigrationHappyPath(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedNote(t, kv, "vidAAAAAAAA", `{"videoId":"vidAAAAAAAA","title":"T1","content":"C1"}`)
	seedNote(t, kv, "vidBBBBBBBB", `{"videoId":"vidBBBBBBBB","title":"T2","content":"C2"}`)
	seedBlob(t, kv, `{
		"settings": {"darkMode": false, "playbackSpeed": 2, "volume": 0.5},
		"playlists": {
			"vidAAAAAAAA": {"videos": [
				{"id": "vidAAAAAAAA", "completed": true},
				{"id": "vidBBBBBBBB", "completed": false},
				{"id": "vidCCCCCCCC", "completed": true}
			], "currentIndex": 1}
		}
	}`)

	result := svc.RunFullMigration("dev1", "u1")

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.NotesCount)
	assert.Equal(t, 2, result.ProgressCount)
	assert.Empty(t, result.Errors)

	require.Len(t, remote.notes, 2)
	require.Len(t, remote.progress, 2)
	for _, p := range remote.progress {
		assert.Equal(t, "u1", p.UserID)
		assert.True(t, p.Completed)
		assert.Equal(t, 0, p.WatchTime)
		assert.Equal(t, 0, p.LastPosition)
	}

	require.Len(t, remote.settings, 1)
	assert.False(t, remote.settings[0].DarkMode)
	assert.Equal(t, 2.0, remote.settings[0].PlaybackSpeed)
	assert.Equal(t, 0.5, remote.settings[0].Volume)
}

func TestMigrateNotesSkipsDuplicatesWithoutCounting(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedNote(t, kv, "vidAAAAAAAA", `{"title":"T1","content":"C1"}`)
	seedNote(t, kv, "vidBBBBBBBB", `{"title":"T2","content":"C2"}`)
	remote.noteErrs["vidAAAAAAAA"] = duplicateKeyErr()

	result := svc.MigrateNotes("dev1", "u1")

	assert.Equal(t, 1, result.Count)
	assert.Empty(t, result.Errors)
	require.Len(t, remote.notes, 1)
	assert.Equal(t, "vidBBBBBBBB", remote.notes[0].VideoID)
}

func TestMigrateNotesRecordsFailuresAndContinues(t *testing.T) {
	svc, kv, remote := newTestMigration()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("vid%08dA", i)
		seedNote(t, kv, id, fmt.Sprintf(`{"title":"T","content":"C%d"}`, i))
	}
	remote.noteErrs["vid00000001A"] = assert.AnError
	remote.noteErrs["vid00000003A"] = assert.AnError

	result := svc.MigrateNotes("dev1", "u1")

	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Failed to insert note for video")
}

func TestMigrateNotesNormalizesLegacyPayload(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedNote(t, kv, "vidAAAAAAAA", "raw markdown body")

	result := svc.MigrateNotes("dev1", "u1")

	assert.Equal(t, 1, result.Count)
	require.Len(t, remote.notes, 1)
	assert.Equal(t, "Migrated Note", remote.notes[0].Title)
	assert.Equal(t, "raw markdown body", remote.notes[0].Content)
	assert.Equal(t, "vidAAAAAAAA", remote.notes[0].VideoID)
}

func TestMigrateNotesSkipsEmptyContent(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedNote(t, kv, "vidAAAAAAAA", `{"title":"T","content":""}`)
	seedNote(t, kv, "vidBBBBBBBB", "")

	result := svc.MigrateNotes("dev1", "u1")

	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Errors)
	assert.Empty(t, remote.notes)
}

func TestMigrateProgressCountsDuplicatesAsMigrated(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedBlob(t, kv, `{"playlists": {"pl": {"videos": [
		{"id": "vidAAAAAAAA", "completed": true},
		{"id": "vidBBBBBBBB", "completed": true}
	]}}}`)
	remote.progressErrs["vidAAAAAAAA"] = duplicateKeyErr()

	result := svc.MigrateProgress("dev1", "u1")

	assert.Equal(t, 2, result.Count)
	assert.Empty(t, result.Errors)
	require.Len(t, remote.progress, 1)
}

func TestMigrateProgressRecordsFailures(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedBlob(t, kv, `{"playlists": {"pl": {"videos": [
		{"id": "vidAAAAAAAA", "completed": true},
		{"id": "vidBBBBBBBB", "completed": true}
	]}}}`)
	remote.progressErrs["vidAAAAAAAA"] = assert.AnError

	result := svc.MigrateProgress("dev1", "u1")

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to migrate progress for video vidAAAAAAAA")
}

func TestMigrateProgressNoBlob(t *testing.T) {
	svc, _, remote := newTestMigration()

	result := svc.MigrateProgress("dev1", "u1")

	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Errors)
	assert.Empty(t, remote.progress)
}

func TestMigrateSettingsDefaultsMissingFields(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedBlob(t, kv, `{"settings": {}, "playlists": {}}`)

	result := svc.MigrateSettings("dev1", "u1")

	assert.True(t, result.Success)
	require.Len(t, remote.settings, 1)
	assert.True(t, remote.settings[0].DarkMode)
	assert.Equal(t, 1.0, remote.settings[0].PlaybackSpeed)
	assert.Equal(t, 1.0, remote.settings[0].Volume)
}

func TestMigrateSettingsNoBlobSucceedsTrivially(t *testing.T) {
	svc, _, remote := newTestMigration()

	result := svc.MigrateSettings("dev1", "u1")

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Empty(t, remote.settings)
}

func TestMigrateSettingsFailure(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedBlob(t, kv, `{"settings": {}, "playlists": {}}`)
	remote.settingsErr = assert.AnError

	result := svc.MigrateSettings("dev1", "u1")

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to migrate settings")
}

func TestRunFullMigrationPartialFailure(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedNote(t, kv, "vidAAAAAAAA", `{"title":"T","content":"C"}`)
	seedBlob(t, kv, `{"playlists": {"pl": {"videos": [{"id": "vidBBBBBBBB", "completed": true}]}}}`)
	remote.noteErrs["vidAAAAAAAA"] = assert.AnError

	result := svc.RunFullMigration("dev1", "u1")

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.NotesCount)
	assert.Equal(t, 1, result.ProgressCount)
	require.Len(t, result.Errors, 1)
}

func TestRunFullMigrationIsRepeatable(t *testing.T) {
	svc, kv, remote := newTestMigration()

	seedNote(t, kv, "vidAAAAAAAA", `{"title":"T","content":"C"}`)
	seedBlob(t, kv, `{"playlists": {"pl": {"videos": [{"id": "vidBBBBBBBB", "completed": true}]}}}`)

	first := svc.RunFullMigration("dev1", "u1")
	require.True(t, first.Success)

	// Second run: the note insert now hits the unique constraint.
	remote.noteErrs["vidAAAAAAAA"] = duplicateKeyErr()
	second := svc.RunFullMigration("dev1", "u1")

	assert.True(t, second.Success)
	assert.Equal(t, 0, second.NotesCount)
	assert.Equal(t, 1, second.ProgressCount)
	require.Len(t, remote.notes, 1)
}

func TestNeedsMigration(t *testing.T) {
	svc, kv, _ := newTestMigration()

	assert.False(t, svc.NeedsMigration("dev1"))

	seedNote(t, kv, "vidAAAAAAAA", `{"title":"T","content":"C"}`)
	assert.True(t, svc.NeedsMigration("dev1"))

	require.NoError(t, kv.Remove("dev1", shared.NotesKeyPrefix+"vidAAAAAAAA"))
	seedBlob(t, kv, `{"playlists":{}}`)
	assert.True(t, svc.NeedsMigration("dev1"))
}

func TestClearMigratedDataLeavesUnrelatedKeys(t *testing.T) {
	svc, kv, _ := newTestMigration()

	seedNote(t, kv, "vidAAAAAAAA", `{"title":"T","content":"C"}`)
	seedBlob(t, kv, `{"playlists":{}}`)
	require.NoError(t, kv.Set("dev1", "unrelated-key", "keep me"))

	svc.ClearMigratedData("dev1")

	assert.False(t, svc.NeedsMigration("dev1"))
	_, found, err := kv.Get("dev1", "unrelated-key")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMigrateNotesScanFailure(t *testing.T) {
	svc, kv, _ := newTestMigration()
	kv.keysErr = assert.AnError

	result := svc.MigrateNotes("dev1", "u1")

	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to scan local notes")
}
