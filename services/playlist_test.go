package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubenote-labs/tubenote_api/dto"
)

func newTestPlaylist() (*PlaylistService, *LocalStorageService) {
	storage := NewLocalStorage(newMemKV(), newFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)).Now)
	return &PlaylistService{storageSvc: storage}, storage
}

func TestMergeVideosRehydratesCompletion(t *testing.T) {
	svc, storage := newTestPlaylist()

	// Stored state: A completed, C completed but no longer in the playlist.
	storage.Save("dev1", dto.PlaylistData{
		Videos: []dto.Video{
			{ID: "vidAAAAAAAA", Title: "Old title A", Completed: true},
			{ID: "vidCCCCCCCC", Title: "Removed", Completed: true},
		},
		CurrentIndex:  0,
		PlaybackSpeed: 1,
	})

	fetched := []dto.Video{
		{ID: "vidAAAAAAAA", Title: "Fresh title A"},
		{ID: "vidBBBBBBBB", Title: "Fresh title B"},
	}

	merged := svc.MergeVideos(fetched, "dev1", "vidAAAAAAAA")

	require.Len(t, merged, 2)
	assert.Equal(t, dto.Video{ID: "vidAAAAAAAA", Title: "Fresh title A", Completed: true}, merged[0])
	assert.Equal(t, dto.Video{ID: "vidBBBBBBBB", Title: "Fresh title B", Completed: false}, merged[1])
}

func TestMergeVideosKeepsFetchOrder(t *testing.T) {
	svc, storage := newTestPlaylist()

	storage.Save("dev1", dto.PlaylistData{
		Videos: []dto.Video{
			{ID: "vidBBBBBBBB", Completed: true},
			{ID: "vidAAAAAAAA"},
		},
		PlaybackSpeed: 1,
	})

	fetched := []dto.Video{
		{ID: "vidAAAAAAAA"},
		{ID: "vidBBBBBBBB"},
	}

	merged := svc.MergeVideos(fetched, "dev1", "vidBBBBBBBB")

	require.Len(t, merged, 2)
	assert.Equal(t, "vidAAAAAAAA", merged[0].ID)
	assert.False(t, merged[0].Completed)
	assert.Equal(t, "vidBBBBBBBB", merged[1].ID)
	assert.True(t, merged[1].Completed)
}

func TestMergeVideosNoStoredState(t *testing.T) {
	svc, _ := newTestPlaylist()

	fetched := []dto.Video{{ID: "vidAAAAAAAA"}, {ID: "vidBBBBBBBB"}}

	merged := svc.MergeVideos(fetched, "dev1", "vidAAAAAAAA")

	assert.Equal(t, fetched, merged)
}

func TestMergeVideosEmptyFetch(t *testing.T) {
	svc, storage := newTestPlaylist()

	storage.Save("dev1", dto.PlaylistData{
		Videos:        []dto.Video{{ID: "vidAAAAAAAA", Completed: true}},
		PlaybackSpeed: 1,
	})

	merged := svc.MergeVideos(nil, "dev1", "vidAAAAAAAA")

	assert.Empty(t, merged)
}
