package model

// Types for the locally persisted blob. These are wire-compatible with the
// browser-era localStorage schema so existing client state migrates as-is.

type VideoStatus struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// LocalSettings uses pointer fields so a missing value is distinguishable
// from an explicit zero; absent fields take the shared defaults on read.
type LocalSettings struct {
	PlaybackSpeed *float64 `json:"playbackSpeed,omitempty"`
	DarkMode      *bool    `json:"darkMode,omitempty"`
	Volume        *float64 `json:"volume,omitempty"`
}

type LocalPlaylist struct {
	Videos       []VideoStatus `json:"videos"`
	CurrentIndex int           `json:"currentIndex"`
	LastPlayedID string        `json:"lastPlayedId"`
	UpdatedAt    int64         `json:"updatedAt"`
}

// LocalData is the entire contents of the local durable store under the
// fixed playlist storage key.
type LocalData struct {
	Settings  LocalSettings            `json:"settings"`
	Playlists map[string]LocalPlaylist `json:"playlists"`
}

func NewLocalData() *LocalData {
	return &LocalData{Playlists: map[string]LocalPlaylist{}}
}

// LocalNote is the structured per-video note payload. Early clients stored
// the raw markdown string instead; the migration engine normalizes both
// shapes into model.Note.
type LocalNote struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updatedAt"`
}
