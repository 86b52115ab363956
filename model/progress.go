package model

import "time"

// VideoProgress is upsertable on (user_id, video_id) and therefore safe to
// write repeatedly during migration re-runs.
type VideoProgress struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex:idx_user_video;not null"`
	VideoID      string    `json:"video_id" gorm:"uniqueIndex:idx_user_video;not null"`
	PlaylistID   *string   `json:"playlist_id"`
	Completed    bool      `json:"completed" gorm:"not null;default:false"`
	WatchTime    int       `json:"watch_time" gorm:"not null;default:0"`
	LastPosition int       `json:"last_position" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSettings mirrors the local settings blob 1:1, one row per user.
type UserSettings struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"uniqueIndex;not null"`
	DarkMode      bool      `json:"dark_mode" gorm:"not null;default:true"`
	PlaybackSpeed float64   `json:"playback_speed" gorm:"not null;default:1"`
	Volume        float64   `json:"volume" gorm:"not null;default:1"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Playlist is a server-side snapshot of a playlist's watch position, keyed
// by the id of its first video (the "playlist key").
type Playlist struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex:idx_user_playlist;not null"`
	PlaylistKey  string    `json:"playlist_key" gorm:"uniqueIndex:idx_user_playlist;not null"`
	Title        string    `json:"title"`
	CurrentIndex int       `json:"current_index" gorm:"not null;default:0"`
	LastPlayedID string    `json:"last_played_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
