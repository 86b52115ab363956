package shared

const (
	UserID   = "user_id"
	DeviceID = "device_id"

	// Fixed key the local playlist/settings blob lives under, and the
	// per-video prefix note payloads are stored with.
	PlaylistStorageKey = "youtube-playlist-data"
	NotesKeyPrefix     = "video_notes_"

	// Playlist key used when a save arrives with an empty video list.
	DefaultPlaylistKey = "default"

	DefaultPlaybackSpeed = 1.0
	DefaultVolume        = 1.0
	DefaultDarkMode      = true
)
