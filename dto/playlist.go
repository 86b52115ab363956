package dto

type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// PlaylistData is the client's full player state, submitted on every state
// change and persisted (throttled) to the local durable store.
type PlaylistData struct {
	Videos        []Video `json:"videos"`
	CurrentIndex  int     `json:"currentIndex"`
	DarkMode      bool    `json:"darkMode"`
	PlaybackSpeed float64 `json:"playbackSpeed"`
}

type FetchPlaylistRequest struct {
	URL string `json:"url" validate:"required,max=2048" example:"https://www.youtube.com/playlist?list=PL123"`
}

func (f FetchPlaylistRequest) Validate() error {
	return GetValidator().Struct(f)
}

type FetchPlaylistResponse struct {
	PlaylistKey string  `json:"playlist_key"`
	Videos      []Video `json:"videos"`
}

// LoadStateResponse carries whatever subset of the player state is known
// locally. CurrentIndex is only present when a playlist key was supplied
// and found.
type LoadStateResponse struct {
	PlaybackSpeed float64 `json:"playbackSpeed"`
	DarkMode      bool    `json:"darkMode"`
	CurrentIndex  *int    `json:"currentIndex,omitempty"`
}

type SavePlaylistRequest struct {
	PlaylistKey  string `json:"playlist_key" validate:"required"`
	Title        string `json:"title"`
	CurrentIndex int    `json:"current_index" validate:"gte=0"`
	LastPlayedID string `json:"last_played_id"`
}

func (s SavePlaylistRequest) Validate() error {
	return GetValidator().Struct(s)
}
