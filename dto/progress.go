package dto

type UpdateProgressRequest struct {
	VideoID      string  `json:"video_id" validate:"required" example:"dQw4w9WgXcQ"`
	PlaylistID   *string `json:"playlist_id"`
	Completed    bool    `json:"completed"`
	WatchTime    int     `json:"watch_time" validate:"gte=0"`
	LastPosition int     `json:"last_position" validate:"gte=0"`
}

func (u UpdateProgressRequest) Validate() error {
	return GetValidator().Struct(u)
}

type UpdateSettingsRequest struct {
	DarkMode      *bool    `json:"dark_mode"`
	PlaybackSpeed *float64 `json:"playback_speed" validate:"omitempty,gt=0"`
	Volume        *float64 `json:"volume" validate:"omitempty,gte=0,lte=1"`
}

func (u UpdateSettingsRequest) Validate() error {
	return GetValidator().Struct(u)
}
