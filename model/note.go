package model

import "time"

// Note is a per-video note row. There is intentionally no uniqueness
// constraint on (user_id, video_id): the app allows several notes per video,
// so migration inserts rather than upserts.
type Note struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	VideoID   string    `json:"video_id" gorm:"index;not null"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
