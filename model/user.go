package model

import "time"

type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	PasswordHash string `json:"-"`

	// Streak bookkeeping. LastActivityDate holds a calendar date (UTC
	// midnight); nil until the first completed video.
	LastActivityDate *time.Time `json:"last_activity_date"`
	CurrentStreak    int        `json:"current_streak" gorm:"not null;default:0"`

	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
