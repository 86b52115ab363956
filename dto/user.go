package dto

type SyncUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=100"`
	Image string `json:"image" validate:"omitempty,url"`
}

func (s SyncUserRequest) Validate() error {
	return GetValidator().Struct(s)
}

type UserProfileResponse struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	Name             string  `json:"name"`
	Image            string  `json:"image"`
	CurrentStreak    int     `json:"current_streak"`
	LastActivityDate *string `json:"last_activity_date"`
}
