package dto

type CreateNoteRequest struct {
	VideoID string `json:"video_id" validate:"required" example:"dQw4w9WgXcQ"`
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"required"`
}

func (c CreateNoteRequest) Validate() error {
	return GetValidator().Struct(c)
}

type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
}

func (u UpdateNoteRequest) Validate() error {
	return GetValidator().Struct(u)
}
