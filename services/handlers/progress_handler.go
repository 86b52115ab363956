package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// @Summary Get progress
// @Description List the signed-in user's progress rows, filtered by video or playlist
// @Tags progress
// @Produce json
// @Security Bearer
// @Param video_id query string false "Video id"
// @Param playlist_id query string false "Playlist id"
// @Success 200 {object} shared.Response{data=[]model.VideoProgress}
// @Router /api/v1/progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	rows, err := h.progressSvc.GetProgress(userID, c.Query("video_id"), c.Query("playlist_id"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, rows)
}

// @Summary Update progress
// @Description Upsert the progress row for a video; completion advances the streak
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param updateRequest body dto.UpdateProgressRequest true "Progress"
// @Success 201 {object} shared.Response{data=model.VideoProgress}
// @Router /api/v1/progress [post]
func (h *ProgressHandler) UpdateProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	progress, err := h.progressSvc.UpdateProgress(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", progress)
}
