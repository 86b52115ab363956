package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/shared"
)

type NoteHandler struct {
	noteSvc NoteServiceInterface
}

func NewNoteHandler(noteSvc NoteServiceInterface) *NoteHandler {
	return &NoteHandler{noteSvc: noteSvc}
}

// @Summary List notes
// @Description List the signed-in user's notes, optionally for one video
// @Tags notes
// @Produce json
// @Security Bearer
// @Param video_id query string false "Video id"
// @Success 200 {object} shared.Response{data=[]model.Note}
// @Router /api/v1/notes [get]
func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	notes, err := h.noteSvc.ListNotes(userID, c.Query("video_id"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, notes)
}

// @Summary Create note
// @Description Create a note for a video
// @Tags notes
// @Accept json
// @Produce json
// @Security Bearer
// @Param createRequest body dto.CreateNoteRequest true "Note"
// @Success 201 {object} shared.Response{data=model.Note}
// @Router /api/v1/notes [post]
func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	note, err := h.noteSvc.CreateNote(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", note)
}

// @Summary Update note
// @Description Update a note's title or content
// @Tags notes
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Note id"
// @Param updateRequest body dto.UpdateNoteRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=model.Note}
// @Router /api/v1/notes/{id} [put]
func (h *NoteHandler) UpdateNote(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	noteID := c.Params("id")

	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	note, err := h.noteSvc.UpdateNote(userID, noteID, req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, note)
}

// @Summary Delete note
// @Description Delete one of the signed-in user's notes
// @Tags notes
// @Produce json
// @Security Bearer
// @Param id path string true "Note id"
// @Success 200 {object} shared.Response
// @Router /api/v1/notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.noteSvc.DeleteNote(userID, c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseOK(c, nil)
}
