package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/model"
	"github.com/tubenote-labs/tubenote_api/shared"
)

// LocalHandler serves the device-scoped local store: player state and
// per-video notes for clients that have not signed in.
type LocalHandler struct {
	playlistSvc PlaylistServiceInterface
	noteSvc     LocalNoteServiceInterface
}

func NewLocalHandler(playlistSvc PlaylistServiceInterface, noteSvc LocalNoteServiceInterface) *LocalHandler {
	return &LocalHandler{playlistSvc: playlistSvc, noteSvc: noteSvc}
}

// @Summary Save player state
// @Description Persist the full player state for this device (throttled)
// @Tags local
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param state body dto.PlaylistData true "Player state"
// @Success 200 {object} shared.Response
// @Router /api/v1/local/state [post]
func (h *LocalHandler) SaveState(c *fiber.Ctx) error {
	deviceID := c.Locals(shared.DeviceID).(string)

	var data dto.PlaylistData
	if err := c.BodyParser(&data); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	h.playlistSvc.SaveState(deviceID, data)

	return shared.ResponseOK(c, nil)
}

// @Summary Load player state
// @Description Load stored settings and, when playlist_key is given and known, the playlist's current index
// @Tags local
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param playlist_key query string false "Playlist key"
// @Success 200 {object} shared.Response{data=dto.LoadStateResponse}
// @Router /api/v1/local/state [get]
func (h *LocalHandler) LoadState(c *fiber.Ctx) error {
	deviceID := c.Locals(shared.DeviceID).(string)
	playlistKey := c.Query("playlist_key")

	state := h.playlistSvc.LoadState(deviceID, playlistKey)
	if state == nil {
		return shared.ResponseJSON(c, fiber.StatusNotFound, "Not Found", nil)
	}

	return shared.ResponseOK(c, state)
}

// @Summary Clear player state
// @Description Remove the stored player state for this device
// @Tags local
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} shared.Response
// @Router /api/v1/local/state [delete]
func (h *LocalHandler) ClearState(c *fiber.Ctx) error {
	deviceID := c.Locals(shared.DeviceID).(string)

	h.playlistSvc.ClearState(deviceID)

	return shared.ResponseOK(c, nil)
}

// @Summary Stored video status
// @Description Completion flags stored for a playlist key
// @Tags local
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param key path string true "Playlist key"
// @Success 200 {object} shared.Response{data=[]model.VideoStatus}
// @Router /api/v1/local/state/{key}/videos [get]
func (h *LocalHandler) VideoStatus(c *fiber.Ctx) error {
	deviceID := c.Locals(shared.DeviceID).(string)
	playlistKey := c.Params("key")

	return shared.ResponseOK(c, h.playlistSvc.VideoStatus(deviceID, playlistKey))
}

// @Summary Save local note
// @Description Store a note for a video in this device's local store
// @Tags local
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param note body model.LocalNote true "Note"
// @Success 200 {object} shared.Response
// @Router /api/v1/local/notes [post]
func (h *LocalHandler) SaveNote(c *fiber.Ctx) error {
	deviceID := c.Locals(shared.DeviceID).(string)

	var note model.LocalNote
	if err := c.BodyParser(&note); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if note.VideoID == "" {
		return shared.NewBadRequestError(nil, "videoId is required")
	}

	h.noteSvc.SaveNote(deviceID, note)

	return shared.ResponseOK(c, nil)
}

// @Summary Get local note
// @Description Load the note stored for a video in this device's local store
// @Tags local
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param videoId path string true "Video id"
// @Success 200 {object} shared.Response{data=model.LocalNote}
// @Router /api/v1/local/notes/{videoId} [get]
func (h *LocalHandler) GetNote(c *fiber.Ctx) error {
	deviceID := c.Locals(shared.DeviceID).(string)
	videoID := c.Params("videoId")

	note := h.noteSvc.GetNote(deviceID, videoID)
	if note == nil {
		return shared.ResponseJSON(c, fiber.StatusNotFound, "Not Found", nil)
	}

	return shared.ResponseOK(c, note)
}
