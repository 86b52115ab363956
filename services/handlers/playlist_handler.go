package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/shared"
)

type PlaylistHandler struct {
	playlistSvc PlaylistServiceInterface
}

func NewPlaylistHandler(playlistSvc PlaylistServiceInterface) *PlaylistHandler {
	return &PlaylistHandler{playlistSvc: playlistSvc}
}

// @Summary Fetch playlist
// @Description Resolve a YouTube URL to its video list, merged with stored completion state
// @Tags playlist
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param fetchRequest body dto.FetchPlaylistRequest true "YouTube URL"
// @Success 200 {object} shared.Response{data=dto.FetchPlaylistResponse}
// @Router /api/v1/playlist/fetch [post]
func (h *PlaylistHandler) FetchPlaylist(c *fiber.Ctx) error {
	deviceID := c.Locals(shared.DeviceID).(string)

	var req dto.FetchPlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	resp, err := h.playlistSvc.FetchPlaylist(deviceID, req.URL)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary List playlists
// @Description List the signed-in user's playlist snapshots
// @Tags playlist
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]model.Playlist}
// @Router /api/v1/playlists [get]
func (h *PlaylistHandler) ListPlaylists(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	playlists, err := h.playlistSvc.ListPlaylists(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, playlists)
}

// @Summary Save playlist
// @Description Create or update a playlist snapshot for the signed-in user
// @Tags playlist
// @Accept json
// @Produce json
// @Security Bearer
// @Param saveRequest body dto.SavePlaylistRequest true "Playlist snapshot"
// @Success 200 {object} shared.Response{data=model.Playlist}
// @Router /api/v1/playlists [post]
func (h *PlaylistHandler) SavePlaylist(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SavePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	playlist, err := h.playlistSvc.SavePlaylist(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, playlist)
}

// @Summary Delete playlist
// @Description Delete one of the signed-in user's playlist snapshots
// @Tags playlist
// @Produce json
// @Security Bearer
// @Param key path string true "Playlist key"
// @Success 200 {object} shared.Response
// @Router /api/v1/playlists/{key} [delete]
func (h *PlaylistHandler) DeletePlaylist(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	playlistKey := c.Params("key")

	if err := h.playlistSvc.DeletePlaylist(userID, playlistKey); err != nil {
		return err
	}

	return shared.ResponseOK(c, nil)
}
