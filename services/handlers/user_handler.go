package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/shared"
)

type UserHandler struct {
	userSvc UserServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// @Summary Sync user
// @Description Create or refresh the signed-in user's profile row
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param syncRequest body dto.SyncUserRequest true "Profile data"
// @Success 200 {object} shared.Response{data=model.User}
// @Router /api/v1/user/sync [post]
func (h *UserHandler) SyncUser(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SyncUserRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	user, err := h.userSvc.SyncUser(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, user)
}

// @Summary Profile
// @Description The signed-in user's profile with current streak
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.UserProfileResponse}
// @Router /api/v1/user/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	profile, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, profile)
}

// @Summary Get settings
// @Description The signed-in user's player settings
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=model.UserSettings}
// @Router /api/v1/user/settings [get]
func (h *UserHandler) GetSettings(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	settings, err := h.userSvc.GetSettings(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, settings)
}

// @Summary Update settings
// @Description Update the signed-in user's player settings
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param updateRequest body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} shared.Response{data=model.UserSettings}
// @Router /api/v1/user/settings [put]
func (h *UserHandler) UpdateSettings(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	settings, err := h.userSvc.UpdateSettings(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, settings)
}
