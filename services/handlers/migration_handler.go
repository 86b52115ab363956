package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/shared"
)

// MigrationMetricsInterface records migration outcomes. May be nil when
// monitoring is disabled.
type MigrationMetricsInterface interface {
	RecordMigrationRun(success bool, notesCount, progressCount int)
}

type MigrationHandler struct {
	migrationSvc MigrationServiceInterface
	metrics      MigrationMetricsInterface
}

func NewMigrationHandler(migrationSvc MigrationServiceInterface, metrics MigrationMetricsInterface) *MigrationHandler {
	return &MigrationHandler{migrationSvc: migrationSvc, metrics: metrics}
}

// @Summary Run migration
// @Description Move this device's local notes, progress and settings into the signed-in account
// @Tags migration
// @Produce json
// @Security Bearer
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} shared.Response{data=dto.MigrationResult}
// @Router /api/v1/migration/run [post]
func (h *MigrationHandler) RunMigration(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	deviceID := c.Locals(shared.DeviceID).(string)

	result := h.migrationSvc.RunFullMigration(deviceID, userID)
	if h.metrics != nil {
		h.metrics.RecordMigrationRun(result.Success, result.NotesCount, result.ProgressCount)
	}

	return shared.ResponseOK(c, result)
}

// @Summary Migration status
// @Description Whether this device still has local data worth migrating
// @Tags migration
// @Produce json
// @Security Bearer
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} shared.Response{data=dto.MigrationStatusResponse}
// @Router /api/v1/migration/status [get]
func (h *MigrationHandler) MigrationStatus(c *fiber.Ctx) error {
	deviceID := c.Locals(shared.DeviceID).(string)

	return shared.ResponseOK(c, dto.MigrationStatusResponse{
		NeedsMigration: h.migrationSvc.NeedsMigration(deviceID),
	})
}

// @Summary Clear migrated data
// @Description Remove this device's local notes and player state after a successful migration
// @Tags migration
// @Produce json
// @Security Bearer
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} shared.Response
// @Router /api/v1/migration/local [delete]
func (h *MigrationHandler) ClearMigratedData(c *fiber.Ctx) error {
	deviceID := c.Locals(shared.DeviceID).(string)

	h.migrationSvc.ClearMigratedData(deviceID)

	return shared.ResponseOK(c, nil)
}
