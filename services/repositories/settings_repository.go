package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tubenote-labs/tubenote_api/model"
)

// SettingsRepository handles the per-user settings row, upsertable on
// user_id.
type SettingsRepository struct {
	BaseRepository
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *SettingsRepository) GetSettings(userID string) (*model.UserSettings, error) {
	var settings model.UserSettings
	if err := ds.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (ds *SettingsRepository) UpsertSettings(settings *model.UserSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	now := time.Now()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"dark_mode", "playback_speed", "volume", "updated_at"}),
	}).Create(settings).Error
}
