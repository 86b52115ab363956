package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tubenote-labs/tubenote_api/model"
)

// ProgressRepository handles video progress rows, upsertable on
// (user_id, video_id) so repeated writes are idempotent.
type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProgressRepository) UpsertProgress(progress *model.VideoProgress) error {
	if progress.ID == "" {
		progress.ID = uuid.New().String()
	}
	now := time.Now()
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = now
	}
	progress.UpdatedAt = now

	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"playlist_id", "completed", "watch_time", "last_position", "updated_at"}),
	}).Create(progress).Error
}

func (ds *ProgressRepository) ListProgress(userID, videoID, playlistID string) ([]model.VideoProgress, error) {
	query := ds.db.Where("user_id = ?", userID)
	if videoID != "" {
		query = query.Where("video_id = ?", videoID)
	}
	if playlistID != "" {
		query = query.Where("playlist_id = ?", playlistID)
	}

	var rows []model.VideoProgress
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
