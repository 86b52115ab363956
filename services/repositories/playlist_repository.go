package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tubenote-labs/tubenote_api/model"
)

// PlaylistRepository handles server-side playlist snapshots, upsertable on
// (user_id, playlist_key).
type PlaylistRepository struct {
	BaseRepository
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *PlaylistRepository) UpsertPlaylist(playlist *model.Playlist) error {
	if playlist.ID == "" {
		playlist.ID = uuid.New().String()
	}
	now := time.Now()
	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = now
	}
	playlist.UpdatedAt = now

	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "playlist_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "current_index", "last_played_id", "updated_at"}),
	}).Create(playlist).Error
}

func (ds *PlaylistRepository) ListPlaylists(userID string) ([]model.Playlist, error) {
	var playlists []model.Playlist
	if err := ds.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&playlists).Error; err != nil {
		return nil, err
	}
	return playlists, nil
}

func (ds *PlaylistRepository) DeletePlaylist(userID, playlistKey string) error {
	result := ds.db.Where("user_id = ? AND playlist_key = ?", userID, playlistKey).Delete(&model.Playlist{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
