package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tubenote-labs/tubenote_api/model"
)

// NoteRepository handles note rows. Notes are insert-only from the
// migration path: there is no uniqueness constraint to upsert against.
type NoteRepository struct {
	BaseRepository
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *NoteRepository) InsertNote(note *model.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	return ds.db.Create(note).Error
}

func (ds *NoteRepository) GetNote(userID, noteID string) (*model.Note, error) {
	var note model.Note
	if err := ds.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (ds *NoteRepository) ListNotes(userID, videoID string) ([]model.Note, error) {
	query := ds.db.Where("user_id = ?", userID).Order("updated_at DESC")
	if videoID != "" {
		query = query.Where("video_id = ?", videoID)
	}

	var notes []model.Note
	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (ds *NoteRepository) UpdateNote(note *model.Note) error {
	note.UpdatedAt = time.Now()
	return ds.db.Save(note).Error
}

func (ds *NoteRepository) DeleteNote(userID, noteID string) error {
	result := ds.db.Where("id = ? AND user_id = ?", noteID, userID).Delete(&model.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
