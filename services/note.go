package services

import (
	"github.com/alphabatem/common/context"
	"gorm.io/gorm"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/model"
	"github.com/tubenote-labs/tubenote_api/shared"
)

type NoteService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const NOTE_SVC = "note_svc"

func (svc NoteService) Id() string {
	return NOTE_SVC
}

func (svc *NoteService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func (svc *NoteService) CreateNote(userID string, req dto.CreateNoteRequest) (*model.Note, error) {
	note := &model.Note{
		UserID:  userID,
		VideoID: req.VideoID,
		Title:   req.Title,
		Content: req.Content,
	}

	if err := svc.sqlSvc.Notes().InsertNote(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (svc *NoteService) ListNotes(userID, videoID string) ([]model.Note, error) {
	return svc.sqlSvc.Notes().ListNotes(userID, videoID)
}

func (svc *NoteService) UpdateNote(userID, noteID string, req dto.UpdateNoteRequest) (*model.Note, error) {
	note, err := svc.sqlSvc.Notes().GetNote(userID, noteID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "Note not found")
		}
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	if err := svc.sqlSvc.Notes().UpdateNote(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (svc *NoteService) DeleteNote(userID, noteID string) error {
	if err := svc.sqlSvc.Notes().DeleteNote(userID, noteID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return shared.NewNotFoundError(err, "Note not found")
		}
		return err
	}
	return nil
}
