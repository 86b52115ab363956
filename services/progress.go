package services

import (
	"github.com/alphabatem/common/context"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/model"
)

// ProgressService owns remote watch-progress rows. Completion writes also
// advance the user's streak as a side effect.
type ProgressService struct {
	context.DefaultService

	sqlSvc  *PostgresService
	userSvc *UserService
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	return nil
}

// UpdateProgress upserts the (user, video) progress row. When the video is
// marked completed the streak update runs afterwards; its failures never
// surface here.
func (svc *ProgressService) UpdateProgress(userID string, req dto.UpdateProgressRequest) (*model.VideoProgress, error) {
	progress := &model.VideoProgress{
		UserID:       userID,
		VideoID:      req.VideoID,
		PlaylistID:   req.PlaylistID,
		Completed:    req.Completed,
		WatchTime:    req.WatchTime,
		LastPosition: req.LastPosition,
	}

	if err := svc.sqlSvc.Progress().UpsertProgress(progress); err != nil {
		return nil, err
	}

	if req.Completed {
		svc.userSvc.UpdateStreak(userID)
	}

	return progress, nil
}

func (svc *ProgressService) GetProgress(userID, videoID, playlistID string) ([]model.VideoProgress, error) {
	return svc.sqlSvc.Progress().ListProgress(userID, videoID, playlistID)
}
