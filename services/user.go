package services

import (
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/model"
	"github.com/tubenote-labs/tubenote_api/shared"
)

// UserStore is the slice of the user repository the streak and sync logic
// depend on.
type UserStore interface {
	GetUser(userID string) (*model.User, error)
	UpsertUser(user *model.User) error
	UpdateStreak(userID string, lastActivityDate time.Time, currentStreak int) error
}

type UserService struct {
	context.DefaultService

	sqlSvc *PostgresService

	users UserStore
	now   func() time.Time
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	if svc.users == nil {
		svc.users = svc.sqlSvc.Users()
	}
	return nil
}

// SyncUser upserts the user row at sign-in: created on first login,
// profile fields refreshed afterwards.
func (svc *UserService) SyncUser(userID string, req dto.SyncUserRequest) (*model.User, error) {
	user := &model.User{
		ID:    userID,
		Email: req.Email,
		Name:  req.Name,
		Image: req.Image,
	}

	if err := svc.users.UpsertUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (svc *UserService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := svc.users.GetUser(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, err
	}

	profile := &dto.UserProfileResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Image:         user.Image,
		CurrentStreak: user.CurrentStreak,
	}
	if user.LastActivityDate != nil {
		d := user.LastActivityDate.UTC().Format("2006-01-02")
		profile.LastActivityDate = &d
	}
	return profile, nil
}

// UpdateStreak advances the user's consecutive-day streak after a video
// completion. Day boundaries are UTC calendar dates: same day is a no-op
// (no write at all), the next day increments, anything longer resets to 1.
// Failures are logged and swallowed; a streak update must never fail the
// progress write that triggered it.
func (svc *UserService) UpdateStreak(userID string) {
	user, err := svc.users.GetUser(userID)
	if err != nil {
		log.WithError(err).WithField(shared.UserID, userID).Error("Failed to fetch user for streak update")
		return
	}

	today := utcDate(svc.now())
	newStreak := 1

	if user.LastActivityDate != nil {
		lastDay := utcDate(*user.LastActivityDate)
		diffDays := int(today.Sub(lastDay).Hours() / 24)

		switch diffDays {
		case 0:
			// Same day, nothing to record
			return
		case 1:
			newStreak = user.CurrentStreak + 1
		}
		// Missed day(s): newStreak stays 1
	}

	if err := svc.users.UpdateStreak(userID, today, newStreak); err != nil {
		log.WithError(err).WithField(shared.UserID, userID).Error("Failed to update streak")
	}
}

func utcDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ==================== SETTINGS ====================

func (svc *UserService) GetSettings(userID string) (*model.UserSettings, error) {
	settings, err := svc.sqlSvc.Settings().GetSettings(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "Settings not found")
		}
		return nil, err
	}
	return settings, nil
}

// UpdateSettings upserts the user's settings row, filling unspecified
// fields with the current row's values or the defaults.
func (svc *UserService) UpdateSettings(userID string, req dto.UpdateSettingsRequest) (*model.UserSettings, error) {
	settings := &model.UserSettings{
		UserID:        userID,
		DarkMode:      shared.DefaultDarkMode,
		PlaybackSpeed: shared.DefaultPlaybackSpeed,
		Volume:        shared.DefaultVolume,
	}

	if existing, err := svc.sqlSvc.Settings().GetSettings(userID); err == nil {
		settings.DarkMode = existing.DarkMode
		settings.PlaybackSpeed = existing.PlaybackSpeed
		settings.Volume = existing.Volume
	}

	if req.DarkMode != nil {
		settings.DarkMode = *req.DarkMode
	}
	if req.PlaybackSpeed != nil {
		settings.PlaybackSpeed = *req.PlaybackSpeed
	}
	if req.Volume != nil {
		settings.Volume = *req.Volume
	}

	if err := svc.sqlSvc.Settings().UpsertSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
