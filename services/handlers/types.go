package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RequiredAuth() fiber.Handler
	RequireDevice() fiber.Handler
}

type PlaylistServiceInterface interface {
	FetchPlaylist(deviceID, url string) (*dto.FetchPlaylistResponse, error)
	SaveState(deviceID string, data dto.PlaylistData)
	LoadState(deviceID, playlistKey string) *dto.LoadStateResponse
	VideoStatus(deviceID, playlistKey string) []model.VideoStatus
	ClearState(deviceID string)
	SavePlaylist(userID string, req dto.SavePlaylistRequest) (*model.Playlist, error)
	ListPlaylists(userID string) ([]model.Playlist, error)
	DeletePlaylist(userID, playlistKey string) error
}

type LocalNoteServiceInterface interface {
	SaveNote(deviceID string, note model.LocalNote)
	GetNote(deviceID, videoID string) *model.LocalNote
}

type NoteServiceInterface interface {
	CreateNote(userID string, req dto.CreateNoteRequest) (*model.Note, error)
	ListNotes(userID, videoID string) ([]model.Note, error)
	UpdateNote(userID, noteID string, req dto.UpdateNoteRequest) (*model.Note, error)
	DeleteNote(userID, noteID string) error
}

type ProgressServiceInterface interface {
	UpdateProgress(userID string, req dto.UpdateProgressRequest) (*model.VideoProgress, error)
	GetProgress(userID, videoID, playlistID string) ([]model.VideoProgress, error)
}

type UserServiceInterface interface {
	SyncUser(userID string, req dto.SyncUserRequest) (*model.User, error)
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	GetSettings(userID string) (*model.UserSettings, error)
	UpdateSettings(userID string, req dto.UpdateSettingsRequest) (*model.UserSettings, error)
}

type MigrationServiceInterface interface {
	MigrateNotes(deviceID, userID string) dto.CategoryResult
	MigrateProgress(deviceID, userID string) dto.CategoryResult
	MigrateSettings(deviceID, userID string) dto.SettingsResult
	RunFullMigration(deviceID, userID string) dto.MigrationResult
	NeedsMigration(deviceID string) bool
	ClearMigratedData(deviceID string)
}
