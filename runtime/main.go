package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tubenote-labs/tubenote_api/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.MonitoringService{},
		&services.PostgresService{},
		&services.RedisService{},

		&services.JWTService{},
		&services.AuthService{},
		&services.RateLimitService{},

		&services.LocalStorageService{},
		&services.YouTubeService{},
		&services.PlaylistService{},
		&services.UserService{},
		&services.ProgressService{},
		&services.NoteService{},
		&services.MigrationService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
