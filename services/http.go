package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/tubenote-labs/tubenote_api/services/handlers"
	"github.com/tubenote-labs/tubenote_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.app = fiber.New(fiber.Config{
		AppName:      "tubenote_api",
		ErrorHandler: svc.handleError,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Device-ID",
	}))
	svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes()

	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) registerRoutes() {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	playlistHandler := handlers.NewPlaylistHandler(svc.Service(PLAYLIST_SVC).(*PlaylistService))
	localHandler := handlers.NewLocalHandler(
		svc.Service(PLAYLIST_SVC).(*PlaylistService),
		svc.Service(LOCAL_STORAGE_SVC).(*LocalStorageService),
	)
	noteHandler := handlers.NewNoteHandler(svc.Service(NOTE_SVC).(*NoteService))
	progressHandler := handlers.NewProgressHandler(svc.Service(PROGRESS_SVC).(*ProgressService))
	userHandler := handlers.NewUserHandler(svc.Service(USER_SVC).(*UserService))
	migrationHandler := handlers.NewMigrationHandler(svc.Service(MIGRATION_SVC).(*MigrationService), svc.monitoringSvc)

	svc.app.Get("/ping", svc.ping)

	v1 := svc.app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	requireAuth := svc.authSvc.RequiredAuth()
	requireDevice := svc.authSvc.RequireDevice()

	auth := v1.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	v1.Post("/playlist/fetch", requireDevice, svc.rateLimitSvc.FetchLimiter(), playlistHandler.FetchPlaylist)

	// Guest routes, keyed on the X-Device-ID header.
	local := v1.Group("/local", requireDevice)
	local.Post("/state", localHandler.SaveState)
	local.Get("/state", localHandler.LoadState)
	local.Delete("/state", localHandler.ClearState)
	local.Get("/state/:key/videos", localHandler.VideoStatus)
	local.Post("/notes", localHandler.SaveNote)
	local.Get("/notes/:videoId", localHandler.GetNote)

	notes := v1.Group("/notes", requireAuth)
	notes.Get("/", noteHandler.ListNotes)
	notes.Post("/", noteHandler.CreateNote)
	notes.Put("/:id", noteHandler.UpdateNote)
	notes.Delete("/:id", noteHandler.DeleteNote)

	progress := v1.Group("/progress", requireAuth)
	progress.Get("/", progressHandler.GetProgress)
	progress.Post("/", progressHandler.UpdateProgress)

	user := v1.Group("/user", requireAuth)
	user.Post("/sync", userHandler.SyncUser)
	user.Get("/profile", userHandler.GetProfile)
	user.Get("/settings", userHandler.GetSettings)
	user.Put("/settings", userHandler.UpdateSettings)

	playlists := v1.Group("/playlists", requireAuth)
	playlists.Get("/", playlistHandler.ListPlaylists)
	playlists.Post("/", playlistHandler.SavePlaylist)
	playlists.Delete("/:key", playlistHandler.DeletePlaylist)

	// Migration needs both the signed-in user and the device bucket.
	migration := v1.Group("/migration", requireAuth, requireDevice)
	migration.Post("/run", migrationHandler.RunMigration)
	migration.Get("/status", migrationHandler.MigrationStatus)
	migration.Delete("/local", migrationHandler.ClearMigratedData)
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ResponseJSON(c, fiber.StatusNotFound, "Not Found", nil)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
