package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/shared"
)

type AuthService struct {
	context.DefaultService

	sqlSvc *PostgresService
	jwtSvc *JWTService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if _, err := svc.sqlSvc.Users().GetUserByEmail(req.Email); err == nil {
		return nil, shared.NewConflictError(nil, "Email is already registered")
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := svc.sqlSvc.Users().CreateUser(req.Email, req.Name, string(hash))
	if err != nil {
		return nil, err
	}

	log.WithField(shared.UserID, user.ID).Info("User registered")

	return &dto.RegisterResponse{UserID: user.ID, Email: user.Email}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.sqlSvc.Users().GetUserByEmail(req.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewUnauthorizedError(nil, "Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(nil, "Invalid email or password")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.Users().UpdateLastLogin(user.ID); err != nil {
		log.WithError(err).WithField(shared.UserID, user.ID).Warn("Failed to record last login")
	}

	user.LastLogin = time.Now()

	return &dto.LoginResponse{UserID: user.ID, Tokens: tokens}, nil
}

// RequiredAuth verifies the bearer token and places the user id in the
// request locals.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if userID == "" {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}

// RequireDevice resolves the device identity for local-store routes. The
// client generates the id once and sends it on every request.
func (svc *AuthService) RequireDevice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		deviceID := c.Get("X-Device-ID")
		if deviceID == "" {
			return shared.NewBadRequestError(nil, "X-Device-ID header is required")
		}

		c.Locals(shared.DeviceID, deviceID)
		return c.Next()
	}
}
