package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/tubenote-labs/tubenote_api/shared"
)

// RateLimitService throttles the YouTube fetch endpoint per client so one
// device cannot burn through the API quota. Redis fixed-window counters.
type RateLimitService struct {
	appContext.DefaultService

	redisSvc *RedisService

	fetchLimit  int64
	fetchWindow time.Duration
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.fetchLimit = 30
	if v := os.Getenv("FETCH_RATE_LIMIT"); v != "" {
		if limit, err := strconv.ParseInt(v, 10, 64); err == nil && limit > 0 {
			svc.fetchLimit = limit
		}
	}
	svc.fetchWindow = time.Minute
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// Allow counts one hit for the client key and reports whether it is still
// inside the window's budget. Redis failures fail open.
func (svc *RateLimitService) Allow(clientKey string) bool {
	ctx := context.Background()
	key := fmt.Sprintf("ratelimit:fetch:%s", clientKey)

	count, err := svc.redisSvc.Increment(ctx, key)
	if err != nil {
		log.WithError(err).Warn("Rate limit check failed, allowing request")
		return true
	}

	if count == 1 {
		if err := svc.redisSvc.Expire(ctx, key, svc.fetchWindow); err != nil {
			log.WithError(err).Warn("Failed to set rate limit window")
		}
	}

	return count <= svc.fetchLimit
}

// FetchLimiter is the Fiber middleware guarding quota-bound routes.
func (svc *RateLimitService) FetchLimiter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientKey := c.Get("X-Device-ID")
		if clientKey == "" {
			clientKey = c.IP()
		}

		if !svc.Allow(clientKey) {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests",
				"Fetch rate limit exceeded, try again later")
		}

		return c.Next()
	}
}
