package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-admin/internal/config"
)

// unreachableRedis returns a client whose every dial fails, plus a counter
// of attempted dials. The counter tells exempt paths (no dial) apart from
// the fail-open path (dial attempted, request still served).
func unreachableRedis() (*redis.Client, *atomic.Int64) {
	var dials atomic.Int64
	client := redis.NewClient(&redis.Options{
		MaxRetries: -1,
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dials.Add(1)
			return nil, errors.New("connection refused")
		},
	})
	return client, &dials
}

func newLimitedApp(client *redis.Client, cfg config.RateLimitConfig) *fiber.App {
	app := fiber.New()
	app.Use(errorHandlingMiddleware(zap.NewNop(), nil))
	app.Use(RateLimiter(client, cfg, zap.NewNop()))
	app.Get("/products", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success"})
	})
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success"})
	})
	return app
}

func TestRateLimiter_NilClientPassesThrough(t *testing.T) {
	app := newLimitedApp(nil, config.RateLimitConfig{WindowMinutes: 1, MaxRequests: 1})

	for i := 0; i < 3; i++ {
		status, _ := doRequest(t, app, "/products", "")
		require.Equal(t, http.StatusOK, status)
	}
}

func TestRateLimiter_DisabledWhenMaxIsZero(t *testing.T) {
	client, dials := unreachableRedis()
	app := newLimitedApp(client, config.RateLimitConfig{WindowMinutes: 1})

	status, _ := doRequest(t, app, "/products", "")
	require.Equal(t, http.StatusOK, status)
	require.Zero(t, dials.Load(), "disabled limiter must not touch redis")
}

func TestRateLimiter_HealthPathsExempt(t *testing.T) {
	client, dials := unreachableRedis()
	app := newLimitedApp(client, config.RateLimitConfig{WindowMinutes: 1, MaxRequests: 1})

	for i := 0; i < 3; i++ {
		status, _ := doRequest(t, app, "/health/live", "")
		require.Equal(t, http.StatusOK, status)
	}
	require.Zero(t, dials.Load(), "health endpoints must not be counted")
}

func TestRateLimiter_FailsOpenWhenRedisUnavailable(t *testing.T) {
	client, dials := unreachableRedis()
	app := newLimitedApp(client, config.RateLimitConfig{WindowMinutes: 1, MaxRequests: 1})

	for i := 0; i < 3; i++ {
		status, _ := doRequest(t, app, "/products", "")
		require.Equal(t, http.StatusOK, status)
	}
	require.Positive(t, dials.Load(), "limiter should have tried redis before letting requests through")
}
