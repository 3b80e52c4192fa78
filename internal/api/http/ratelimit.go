package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-admin/internal/config"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimiter bounds request volume per client IP using a fixed window
// counter in Redis. Health endpoints are exempt, and the limiter fails open
// when Redis is unreachable: throttling is a guard, not a correctness
// dependency.
func RateLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	window := cfg.Window()
	message := fmt.Sprintf("Too many requests. Limit: %d per %d minutes.", cfg.MaxRequests, cfg.WindowMinutes)

	return func(c *fiber.Ctx) error {
		if client == nil || cfg.MaxRequests <= 0 {
			return c.Next()
		}
		if strings.HasPrefix(c.Path(), "/health") {
			return c.Next()
		}

		key := rateLimitKeyPrefix + c.IP()
		ctx := c.UserContext()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("rate limiter expire failed", zap.Error(err))
			}
		}
		if count > int64(cfg.MaxRequests) {
			return apperrors.NewDomainError("RATE_LIMITED", message, fiber.StatusTooManyRequests)
		}
		return c.Next()
	}
}
