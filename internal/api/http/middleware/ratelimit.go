package middleware

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// RateLimit throttles requests per client IP.
type RateLimit struct {
	limiter model.RateLimiter
	logger  *logger.Logger
}

func NewRateLimit(limiter model.RateLimiter, logger *logger.Logger) *RateLimit {
	return &RateLimit{limiter: limiter, logger: logger}
}

// Handle answers 429 once the client's budget is spent. Limiter failures let
// the request through.
func (m *RateLimit) Handle(c *fiber.Ctx) error {
	key := c.Path() + ":" + c.IP()

	result, err := m.limiter.Allow(c.UserContext(), key)
	if err != nil {
		m.logger.Warn("RateLimit middleware: limiter unavailable",
			"path", c.Path(),
			"error", err.Error())
		return c.Next()
	}

	c.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

	if !result.Allowed {
		retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))

		m.logger.Info("RateLimit middleware: limit exceeded",
			"path", c.Path(),
			"ip", c.IP())
		return apperror.NewErrTooManyRequests()
	}

	return c.Next()
}
