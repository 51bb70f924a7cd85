package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/tasktracker-server/internal/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one backing dependency.
type HealthCheck func(ctx context.Context) error

// Health reports liveness and the reachability of backing dependencies.
type Health struct {
	checks map[string]HealthCheck
	logger *logger.Logger
}

func NewHealth(checks map[string]HealthCheck, logger *logger.Logger) *Health {
	return &Health{checks: checks, logger: logger}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Check answers 200 when every dependency responds and 503 otherwise.
func (h *Health) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok"}
	code := fiber.StatusOK

	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Health handler: dependency unavailable",
				"dependency", name,
				"error", err.Error())
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	return c.Status(code).JSON(resp)
}
