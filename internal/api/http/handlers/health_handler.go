package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/persistence"
)

// HealthHandler responds to liveness and store health probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// Live reports service liveness; it touches no dependencies.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.serviceName,
		"version": h.version,
	})
}

// DB reports store health by issuing a round-trip query through the pool.
func (h *HealthHandler) DB(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.postgres.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "STORE_UNAVAILABLE",
				"message": "database unreachable",
			},
		})
	}

	body := fiber.Map{
		"status": "ok",
		"pool":   h.postgres.Stats(),
	}
	if h.redis.Enabled() {
		if err := h.redis.Ping(ctx); err != nil {
			body["cache"] = "unreachable"
		} else {
			body["cache"] = "ok"
		}
	}
	return c.JSON(body)
}
