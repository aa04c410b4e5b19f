package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Users     *handlers.UsersHandler
	Calculate *handlers.CalculateHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/db", cfg.Health.DB)

	app.Get("/calculate", cfg.Calculate.Calculate)

	app.Post("/users", cfg.Users.Create)
	app.Get("/users", cfg.Users.List)
	app.Get("/users/:id", cfg.Users.Get)
	app.Put("/users/:id", cfg.Users.Update)
	app.Delete("/users/:id", cfg.Users.Delete)
}
