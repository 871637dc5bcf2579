package handler

import (
	"github.com/gofiber/fiber/v2"

	authhandler "github.com/tmkontra/fullstack-boilerplate/internal/auth/handler"
)

// NewAdminApp builds the admin sub-app. Every route is behind the single
// boundary middleware; a request that fails the admin chain gets a bare 401
// before any handler runs.
func NewAdminApp(h *AdminHandler, g *authhandler.Guard, debugAdmin bool) *fiber.App {
	app := fiber.New()
	app.Use(g.AdminBoundary(debugAdmin))

	app.Get("/users", h.ListUsers)
	app.Get("/users/:id", h.GetUser)
	app.Patch("/users/:id", h.UpdateUser)
	app.Get("/sessions", h.ListSessions)
	app.Get("/sessions/:id", h.GetSession)
	app.Delete("/sessions/:id", h.InvalidateSession)

	return app
}
