package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, g *Guard) {
	app.Post("/api/v1/register", h.Register)
	app.Post("/api/v1/login", h.Login)
	app.Delete("/api/v1/session", h.Logout)
	app.Get("/api/v1/me", g.RequireUser(), h.Me)
}
