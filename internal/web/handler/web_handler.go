package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/service"
)

// Querier is the slice of pgxpool.Pool needed by the example API endpoint.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WebHandler serves the example pages: a public home page and a demo API
// endpoint that round-trips through the database.
type WebHandler struct {
	appName     string
	userService *service.UserService
	db          Querier
}

func NewWebHandler(appName string, userService *service.UserService, db Querier) *WebHandler {
	return &WebHandler{appName: appName, userService: userService, db: db}
}

func (h *WebHandler) Home(c *fiber.Ctx) error {
	userCount, err := h.userService.Count(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"app_name":   h.appName,
		"message":    "Hello",
		"user_count": userCount,
	})
}

func (h *WebHandler) APIIndex(c *fiber.Ctx) error {
	var rand float64
	if err := h.db.QueryRow(c.UserContext(), `select RANDOM();`).Scan(&rand); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"value":   rand,
	})
}

func RegisterRoutes(app *fiber.App, h *WebHandler) {
	app.Get("/", h.Home)
	app.Get("/api/v1/", h.APIIndex)
}
