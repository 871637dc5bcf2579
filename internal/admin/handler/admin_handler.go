package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/dto"
	"github.com/tmkontra/fullstack-boilerplate/internal/auth/service"
	autherror "github.com/tmkontra/fullstack-boilerplate/internal/errors"
)

// AdminHandler exposes record editing for the admin panel: user accounts and
// their sessions. Authorization happens at the sub-app boundary, not here.
type AdminHandler struct {
	userService    *service.UserService
	sessionService *service.SessionService
}

func NewAdminHandler(userService *service.UserService, sessionService *service.SessionService) *AdminHandler {
	return &AdminHandler{userService: userService, sessionService: sessionService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	out := make([]dto.UserOutput, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserOutput(&users[i]))
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var input dto.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	user, err := h.userService.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

func (h *AdminHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.sessionService.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	out := make([]dto.SessionOutput, 0, len(sessions))
	for i := range sessions {
		out = append(out, dto.NewSessionOutput(&sessions[i]))
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AdminHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessionService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, autherror.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewSessionOutput(session))
}

// InvalidateSession force-logs-out a session. Sessions are audit trail and
// are never deleted, only marked logged out.
func (h *AdminHandler) InvalidateSession(c *fiber.Ctx) error {
	err := h.sessionService.InvalidateByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, autherror.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
