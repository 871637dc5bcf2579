package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/domain"
	"github.com/tmkontra/fullstack-boilerplate/internal/auth/service"
	autherror "github.com/tmkontra/fullstack-boilerplate/internal/errors"
)

const (
	localsUserKey    = "user"
	localsSessionKey = "session"
)

// Guard builds the route-level auth middleware from the session service.
// Both the public app and the admin sub-app consume the same chains.
type Guard struct {
	sessions   *service.SessionService
	cookieName string
}

func NewGuard(sessions *service.SessionService, cookieName string) *Guard {
	return &Guard{sessions: sessions, cookieName: cookieName}
}

func (g *Guard) token(c *fiber.Ctx) string {
	return c.Cookies(g.cookieName)
}

// RequireSession admits only requests carrying an active session.
func (g *Guard) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := g.sessions.RequireSession(c.UserContext(), g.token(c))
		if err != nil {
			return guardError(c, err)
		}

		c.Locals(localsSessionKey, session)

		return c.Next()
	}
}

// RequireUser admits only requests whose session resolves to a user.
func (g *Guard) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := g.sessions.RequireSession(c.UserContext(), g.token(c))
		if err != nil {
			return guardError(c, err)
		}

		user, err := g.sessions.ResolveUser(c.UserContext(), session)
		if err != nil {
			return guardError(c, err)
		}

		c.Locals(localsSessionKey, session)
		c.Locals(localsUserKey, user)

		return c.Next()
	}
}

// RequireAdmin admits only requests from administrator users.
func (g *Guard) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := g.sessions.RequireAdmin(c.UserContext(), g.token(c))
		if err != nil {
			return guardError(c, err)
		}

		c.Locals(localsUserKey, user)

		return c.Next()
	}
}

// OptionalSession resolves an active session when one is present and lets
// every request through. Handlers see the session via CurrentSession, which
// is nil for anonymous requests.
func (g *Guard) OptionalSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := g.sessions.OptionalSession(c.UserContext(), g.token(c))
		if err != nil {
			return guardError(c, err)
		}
		if session != nil {
			c.Locals(localsSessionKey, session)
		}

		return c.Next()
	}
}

// IsAdminRequest runs the full admin chain against the request cookie and
// collapses every failure kind, including data-integrity failures, into
// false. The admin gate must deny access on corrupted state, not crash.
func (g *Guard) IsAdminRequest(c *fiber.Ctx) bool {
	_, err := g.sessions.RequireAdmin(c.UserContext(), g.token(c))
	if err != nil {
		if errors.Is(err, autherror.ErrSessionUserMissing) {
			log.Printf("error: admin gate denied corrupted session: %v", err)
		}
		return false
	}
	return true
}

// AdminBoundary gates an entire mounted sub-app behind one admin check.
// debugAdmin bypasses the gate for local development.
func (g *Guard) AdminBoundary(debugAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.IsAdminRequest(c) || debugAdmin {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUnauthorized)
	}
}

// CurrentUser returns the user stored by RequireUser/RequireAdmin, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(localsUserKey).(*domain.User)
	return user
}

// CurrentSession returns the session stored by the session guards, or nil.
func CurrentSession(c *fiber.Ctx) *domain.UserSession {
	session, _ := c.Locals(localsSessionKey).(*domain.UserSession)
	return session
}

// guardError maps chain failures to HTTP statuses. Unauthenticated and
// Forbidden both surface as a generic 401 so responses never reveal whether
// a token was invalid or merely under-privileged. A session pointing at a
// missing user is logged as corruption and still denied with 401.
func guardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, autherror.ErrUnauthenticated), errors.Is(err, autherror.ErrForbidden):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	case errors.Is(err, autherror.ErrSessionUserMissing):
		log.Printf("error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}
