package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/domain"
	"github.com/tmkontra/fullstack-boilerplate/internal/auth/handler"
	"github.com/tmkontra/fullstack-boilerplate/internal/auth/service"
	"github.com/tmkontra/fullstack-boilerplate/internal/mocks"
)

const cookieName = "session_id"

type guardFixture struct {
	app      *fiber.App
	guard    *handler.Guard
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	sessions := mocks.NewMockSessionRepository(ctrl)
	sessionService := service.NewSessionService(users, sessions, time.Hour)
	guard := handler.NewGuard(sessionService, cookieName)

	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/session-only", guard.RequireSession(), ok)
	app.Get("/user-only", guard.RequireUser(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": handler.CurrentUser(c).ID})
	})
	app.Get("/admin-only", guard.RequireAdmin(), ok)
	app.Get("/optional", guard.OptionalSession(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"authenticated": handler.CurrentSession(c) != nil})
	})

	return &guardFixture{app: app, guard: guard, users: users, sessions: sessions}
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func activeSession(token string) *domain.UserSession {
	return &domain.UserSession{
		ID: "s1", UserID: "u1", SessionID: token,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestRequireSessionMiddleware(t *testing.T) {
	t.Run("missing cookie", func(t *testing.T) {
		f := newGuardFixture(t)
		resp := get(t, f.app, "/session-only", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "bad").Return(nil, nil)

		resp := get(t, f.app, "/session-only", "bad")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired session", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "old").Return(&domain.UserSession{
			ID: "s1", SessionID: "old", ExpiresAt: time.Now().Add(-time.Hour),
		}, nil)

		resp := get(t, f.app, "/session-only", "old")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logged-out session", func(t *testing.T) {
		f := newGuardFixture(t)
		past := time.Now().Add(-time.Minute)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "out").Return(&domain.UserSession{
			ID: "s1", SessionID: "out",
			ExpiresAt: time.Now().Add(time.Hour), LoggedOutAt: &past,
		}, nil)

		resp := get(t, f.app, "/session-only", "out")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("active session passes", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "good").Return(activeSession("good"), nil)

		resp := get(t, f.app, "/session-only", "good")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRequireUserMiddleware(t *testing.T) {
	t.Run("resolves the owning user", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "good").Return(activeSession("good"), nil)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{ID: "u1"}, nil)

		resp := get(t, f.app, "/user-only", "good")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("session without user row denies with 401", func(t *testing.T) {
		// Integrity failures stay out of responses; they only hit the log.
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "orphan").Return(activeSession("orphan"), nil)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(nil, nil)

		resp := get(t, f.app, "/user-only", "orphan")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireAdminMiddleware(t *testing.T) {
	t.Run("non-admin and anonymous get the same status", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "plain").Return(activeSession("plain"), nil)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{ID: "u1", IsAdmin: false}, nil)

		nonAdmin := get(t, f.app, "/admin-only", "plain")
		anonymous := get(t, f.app, "/admin-only", "")

		assert.Equal(t, http.StatusUnauthorized, nonAdmin.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, anonymous.StatusCode)
	})

	t.Run("admin passes", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "boss").Return(activeSession("boss"), nil)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{ID: "u1", IsAdmin: true}, nil)

		resp := get(t, f.app, "/admin-only", "boss")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestOptionalSessionMiddleware(t *testing.T) {
	t.Run("anonymous request proceeds", func(t *testing.T) {
		f := newGuardFixture(t)
		resp := get(t, f.app, "/optional", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("invalid token proceeds without session", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "bad").Return(nil, nil)

		resp := get(t, f.app, "/optional", "bad")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("active token attaches session", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "good").Return(activeSession("good"), nil)

		resp := get(t, f.app, "/optional", "good")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

// TestAdminBoundary exercises the single gate in front of the mounted admin
// surface across every failure kind.
func TestAdminBoundary(t *testing.T) {
	newBoundaryApp := func(f *guardFixture, debugAdmin bool) *fiber.App {
		admin := fiber.New()
		admin.Use(f.guard.AdminBoundary(debugAdmin))
		admin.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		app := fiber.New()
		app.Mount("/admin", admin)
		return app
	}

	t.Run("missing cookie", func(t *testing.T) {
		f := newGuardFixture(t)
		resp := get(t, newBoundaryApp(f, false), "/admin/", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired session", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "old").Return(&domain.UserSession{
			ID: "s1", UserID: "u1", SessionID: "old", ExpiresAt: time.Now().Add(-time.Hour),
		}, nil)

		resp := get(t, newBoundaryApp(f, false), "/admin/", "old")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logged-out session", func(t *testing.T) {
		f := newGuardFixture(t)
		past := time.Now().Add(-time.Minute)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "out").Return(&domain.UserSession{
			ID: "s1", UserID: "u1", SessionID: "out",
			ExpiresAt: time.Now().Add(time.Hour), LoggedOutAt: &past,
		}, nil)

		resp := get(t, newBoundaryApp(f, false), "/admin/", "out")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid non-admin session", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "plain").Return(activeSession("plain"), nil)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{ID: "u1", IsAdmin: false}, nil)

		resp := get(t, newBoundaryApp(f, false), "/admin/", "plain")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("session whose user row is gone fails closed", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "orphan").Return(activeSession("orphan"), nil)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(nil, nil)

		resp := get(t, newBoundaryApp(f, false), "/admin/", "orphan")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("admin session passes", func(t *testing.T) {
		f := newGuardFixture(t)
		f.sessions.EXPECT().GetByToken(gomock.Any(), "boss").Return(activeSession("boss"), nil)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{ID: "u1", IsAdmin: true}, nil)

		resp := get(t, newBoundaryApp(f, false), "/admin/", "boss")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("debug flag bypasses the gate", func(t *testing.T) {
		f := newGuardFixture(t)
		resp := get(t, newBoundaryApp(f, true), "/admin/", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
