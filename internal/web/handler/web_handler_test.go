package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/service"
	"github.com/tmkontra/fullstack-boilerplate/internal/mocks"
	"github.com/tmkontra/fullstack-boilerplate/internal/web/handler"
)

type webFixture struct {
	app   *fiber.App
	users *mocks.MockUserRepository
	db    pgxmock.PgxPoolIface
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	users := mocks.NewMockUserRepository(ctrl)
	sessions := mocks.NewMockSessionRepository(ctrl)
	passwords := service.NewPasswordService(4)
	sessionService := service.NewSessionService(users, sessions, time.Hour)
	userService := service.NewUserService(users, passwords, sessionService)

	app := fiber.New()
	handler.RegisterRoutes(app, handler.NewWebHandler("test-app", userService, db))

	return &webFixture{app: app, users: users, db: db}
}

func TestHome(t *testing.T) {
	f := newWebFixture(t)
	f.users.EXPECT().Count(gomock.Any()).Return(42, nil)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		AppName   string `json:"app_name"`
		Message   string `json:"message"`
		UserCount int    `json:"user_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "test-app", out.AppName)
	assert.Equal(t, "Hello", out.Message)
	assert.Equal(t, 42, out.UserCount)
}

func TestAPIIndex(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newWebFixture(t)
		f.db.ExpectQuery(`select RANDOM\(\);`).
			WillReturnRows(pgxmock.NewRows([]string{"random"}).AddRow(0.5))

		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Success bool    `json:"success"`
			Value   float64 `json:"value"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.True(t, out.Success)
		assert.Equal(t, 0.5, out.Value)

		require.NoError(t, f.db.ExpectationsWereMet())
	})

	t.Run("database failure", func(t *testing.T) {
		f := newWebFixture(t)
		f.db.ExpectQuery(`select RANDOM\(\);`).
			WillReturnError(assert.AnError)

		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}
