package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tmkontra/fullstack-boilerplate/config"
	"github.com/tmkontra/fullstack-boilerplate/db"
	adminhandler "github.com/tmkontra/fullstack-boilerplate/internal/admin/handler"
	"github.com/tmkontra/fullstack-boilerplate/internal/auth/handler"
	repo "github.com/tmkontra/fullstack-boilerplate/internal/auth/repository/postgres"
	"github.com/tmkontra/fullstack-boilerplate/internal/auth/service"
	webhandler "github.com/tmkontra/fullstack-boilerplate/internal/web/handler"
)

func main() {
	cfg := config.Load()

	if err := db.Migrate(cfg.DBURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	dbPool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to create database pool: %v", err)
	}
	defer dbPool.Close()

	userRepo := repo.NewUserRepository(dbPool)
	sessionRepo := repo.NewSessionRepository(dbPool)

	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	passwordService := service.NewPasswordService(cfg.BcryptCost)
	sessionService := service.NewSessionService(userRepo, sessionRepo, sessionTTL)
	userService := service.NewUserService(userRepo, passwordService, sessionService)

	guard := handler.NewGuard(sessionService, cfg.CookieName)
	authHandler := handler.NewAuthHandler(userService, cfg.CookieName)
	webHandler := webhandler.NewWebHandler(cfg.AppName, userService, dbPool)
	adminHandler := adminhandler.NewAdminHandler(userService, sessionService)

	if cfg.DebugAdmin {
		log.Printf("warn: DEBUG_ADMIN is enabled, admin panel is unauthenticated")
	}

	app := fiber.New(fiber.Config{AppName: cfg.AppName})
	webhandler.RegisterRoutes(app, webHandler)
	handler.RegisterRoutes(app, authHandler, guard)
	app.Mount("/admin", adminhandler.NewAdminApp(adminHandler, guard, cfg.DebugAdmin))

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
