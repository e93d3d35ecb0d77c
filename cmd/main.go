package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/task-service/config"
	"github.com/taskhive/task-service/db"
	authhandler "github.com/taskhive/task-service/internal/auth/handler"
	authrepo "github.com/taskhive/task-service/internal/auth/repository/postgres"
	authservice "github.com/taskhive/task-service/internal/auth/service"
	taskhandler "github.com/taskhive/task-service/internal/task/handler"
	taskrepo "github.com/taskhive/task-service/internal/task/repository/postgres"
	taskservice "github.com/taskhive/task-service/internal/task/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("db: %v", err)
	}

	userRepo := authrepo.NewPostgresUserRepository(dbPool)
	tokenService := authservice.NewTokenService(cfg.TokenSecret, cfg.TokenExpiryMin)
	userService := authservice.NewUserService(userRepo, tokenService, cfg.PasswordMinLength)
	authHandler := authhandler.NewAuthHandler(userService)

	taskRepo := taskrepo.NewPostgresTaskRepository(dbPool)
	taskService := taskservice.NewTaskService(taskRepo)
	taskHandler := taskhandler.NewTaskHandler(taskService)

	app := fiber.New()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Task Management API"})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := dbPool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authhandler.RegisterRoutes(app, authHandler)
	taskhandler.RegisterRoutes(app, taskHandler, authHandler.RequireAuth)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
