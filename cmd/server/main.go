package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/radaiko/ReadRiser/internal/config"
	"github.com/radaiko/ReadRiser/internal/database"
	"github.com/radaiko/ReadRiser/internal/handlers"
	"github.com/radaiko/ReadRiser/internal/middleware"
	"github.com/radaiko/ReadRiser/internal/services"
	"github.com/radaiko/ReadRiser/internal/storage"
	"github.com/radaiko/ReadRiser/internal/store"
	"github.com/radaiko/ReadRiser/pkg/logger"
)

func main() {
	logger.Init()

	cfg := config.Load()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	blob, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("storage initialization failed: %v", err)
	}

	users := store.NewGormUsers(db)
	files := store.NewGormFiles(db)

	userService := services.NewUserService(users)
	fileService := services.NewFileService(users, files, blob)

	usersHandler := handlers.NewUsersHandler(userService)
	filesHandler := handlers.NewFilesHandler(fileService)
	sharesHandler := handlers.NewSharesHandler(fileService)

	app := fiber.New(fiber.Config{BodyLimit: 100 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Get("/version", handlers.GetVersion)
	api.Get("/status", handlers.GetStatus)
	api.Get("/credits", handlers.GetCredits)

	userRoutes := api.Group("/users", middleware.RequireActor)
	userRoutes.Post("/", usersHandler.Create)
	userRoutes.Get("/", usersHandler.List)
	userRoutes.Get("/:id", usersHandler.Get)

	fileRoutes := api.Group("/files", middleware.RequireActor)
	fileRoutes.Post("/upload", filesHandler.Upload)
	fileRoutes.Get("/", filesHandler.List)
	fileRoutes.Get("/:id/download", filesHandler.Download)
	fileRoutes.Post("/:id/share", sharesHandler.ShareFile)
	fileRoutes.Get("/:id", filesHandler.Get)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
		"db":      cfg.DB.Driver,
		"storage": cfg.Storage.Backend,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
