package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"studyhub/backend/config"
	"studyhub/backend/middleware"
	"studyhub/backend/routes"
	"studyhub/backend/store"
	"studyhub/backend/utils"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{
		Format:       cfg.LogFormat,
		Level:        cfg.LogLevel,
		EnableColors: true,
	})

	ctx := context.Background()

	// Initialize storage
	backend, err := utils.InitStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Error initializing storage")
	}
	defer backend.Close()

	s, err := store.New(ctx, backend,
		store.WithLogger(logger.With().Str("component", "store").Logger()),
		store.WithCredentials(store.CredentialsFor(cfg.PasswordMode)),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error initializing store")
	}
	defer s.Close()

	s.Subscribe(func() {
		logger.Debug().Msg("store changed")
	})

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	cleanup := routes.SetupRoutes(app, s, cfg, logger)
	defer cleanup()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("Server forced to shutdown")
		}
	}()

	// Start server
	logger.Info().Str("port", cfg.ServerPort).Str("storage", cfg.StorageDriver).Msg("Starting studyhub")
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Error().Err(err).Msg("Listen failed")
	}
}
