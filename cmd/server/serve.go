package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/storage"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg := config.Load()
	stdout := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Database log sink (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db)
	defer dbLogHandler.Stop()
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, dbLogHandler)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	defer close(cleanupDone)
	logging.StartCleanup(db, cleanupDone)

	// Object storage
	var presigner storage.Presigner
	s3Presigner, err := storage.NewS3Presigner(ctx, cfg)
	if err != nil {
		return err
	}
	presigner = s3Presigner

	if cfg.RedisURL != "" {
		rdb, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, signed URLs will not be cached", "error", err)
		} else {
			defer rdb.Close()
			presigner = storage.NewCachedPresigner(presigner, rdb, "")
			slog.Info("signed URL cache enabled")
		}
	}
	signer := storage.NewSigner(presigner, cfg.PresignTTL)

	// Services
	reviewService := services.NewReviewService(db, signer, classifier.New(cfg))
	spaceService := services.NewSpaceService(db, signer)
	uploadService := services.NewUploadService(signer, cfg.ObjectBaseURL())

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := newApp(cfg, routes.Handlers{
		Health: handlers.NewHealthHandler(db),
		Review: handlers.NewReviewHandler(reviewService),
		Space:  handlers.NewSpaceHandler(spaceService),
		Upload: handlers.NewUploadHandler(uploadService),
	})

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
	return nil
}

func newApp(cfg *config.Config, h routes.Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
		Output: os.Stdout,
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, h)
	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
