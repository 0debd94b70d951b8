package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/Sophavisnuka/real-estate-agency/internal/cache"
	"github.com/Sophavisnuka/real-estate-agency/internal/config"
	"github.com/Sophavisnuka/real-estate-agency/internal/database"
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/events"
	"github.com/Sophavisnuka/real-estate-agency/internal/handlers"
	"github.com/Sophavisnuka/real-estate-agency/internal/imagestore"
	"github.com/Sophavisnuka/real-estate-agency/internal/logging"
	"github.com/Sophavisnuka/real-estate-agency/internal/middleware"
	"github.com/Sophavisnuka/real-estate-agency/internal/routes"
	"github.com/Sophavisnuka/real-estate-agency/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, pgLogHandler)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	ctx := context.Background()

	// Cache (optional)
	var appCache cache.Cache = cache.Noop{}
	var redisCache *cache.Redis
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TLS:      cfg.RedisTLS,
			Prefix:   cache.DefaultPrefix,
		})
		if err != nil {
			slog.Warn("redis unavailable, caching disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			appCache, redisCache = rc, rc
			slog.Info("redis cache connected", "addr", cfg.RedisAddr)
		}
	}

	// Image host (optional)
	var store imagestore.Store = imagestore.Disabled{}
	var gcs *imagestore.GCS
	if cfg.GCSBucketName != "" {
		g, err := imagestore.NewGCS(ctx, cfg.GCSBucketName, cfg.GCSUploadPath)
		if err != nil {
			slog.Error("image storage init failed, uploads disabled", "bucket", cfg.GCSBucketName, "error", err)
		} else {
			store, gcs = g, g
		}
	}

	// Visit request events (optional)
	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQURL != "" {
		p, err := events.NewAMQP(cfg.RabbitMQURL, cfg.EventsQueue)
		if err != nil {
			slog.Warn("event broker unavailable, events disabled", "error", err)
		} else {
			publisher = p
			slog.Info("event broker connected", "queue", cfg.EventsQueue)
		}
	}

	// Google sign-in
	var verifier services.IdentityVerifier
	if cfg.GoogleClientID != "" {
		v, err := services.NewGoogleVerifier(ctx, cfg.GoogleClientID)
		if err != nil {
			slog.Error("google verifier init failed", "error", err)
		} else {
			verifier = v
		}
	} else {
		slog.Warn("GOOGLE_CLIENT_ID not set, google sign-in disabled")
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg, verifier)
	propertyService := services.NewPropertyService(database.DB, appCache, cfg.CacheTTL)
	employeeService := services.NewEmployeeService(database.DB, appCache, cfg.CacheTTL)
	visitService := services.NewVisitService(database.DB, publisher)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Health:   handlers.NewHealthHandler(appCache),
		Property: handlers.NewPropertyHandler(propertyService),
		Employee: handlers.NewEmployeeHandler(employeeService),
		Visit:    handlers.NewVisitHandler(visitService),
		Upload:   handlers.NewUploadHandler(store),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if err := publisher.Close(); err != nil {
		slog.Error("event broker close error", "error", err)
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if gcs != nil {
		if err := gcs.Close(); err != nil {
			slog.Error("image storage close error", "error", err)
		}
	}

	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
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
		slog.Error("unhandled server error",
			"request_id", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.Response{
		Success: false,
		Message: message,
	})
}
