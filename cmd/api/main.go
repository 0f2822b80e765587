package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsapi/docs"
	"newsapi/internal/config"
	"newsapi/internal/database"
	"newsapi/internal/database/migration"
	handlers "newsapi/internal/http/handler"
	"newsapi/internal/http/middleware"
	"newsapi/internal/logging"
	tracing "newsapi/internal/otel"
	"newsapi/internal/repository"
	"newsapi/internal/repository/objectstore"
	"newsapi/internal/repository/postgres"
	"newsapi/internal/repository/sqlite"
	"newsapi/internal/service"
	"newsapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title       News API
// @version     1.0
// @description CRUD, search and pagination for news items with an optional image.
// @BasePath    /
func main() {
	cfg := config.Load()
	logger := logging.Default(cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, logger.With(slog.String("component", "tracing")))
	if err != nil {
		fatal(logger, "tracing_init_failed", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		fatal(logger, "db_connect_failed", err)
	}
	defer db.Close()

	dbHost := cfg.Database.Host
	if cfg.Database.Driver == config.DriverSQLite {
		dbHost = cfg.Database.SQLitePath
	}
	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Driver, logger.With(slog.String("component", "migration")), dbHost); err != nil {
		fatal(logger, "db_migration_failed", err)
	}

	repo, err := newRepository(cfg, db)
	if err != nil {
		fatal(logger, "repository_init_failed", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := newApp(cfg, db, repo, reg, logger.With(slog.String("component", "http")))
	if err != nil {
		fatal(logger, "app_init_failed", err)
	}

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(shutdownTimeout)
	}()

	logger.Info("server_starting",
		slog.String("addr", ":"+cfg.Port),
		slog.String("db_driver", cfg.Database.Driver),
		slog.String("image_backend", cfg.Image.Backend),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		fatal(logger, "server_failed", err)
	}
	logger.Info("server_stopped")
}

// newRepository picks the SQL dialect and, when configured, moves image
// bytes into object storage.
func newRepository(cfg *config.AppConfig, db *sql.DB) (repository.NewsRepository, error) {
	var repo repository.NewsRepository
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		repo = postgres.NewNewsPostgres(db)
	case config.DriverSQLite:
		repo = sqlite.NewNewsSQLite(db)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	switch cfg.Image.Backend {
	case config.ImageBackendColumn, "":
		return repo, nil
	case config.ImageBackendMinIO:
		store, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("object storage: %w", err)
		}
		return objectstore.New(repo, store), nil
	default:
		return nil, fmt.Errorf("unsupported image backend %q", cfg.Image.Backend)
	}
}

// newApp builds the Fiber app with middleware, metrics, docs and routes.
func newApp(cfg *config.AppConfig, db *sql.DB, repo repository.NewsRepository, reg *prometheus.Registry, logger *slog.Logger) (*fiber.App, error) {
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, err
	}
	imageSizes, err := middleware.ImageUploadBytes(reg)
	if err != nil {
		return nil, err
	}

	newsSvc := service.NewNewsService(repo,
		service.WithMaxImageBytes(cfg.Image.MaxBytes),
		service.WithImageSizeObserver(imageSizes),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.BodyLimitBytes,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(cfg.CORSAllowOrigins, ","),
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: strings.Join(append([]string{middleware.RequestIDHeader}, handlers.PaginationHeaders...), ","),
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(logger))
	app.Use(promMiddleware.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, newsSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	return app, nil
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
