package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/currency_rates_api/internal/adapters/messaging/kafka"
	"github.com/SscSPs/currency_rates_api/internal/adapters/nbp"
	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_rates_api/internal/core/ports/services"
	"github.com/SscSPs/currency_rates_api/internal/core/services"
	"github.com/SscSPs/currency_rates_api/internal/handlers"
	"github.com/SscSPs/currency_rates_api/internal/middleware"
	"github.com/SscSPs/currency_rates_api/internal/platform/config"
	"github.com/SscSPs/currency_rates_api/internal/platform/metrics"
	"github.com/SscSPs/currency_rates_api/internal/platform/migrations"
	platformsqlite "github.com/SscSPs/currency_rates_api/internal/platform/sqlite"
	"github.com/SscSPs/currency_rates_api/internal/repositories/database/pgsql"
	"github.com/SscSPs/currency_rates_api/internal/repositories/database/sqlite"
	"github.com/SscSPs/currency_rates_api/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// @title Currency Rates API
// @version 1.0
// @description Synchronizes NBP exchange rate tables and serves stored mid rates.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger; the level is adjusted once config is loaded
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logger.Warn("Invalid log level, using info", slog.String("log_level", cfg.LogLevel))
	}

	repos, closeStore, err := openStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("error", err.Error()), slog.String("driver", cfg.DBDriver))
		os.Exit(1)
	}
	defer closeStore()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.NewMetrics(prometheus.DefaultRegisterer)
	}

	source := nbp.NewClient(
		nbp.WithBaseURL(cfg.NBPBaseURL),
		nbp.WithTables(cfg.NBPTables),
		nbp.WithTimeout(cfg.NBPTimeout),
		nbp.WithMetrics(m),
	)

	var publisher portssvc.SyncEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewSyncEventPublisher(cfg.KafkaBrokers, cfg.KafkaSyncTopic)
		defer func() {
			if cerr := kafkaPublisher.Close(); cerr != nil {
				logger.Error("Error closing kafka writer", slog.String("error", cerr.Error()))
			}
		}()
		publisher = kafkaPublisher
		logger.Info("Sync events enabled", slog.String("topic", cfg.KafkaSyncTopic))
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, source, m, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, rate limiting)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(rateLimiter),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("db_driver", cfg.DBDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore connects the configured database, brings its schema up to date and
// returns the repositories together with a close func.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := platformsqlite.Open(cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite database opened.", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db.DB), func() { _ = db.Close() }, nil

	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")

		if err := migrations.RunPostgres(cfg.DatabaseURL, logger); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
	}
}
