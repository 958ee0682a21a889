package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/Finger-Lab/olgacolor-back/cmd/docs"
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	portssvc "github.com/Finger-Lab/olgacolor-back/internal/core/ports/services"
	"github.com/Finger-Lab/olgacolor-back/internal/core/services"
	"github.com/Finger-Lab/olgacolor-back/internal/handlers"
	"github.com/Finger-Lab/olgacolor-back/internal/middleware"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/config"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/mailer"
	"github.com/Finger-Lab/olgacolor-back/internal/quotes"
	"github.com/Finger-Lab/olgacolor-back/internal/repositories/database/pgsql"
	"github.com/Finger-Lab/olgacolor-back/internal/scheduler"
	"github.com/Finger-Lab/olgacolor-back/pkg/database"
	"github.com/Finger-Lab/olgacolor-back/pkg/httpx"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Olgacolor Backend API
// @version 1.0
// @description Rates, product catalog and contact API for the Olgacolor site.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services
	repos := pgsql.NewRepositoryContainer(dbPool)

	rateService := services.NewRateService(repos.Rate)
	ingestionService := services.NewIngestionService(repos.Rate, logger)
	if err := registerQuoteSources(ingestionService, cfg, logger); err != nil {
		logger.Error("Failed to register quote sources", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svcContainer := &portssvc.ServiceContainer{
		Rate:      rateService,
		Ingestion: ingestionService,
		Market:    services.NewMarketService(repos.Market),
		User:      services.NewUserService(repos.User, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	}

	// Scheduled quote acquisition. FETCH_TIMEOUT bounds each HTTP call, so
	// the run deadline must cover the worst case of every adapter spending
	// its timeout in full before the fallbacks get a turn.
	runBudget := cfg.FetchTimeout * time.Duration(ingestionService.SourceCount()+1)
	sched, err := scheduler.New(cfg.FetchSchedule, cfg.FetchTimezone, runBudget,
		func(ctx context.Context, asOf time.Time) {
			ingestionService.FetchAll(ctx, asOf)
		}, logger)
	if err != nil {
		logger.Error("Failed to build scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	schedCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	go sched.Start(schedCtx)

	// Contact rate limiter
	contactRate, err := limiter.NewRateFromFormatted(cfg.ContactRateLimit)
	if err != nil {
		logger.Error("Invalid CONTACT_RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}
	contactLimiter := limiter.New(memorystore.NewStore(), contactRate)

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.Static("/uploads", cfg.UploadDir)

	handlers.RegisterRoutes(r, cfg, svcContainer, contactLimiter, mail)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// registerQuoteSources installs the per-instrument adapter chains, preferred
// source first. PTAX queries by calendar day, so it gets the schedule's
// timezone and asks for the same day the record is stored under.
func registerQuoteSources(ingestion *services.IngestionService, cfg *config.Config, logger *slog.Logger) error {
	client := httpx.New(cfg.FetchTimeout, cfg.FetchInsecureTLS)

	location, err := time.LoadLocation(cfg.FetchTimezone)
	if err != nil {
		return fmt.Errorf("invalid FETCH_TIMEZONE %q: %w", cfg.FetchTimezone, err)
	}

	ingestion.Register(domain.InstrumentUSD,
		quotes.NewExchangeRateAPI(client, cfg.ExchangeRateAPIURL, logger),
		quotes.NewBCBPtax(client, cfg.BCBPtaxURL, location, logger),
	)
	ingestion.Register(domain.InstrumentAluminum,
		quotes.NewLMEScrape(client, cfg.LMEScrapeURL, logger),
		quotes.NewMetalsAPI(client, cfg.MetalsAPIURL, cfg.MetalsAPIKey, logger),
	)
	return nil
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection, compatible with the main pgx pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
