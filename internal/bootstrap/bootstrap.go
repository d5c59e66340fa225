package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/atharvapawar/bustrack/internal/app/controllers"
	appMigrations "github.com/atharvapawar/bustrack/internal/app/migrations"
	appRepos "github.com/atharvapawar/bustrack/internal/app/repositories"
	appRoutes "github.com/atharvapawar/bustrack/internal/app/routes"
	appServices "github.com/atharvapawar/bustrack/internal/app/services"
	"github.com/atharvapawar/bustrack/internal/config"
	"github.com/atharvapawar/bustrack/internal/db"
	appMiddleware "github.com/atharvapawar/bustrack/internal/middleware"
	pkgAuth "github.com/atharvapawar/bustrack/internal/pkg/auth"
	"github.com/atharvapawar/bustrack/internal/pkg/helpers"
	"github.com/atharvapawar/bustrack/internal/pkg/logger"
	"github.com/atharvapawar/bustrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService    *appServices.AuthService
	BusService     *appServices.BusService
	Resolver       *appServices.AssociationResolver
	AuthController *appControllers.AuthController
	BusController  *appControllers.BusController
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	// One-time reconciliation of rows that still hold a plaintext PRN
	if err := appMigrations.HashLegacyCredentials(context.Background(), dbPool); err != nil {
		lgr.Error().Err(err).Msg("Legacy credential migration failed")
		return nil, fmt.Errorf("legacy credential migration failed: %w", err)
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Resolver = appServices.NewAssociationResolver(
		deps.Repos.BusRepository,
		deps.Repos.DriverRepository,
		lgr,
	)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.StudentRepository,
		deps.Resolver,
		deps.JWTService,
		lgr,
	)

	deps.BusService = appServices.NewBusService(
		deps.Repos.StudentRepository,
		deps.Repos.BusRepository,
		deps.Resolver,
		appServices.DefaultEstimator,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.BusController = appControllers.NewBusController(deps.BusService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.BusController,
		deps.AuthMiddleware,
		cfg.Tracker.APIKey,
	)

	return router
}
