// Package server hosts the HTTP server command: config, logging, database,
// migrations, seeding, redis cache and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"dcfagents/internal/infrastructure/auth"
	"dcfagents/internal/infrastructure/cache"
	"dcfagents/internal/infrastructure/config"
	"dcfagents/internal/infrastructure/database"
	"dcfagents/internal/infrastructure/migration"
	"dcfagents/internal/infrastructure/persistence/seeds"
	httpRouter "dcfagents/internal/interfaces/http"
	"dcfagents/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
	skipSeeding bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the administration HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "Run database migrations on startup")
	cmd.Flags().BoolVar(&skipSeeding, "skip-seeding", false, "Skip bootstrap seeding on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	debugMode := cfg.Server.Mode == "debug"
	if err := logger.Init(&cfg.Logger, debugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			logger.Warn("auto-migration is enabled in production environment")
		}
		manager := migration.NewManager(env)
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			logger.Fatal("migration failed", "error", err)
		}
	}

	if cfg.Seed.Enabled && !skipSeeding {
		hasher := auth.NewBcryptPasswordHasher(&cfg.Auth.Password)
		if err := seeds.SeedAccessData(database.Get(), hasher); err != nil {
			logger.Fatal("seeding failed", "error", err)
		}
		if err := seeds.SeedDefaultSettings(database.Get()); err != nil {
			logger.Fatal("settings seeding failed", "error", err)
		}
	}

	cacheStore, err := cache.NewRedisStore(&cfg.Redis, logger.NewLogger().Named("cache"))
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer cacheStore.Close()

	router := httpRouter.NewRouter(cfg, database.Get(), cacheStore, logger.NewLogger())

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
