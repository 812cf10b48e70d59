// Package seed runs the bootstrap seeder from the command line.
package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"dcfagents/internal/infrastructure/auth"
	"dcfagents/internal/infrastructure/config"
	"dcfagents/internal/infrastructure/database"
	"dcfagents/internal/infrastructure/persistence/seeds"
	"dcfagents/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with the bootstrap records",
		Long:  `Ensure the ADMIN role, the admin user, the demo user accounts and the default AI settings row exist. Idempotent: safe to run repeatedly.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	hasher := auth.NewBcryptPasswordHasher(&cfg.Auth.Password)

	if err := seeds.SeedAccessData(database.Get(), hasher); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	if err := seeds.SeedDefaultSettings(database.Get()); err != nil {
		return fmt.Errorf("settings seeding failed: %w", err)
	}

	logger.Info("seeding completed successfully")
	return nil
}
