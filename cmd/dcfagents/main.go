package main

import (
	"os"

	"github.com/spf13/cobra"

	"dcfagents/internal/interfaces/cli/migrate"
	"dcfagents/internal/interfaces/cli/seed"
	"dcfagents/internal/interfaces/cli/server"
)

// @title DCF Agents Administration API
// @version 1.0
// @description Administration backend for users, roles, permissions, AI agent prompt settings and the DCF analysis log.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:   "dcfagents",
		Short: "DCF Agents administration backend",
		Long:  `Administration backend for the DCF analysis agents: user, role and permission management, AI prompt settings and the analysis audit log.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
