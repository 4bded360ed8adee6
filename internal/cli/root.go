// Package cli implements the planetary command line interface: running
// the HTTP server, applying schema migrations, and seeding the catalogue.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "planetary",
		Short: "Planetary API server and management tool",
		Long: `planetary runs the Planetary API, a JSON web service cataloguing
planets, their discoverers, and the stars they orbit.

Subcommands run the HTTP server, apply database schema migrations,
and seed the catalogue with initial data.`,
		SilenceUsage: true,
	}

	// Global flags; env vars provide the defaults
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, postgres (env: STORAGE_TYPE)")
	rootCmd.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection string (env: DATABASE_URL)")

	// Add subcommands
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
