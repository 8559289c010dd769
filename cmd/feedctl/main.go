// Command feedctl manages the feed database: schema setup, sample data and a
// terminal view of the paged feed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"filesfeed/internal/config"
	"filesfeed/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	timeout time.Duration

	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "feedctl",
	Short: "Manage the document feed database",
	Long: `feedctl prepares and inspects the database behind the feed server.

Configuration is read from the environment (and .env when present), the
same way the server reads it. ENVIRONMENT selects the table prefix.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg = config.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(browseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect opens the Postgres pool and returns it with the prefixed table names
func connect(ctx context.Context) (*pgxpool.Pool, *postgres.TableNames, error) {
	if cfg.SupabaseDBURL == "" {
		return nil, nil, fmt.Errorf("SUPABASE_DB_URL is not set")
	}
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		return nil, nil, err
	}
	return pool, postgres.NewTableNames(cfg.TablePrefix), nil
}

// guardDestructive blocks destructive commands in production
func guardDestructive(name string) error {
	if cfg.Environment == "prod" {
		return fmt.Errorf("blocked: %s is not allowed in the prod environment", name)
	}
	return nil
}
