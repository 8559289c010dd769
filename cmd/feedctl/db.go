package main

import (
	"context"
	"fmt"

	"filesfeed/internal/repository/postgres"
	"filesfeed/internal/seed"

	"github.com/spf13/cobra"
)

var (
	dropConfirm bool
	loadFresh   bool
)

// schemaCmd creates tables and indexes
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the posts and user_state tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		pool, tables, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
			return err
		}
		logger.Info("schema ready", "posts", tables.Posts, "user_state", tables.UserState)
		return nil
	},
}

// dropCmd drops both tables
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the posts and user_state tables",
	Long: `Drop the feed tables for the current environment prefix.

Requires --yes. Refused when ENVIRONMENT=prod.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := guardDestructive("drop"); err != nil {
			return err
		}
		if !dropConfirm {
			return fmt.Errorf("refusing to drop tables without --yes")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		pool, tables, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			return err
		}
		logger.Warn("tables dropped", "prefix", cfg.TablePrefix)
		return nil
	},
}

// loadCmd inserts the embedded sample records
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load sample records into the posts table",
	Long: `Create the schema if needed and insert the bundled sample records.

Existing ids are skipped, so running load twice is harmless. With --fresh
the posts table is emptied first (not allowed in prod).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loadFresh {
			if err := guardDestructive("load --fresh"); err != nil {
				return err
			}
		}

		records, err := seed.SampleRecords()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		pool, tables, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
			return err
		}

		seeder := seed.NewRecordSeeder(pool, tables, logger)
		if loadFresh {
			if err := seeder.ClearRecords(ctx); err != nil {
				return err
			}
		}

		inserted, err := seeder.Insert(ctx, records)
		if err != nil {
			return err
		}
		logger.Info("sample records loaded", "inserted", inserted, "skipped", len(records)-inserted)
		return nil
	},
}

// clearCmd empties the posts table, keeping the schema
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all records (keeps schema)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := guardDestructive("clear"); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		pool, tables, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := seed.NewRecordSeeder(pool, tables, logger).ClearRecords(ctx); err != nil {
			return err
		}
		logger.Info("records cleared", "table", tables.Posts)
		return nil
	},
}

func init() {
	dropCmd.Flags().BoolVar(&dropConfirm, "yes", false, "Confirm dropping tables")
	loadCmd.Flags().BoolVar(&loadFresh, "fresh", false, "Empty the posts table before loading")
}
