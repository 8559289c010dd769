package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"filesfeed/internal/config"
	"filesfeed/internal/domain/models/feed"
	"filesfeed/internal/domain/repositories"
	"filesfeed/internal/repository/postgres"
	"filesfeed/internal/repository/supabase"
	feedsvc "filesfeed/internal/service/feed"

	"github.com/spf13/cobra"
)

var (
	browseCategory string
	browsePages    int
)

// browseCmd pages through the feed the way the infinite-scroll view does
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Print the newest records page by page",
	Long: `Fetch pages of the feed, newest first, until --pages pages have been
loaded or the backend runs out of records. Uses RECORD_BACKEND to pick
Postgres or the Supabase REST API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		source, closeSource, err := openRecords(ctx)
		if err != nil {
			return err
		}
		defer closeSource()

		scroller := feedsvc.NewScroller(source, config.ScrollPageSize, logger)
		scroller.SelectCategory(ctx, browseCategory)
		for loaded := 1; loaded < browsePages; loaded++ {
			if !scroller.Next(ctx) {
				break
			}
		}

		state := scroller.State()
		printRecords(cmd.OutOrStdout(), state.Records)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d records, %d page(s), more: %t\n",
			len(state.Records), state.Page, state.HasMore)
		return nil
	},
}

func openRecords(ctx context.Context) (repositories.RecordRepository, func(), error) {
	if cfg.RecordBackend == config.BackendSupabase {
		tables := postgres.NewTableNames(cfg.TablePrefix)
		repo, err := supabase.NewRecordRepository(cfg.SupabaseURL, cfg.SupabaseKey, tables.Posts, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}

	pool, tables, err := connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	repo := postgres.NewRecordRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	})
	return repo, pool.Close, nil
}

func printRecords(out io.Writer, records []feed.Record) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tTITLE")
	for _, r := range records {
		date := r.CreatedAt.Format("2006-01-02")
		if r.DocumentDate != nil {
			date = *r.DocumentDate
		}
		kind := r.Type()
		if kind == "" {
			kind = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", date, kind, r.Title)
	}
	w.Flush()
}

func init() {
	browseCmd.Flags().StringVarP(&browseCategory, "category", "c", "", "Only show this document type")
	browseCmd.Flags().IntVarP(&browsePages, "pages", "n", 1, "Number of pages to load")
}
