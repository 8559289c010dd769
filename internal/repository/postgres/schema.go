package postgres

import (
	"context"
	"fmt"

	"filesfeed/internal/domain/repositories"
)

// EnsureSchema creates the posts and user_state tables and their indexes.
// Safe to run repeatedly.
func EnsureSchema(ctx context.Context, db repositories.DBTX, tables *TableNames, prefix string) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Posts + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			summary TEXT,
			full_text TEXT,
			document_type TEXT,
			document_date TEXT,
			source_url TEXT,
			source_dataset TEXT,
			efta_number TEXT,
			key_topics TEXT[] NOT NULL DEFAULT '{}',
			key_people_names TEXT[] NOT NULL DEFAULT '{}',
			significance TEXT,
			image_url TEXT,
			category_id INTEGER,
			page_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.UserState + ` (
			owner_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (owner_id, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `posts_created_at ON ` + tables.Posts + `(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `posts_document_type ON ` + tables.Posts + `(document_type, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `posts_key_topics ON ` + tables.Posts + ` USING GIN (key_topics)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `posts_key_people ON ` + tables.Posts + ` USING GIN (key_people_names)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops both tables
func DropSchema(ctx context.Context, db repositories.DBTX, tables *TableNames) error {
	for _, table := range []string{tables.UserState, tables.Posts} {
		if _, err := db.Exec(ctx, `DROP TABLE IF EXISTS `+table+` CASCADE`); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
