package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are re-run on each
// open, so each must be idempotent or fail with a tolerated error.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := backfillAudience(db); err != nil {
		return fmt.Errorf("backfilling audience column: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		event_id   TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		date       TEXT NOT NULL DEFAULT '',
		time       TEXT NOT NULL DEFAULT '',
		place      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		document   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_created ON projects(created_at DESC)`,

	// Audience became a summary column after the first release.
	`ALTER TABLE projects ADD COLUMN audience TEXT NOT NULL DEFAULT ''`,
}

// backfillAudience copies audience out of stored documents for rows written
// before the column existed.
func backfillAudience(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `UPDATE projects
		SET audience = COALESCE(json_extract(document, '$.audience'), '')
		WHERE audience = '' AND COALESCE(json_extract(document, '$.audience'), '') <> ''`)
	if err != nil {
		return fmt.Errorf("updating projects: %w", err)
	}
	return nil
}
