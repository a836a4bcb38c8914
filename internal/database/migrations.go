package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createAdminCommitsTable,
		createAdminCommitsCreatedIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createAdminCommitsTable = `
CREATE TABLE IF NOT EXISTS admin_commits (
    id BIGSERIAL PRIMARY KEY,
    kind VARCHAR(20) NOT NULL,
    path VARCHAR(500) NOT NULL,
    revision VARCHAR(100) NOT NULL,
    request_id VARCHAR(64) NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(path, revision),
    CHECK (kind IN ('document', 'media'))
);`

const createAdminCommitsCreatedIndex = `
CREATE INDEX IF NOT EXISTS admin_commits_created_at_idx
ON admin_commits (created_at DESC);`
