package repository

import (
	"context"
	"fmt"

	"basstatic/internal/database"
	"basstatic/internal/models"
)

type CommitRepository struct {
	db *database.DB
}

func NewCommitRepository(db *database.DB) *CommitRepository {
	return &CommitRepository{db: db}
}

// Record stores one commit. Redelivered bus messages are ignored.
func (r *CommitRepository) Record(ctx context.Context, rec *models.CommitRecord) error {
	query := `
		INSERT INTO admin_commits (kind, path, revision, request_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (path, revision) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, rec.Kind, rec.Path, rec.Revision, rec.RequestID); err != nil {
		return fmt.Errorf("failed to record commit: %w", err)
	}
	return nil
}

// List returns the most recent commits first
func (r *CommitRepository) List(ctx context.Context, kind string, limit int) ([]models.CommitRecord, error) {
	query := `
		SELECT id, kind, path, revision, request_id, created_at
		FROM admin_commits
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.db.QueryWithRetry(ctx, query, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits: %w", err)
	}
	defer rows.Close()

	records := []models.CommitRecord{}
	for rows.Next() {
		var rec models.CommitRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Path, &rec.Revision, &rec.RequestID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan commit: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
