package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipe-service/internal/entity"
)

// ImportAttemptRepoImpl provides a concrete implementation for the ImportAttemptRepository interface using PostgreSQL.
type ImportAttemptRepoImpl struct {
	db *pgxpool.Pool
}

// NewImportAttemptRepo creates a new instance of ImportAttemptRepoImpl.
func NewImportAttemptRepo(db *pgxpool.Pool) *ImportAttemptRepoImpl {
	return &ImportAttemptRepoImpl{db: db}
}

// Save appends an import attempt to the audit log.
func (r *ImportAttemptRepoImpl) Save(ctx context.Context, attempt *entity.ImportAttempt) error {
	query := `
		INSERT INTO import_attempts (url, user_id, outcome, failure_reason, http_status_code, duration_ms, attempted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	return r.db.QueryRow(ctx, query,
		attempt.URL,
		attempt.UserID,
		attempt.Outcome,
		attempt.FailureReason,
		attempt.HTTPStatusCode,
		attempt.DurationMS,
		attempt.AttemptedAt,
	).Scan(&attempt.ID)
}

// FindRecentByUser retrieves a user's latest attempts, newest first.
func (r *ImportAttemptRepoImpl) FindRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.ImportAttempt, error) {
	query := `
		SELECT id, url, user_id, outcome, failure_reason, http_status_code, duration_ms, attempted_at
		FROM import_attempts
		WHERE user_id = $1
		ORDER BY attempted_at DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []*entity.ImportAttempt{}
	for rows.Next() {
		var a entity.ImportAttempt
		if err := rows.Scan(
			&a.ID,
			&a.URL,
			&a.UserID,
			&a.Outcome,
			&a.FailureReason,
			&a.HTTPStatusCode,
			&a.DurationMS,
			&a.AttemptedAt,
		); err != nil {
			return nil, err
		}
		attempts = append(attempts, &a)
	}

	return attempts, rows.Err()
}
