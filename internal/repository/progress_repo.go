package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"preptrack-backend/internal/models"
)

// ProgressRepo reads and upserts progress rows. The legacy `progress` table
// and the canonical `progress_v2` table share one contract, so the repo is
// parameterized by table name.
type ProgressRepo struct {
	pool  *pgxpool.Pool
	table string
}

// NewProgressRepo targets the legacy progress table.
func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool, table: "progress"}
}

// NewProgressV2Repo targets the v2 table with review scheduling.
func NewProgressV2Repo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool, table: "progress_v2"}
}

func (r *ProgressRepo) FetchAll(ctx context.Context) ([]models.ProgressRecord, error) {
	query := fmt.Sprintf(`SELECT question_id, COALESCE(completed, FALSE), COALESCE(notes, ''), COALESCE(code, ''),
		completed_at, last_reviewed, COALESCE(review_interval, 0), COALESCE(review_count, 0), COALESCE(updated_at, NOW())
		FROM %s`, r.table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s rows: %w", r.table, err)
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		var rec models.ProgressRecord
		err := rows.Scan(
			&rec.QuestionID, &rec.Completed, &rec.Notes, &rec.Code,
			&rec.CompletedAt, &rec.LastReviewed, &rec.ReviewInterval, &rec.ReviewCount, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.table, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Upsert inserts or merges one row keyed by question_id. Completed, notes
// and code always take the incoming value; the scheduling fields keep the
// stored value when the update omits them.
func (r *ProgressRepo) Upsert(ctx context.Context, u models.ProgressUpdate) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (question_id, completed, notes, code, completed_at, last_reviewed, review_interval, review_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (question_id)
		DO UPDATE SET
			completed = EXCLUDED.completed,
			notes = EXCLUDED.notes,
			code = EXCLUDED.code,
			completed_at = COALESCE(EXCLUDED.completed_at, %[1]s.completed_at),
			last_reviewed = COALESCE(EXCLUDED.last_reviewed, %[1]s.last_reviewed),
			review_interval = COALESCE(EXCLUDED.review_interval, %[1]s.review_interval),
			review_count = COALESCE(EXCLUDED.review_count, %[1]s.review_count),
			updated_at = NOW()`, r.table)

	_, err := r.pool.Exec(ctx, query,
		u.QuestionID, u.Completed, u.Notes, u.Code,
		u.CompletedAt, u.LastReviewed, u.ReviewInterval, u.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s row: %w", r.table, err)
	}
	return nil
}
