package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-ats/internal/shared/storage/db"
)

// SQLRepo implements Repo on postgres or sqlite. Findings, summary and
// recommendations are stored as JSON documents.
type SQLRepo struct {
	DB      *sql.DB
	Dialect db.Dialect
}

const reportColumns = `id, user_id, document_id, source, score, band, summary, checks, recommendations, job_description_provided, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLRepo) q(query string) string {
	return db.Rebind(r.Dialect, query)
}

// Create inserts a report.
func (r *SQLRepo) Create(ctx context.Context, rep Report) error {
	summary, err := json.Marshal(rep.Summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	checks, err := json.Marshal(rep.Checks)
	if err != nil {
		return fmt.Errorf("encode checks: %w", err)
	}
	recs, err := json.Marshal(rep.Recommendations)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}

	var documentID sql.NullString
	if rep.DocumentID != "" {
		documentID = sql.NullString{String: rep.DocumentID, Valid: true}
	}

	const query = `
INSERT INTO reports (` + reportColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.DB.ExecContext(ctx, r.q(query),
		rep.ID,
		rep.UserID,
		documentID,
		string(rep.Source),
		rep.Score,
		rep.Band,
		string(summary),
		string(checks),
		string(recs),
		rep.JobDescriptionProvided,
		rep.CreatedAt,
	)
	return err
}

// GetByID fetches a report owned by userID.
func (r *SQLRepo) GetByID(ctx context.Context, userID, reportID string) (Report, error) {
	const query = `
SELECT ` + reportColumns + `
FROM reports
WHERE user_id = ? AND id = ?`
	rep, err := scanReport(r.DB.QueryRowContext(ctx, r.q(query), userID, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	return rep, err
}

// ListByUser lists reports newest first.
func (r *SQLRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + reportColumns + `
FROM reports
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`

	rows, err := r.DB.QueryContext(ctx, r.q(query), userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func scanReport(row rowScanner) (Report, error) {
	var rep Report
	var documentID sql.NullString
	var source string
	var summary, checks, recs []byte
	if err := row.Scan(
		&rep.ID,
		&rep.UserID,
		&documentID,
		&source,
		&rep.Score,
		&rep.Band,
		&summary,
		&checks,
		&recs,
		&rep.JobDescriptionProvided,
		&rep.CreatedAt,
	); err != nil {
		return Report{}, err
	}
	rep.Source = Source(source)
	if documentID.Valid {
		rep.DocumentID = documentID.String
	}
	if err := json.Unmarshal(summary, &rep.Summary); err != nil {
		return Report{}, fmt.Errorf("decode summary for report %s: %w", rep.ID, err)
	}
	if err := json.Unmarshal(checks, &rep.Checks); err != nil {
		return Report{}, fmt.Errorf("decode checks for report %s: %w", rep.ID, err)
	}
	if err := json.Unmarshal(recs, &rep.Recommendations); err != nil {
		return Report{}, fmt.Errorf("decode recommendations for report %s: %w", rep.ID, err)
	}
	return rep, nil
}

var _ Repo = (*SQLRepo)(nil)
