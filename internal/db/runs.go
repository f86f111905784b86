package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

// defaultListLimit caps unbounded run listings.
const defaultListLimit = 50

// ScreeningRun is one persisted screening outcome.
type ScreeningRun struct {
	ID           uuid.UUID              `json:"id"`
	JobTitle     string                 `json:"job_title"`
	ResumeID     string                 `json:"resume_id,omitempty"`
	OverallScore float64                `json:"overall_score"`
	Result       *types.ScreeningResult `json:"result,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// SaveRun persists one screening result and returns its assigned ID.
// resumeID is the flat-file record ID when known, empty otherwise.
func (db *DB) SaveRun(ctx context.Context, jobTitle, resumeID string, result *types.ScreeningResult) (uuid.UUID, error) {
	if result == nil {
		return uuid.Nil, errors.New("screening result is nil")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal screening result: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO screening_runs (job_title, resume_id, overall_score, result)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		jobTitle, resumeID, result.OverallScore, payload,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save screening run: %w", err)
	}
	return id, nil
}

// GetRun retrieves one screening run by ID, or nil when it does not exist.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*ScreeningRun, error) {
	var run ScreeningRun
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_title, resume_id, overall_score, result, created_at
		 FROM screening_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.JobTitle, &run.ResumeID, &run.OverallScore, &payload, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get screening run: %w", err)
	}

	run.Result = &types.ScreeningResult{}
	if err := json.Unmarshal(payload, run.Result); err != nil {
		return nil, fmt.Errorf("failed to decode screening result: %w", err)
	}
	return &run, nil
}

// RunFilters narrows a run listing. Zero values mean no filter.
type RunFilters struct {
	JobTitle string  // case-insensitive substring match
	MinScore float64 // inclusive lower bound, 0 disables
	Limit    int
}

// ListRuns retrieves recent runs, newest first. The stored result JSON
// is not loaded; use GetRun for the full record.
func (db *DB) ListRuns(ctx context.Context, filters RunFilters) ([]ScreeningRun, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}

	query := `SELECT id, job_title, resume_id, overall_score, created_at
		FROM screening_runs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.JobTitle != "" {
		query += fmt.Sprintf(" AND job_title ILIKE $%d", argNum)
		args = append(args, "%"+filters.JobTitle+"%")
		argNum++
	}
	if filters.MinScore > 0 {
		query += fmt.Sprintf(" AND overall_score >= $%d", argNum)
		args = append(args, filters.MinScore)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list screening runs: %w", err)
	}
	defer rows.Close()

	var runs []ScreeningRun
	for rows.Next() {
		var run ScreeningRun
		if err := rows.Scan(&run.ID, &run.JobTitle, &run.ResumeID, &run.OverallScore, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan screening run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes one screening run.
func (db *DB) DeleteRun(ctx context.Context, runID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM screening_runs WHERE id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete screening run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening run not found: %s", runID)
	}
	return nil
}
