package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// AssessmentRepo provides database operations for per-job assessments.
// Each job owns at most one assessment document, keyed by job_id.
type AssessmentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAssessmentRepo creates a new AssessmentRepo with real time provider.
func NewAssessmentRepo(db *sql.DB) *AssessmentRepo {
	return &AssessmentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAssessmentRepoWithTimeProvider creates a new AssessmentRepo with a custom time provider (useful for tests).
func NewAssessmentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AssessmentRepo {
	return &AssessmentRepo{DB: db, timeProvider: tp}
}

var _ core.AssessmentRepository = (*AssessmentRepo)(nil)

const (
	assessmentGetQuery = `
		SELECT job_id, title, sections, updated_at
		FROM assessments
		WHERE job_id = ?`

	assessmentUpsertQuery = `
		INSERT INTO assessments (job_id, title, sections, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (job_id) DO UPDATE SET
			title      = excluded.title,
			sections   = excluded.sections,
			updated_at = excluded.updated_at
		RETURNING job_id, title, sections, updated_at`
)

// GetByJobID retrieves the assessment for a job.
func (r *AssessmentRepo) GetByJobID(ctx context.Context, jobID int64) (*model.Assessment, error) {
	assessment, err := scanAssessment(r.DB.QueryRowContext(ctx, assessmentGetQuery, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("assessment not found")
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return assessment, nil
}

// Upsert replaces the whole assessment document for a job (last write wins).
func (r *AssessmentRepo) Upsert(ctx context.Context, jobID int64, req *model.SaveAssessmentRequest) (*model.Assessment, error) {
	if req == nil {
		return nil, errors.New("save assessment request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	sections, err := encodeJSONText(req.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sections: %w", err)
	}
	now := r.timeProvider.FormatForDB(r.timeProvider.Now())

	assessment, err := scanAssessment(r.DB.QueryRowContext(ctx, assessmentUpsertQuery,
		jobID,
		req.Title,
		sections,
		now,
	))
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return assessment, nil
}

// scanAssessment scans an assessment row, decoding the sections JSON document.
func scanAssessment(row rowScanner) (*model.Assessment, error) {
	var (
		assessment  model.Assessment
		sectionsRaw string
		updatedAt   string
	)
	if err := row.Scan(
		&assessment.JobID,
		&assessment.Title,
		&sectionsRaw,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sectionsRaw), &assessment.Sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	var err error
	if assessment.UpdatedAt, err = parseDBTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &assessment, nil
}
