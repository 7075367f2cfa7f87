package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/data/database"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// ResponseRepo provides database operations for submitted assessment responses.
type ResponseRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewResponseRepo creates a new ResponseRepo with real time provider.
func NewResponseRepo(db *sql.DB) *ResponseRepo {
	return &ResponseRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewResponseRepoWithTimeProvider creates a new ResponseRepo with a custom time provider (useful for tests).
func NewResponseRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ResponseRepo {
	return &ResponseRepo{DB: db, timeProvider: tp}
}

var _ core.ResponseRepository = (*ResponseRepo)(nil)

const (
	responseInsertQuery = `
		INSERT INTO assessment_responses (job_id, candidate_id, answers, submitted_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, job_id, candidate_id, answers, submitted_at`
)

// responseColumns returns the standard column list for response queries.
func responseColumns() []string {
	return []string{
		"id",
		"job_id",
		"candidate_id",
		"answers",
		"submitted_at",
	}
}

// Insert stores one submitted response.
func (r *ResponseRepo) Insert(ctx context.Context, jobID int64, req *model.SubmitResponseRequest) (*model.AssessmentResponse, error) {
	if req == nil {
		return nil, errors.New("submit response request is required")
	}

	answers, err := encodeJSONText(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	now := r.timeProvider.FormatForDB(r.timeProvider.Now())

	response, err := scanResponse(r.DB.QueryRowContext(ctx, responseInsertQuery,
		jobID,
		req.CandidateID,
		answers,
		now,
	))
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return response, nil
}

// ListByJob retrieves a page of responses for a job, newest first, optionally
// narrowed to one candidate.
func (r *ResponseRepo) ListByJob(ctx context.Context, jobID int64, opts model.ResponsesListOptions) (*model.Page[*model.AssessmentResponse], error) {
	page, pageSize := model.NormalizePaging(opts.Page, opts.PageSize)

	conds := []database.Condition{
		database.WhereCond("job_id", database.Equal, jobID),
	}
	if opts.CandidateID != nil {
		conds = append(conds, database.WhereCond("candidate_id", database.Equal, *opts.CandidateID))
	}

	total, err := r.countResponses(ctx, conds)
	if err != nil {
		return nil, err
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("assessment_responses",
		database.WithColumns(responseColumns()...),
		database.WithConditions(conds...),
		database.WithOrderBy("submitted_at", sortDirDesc),
		database.WithTieBreak("id", sortDirDesc),
		database.WithLimit(pageSize),
		database.WithOffset((page-1)*pageSize),
	))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	responses := make([]*model.AssessmentResponse, 0, pageSize)
	for rows.Next() {
		response, scanErr := scanResponse(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan response: %w", scanErr)
		}
		responses = append(responses, response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	result := model.NewPage(responses, page, pageSize, total)
	return &result, nil
}

// countResponses returns the total rows matching the given conditions.
func (r *ResponseRepo) countResponses(ctx context.Context, conds []database.Condition) (int, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions("assessment_responses",
		database.WithConditions(conds...),
		database.WithCountOnly(),
	))
	var total int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return total, nil
}

// scanResponse scans a response row, decoding the answers JSON document.
func scanResponse(row rowScanner) (*model.AssessmentResponse, error) {
	var (
		response    model.AssessmentResponse
		candidateID sql.NullInt64
		answersRaw  string
		submittedAt string
	)
	if err := row.Scan(
		&response.ID,
		&response.JobID,
		&candidateID,
		&answersRaw,
		&submittedAt,
	); err != nil {
		return nil, err
	}
	if candidateID.Valid {
		response.CandidateID = &candidateID.Int64
	}
	if err := json.Unmarshal([]byte(answersRaw), &response.Answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	var err error
	if response.SubmittedAt, err = parseDBTime(submittedAt); err != nil {
		return nil, fmt.Errorf("failed to parse submitted_at: %w", err)
	}
	return &response, nil
}
