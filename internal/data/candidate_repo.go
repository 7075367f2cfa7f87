package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/data/database"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// CandidateRepo provides database operations for candidates.
//
// Stage transitions and their timeline events commit in one transaction, so a
// reader can never observe a candidate whose stage disagrees with the tail of
// their timeline.
type CandidateRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCandidateRepo creates a new CandidateRepo with real time provider.
func NewCandidateRepo(db *sql.DB) *CandidateRepo {
	return &CandidateRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewCandidateRepoWithTimeProvider creates a new CandidateRepo with a custom time provider (useful for tests).
func NewCandidateRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *CandidateRepo {
	return &CandidateRepo{DB: db, timeProvider: tp}
}

var _ core.CandidateRepository = (*CandidateRepo)(nil)

const (
	candidateSelectColumns = `id, name, email, stage, job_id, created_at, updated_at`

	candidateGetByIDQuery = `
		SELECT id, name, email, stage, job_id, created_at, updated_at
		FROM candidates
		WHERE id = ?`

	candidateInsertQuery = `
		INSERT INTO candidates (name, email, stage, job_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, name, email, stage, job_id, created_at, updated_at`
)

// candidateColumns returns the standard column list for candidate queries.
func candidateColumns() []string {
	return []string{
		"id",
		"name",
		"email",
		"stage",
		"job_id",
		"created_at",
		"updated_at",
	}
}

// Create inserts a new candidate and the origin stage_change event that opens
// their timeline, in one transaction.
func (r *CandidateRepo) Create(ctx context.Context, req *model.CreateCandidateRequest) (*model.Candidate, error) {
	if req == nil {
		return nil, errors.New("create candidate request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin candidate create: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := r.timeProvider.FormatForDB(r.timeProvider.Now())
	candidate, err := scanCandidate(tx.QueryRowContext(ctx, candidateInsertQuery,
		req.Name,
		req.Email,
		string(req.Stage),
		req.JobID,
		now,
		now,
	))
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	if _, err := tx.ExecContext(ctx, eventInsertQuery,
		candidate.ID,
		string(model.EventStageChange),
		nil,
		string(req.Stage),
		nil,
		now,
	); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit candidate create: %w", err)
	}
	return candidate, nil
}

// GetByID retrieves a candidate by ID.
func (r *CandidateRepo) GetByID(ctx context.Context, id int64) (*model.Candidate, error) {
	candidate, err := scanCandidate(r.DB.QueryRowContext(ctx, candidateGetByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("candidate not found")
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// List retrieves a page of candidates with filters applied, newest first.
func (r *CandidateRepo) List(ctx context.Context, opts model.CandidatesListOptions) (*model.Page[*model.Candidate], error) {
	page, pageSize := model.NormalizePaging(opts.Page, opts.PageSize)

	conds := buildCandidateConditions(opts)
	total, err := r.countCandidates(ctx, conds)
	if err != nil {
		return nil, err
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("candidates",
		database.WithColumns(candidateColumns()...),
		database.WithConditions(conds...),
		database.WithOrderBy("created_at", sortDirDesc),
		database.WithTieBreak("id", sortDirDesc),
		database.WithLimit(pageSize),
		database.WithOffset((page-1)*pageSize),
	))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	candidates := make([]*model.Candidate, 0, pageSize)
	for rows.Next() {
		candidate, scanErr := scanCandidate(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", scanErr)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	result := model.NewPage(candidates, page, pageSize, total)
	return &result, nil
}

// Update updates fields of a candidate. When the stage changes, the matching
// stage_change timeline event is written in the same transaction.
func (r *CandidateRepo) Update(ctx context.Context, id int64, req model.UpdateCandidateRequest) (*model.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin candidate update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := scanCandidate(tx.QueryRowContext(ctx, candidateGetByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("candidate not found")
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	now := r.timeProvider.FormatForDB(r.timeProvider.Now())
	setClause, args := buildCandidateUpdateClause(req, now)
	args = append(args, id)

	query := "UPDATE candidates SET " + setClause + " WHERE id = ? RETURNING " + candidateSelectColumns
	updated, err := scanCandidate(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	if req.Stage != nil && *req.Stage != current.Stage {
		if _, err := tx.ExecContext(ctx, eventInsertQuery,
			id,
			string(model.EventStageChange),
			string(current.Stage),
			string(*req.Stage),
			nil,
			now,
		); err != nil {
			return nil, apperrors.MapDBError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit candidate update: %w", err)
	}
	return updated, nil
}

// Count returns the total number of candidates.
func (r *CandidateRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return n, nil
}

// --- helpers ---

// buildCandidateUpdateClause builds the SQL SET clause and args for updating a candidate.
func buildCandidateUpdateClause(req model.UpdateCandidateRequest, now string) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if req.Name != nil {
		setParts = append(setParts, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Email != nil {
		setParts = append(setParts, "email = ?")
		args = append(args, *req.Email)
	}
	if req.Stage != nil {
		setParts = append(setParts, "stage = ?")
		args = append(args, string(*req.Stage))
	}
	if req.JobID != nil {
		setParts = append(setParts, "job_id = ?")
		args = append(args, *req.JobID)
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, now)

	return strings.Join(setParts, ", "), args
}

// buildCandidateConditions translates list filters into query builder conditions.
func buildCandidateConditions(opts model.CandidatesListOptions) []database.Condition {
	conds := make([]database.Condition, 0, 3)
	if term := strings.TrimSpace(opts.Search); term != "" {
		conds = append(conds, database.SearchCond(term, "name", "email"))
	}
	if opts.Stage != nil {
		conds = append(conds, database.WhereCond("stage", database.Equal, string(*opts.Stage)))
	}
	if opts.JobID != nil {
		conds = append(conds, database.WhereCond("job_id", database.Equal, *opts.JobID))
	}
	return conds
}

// countCandidates returns the total rows matching the given conditions.
func (r *CandidateRepo) countCandidates(ctx context.Context, conds []database.Condition) (int, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions("candidates",
		database.WithConditions(conds...),
		database.WithCountOnly(),
	))
	var total int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return total, nil
}

// scanCandidate scans a candidate row in candidateSelectColumns order.
func scanCandidate(row rowScanner) (*model.Candidate, error) {
	var (
		candidate model.Candidate
		stage     string
		jobID     sql.NullInt64
		createdAt string
		updatedAt string
	)
	if err := row.Scan(
		&candidate.ID,
		&candidate.Name,
		&candidate.Email,
		&stage,
		&jobID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	candidate.Stage = model.CandidateStage(stage)
	if jobID.Valid {
		candidate.JobID = &jobID.Int64
	}
	var err error
	if candidate.CreatedAt, err = parseDBTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if candidate.UpdatedAt, err = parseDBTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &candidate, nil
}
