package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/data/database"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// JobRepo provides database operations for jobs.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

var _ core.JobRepository = (*JobRepo)(nil)

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	jobSelectColumns = `id, title, slug, status, tags, sort_order, created_at, updated_at`

	jobGetByIDQuery = `
		SELECT id, title, slug, status, tags, sort_order, created_at, updated_at
		FROM jobs
		WHERE id = ?`

	jobGetBySlugQuery = `
		SELECT id, title, slug, status, tags, sort_order, created_at, updated_at
		FROM jobs
		WHERE slug = ?`

	jobInsertQuery = `
		INSERT INTO jobs (title, slug, status, tags, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(sort_order) + 1, 0) FROM jobs), ?, ?)
		RETURNING id, title, slug, status, tags, sort_order, created_at, updated_at`
)

// jobColumns returns the standard column list for job queries.
// Used by dynamic queries that need to build column lists at runtime.
func jobColumns() []string {
	return []string{
		"id",
		"title",
		"slug",
		"status",
		"tags",
		"sort_order",
		"created_at",
		"updated_at",
	}
}

// Create inserts a new job at the end of the board (sort_order = max + 1).
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	tags, err := encodeTags(req.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	now := r.timeProvider.FormatForDB(r.timeProvider.Now())

	row := r.DB.QueryRowContext(ctx, jobInsertQuery,
		req.Title,
		req.Slug,
		string(req.Status),
		tags,
		now,
		now,
	)
	job, err := scanJob(row)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return job, nil
}

// GetByID retrieves a job by ID.
func (r *JobRepo) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	return r.getByQuery(ctx, jobGetByIDQuery, id)
}

// GetBySlug retrieves a job by slug.
func (r *JobRepo) GetBySlug(ctx context.Context, slug string) (*model.Job, error) {
	return r.getByQuery(ctx, jobGetBySlugQuery, slug)
}

// SlugTaken reports whether a slug is already owned by a job other than excludeID.
func (r *JobRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var taken bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE slug = ? AND id <> ?)`,
		slug, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return taken, nil
}

// List retrieves a page of jobs with filters applied. The page envelope
// carries the total across all matching rows, not just the returned slice.
func (r *JobRepo) List(ctx context.Context, opts model.JobsListOptions) (*model.Page[*model.Job], error) {
	page, pageSize := model.NormalizePaging(opts.Page, opts.PageSize)

	conds := buildJobConditions(opts)
	total, err := r.countJobs(ctx, conds)
	if err != nil {
		return nil, err
	}

	// The id tiebreak follows the sort direction so rows created in the same
	// millisecond still order deterministically.
	sortCol, sortDir := validateJobSortOptions(opts.Sort)
	query, args := database.BuildListQuery(database.NewListQueryOptions("jobs",
		database.WithColumns(jobColumns()...),
		database.WithConditions(conds...),
		database.WithOrderBy(sortCol, sortDir),
		database.WithTieBreak("id", sortDir),
		database.WithLimit(pageSize),
		database.WithOffset((page-1)*pageSize),
	))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	jobs := make([]*model.Job, 0, pageSize)
	for rows.Next() {
		job, scanErr := scanJob(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan job: %w", scanErr)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	result := model.NewPage(jobs, page, pageSize, total)
	return &result, nil
}

// Update updates fields of a job. updated_at always advances on a successful write.
func (r *JobRepo) Update(ctx context.Context, id int64, req model.UpdateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setClause, args, err := r.buildUpdateClause(req)
	if err != nil {
		return nil, err
	}
	args = append(args, id)

	query := "UPDATE jobs SET " + setClause + " WHERE id = ? RETURNING " + jobSelectColumns
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return job, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a job based on the request.
func (r *JobRepo) buildUpdateClause(req model.UpdateJobRequest) (string, []any, error) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if req.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Slug != nil {
		setParts = append(setParts, "slug = ?")
		args = append(args, *req.Slug)
	}
	if req.Status != nil {
		setParts = append(setParts, "status = ?")
		args = append(args, string(*req.Status))
	}
	if req.Tags != nil {
		tags, err := encodeTags(*req.Tags)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode tags: %w", err)
		}
		setParts = append(setParts, "tags = ?")
		args = append(args, tags)
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, r.timeProvider.FormatForDB(r.timeProvider.Now()))

	return strings.Join(setParts, ", "), args, nil
}

// Reorder moves a job to a new board position inside a single transaction.
// The stored order is authoritative: the job's current position is read under
// the transaction and every displaced row is rewritten so positions stay a
// dense 0..n-1 sequence. A stale FromOrder from the caller cannot corrupt the
// board.
func (r *JobRepo) Reorder(ctx context.Context, params core.ReorderJobParams) (*model.Job, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ids, err := boardOrder(ctx, tx)
	if err != nil {
		return nil, err
	}

	idx := slices.Index(ids, params.JobID)
	if idx < 0 {
		return nil, apperrors.NotFound("job not found")
	}

	// Splice the moved id out and back in at the destination, clamped to the
	// end of the board.
	ids = append(ids[:idx], ids[idx+1:]...)
	to := min(params.ToOrder, len(ids))
	ids = slices.Insert(ids, to, params.JobID)

	now := r.timeProvider.FormatForDB(r.timeProvider.Now())
	for i, id := range ids {
		// No-op for rows whose position did not change.
		if _, err := tx.ExecContext(ctx,
			`UPDATE jobs SET sort_order = ?, updated_at = ? WHERE id = ? AND sort_order <> ?`,
			i, now, id, i,
		); err != nil {
			return nil, fmt.Errorf("failed to rewrite board order: %w", err)
		}
	}

	job, err := scanJob(tx.QueryRowContext(ctx, jobGetByIDQuery, params.JobID))
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reorder: %w", err)
	}
	return job, nil
}

// Count returns the total number of jobs.
func (r *JobRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}

// --- helpers ---

// boardOrder reads every job id in board order under the given transaction.
func boardOrder(ctx context.Context, tx *sql.Tx) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM jobs ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read board order: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 64)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read board order: %w", err)
	}
	return ids, nil
}

// buildJobConditions translates list filters into query builder conditions.
func buildJobConditions(opts model.JobsListOptions) []database.Condition {
	conds := make([]database.Condition, 0, 3)
	if term := strings.TrimSpace(opts.Search); term != "" {
		conds = append(conds, database.SearchCond(term, "title", "slug"))
	}
	if opts.Status != nil {
		conds = append(conds, database.WhereCond("status", database.Equal, string(*opts.Status)))
	}
	if len(opts.Tags) > 0 {
		conds = append(conds, database.JSONArrayContainsAllCond("tags", opts.Tags))
	}
	return conds
}

// validateJobSortOptions validates and returns safe sort column and direction.
// Board order sorts ascending; creation time sorts newest first. Unknown sort
// keys fall back to board order.
func validateJobSortOptions(sort string) (string, string) {
	if strings.TrimSpace(sort) == model.JobSortCreatedAt {
		return "created_at", sortDirDesc
	}
	return "sort_order", sortDirAsc
}

// countJobs returns the total rows matching the given conditions.
func (r *JobRepo) countJobs(ctx context.Context, conds []database.Condition) (int, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions("jobs",
		database.WithConditions(conds...),
		database.WithCountOnly(),
	))
	var total int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return total, nil
}

// getByQuery executes a single-row job query, mapping missing rows to not found.
func (r *JobRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.Job, error) {
	job, err := scanJob(r.DB.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// scanJob scans a job row in jobSelectColumns order, decoding the tags JSON
// array and RFC 3339 timestamps.
func scanJob(row rowScanner) (*model.Job, error) {
	var (
		job       model.Job
		status    string
		tagsRaw   string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Slug,
		&status,
		&tagsRaw,
		&job.Order,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	job.Status = model.JobStatus(status)
	if err := json.Unmarshal([]byte(tagsRaw), &job.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}
	var err error
	if job.CreatedAt, err = parseDBTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if job.UpdatedAt, err = parseDBTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &job, nil
}
