package service

import (
	"context"
	"fmt"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Jobs     core.JobRepository
	Injector core.FailureInjector
}

// JobService orchestrates jobs board operations: CRUD, archiving via status
// updates, and board reordering. Mutations pass through the failure injector
// after validation and existence checks, so an injected failure never masks a
// real 4xx and never leaves a partial write behind.
type JobService struct {
	jobs     core.JobRepository
	injector core.FailureInjector
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	return &JobService{jobs: opts.Jobs, injector: opts.Injector}
}

// List returns a page of jobs.
func (s *JobService) List(ctx context.Context, opts model.JobsListOptions) (*model.Page[*model.Job], error) {
	return s.jobs.List(ctx, opts)
}

// GetByID retrieves a job by ID.
func (s *JobService) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// GetBySlug retrieves a job by its slug, for deep links that address jobs by
// name rather than id.
func (s *JobService) GetBySlug(ctx context.Context, slug string) (*model.Job, error) {
	return s.jobs.GetBySlug(ctx, slug)
}

// Create creates a job at the end of the board.
func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	taken, err := s.jobs.SlugTaken(ctx, req.Slug, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, apperrors.ConflictField("slug", fmt.Sprintf("slug %q is already in use", req.Slug))
	}
	if err := injectFailure(s.injector, core.OpCreateJob); err != nil {
		return nil, err
	}
	return s.jobs.Create(ctx, req)
}

// Update applies a partial update to a job. Archiving and restoring are
// status updates.
func (s *JobService) Update(ctx context.Context, id int64, req model.UpdateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if _, err := s.jobs.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if req.Slug != nil {
		taken, err := s.jobs.SlugTaken(ctx, *req.Slug, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		if taken {
			return nil, apperrors.ConflictField("slug", fmt.Sprintf("slug %q is already in use", *req.Slug))
		}
	}
	if err := injectFailure(s.injector, core.OpUpdateJob); err != nil {
		return nil, err
	}
	return s.jobs.Update(ctx, id, req)
}

// Reorder moves a job to a new board position. The job's stored position is
// authoritative; FromOrder is only the position the caller observed.
func (s *JobService) Reorder(ctx context.Context, id int64, req model.ReorderJobRequest) (*model.Job, error) {
	if req.FromOrder < 0 || req.ToOrder < 0 {
		return nil, apperrors.Validation("fromOrder and toOrder must be >= 0")
	}
	if _, err := s.jobs.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := injectFailure(s.injector, core.OpReorderJob); err != nil {
		return nil, err
	}
	return s.jobs.Reorder(ctx, core.ReorderJobParams{
		JobID:     id,
		FromOrder: req.FromOrder,
		ToOrder:   req.ToOrder,
	})
}
