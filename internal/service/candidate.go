package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// CandidateServiceOptions groups dependencies for CandidateService.
type CandidateServiceOptions struct {
	Candidates core.CandidateRepository
	Events     core.EventRepository
	Jobs       core.JobRepository
	Injector   core.FailureInjector
}

// CandidateService orchestrates candidate pipeline operations. Stage moves go
// through Update; the repository records the matching timeline event in the
// same transaction.
type CandidateService struct {
	candidates core.CandidateRepository
	events     core.EventRepository
	jobs       core.JobRepository
	injector   core.FailureInjector
}

// NewCandidateService constructs a new CandidateService.
func NewCandidateService(opts CandidateServiceOptions) *CandidateService {
	return &CandidateService{
		candidates: opts.Candidates,
		events:     opts.Events,
		jobs:       opts.Jobs,
		injector:   opts.Injector,
	}
}

// List returns a page of candidates.
func (s *CandidateService) List(ctx context.Context, opts model.CandidatesListOptions) (*model.Page[*model.Candidate], error) {
	return s.candidates.List(ctx, opts)
}

// GetByID retrieves a candidate by ID.
func (s *CandidateService) GetByID(ctx context.Context, id int64) (*model.Candidate, error) {
	return s.candidates.GetByID(ctx, id)
}

// Create adds a candidate to the pipeline. The candidate's timeline opens
// with a stage change into its initial stage.
func (s *CandidateService) Create(ctx context.Context, req *model.CreateCandidateRequest) (*model.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := s.checkJobRef(ctx, req.JobID); err != nil {
		return nil, err
	}
	if err := injectFailure(s.injector, core.OpCreateCandidate); err != nil {
		return nil, err
	}
	return s.candidates.Create(ctx, req)
}

// Update applies a partial update to a candidate. A stage change lands
// together with its timeline event or not at all.
func (s *CandidateService) Update(ctx context.Context, id int64, req model.UpdateCandidateRequest) (*model.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if _, err := s.candidates.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkJobRef(ctx, req.JobID); err != nil {
		return nil, err
	}
	if err := injectFailure(s.injector, core.OpUpdateCandidate); err != nil {
		return nil, err
	}
	return s.candidates.Update(ctx, id, req)
}

// Timeline returns a candidate's full history, oldest first. The existence
// check and the event fetch run concurrently; a missing candidate surfaces
// as not_found even though the event query would come back empty.
func (s *CandidateService) Timeline(ctx context.Context, id int64) ([]*model.TimelineEvent, error) {
	g, gctx := errgroup.WithContext(ctx)

	var events []*model.TimelineEvent

	g.Go(func() error {
		_, err := s.candidates.GetByID(gctx, id)
		return err
	})

	g.Go(func() error {
		var err error
		events, err = s.events.ListByCandidate(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return events, nil
}

// AddNote appends a note event to a candidate's timeline. Mentions are plain
// text; rendering is the client's concern.
func (s *CandidateService) AddNote(ctx context.Context, id int64, req model.AddNoteRequest) (*model.TimelineEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if _, err := s.candidates.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := injectFailure(s.injector, core.OpAddNote); err != nil {
		return nil, err
	}
	return s.events.Append(ctx, core.AppendEventParams{
		CandidateID: id,
		Type:        model.EventNote,
		Note:        &req.Note,
	})
}

// checkJobRef verifies that a referenced job exists. A dangling reference is
// a validation problem for the caller, not a missing route resource.
func (s *CandidateService) checkJobRef(ctx context.Context, jobID *int64) error {
	if jobID == nil {
		return nil
	}
	if _, err := s.jobs.GetByID(ctx, *jobID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.ValidationField("jobId", fmt.Sprintf("job %d does not exist", *jobID))
		}
		return fmt.Errorf("failed to check job reference: %w", err)
	}
	return nil
}
