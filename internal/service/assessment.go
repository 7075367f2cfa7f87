package service

import (
	"context"
	"fmt"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// AssessmentServiceOptions groups dependencies for AssessmentService.
type AssessmentServiceOptions struct {
	Assessments core.AssessmentRepository
	Responses   core.ResponseRepository
	Jobs        core.JobRepository
	Candidates  core.CandidateRepository
	Injector    core.FailureInjector
}

// AssessmentService manages per-job assessment forms and their submissions.
// Submissions are checked against the stored form, including conditional
// visibility, before anything is written.
type AssessmentService struct {
	assessments core.AssessmentRepository
	responses   core.ResponseRepository
	jobs        core.JobRepository
	candidates  core.CandidateRepository
	injector    core.FailureInjector
}

// NewAssessmentService constructs a new AssessmentService.
func NewAssessmentService(opts AssessmentServiceOptions) *AssessmentService {
	return &AssessmentService{
		assessments: opts.Assessments,
		responses:   opts.Responses,
		jobs:        opts.Jobs,
		candidates:  opts.Candidates,
		injector:    opts.Injector,
	}
}

// GetByJobID returns the job's assessment document.
func (s *AssessmentService) GetByJobID(ctx context.Context, jobID int64) (*model.Assessment, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.assessments.GetByJobID(ctx, jobID)
}

// Save replaces the job's assessment document. Last write wins.
func (s *AssessmentService) Save(ctx context.Context, jobID int64, req *model.SaveAssessmentRequest) (*model.Assessment, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	if err := injectFailure(s.injector, core.OpSaveAssessment); err != nil {
		return nil, err
	}
	return s.assessments.Upsert(ctx, jobID, req)
}

// Submit stores one submission for the job's assessment. Answers are checked
// against the stored form: required visible questions must be answered, types
// and ranges must match, and answers to unknown questions are rejected.
func (s *AssessmentService) Submit(ctx context.Context, jobID int64, req *model.SubmitResponseRequest) (*model.AssessmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	assessment, err := s.assessments.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if req.CandidateID != nil {
		if _, err := s.candidates.GetByID(ctx, *req.CandidateID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.ValidationField("candidateId", fmt.Sprintf("candidate %d does not exist", *req.CandidateID))
			}
			return nil, fmt.Errorf("failed to check candidate reference: %w", err)
		}
	}
	if err := assessment.ValidateAnswers(req.Answers); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := injectFailure(s.injector, core.OpSubmitResponse); err != nil {
		return nil, err
	}
	return s.responses.Insert(ctx, jobID, req)
}

// ListResponses returns a page of submissions for the job, newest first.
func (s *AssessmentService) ListResponses(ctx context.Context, jobID int64, opts model.ResponsesListOptions) (*model.Page[*model.AssessmentResponse], error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.responses.ListByJob(ctx, jobID, opts)
}
