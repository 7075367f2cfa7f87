package core

import (
	"context"

	"github.com/talentflow/ui-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id int64) (*model.Job, error)
	GetBySlug(ctx context.Context, slug string) (*model.Job, error)
	// SlugTaken reports whether another job (excluding excludeID) already owns the slug.
	// Pass excludeID=0 when creating.
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
	List(ctx context.Context, opts model.JobsListOptions) (*model.Page[*model.Job], error)
	Update(ctx context.Context, id int64, req model.UpdateJobRequest) (*model.Job, error)
	// Reorder moves a job to a new position and compacts every job's order
	// back to a dense 0..n-1 sequence in a single transaction.
	Reorder(ctx context.Context, params ReorderJobParams) (*model.Job, error)
	Count(ctx context.Context) (int, error)
}

// ReorderJobParams groups parameters for JobRepository.Reorder to keep param count ≤3.
type ReorderJobParams struct {
	JobID     int64
	FromOrder int
	ToOrder   int
}

// CandidateRepository defines the interface for candidate data operations.
// Update writes the stage-change timeline event in the same transaction as
// the stage column, so readers never observe one without the other.
type CandidateRepository interface {
	Create(ctx context.Context, req *model.CreateCandidateRequest) (*model.Candidate, error)
	GetByID(ctx context.Context, id int64) (*model.Candidate, error)
	List(ctx context.Context, opts model.CandidatesListOptions) (*model.Page[*model.Candidate], error)
	Update(ctx context.Context, id int64, req model.UpdateCandidateRequest) (*model.Candidate, error)
	Count(ctx context.Context) (int, error)
}

// EventRepository defines the interface for candidate timeline event data operations.
type EventRepository interface {
	Append(ctx context.Context, params AppendEventParams) (*model.TimelineEvent, error)
	// ListByCandidate returns a candidate's full timeline ordered by time ascending,
	// insertion order breaking ties.
	ListByCandidate(ctx context.Context, candidateID int64) ([]*model.TimelineEvent, error)
}

// AppendEventParams groups parameters for EventRepository.Append.
type AppendEventParams struct {
	CandidateID int64
	Type        model.TimelineEventType
	FromStage   *model.CandidateStage
	ToStage     *model.CandidateStage
	Note        *string
}

// AssessmentRepository defines the interface for per-job assessment data operations.
type AssessmentRepository interface {
	GetByJobID(ctx context.Context, jobID int64) (*model.Assessment, error)
	// Upsert replaces the whole assessment document for a job (last write wins).
	Upsert(ctx context.Context, jobID int64, req *model.SaveAssessmentRequest) (*model.Assessment, error)
}

// ResponseRepository defines the interface for assessment response data operations.
type ResponseRepository interface {
	Insert(ctx context.Context, jobID int64, req *model.SubmitResponseRequest) (*model.AssessmentResponse, error)
	ListByJob(ctx context.Context, jobID int64, opts model.ResponsesListOptions) (*model.Page[*model.AssessmentResponse], error)
}

// MetaRepository defines the interface for store-level metadata flags.
type MetaRepository interface {
	// Get returns the value for key; found=false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
