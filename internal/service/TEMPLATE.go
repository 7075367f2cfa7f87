// This file is a documentation template and should not be compiled.
// It uses placeholder types (ExampleService, ExampleRepository, etc.) that don't exist.
// Use this as a reference when creating new services.
//
//go:build ignore

package service

// TEMPLATE.go - Service Layer Pattern Template
//
// This file demonstrates the standard pattern for all services in the service layer.
// Use this as a reference when adding a new entity to the API.
//
// KEY PRINCIPLES:
// 1. All services use Options struct pattern for dependency injection
// 2. Services depend on port interfaces from internal/core, never on internal/data
// 3. All services have a constructor: NewXService(opts XServiceOptions) *XService
// 4. All methods accept context.Context as first parameter
// 5. Request validation failures surface as apperrors.Validation, so handlers
//    map them to 400 without inspecting the message
// 6. Cross-entity reference checks translate not_found into a field-scoped
//    validation error (a dangling jobId is the caller's mistake, not a 404)
// 7. Every mutation consults injectFailure AFTER validation and existence
//    checks and BEFORE the repository write; an injected error therefore
//    always means the store is untouched
// 8. A nil core.FailureInjector disables injection entirely; services never
//    nil-check it themselves, injectFailure does
// 9. Repositories already return apperrors via MapDBError; only wrap with
//    fmt.Errorf when adding genuine context

import (
	"context"
	"fmt"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 1: Options Struct
// ═══════════════════════════════════════════════════════════════════════════

// ExampleServiceOptions groups dependencies for ExampleService.
//
// RULES:
// - Fields are port interfaces from internal/core plus the failure injector
// - No config values here; knobs live in config.AppConfig and are resolved
//   by bootstrap before construction
type ExampleServiceOptions struct {
	Examples core.ExampleRepository // Required: primary repository
	Jobs     core.JobRepository     // Optional: only when references are checked
	Injector core.FailureInjector   // Optional: nil means mutations never fail
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 2: Service Struct (private fields)
// ═══════════════════════════════════════════════════════════════════════════

// ExampleService orchestrates example operations.
//
// RESPONSIBILITIES:
// - Request validation and normalization
// - Cross-repository reference checks
// - Failure injection for mutations
//
// DOES NOT:
// - Import from internal/data (depends on core ports only)
// - Import from internal/http (transport depends on service, not vice versa)
// - Sleep or simulate latency (that is middleware's job)
type ExampleService struct {
	examples core.ExampleRepository
	jobs     core.JobRepository
	injector core.FailureInjector
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 3: Constructor
// ═══════════════════════════════════════════════════════════════════════════

// NewExampleService constructs a new ExampleService. Constructors stay dumb:
// plain field assignment, no validation, no logging.
func NewExampleService(opts ExampleServiceOptions) *ExampleService {
	return &ExampleService{
		examples: opts.Examples,
		jobs:     opts.Jobs,
		injector: opts.Injector,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 4: Reads pass straight through
// ═══════════════════════════════════════════════════════════════════════════

// List returns a page of examples. Reads never hit the injector.
func (s *ExampleService) List(ctx context.Context, opts model.ExamplesListOptions) (*model.Page[*model.Example], error) {
	return s.examples.List(ctx, opts)
}

// GetByID retrieves an example by ID. The repository already returns
// apperrors.NotFound for missing rows.
func (s *ExampleService) GetByID(ctx context.Context, id int64) (*model.Example, error) {
	return s.examples.GetByID(ctx, id)
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 5: Mutations: validate → check refs → inject → write
// ═══════════════════════════════════════════════════════════════════════════

// Create adds an example. The ordering below is the invariant every mutation
// in this package follows.
func (s *ExampleService) Create(ctx context.Context, req *model.CreateExampleRequest) (*model.Example, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := s.checkJobRef(ctx, req.JobID); err != nil {
		return nil, err
	}
	if err := injectFailure(s.injector, core.OpCreateExample); err != nil {
		return nil, err
	}
	return s.examples.Create(ctx, req)
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 6: Reference checks map not_found to validation
// ═══════════════════════════════════════════════════════════════════════════

// checkJobRef verifies that a referenced job exists. A dangling reference is
// a validation problem for the caller, not a missing route resource.
func (s *ExampleService) checkJobRef(ctx context.Context, jobID *int64) error {
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
