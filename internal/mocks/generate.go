// Package mocks provides mock implementations for testing the TalentFlow hiring API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mock for JobRepository interface from internal/core package.
// This creates MockJobRepository with methods for all JobRepository interface methods:
// Create, GetByID, GetBySlug, SlugTaken, List, Update, Reorder, Count
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/talentflow/ui-api/internal/core JobRepository

// Generate mock for CandidateRepository interface from internal/core package.
// This creates MockCandidateRepository with methods for all CandidateRepository interface methods:
// Create, GetByID, List, Update, Count
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=candidate_repository_mock.go github.com/talentflow/ui-api/internal/core CandidateRepository

// Generate mock for EventRepository interface from internal/core package.
// This creates MockEventRepository with methods for all EventRepository interface methods:
// Append, ListByCandidate
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=event_repository_mock.go github.com/talentflow/ui-api/internal/core EventRepository

// Generate mock for AssessmentRepository interface from internal/core package.
// This creates MockAssessmentRepository with methods for all AssessmentRepository interface methods:
// GetByJobID, Upsert
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=assessment_repository_mock.go github.com/talentflow/ui-api/internal/core AssessmentRepository

// Generate mock for ResponseRepository interface from internal/core package.
// This creates MockResponseRepository with methods for all ResponseRepository interface methods:
// Insert, ListByJob
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=response_repository_mock.go github.com/talentflow/ui-api/internal/core ResponseRepository

// Generate mock for MetaRepository interface from internal/core package.
// This creates MockMetaRepository with methods for all MetaRepository interface methods:
// Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=meta_repository_mock.go github.com/talentflow/ui-api/internal/core MetaRepository

// Generate mock for FailureInjector interface from internal/core package.
// This creates MockFailureInjector with methods for all FailureInjector interface methods:
// Decide
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=failure_injector_mock.go github.com/talentflow/ui-api/internal/core FailureInjector
