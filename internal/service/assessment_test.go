package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
	"github.com/talentflow/ui-api/internal/mocks"
)

type assessmentServiceMocks struct {
	assessments *mocks.MockAssessmentRepository
	responses   *mocks.MockResponseRepository
	jobs        *mocks.MockJobRepository
	candidates  *mocks.MockCandidateRepository
	injector    *mocks.MockFailureInjector
}

func newAssessmentService(t *testing.T) (assessmentServiceMocks, *AssessmentService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := assessmentServiceMocks{
		assessments: mocks.NewMockAssessmentRepository(ctrl),
		responses:   mocks.NewMockResponseRepository(ctrl),
		jobs:        mocks.NewMockJobRepository(ctrl),
		candidates:  mocks.NewMockCandidateRepository(ctrl),
		injector:    mocks.NewMockFailureInjector(ctrl),
	}

	service := NewAssessmentService(AssessmentServiceOptions{
		Assessments: m.assessments,
		Responses:   m.responses,
		Jobs:        m.jobs,
		Candidates:  m.candidates,
		Injector:    m.injector,
	})

	return m, service
}

// testAssessment builds a form with a yes/no gate, a numeric question, and a
// required question that is only visible when the gate answers yes.
func testAssessment() *model.Assessment {
	return &model.Assessment{
		JobID: testJobID,
		Title: "Senior Backend Engineer Assessment",
		Sections: []model.Section{{
			ID:    "sec-1",
			Title: "Background",
			Questions: []model.Question{
				{
					ID: "q1", Type: model.QuestionSingleChoice, Label: "Are you authorized to work here?",
					Required: true, Options: []string{"Yes", "No"},
				},
				{
					ID: "q2", Type: model.QuestionNumeric, Label: "Years of experience",
					Min: float64Ptr(0), Max: float64Ptr(40),
				},
				{
					ID: "q3", Type: model.QuestionLongText, Label: "What interests you about this role?",
					Required: true, MaxLength: intPtr(2000),
					ShowIf: &model.ShowIf{QuestionID: "q1", Equals: model.ScalarValue{Kind: model.ScalarString, Str: "Yes"}},
				},
			},
		}},
		UpdatedAt: time.Now(),
	}
}

func TestAssessmentService_Save_Success(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()
	doc := testAssessment()
	req := &model.SaveAssessmentRequest{Title: doc.Title, Sections: doc.Sections}

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(testJob(), nil).
		Times(1)

	m.injector.EXPECT().
		Decide(core.OpSaveAssessment).
		Return(false).
		Times(1)

	m.assessments.EXPECT().
		Upsert(ctx, testJobID, req).
		Return(doc, nil).
		Times(1)

	result, err := service.Save(ctx, testJobID, req)

	require.NoError(t, err)
	assert.Equal(t, doc, result)
}

func TestAssessmentService_Save_InvalidDocument(t *testing.T) {
	t.Parallel()
	_, service := newAssessmentService(t)

	result, err := service.Save(context.Background(), testJobID, &model.SaveAssessmentRequest{Title: "Empty"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Nil(t, result)
}

func TestAssessmentService_Save_JobNotFound(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()
	doc := testAssessment()
	req := &model.SaveAssessmentRequest{Title: doc.Title, Sections: doc.Sections}

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(nil, apperrors.NotFoundf("job %d not found", testJobID)).
		Times(1)

	result, err := service.Save(ctx, testJobID, req)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, result)
}

func TestAssessmentService_Save_InjectedFailure(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()
	doc := testAssessment()
	req := &model.SaveAssessmentRequest{Title: doc.Title, Sections: doc.Sections}

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(testJob(), nil).
		Times(1)

	m.injector.EXPECT().
		Decide(core.OpSaveAssessment).
		Return(true).
		Times(1)

	result, err := service.Save(ctx, testJobID, req)

	require.Error(t, err)
	assert.True(t, apperrors.IsInjected(err))
	assert.Nil(t, result)
}

func TestAssessmentService_GetByJobID_JobNotFound(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(nil, apperrors.NotFoundf("job %d not found", testJobID)).
		Times(1)

	result, err := service.GetByJobID(ctx, testJobID)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, result)
}

func TestAssessmentService_Submit_Success(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()
	candidateID := testCandidateID
	req := &model.SubmitResponseRequest{
		CandidateID: &candidateID,
		Answers: map[string]model.AnswerValue{
			"q1": {Kind: model.AnswerText, Str: "Yes"},
			"q2": {Kind: model.AnswerNumber, Num: 6},
			"q3": {Kind: model.AnswerText, Str: "The data platform work."},
		},
	}

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(testJob(), nil).
		Times(1)

	m.assessments.EXPECT().
		GetByJobID(ctx, testJobID).
		Return(testAssessment(), nil).
		Times(1)

	m.candidates.EXPECT().
		GetByID(ctx, candidateID).
		Return(testCandidate(), nil).
		Times(1)

	m.injector.EXPECT().
		Decide(core.OpSubmitResponse).
		Return(false).
		Times(1)

	stored := &model.AssessmentResponse{
		ID: 1, JobID: testJobID, CandidateID: &candidateID,
		Answers: req.Answers, SubmittedAt: time.Now(),
	}
	m.responses.EXPECT().
		Insert(ctx, testJobID, req).
		Return(stored, nil).
		Times(1)

	result, err := service.Submit(ctx, testJobID, req)

	require.NoError(t, err)
	assert.Equal(t, stored, result)
}

func TestAssessmentService_Submit_HiddenQuestionNotRequired(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()
	// q1=No hides q3, so the otherwise-required q3 may be omitted.
	req := &model.SubmitResponseRequest{
		Answers: map[string]model.AnswerValue{
			"q1": {Kind: model.AnswerText, Str: "No"},
		},
	}

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(testJob(), nil).
		Times(1)

	m.assessments.EXPECT().
		GetByJobID(ctx, testJobID).
		Return(testAssessment(), nil).
		Times(1)

	m.injector.EXPECT().
		Decide(core.OpSubmitResponse).
		Return(false).
		Times(1)

	m.responses.EXPECT().
		Insert(ctx, testJobID, req).
		Return(&model.AssessmentResponse{ID: 2, JobID: testJobID, Answers: req.Answers, SubmittedAt: time.Now()}, nil).
		Times(1)

	_, err := service.Submit(ctx, testJobID, req)

	require.NoError(t, err)
}

func TestAssessmentService_Submit_MissingRequiredAnswer(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()
	req := &model.SubmitResponseRequest{Answers: map[string]model.AnswerValue{}}

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(testJob(), nil).
		Times(1)

	m.assessments.EXPECT().
		GetByJobID(ctx, testJobID).
		Return(testAssessment(), nil).
		Times(1)

	// Validation fails before the injector is consulted.
	result, err := service.Submit(ctx, testJobID, req)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "q1")
	assert.Nil(t, result)
}

func TestAssessmentService_Submit_UnknownCandidate(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()
	candidateID := int64(12345)
	req := &model.SubmitResponseRequest{
		CandidateID: &candidateID,
		Answers: map[string]model.AnswerValue{
			"q1": {Kind: model.AnswerText, Str: "No"},
		},
	}

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(testJob(), nil).
		Times(1)

	m.assessments.EXPECT().
		GetByJobID(ctx, testJobID).
		Return(testAssessment(), nil).
		Times(1)

	m.candidates.EXPECT().
		GetByID(ctx, candidateID).
		Return(nil, apperrors.NotFoundf("candidate %d not found", candidateID)).
		Times(1)

	result, err := service.Submit(ctx, testJobID, req)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "candidateId", apperrors.GetField(err))
	assert.Nil(t, result)
}

func TestAssessmentService_Submit_InjectedFailure(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()
	req := &model.SubmitResponseRequest{
		Answers: map[string]model.AnswerValue{
			"q1": {Kind: model.AnswerText, Str: "No"},
		},
	}

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(testJob(), nil).
		Times(1)

	m.assessments.EXPECT().
		GetByJobID(ctx, testJobID).
		Return(testAssessment(), nil).
		Times(1)

	// The roll happens only after the submission passed every check.
	m.injector.EXPECT().
		Decide(core.OpSubmitResponse).
		Return(true).
		Times(1)

	result, err := service.Submit(ctx, testJobID, req)

	require.Error(t, err)
	assert.True(t, apperrors.IsInjected(err))
	assert.Nil(t, result)
}

func TestAssessmentService_ListResponses(t *testing.T) {
	t.Parallel()
	m, service := newAssessmentService(t)

	ctx := context.Background()
	opts := model.ResponsesListOptions{Page: 1, PageSize: 10}
	page := &model.Page[*model.AssessmentResponse]{
		Data: []*model.AssessmentResponse{{ID: 1, JobID: testJobID, SubmittedAt: time.Now()}},
		Page: 1, PageSize: 10, Total: 1, Pages: 1,
	}

	m.jobs.EXPECT().
		GetByID(ctx, testJobID).
		Return(testJob(), nil).
		Times(1)

	m.responses.EXPECT().
		ListByJob(ctx, testJobID, opts).
		Return(page, nil).
		Times(1)

	result, err := service.ListResponses(ctx, testJobID, opts)

	require.NoError(t, err)
	assert.Equal(t, page, result)
}

// Helper functions.
func float64Ptr(f float64) *float64 { return &f }
func intPtr(i int) *int             { return &i }
