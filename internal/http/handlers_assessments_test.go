package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
	"github.com/talentflow/ui-api/internal/mocks"
	"github.com/talentflow/ui-api/internal/service"
	"github.com/talentflow/ui-api/internal/simulator"
)

type assessmentHandlerMocks struct {
	assessments *mocks.MockAssessmentRepository
	responses   *mocks.MockResponseRepository
	jobs        *mocks.MockJobRepository
	candidates  *mocks.MockCandidateRepository
}

func newAssessmentHandlers(t *testing.T, injector core.FailureInjector) (*AssessmentHandlers, assessmentHandlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	m := assessmentHandlerMocks{
		assessments: mocks.NewMockAssessmentRepository(ctrl),
		responses:   mocks.NewMockResponseRepository(ctrl),
		jobs:        mocks.NewMockJobRepository(ctrl),
		candidates:  mocks.NewMockCandidateRepository(ctrl),
	}
	svc := service.NewAssessmentService(service.AssessmentServiceOptions{
		Assessments: m.assessments,
		Responses:   m.responses,
		Jobs:        m.jobs,
		Candidates:  m.candidates,
		Injector:    injector,
	})
	return &AssessmentHandlers{Svc: svc}, m
}

func screeningAssessment() *model.Assessment {
	return &model.Assessment{
		JobID: 4,
		Title: "Staff Platform Engineer Assessment",
		Sections: []model.Section{{
			ID:    "sec-1",
			Title: "Background",
			Questions: []model.Question{
				{
					ID:       "q1",
					Type:     model.QuestionSingleChoice,
					Label:    "Are you legally authorized to work in this role's location?",
					Required: true,
					Options:  []string{"Yes", "No"},
				},
				{
					ID:    "q2",
					Type:  model.QuestionLongText,
					Label: "Describe a production system you operated.",
					ShowIf: &model.ShowIf{
						QuestionID: "q1",
						Equals:     model.ScalarValue{Kind: model.ScalarString, Str: "Yes"},
					},
				},
			},
		}},
		UpdatedAt: time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestAssessmentHandlers_Get_Success(t *testing.T) {
	h, m := newAssessmentHandlers(t, nil)

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(4)).Return(boardJob(), nil)
	m.assessments.EXPECT().GetByJobID(gomock.Any(), int64(4)).Return(screeningAssessment(), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/assessments/4", nil)
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.Get(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Assessment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(4), got.JobID)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "q1", got.Sections[0].Questions[0].ID)
}

func TestAssessmentHandlers_Get_UnknownJob(t *testing.T) {
	h, m := newAssessmentHandlers(t, nil)

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, apperrors.NotFound("job not found"))

	r := httptest.NewRequest(http.MethodGet, "/api/assessments/99", nil)
	r.SetPathValue("jobId", "99")
	w := httptest.NewRecorder()

	h.Get(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeErrorBody(t, w)["error"])
}

func TestAssessmentHandlers_Put_Success(t *testing.T) {
	h, m := newAssessmentHandlers(t, nil)

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(4)).Return(boardJob(), nil)
	m.assessments.EXPECT().Upsert(gomock.Any(), int64(4), gomock.Any()).Return(screeningAssessment(), nil)

	body := `{
		"title": "Staff Platform Engineer Assessment",
		"sections": [{
			"id": "sec-1",
			"title": "Background",
			"questions": [
				{"id": "q1", "type": "single_choice", "label": "Authorized to work?", "required": true, "options": ["Yes", "No"]},
				{"id": "q2", "type": "long_text", "label": "Tell us more.", "showIf": {"questionId": "q1", "equals": "Yes"}}
			]
		}]
	}`
	r := httptest.NewRequest(http.MethodPut, "/api/assessments/4", bytes.NewBufferString(body))
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.Put(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got["ok"])
}

func TestAssessmentHandlers_Put_ForwardShowIfReference(t *testing.T) {
	h, _ := newAssessmentHandlers(t, nil)

	// q1 references q2, which comes later: visibility may only look backwards.
	body := `{
		"title": "Screening",
		"sections": [{
			"id": "sec-1",
			"title": "Background",
			"questions": [
				{"id": "q1", "type": "short_text", "label": "First", "showIf": {"questionId": "q2", "equals": true}},
				{"id": "q2", "type": "single_choice", "label": "Second", "options": ["Yes", "No"]}
			]
		}]
	}`
	r := httptest.NewRequest(http.MethodPut, "/api/assessments/4", bytes.NewBufferString(body))
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.Put(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decodeErrorBody(t, w)["error"])
}

func TestAssessmentHandlers_Put_EmptySections(t *testing.T) {
	h, _ := newAssessmentHandlers(t, nil)

	r := httptest.NewRequest(http.MethodPut, "/api/assessments/4",
		bytes.NewBufferString(`{"title":"Screening","sections":[]}`))
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.Put(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decodeErrorBody(t, w)["error"])
}

func TestAssessmentHandlers_Submit_Success(t *testing.T) {
	h, m := newAssessmentHandlers(t, nil)

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(4)).Return(boardJob(), nil)
	m.assessments.EXPECT().GetByJobID(gomock.Any(), int64(4)).Return(screeningAssessment(), nil)
	m.candidates.EXPECT().GetByID(gomock.Any(), int64(31)).Return(pipelineCandidate(), nil)
	m.responses.EXPECT().
		Insert(gomock.Any(), int64(4), gomock.Any()).
		Return(&model.AssessmentResponse{ID: 1, JobID: 4}, nil)

	body := `{"candidateId":31,"answers":{"q1":"Yes","q2":"Ran the ingestion tier for three years."}}`
	r := httptest.NewRequest(http.MethodPost, "/api/assessments/4/submit", bytes.NewBufferString(body))
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.Submit(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got["ok"])
}

func TestAssessmentHandlers_Submit_MissingRequiredAnswer(t *testing.T) {
	h, m := newAssessmentHandlers(t, nil)

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(4)).Return(boardJob(), nil)
	m.assessments.EXPECT().GetByJobID(gomock.Any(), int64(4)).Return(screeningAssessment(), nil)

	r := httptest.NewRequest(http.MethodPost, "/api/assessments/4/submit",
		bytes.NewBufferString(`{"answers":{}}`))
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.Submit(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "validation", body["error"])
	assert.Contains(t, body["message"], "q1")
}

func TestAssessmentHandlers_Submit_HiddenQuestionSkipped(t *testing.T) {
	h, m := newAssessmentHandlers(t, nil)

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(4)).Return(boardJob(), nil)
	m.assessments.EXPECT().GetByJobID(gomock.Any(), int64(4)).Return(screeningAssessment(), nil)
	m.responses.EXPECT().
		Insert(gomock.Any(), int64(4), gomock.Any()).
		Return(&model.AssessmentResponse{ID: 2, JobID: 4}, nil)

	// q2 is gated on q1 == "Yes"; answering "No" hides it entirely.
	r := httptest.NewRequest(http.MethodPost, "/api/assessments/4/submit",
		bytes.NewBufferString(`{"answers":{"q1":"No"}}`))
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.Submit(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestAssessmentHandlers_Submit_InjectedFailure(t *testing.T) {
	h, m := newAssessmentHandlers(t, simulator.Static(true))

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(4)).Return(boardJob(), nil)
	m.assessments.EXPECT().GetByJobID(gomock.Any(), int64(4)).Return(screeningAssessment(), nil)

	r := httptest.NewRequest(http.MethodPost, "/api/assessments/4/submit",
		bytes.NewBufferString(`{"answers":{"q1":"Yes"}}`))
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.Submit(w, r)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "injected", decodeErrorBody(t, w)["error"])
}

func TestAssessmentHandlers_ListResponses_CandidateFilter(t *testing.T) {
	h, m := newAssessmentHandlers(t, nil)

	candidateID := int64(31)
	expected := model.ResponsesListOptions{Page: 1, PageSize: model.DefaultPageSize, CandidateID: &candidateID}
	page := model.NewPage([]*model.AssessmentResponse{{ID: 1, JobID: 4, CandidateID: &candidateID}}, 1, model.DefaultPageSize, 1)

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(4)).Return(boardJob(), nil)
	m.responses.EXPECT().ListByJob(gomock.Any(), int64(4), expected).Return(&page, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/assessments/4/responses?candidateId=31", nil)
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.ListResponses(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Page[*model.AssessmentResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Data, 1)
}

func TestAssessmentHandlers_ListResponses_BadCandidateID(t *testing.T) {
	h, _ := newAssessmentHandlers(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/assessments/4/responses?candidateId=-2", nil)
	r.SetPathValue("jobId", "4")
	w := httptest.NewRecorder()

	h.ListResponses(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_query", decodeErrorBody(t, w)["error"])
}
