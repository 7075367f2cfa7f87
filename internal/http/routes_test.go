package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/talentflow/ui-api/internal/mocks"
	"github.com/talentflow/ui-api/internal/service"
)

type routerMocks struct {
	jobs        *mocks.MockJobRepository
	candidates  *mocks.MockCandidateRepository
	events      *mocks.MockEventRepository
	assessments *mocks.MockAssessmentRepository
	responses   *mocks.MockResponseRepository
}

func newTestRouter(t *testing.T) (http.Handler, routerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := routerMocks{
		jobs:        mocks.NewMockJobRepository(ctrl),
		candidates:  mocks.NewMockCandidateRepository(ctrl),
		events:      mocks.NewMockEventRepository(ctrl),
		assessments: mocks.NewMockAssessmentRepository(ctrl),
		responses:   mocks.NewMockResponseRepository(ctrl),
	}
	router := NewRouter(RouterServices{
		Jobs: service.NewJobService(service.JobServiceOptions{Jobs: m.jobs}),
		Candidates: service.NewCandidateService(service.CandidateServiceOptions{
			Candidates: m.candidates,
			Events:     m.events,
			Jobs:       m.jobs,
		}),
		Assessments: service.NewAssessmentService(service.AssessmentServiceOptions{
			Assessments: m.assessments,
			Responses:   m.responses,
			Jobs:        m.jobs,
			Candidates:  m.candidates,
		}),
	})
	return router, m
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_HealthHead(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRouter_UnknownPath(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/jobs", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_DispatchesJobByID(t *testing.T) {
	router, m := newTestRouter(t)

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(12)).Return(boardJob(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/jobs/12", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff-platform-engineer")
}

func TestRouter_DispatchesAssessmentByJobID(t *testing.T) {
	router, m := newTestRouter(t)

	m.jobs.EXPECT().GetByID(gomock.Any(), int64(4)).Return(boardJob(), nil)
	m.assessments.EXPECT().GetByJobID(gomock.Any(), int64(4)).Return(screeningAssessment(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/assessments/4", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "single_choice")
}

func TestRouter_DispatchesCandidateTimeline(t *testing.T) {
	router, m := newTestRouter(t)

	m.candidates.EXPECT().GetByID(gomock.Any(), int64(31)).Return(pipelineCandidate(), nil)
	m.events.EXPECT().ListByCandidate(gomock.Any(), int64(31)).Return(nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/candidates/31/timeline", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
