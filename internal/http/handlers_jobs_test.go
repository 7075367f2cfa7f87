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

func newJobHandlers(t *testing.T, injector core.FailureInjector) (*JobHandlers, *mocks.MockJobRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockJobRepository(ctrl)
	svc := service.NewJobService(service.JobServiceOptions{Jobs: repo, Injector: injector})
	return &JobHandlers{Svc: svc}, repo
}

func boardJob() *model.Job {
	return &model.Job{
		ID:        12,
		Title:     "Staff Platform Engineer",
		Slug:      "staff-platform-engineer",
		Status:    model.JobStatusActive,
		Tags:      []string{"platform", "remote"},
		Order:     3,
		CreatedAt: time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC),
	}
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJobHandlers_List_PassesFilters(t *testing.T) {
	h, repo := newJobHandlers(t, nil)

	status := model.JobStatusActive
	expected := model.JobsListOptions{
		Page:     2,
		PageSize: 5,
		Search:   "engineer",
		Status:   &status,
		Tags:     []string{"remote", "senior"},
		Sort:     model.JobSortCreatedAt,
	}
	page := model.NewPage([]*model.Job{boardJob()}, 2, 5, 11)
	repo.EXPECT().List(gomock.Any(), expected).Return(&page, nil)

	r := httptest.NewRequest(http.MethodGet,
		"/api/jobs?search=engineer&status=active&tags=remote,senior&sort=createdAt&page=2&pageSize=5", nil)
	w := httptest.NewRecorder()

	h.List(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Page[*model.Job]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 11, got.Total)
	assert.Equal(t, 3, got.Pages)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "staff-platform-engineer", got.Data[0].Slug)
}

func TestJobHandlers_List_UnknownStatus(t *testing.T) {
	h, _ := newJobHandlers(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/jobs?status=paused", nil)
	w := httptest.NewRecorder()

	h.List(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_query", decodeErrorBody(t, w)["error"])
}

func TestJobHandlers_List_UnknownSort(t *testing.T) {
	h, _ := newJobHandlers(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/jobs?sort=salary", nil)
	w := httptest.NewRecorder()

	h.List(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandlers_Get_NumericID(t *testing.T) {
	h, repo := newJobHandlers(t, nil)

	repo.EXPECT().GetByID(gomock.Any(), int64(12)).Return(boardJob(), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/jobs/12", nil)
	r.SetPathValue("id", "12")
	w := httptest.NewRecorder()

	h.Get(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(12), got.ID)
}

func TestJobHandlers_Get_SlugFallback(t *testing.T) {
	h, repo := newJobHandlers(t, nil)

	repo.EXPECT().GetBySlug(gomock.Any(), "staff-platform-engineer").Return(boardJob(), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/jobs/staff-platform-engineer", nil)
	r.SetPathValue("id", "staff-platform-engineer")
	w := httptest.NewRecorder()

	h.Get(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestJobHandlers_Get_NotFound(t *testing.T) {
	h, repo := newJobHandlers(t, nil)

	repo.EXPECT().GetByID(gomock.Any(), int64(999)).Return(nil, apperrors.NotFound("job not found"))

	r := httptest.NewRequest(http.MethodGet, "/api/jobs/999", nil)
	r.SetPathValue("id", "999")
	w := httptest.NewRecorder()

	h.Get(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "not_found", body["error"])
	assert.Equal(t, "job not found", body["message"])
}

func TestJobHandlers_Create_Success(t *testing.T) {
	h, repo := newJobHandlers(t, nil)

	repo.EXPECT().SlugTaken(gomock.Any(), "staff-platform-engineer", int64(0)).Return(false, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(boardJob(), nil)

	b, _ := json.Marshal(model.CreateJobRequest{Title: "Staff Platform Engineer", Tags: []string{"platform"}})
	r := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.Create(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(12), got.ID)
}

func TestJobHandlers_Create_InvalidJSON(t *testing.T) {
	h, _ := newJobHandlers(t, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString("{bad"))
	w := httptest.NewRecorder()

	h.Create(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_json", decodeErrorBody(t, w)["error"])
}

func TestJobHandlers_Create_UnknownFieldRejected(t *testing.T) {
	h, _ := newJobHandlers(t, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/jobs",
		bytes.NewBufferString(`{"title":"Backend Engineer","salary":90000}`))
	w := httptest.NewRecorder()

	h.Create(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_json", decodeErrorBody(t, w)["error"])
}

func TestJobHandlers_Create_SlugConflict(t *testing.T) {
	h, repo := newJobHandlers(t, nil)

	repo.EXPECT().SlugTaken(gomock.Any(), "backend-engineer", int64(0)).Return(true, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/jobs",
		bytes.NewBufferString(`{"title":"Backend Engineer"}`))
	w := httptest.NewRecorder()

	h.Create(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "conflict", decodeErrorBody(t, w)["error"])
}

func TestJobHandlers_Create_MissingTitle(t *testing.T) {
	h, _ := newJobHandlers(t, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString(`{"tags":["go"]}`))
	w := httptest.NewRecorder()

	h.Create(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decodeErrorBody(t, w)["error"])
}

func TestJobHandlers_Patch_Success(t *testing.T) {
	h, repo := newJobHandlers(t, nil)

	archived := boardJob()
	archived.Status = model.JobStatusArchived
	repo.EXPECT().GetByID(gomock.Any(), int64(12)).Return(boardJob(), nil)
	repo.EXPECT().Update(gomock.Any(), int64(12), gomock.Any()).Return(archived, nil)

	r := httptest.NewRequest(http.MethodPatch, "/api/jobs/12", bytes.NewBufferString(`{"status":"archived"}`))
	r.SetPathValue("id", "12")
	w := httptest.NewRecorder()

	h.Patch(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, model.JobStatusArchived, got.Status)
}

func TestJobHandlers_Patch_InvalidID(t *testing.T) {
	h, _ := newJobHandlers(t, nil)

	r := httptest.NewRequest(http.MethodPatch, "/api/jobs/abc", bytes.NewBufferString(`{"title":"x"}`))
	r.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	h.Patch(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_path", decodeErrorBody(t, w)["error"])
}

func TestJobHandlers_Reorder_Success(t *testing.T) {
	h, repo := newJobHandlers(t, nil)

	repo.EXPECT().GetByID(gomock.Any(), int64(12)).Return(boardJob(), nil)
	repo.EXPECT().
		Reorder(gomock.Any(), core.ReorderJobParams{JobID: 12, FromOrder: 3, ToOrder: 0}).
		Return(boardJob(), nil)

	r := httptest.NewRequest(http.MethodPatch, "/api/jobs/12/reorder",
		bytes.NewBufferString(`{"fromOrder":3,"toOrder":0}`))
	r.SetPathValue("id", "12")
	w := httptest.NewRecorder()

	h.Reorder(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got["ok"])
}

func TestJobHandlers_Reorder_InjectedFailure(t *testing.T) {
	h, repo := newJobHandlers(t, simulator.Static(true))

	repo.EXPECT().GetByID(gomock.Any(), int64(12)).Return(boardJob(), nil)

	r := httptest.NewRequest(http.MethodPatch, "/api/jobs/12/reorder",
		bytes.NewBufferString(`{"fromOrder":3,"toOrder":0}`))
	r.SetPathValue("id", "12")
	w := httptest.NewRecorder()

	h.Reorder(w, r)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "injected", decodeErrorBody(t, w)["error"])
}

func TestJobHandlers_Reorder_NegativePosition(t *testing.T) {
	h, _ := newJobHandlers(t, nil)

	r := httptest.NewRequest(http.MethodPatch, "/api/jobs/12/reorder",
		bytes.NewBufferString(`{"fromOrder":-1,"toOrder":0}`))
	r.SetPathValue("id", "12")
	w := httptest.NewRecorder()

	h.Reorder(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decodeErrorBody(t, w)["error"])
}
