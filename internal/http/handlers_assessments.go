package httpx

import (
	"context"
	"net/http"

	"github.com/talentflow/ui-api/internal/domain/model"
	"github.com/talentflow/ui-api/internal/service"
)

// AssessmentHandlers provides HTTP handlers for per-job assessment forms and
// their submitted responses.
type AssessmentHandlers struct {
	Svc *service.AssessmentService
}

// Get handles GET /api/assessments/{jobId}. A job without a saved assessment
// is a 404, which clients read as "nothing authored yet".
func (h *AssessmentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "jobId")
	if !ok {
		return
	}

	assessment, err := h.Svc.GetByJobID(r.Context(), jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, assessment)
}

// Put handles PUT /api/assessments/{jobId}, replacing the whole assessment
// document for the job.
func (h *AssessmentHandlers) Put(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "jobId")
	if !ok {
		return
	}
	var req model.SaveAssessmentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Svc.Save(context.WithoutCancel(r.Context()), jobID, &req); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteOK(w)
}

// Submit handles POST /api/assessments/{jobId}/submit.
func (h *AssessmentHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "jobId")
	if !ok {
		return
	}
	var req model.SubmitResponseRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Svc.Submit(context.WithoutCancel(r.Context()), jobID, &req); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteOK(w)
}

// ListResponses handles GET /api/assessments/{jobId}/responses.
func (h *AssessmentHandlers) ListResponses(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "jobId")
	if !ok {
		return
	}
	opts, err := parseResponsesListOptions(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}

	page, err := h.Svc.ListResponses(r.Context(), jobID, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}
