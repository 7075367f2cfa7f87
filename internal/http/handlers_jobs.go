// Package httpx provides the JSON HTTP surface for the TalentFlow hiring API.
package httpx

import (
	"context"
	"net/http"
	"strconv"

	"github.com/talentflow/ui-api/internal/domain/model"
	"github.com/talentflow/ui-api/internal/service"
)

// JobHandlers provides HTTP handlers for jobs board operations.
//
// Mutation handlers run the service call on a context.WithoutCancel
// derivative: once a request has sat through the simulated latency and
// cleared failure injection, a client disconnect must not abort the write
// halfway, exactly like a real backend that already received the request.
type JobHandlers struct {
	Svc *service.JobService
}

// List handles GET /api/jobs.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, err := parseJobsListOptions(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/jobs/{id}. A numeric segment addresses the job by id;
// anything else is treated as a slug so shared deep links resolve too.
func (h *JobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("id")

	var (
		job *model.Job
		err error
	)
	if id, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
		job, err = h.Svc.GetByID(r.Context(), id)
	} else {
		job, err = h.Svc.GetBySlug(r.Context(), key)
	}
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Create handles POST /api/jobs.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Create(context.WithoutCancel(r.Context()), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Patch handles PATCH /api/jobs/{id}. Archiving and restoring a job are
// status patches.
func (h *JobHandlers) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Update(context.WithoutCancel(r.Context()), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Reorder handles PATCH /api/jobs/{id}/reorder.
func (h *JobHandlers) Reorder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req model.ReorderJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Svc.Reorder(context.WithoutCancel(r.Context()), id, req); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteOK(w)
}
