package httpx

import (
	"context"
	"net/http"

	"github.com/talentflow/ui-api/internal/domain/model"
	"github.com/talentflow/ui-api/internal/service"
)

// CandidateHandlers provides HTTP handlers for candidate pipeline operations.
type CandidateHandlers struct {
	Svc *service.CandidateService
}

// List handles GET /api/candidates.
func (h *CandidateHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, err := parseCandidatesListOptions(r)
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

// Get handles GET /api/candidates/{id}.
func (h *CandidateHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	candidate, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, candidate)
}

// Create handles POST /api/candidates.
func (h *CandidateHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCandidateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	candidate, err := h.Svc.Create(context.WithoutCancel(r.Context()), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, candidate)
}

// Patch handles PATCH /api/candidates/{id}. Moving a candidate across the
// pipeline is a stage patch; the timeline entry lands in the same store
// transaction.
func (h *CandidateHandlers) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req model.UpdateCandidateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	candidate, err := h.Svc.Update(context.WithoutCancel(r.Context()), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, candidate)
}

// Timeline handles GET /api/candidates/{id}/timeline.
func (h *CandidateHandlers) Timeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	events, err := h.Svc.Timeline(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, events)
}

// AddNote handles POST /api/candidates/{id}/notes.
func (h *CandidateHandlers) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req model.AddNoteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Svc.AddNote(context.WithoutCancel(r.Context()), id, req); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteOK(w)
}
