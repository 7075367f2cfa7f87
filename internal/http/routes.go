package httpx

import (
	"io"
	"net/http"

	"github.com/talentflow/ui-api/internal/service"
)

// RouterServices contains all services needed by the router.
type RouterServices struct {
	Jobs        *service.JobService
	Candidates  *service.CandidateService
	Assessments *service.AssessmentService
}

// NewRouter creates the application HTTP handler with all routes configured.
// Middleware (recovery, request ids, logging, simulated latency) wrap the
// returned handler at server construction.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	registerJobRoutes(mux, &JobHandlers{Svc: services.Jobs})
	registerCandidateRoutes(mux, &CandidateHandlers{Svc: services.Candidates})
	registerAssessmentRoutes(mux, &AssessmentHandlers{Svc: services.Assessments})

	// Liveness endpoint, mounted outside /api/ so the latency middleware
	// never delays probes.
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	return mux
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers) {
	mux.HandleFunc("GET /api/jobs", h.List)
	mux.HandleFunc("POST /api/jobs", h.Create)
	mux.HandleFunc("GET /api/jobs/{id}", h.Get)
	mux.HandleFunc("PATCH /api/jobs/{id}", h.Patch)
	mux.HandleFunc("PATCH /api/jobs/{id}/reorder", h.Reorder)
}

func registerCandidateRoutes(mux *http.ServeMux, h *CandidateHandlers) {
	mux.HandleFunc("GET /api/candidates", h.List)
	mux.HandleFunc("POST /api/candidates", h.Create)
	mux.HandleFunc("GET /api/candidates/{id}", h.Get)
	mux.HandleFunc("PATCH /api/candidates/{id}", h.Patch)
	mux.HandleFunc("GET /api/candidates/{id}/timeline", h.Timeline)
	mux.HandleFunc("POST /api/candidates/{id}/notes", h.AddNote)
}

func registerAssessmentRoutes(mux *http.ServeMux, h *AssessmentHandlers) {
	mux.HandleFunc("GET /api/assessments/{jobId}", h.Get)
	mux.HandleFunc("PUT /api/assessments/{jobId}", h.Put)
	mux.HandleFunc("POST /api/assessments/{jobId}/submit", h.Submit)
	mux.HandleFunc("GET /api/assessments/{jobId}/responses", h.ListResponses)
}

const healthResponse = `{"status":"ok"}`

// healthHandler answers liveness probes with a static body. It deliberately
// touches nothing: a probe should report whether the process is up, not
// whether the simulated backend is having a bad day.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
