package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mtlprog/workforcemgmt/docs" // Import API docs
	"github.com/mtlprog/workforcemgmt/internal/catalog"
	"github.com/mtlprog/workforcemgmt/internal/handler/dto"
	"github.com/mtlprog/workforcemgmt/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	taskService *service.TaskService
	catalog     *catalog.Catalog
	pinger      Pinger
	gatherer    prometheus.Gatherer
}

// New creates a new Handler instance with all dependencies.
func New(taskService *service.TaskService, cat *catalog.Catalog, pinger Pinger, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		taskService: taskService,
		catalog:     cat,
		pinger:      pinger,
		gatherer:    gatherer,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// API v1 routes
	mux.HandleFunc("POST /api/v1/tasks", h.handleCreateTasks)
	mux.HandleFunc("PATCH /api/v1/tasks", h.handleUpdateTasks)
	mux.HandleFunc("GET /api/v1/tasks", h.handleGetTasksByPriority)
	mux.HandleFunc("GET /api/v1/tasks/{id}", h.handleGetTask)
	mux.HandleFunc("POST /api/v1/tasks/assign-by-ref", h.handleAssignByReference)
	mux.HandleFunc("POST /api/v1/tasks/fetch-by-date", h.handleFetchByDate)
	mux.HandleFunc("PATCH /api/v1/tasks/{id}/priority", h.handleUpdatePriority)
	mux.HandleFunc("POST /api/v1/tasks/{id}/comments", h.handleCommentTask)
	mux.HandleFunc("GET /api/v1/catalog", h.handleGetCatalog)
}

// handleHealthz returns 200 OK if the store is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pinger.Ping(ctx); err != nil {
		slog.Error("store health check failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleGetCatalog lists the task kinds required per reference type.
// @Summary Get task catalog
// @Description Lists the task kinds that reassignment creates for each reference type
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CatalogResponse
// @Router /catalog [get]
func (h *Handler) handleGetCatalog(w http.ResponseWriter, _ *http.Request) {
	resp := dto.CatalogResponse{ReferenceTypes: make(map[string][]string)}
	for _, refType := range h.catalog.ReferenceTypes() {
		kinds := h.catalog.KindsFor(refType)
		names := make([]string, len(kinds))
		for i, kind := range kinds {
			names[i] = string(kind)
		}
		resp.ReferenceTypes[string(refType)] = names
	}

	respondJSON(w, http.StatusOK, resp)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps err through dto.MapDomainError and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// decodeJSON decodes the request body into v.
// Returns false if the body is invalid (error already sent to client).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return false
	}
	return true
}

// extractTaskID extracts and validates task ID from path parameter.
// Returns (taskID, true) if valid, ("", false) if invalid (error already sent to client).
func extractTaskID(w http.ResponseWriter, r *http.Request) (string, bool) {
	taskID := r.PathValue("id")
	if taskID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task id is required")
		return "", false
	}

	if _, err := uuid.Parse(taskID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task_id must be a valid UUID")
		return "", false
	}

	return taskID, true
}
