package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dcm-project/kube-client-ext/internal/namespace/models"
	"github.com/dcm-project/kube-client-ext/internal/namespace/services"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	namespaceService services.NamespaceServiceInterface
	logger           *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(namespaceService services.NamespaceServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{
		namespaceService: namespaceService,
		logger:           logger,
	}
}

// GetNamespacesByLabels handles POST /api/v1/namespaces requests
func (h *Handler) GetNamespacesByLabels(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)
	logger.Info("Received request to get namespaces by labels")

	// Set response headers
	w.Header().Set("Content-Type", "application/json")

	// Parse request body
	var req models.LabelSelectors
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode request body", zap.Error(err))
		h.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid JSON", "Failed to parse request body")
		return
	}

	// Validate request
	if len(req.Labels) == 0 {
		logger.Error("Empty labels provided")
		h.writeErrorResponse(w, r, http.StatusBadRequest, "Validation Error", "Labels cannot be empty")
		return
	}

	// Get namespaces from service
	response, err := h.namespaceService.GetNamespacesByLabels(r.Context(), req.Labels)
	if models.IsValidationError(err) {
		logger.Warn("Invalid label selectors", zap.Error(err))
		h.writeErrorResponse(w, r, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}
	if err != nil {
		logger.Error("Failed to get namespaces from service", zap.Error(err))
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Kubernetes API Error", "Failed to fetch namespaces")
		return
	}

	h.writeJSON(w, http.StatusOK, response)
	logger.Info("Successfully returned namespaces", zap.Int("count", response.Count))
}

// DeleteNamespace handles DELETE /api/v1/namespaces/{name} requests
func (h *Handler) DeleteNamespace(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	logger := h.requestLogger(r).With(zap.String("namespace", name))
	logger.Info("Received request to delete namespace")

	w.Header().Set("Content-Type", "application/json")

	response, err := h.namespaceService.DeleteNamespace(r.Context(), name)
	if err != nil {
		logger.Error("Failed to delete namespace", zap.Error(err))
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Kubernetes API Error", "Failed to delete namespace")
		return
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HealthCheck handles GET /api/v1/health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Received health check request")

	w.Header().Set("Content-Type", "application/json")

	// Check service health
	err := h.namespaceService.HealthCheck(r.Context())

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	}

	status := http.StatusOK
	if err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		response.Status = "unhealthy"
		response.Error = err.Error()
		status = http.StatusServiceUnavailable
	}

	h.writeJSON(w, status, response)
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("request_id", requestIDFrom(r.Context())))
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, errorType, message string) {
	h.writeJSON(w, statusCode, models.ErrorResponse{
		Error:     errorType,
		Message:   message,
		RequestID: requestIDFrom(r.Context()),
	})
}

// NotFoundHandler handles 404 errors
func (h *Handler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("Endpoint not found", zap.String("path", r.URL.Path))
	w.Header().Set("Content-Type", "application/json")
	h.writeErrorResponse(w, r, http.StatusNotFound, "Not Found", "The requested endpoint does not exist")
}

// MethodNotAllowedHandler handles 405 errors
func (h *Handler) MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("Method not allowed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	w.Header().Set("Content-Type", "application/json")
	h.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", "The HTTP method is not allowed for this endpoint")
}
