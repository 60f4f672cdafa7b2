package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dcm-project/kube-client-ext/internal/resource/models"
	"github.com/dcm-project/kube-client-ext/internal/resource/services"
)

// Handler handles HTTP requests for the resource service
type Handler struct {
	resourceService services.ResourceServiceInterface
	logger          *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(resourceService services.ResourceServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{
		resourceService: resourceService,
		logger:          logger,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	}

	if err := h.resourceService.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		response.Status = "unhealthy"
		response.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListKinds handles GET /kinds
func (h *Handler) ListKinds(c *gin.Context) {
	kinds := h.resourceService.Kinds()
	c.JSON(http.StatusOK, models.KindsResponse{
		Kinds: kinds,
		Count: len(kinds),
	})
}

// ListResources handles GET /resources/{kind}
func (h *Handler) ListResources(c *gin.Context) {
	logger := h.requestLogger(c, "list_resources")

	response, err := h.resourceService.ListResources(c.Request.Context(), c.Param("kind"), c.Query("namespace"))
	if err != nil {
		logger.Error("Failed to list resources", zap.Error(err))
		h.writeError(c, err, "LIST_FAILED", "Failed to list resources")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetResource handles GET /resources/{kind}/{name}
func (h *Handler) GetResource(c *gin.Context) {
	logger := h.requestLogger(c, "get_resource")

	response, err := h.resourceService.GetResource(c.Request.Context(), c.Param("kind"), c.Param("name"), c.Query("namespace"))
	if err != nil {
		logger.Warn("Failed to get resource", zap.Error(err))
		h.writeError(c, err, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteResource handles DELETE /resources/{kind}/{name}
func (h *Handler) DeleteResource(c *gin.Context) {
	logger := h.requestLogger(c, "delete_resource")

	propagation, err := models.ParsePropagation(c.Query("propagation"))
	if err != nil {
		logger.Warn("Invalid propagation", zap.Error(err))
		h.writeError(c, err, "DELETE_FAILED", "Failed to delete resource")
		return
	}

	response, err := h.resourceService.DeleteResource(c.Request.Context(), c.Param("kind"), c.Param("name"), c.Query("namespace"), propagation)
	if err != nil {
		logger.Error("Failed to delete resource", zap.Error(err))
		h.writeError(c, err, "DELETE_FAILED", "Failed to delete resource")
		return
	}

	logger.Info("Delete request completed", zap.Bool("alreadyAbsent", response.AlreadyAbsent))
	c.JSON(http.StatusOK, response)
}

// ApplyResource handles PATCH /resources/{kind}/{name}. The body is a JSON or
// YAML manifest applied server-side.
func (h *Handler) ApplyResource(c *gin.Context) {
	logger := h.requestLogger(c, "apply_resource")

	manifest, err := c.GetRawData()
	if err != nil {
		logger.Warn("Failed to read request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:      "INVALID_BODY",
			Message:   "Failed to read request body",
			Details:   err.Error(),
			Timestamp: time.Now(),
		})
		return
	}

	response, err := h.resourceService.ApplyResource(c.Request.Context(), c.Param("kind"), c.Param("name"), c.Query("namespace"), manifest)
	if err != nil {
		logger.Error("Failed to apply resource", zap.Error(err))
		h.writeError(c, err, "APPLY_FAILED", "Failed to apply resource")
		return
	}

	logger.Info("Apply request completed")
	c.JSON(http.StatusOK, response)
}

// GetDeploymentPods handles GET /namespaces/{namespace}/deployments/{name}/pods
func (h *Handler) GetDeploymentPods(c *gin.Context) {
	logger := h.requestLogger(c, "get_deployment_pods")

	response, err := h.resourceService.GetDeploymentPods(c.Request.Context(), c.Param("namespace"), c.Param("name"))
	if err != nil {
		logger.Warn("Failed to get deployment pods", zap.Error(err))
		h.writeError(c, err, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetStatefulSetPods handles GET /namespaces/{namespace}/statefulsets/{name}/pods
func (h *Handler) GetStatefulSetPods(c *gin.Context) {
	logger := h.requestLogger(c, "get_statefulset_pods")

	response, err := h.resourceService.GetStatefulSetPods(c.Request.Context(), c.Param("namespace"), c.Param("name"))
	if err != nil {
		logger.Warn("Failed to get statefulset pods", zap.Error(err))
		h.writeError(c, err, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPodOwner handles GET /namespaces/{namespace}/pods/{name}/owner?kind=
func (h *Handler) GetPodOwner(c *gin.Context) {
	logger := h.requestLogger(c, "get_pod_owner")

	kind := c.Query("kind")
	if kind == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:      "MISSING_KIND",
			Message:   "Owner kind is required",
			Timestamp: time.Now(),
		})
		return
	}

	response, err := h.resourceService.GetPodOwner(c.Request.Context(), c.Param("namespace"), c.Param("name"), kind)
	if err != nil {
		logger.Warn("Failed to get pod owner", zap.Error(err))
		h.writeError(c, err, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, response)
}

// NotFound handles unmatched routes
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Code:      "ROUTE_NOT_FOUND",
		Message:   "The requested endpoint does not exist",
		Timestamp: time.Now(),
	})
}

func (h *Handler) requestLogger(c *gin.Context, endpoint string) *zap.Logger {
	return h.logger.Named("api_handler").With(
		zap.String("endpoint", endpoint),
		zap.String("request_id", c.GetString(RequestIDHeader)),
	)
}

// writeError maps service errors onto status codes. Errors the service does
// not classify are reported with fallbackCode as a 500.
func (h *Handler) writeError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	response := models.ErrorResponse{
		Details:   err.Error(),
		Timestamp: time.Now(),
	}

	status := http.StatusInternalServerError
	switch {
	case models.IsUnknownKindError(err):
		status = http.StatusBadRequest
		response.Code = "UNKNOWN_KIND"
		response.Message = "Unsupported resource kind"
	case models.IsValidationError(err):
		status = http.StatusBadRequest
		response.Code = "INVALID_REQUEST"
		response.Message = "Invalid request parameters"
	case models.IsOwnerNotFoundError(err):
		status = http.StatusNotFound
		response.Code = "OWNER_NOT_FOUND"
		response.Message = "Owner not found"
	case models.IsNotFoundError(err):
		status = http.StatusNotFound
		response.Code = "RESOURCE_NOT_FOUND"
		response.Message = "Resource not found"
	default:
		response.Code = fallbackCode
		response.Message = fallbackMessage
	}

	c.JSON(status, response)
}
