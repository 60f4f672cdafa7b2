package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/dcm-project/kube-client-ext/internal/k8s"
	"github.com/dcm-project/kube-client-ext/internal/namespace/models"
	"github.com/dcm-project/kube-client-ext/pkg/kubeext"
)

// NamespaceServiceInterface defines the namespace operations the admin API exposes
type NamespaceServiceInterface interface {
	GetNamespacesByLabels(ctx context.Context, labelSelectors map[string]string) (*models.NamespaceResponse, error)
	DeleteNamespace(ctx context.Context, name string) (*models.DeleteNamespaceResponse, error)
	HealthCheck(ctx context.Context) error
}

// NamespaceService handles namespace operations
type NamespaceService struct {
	k8sClient k8s.ClientInterface
	logger    *zap.Logger
}

// NewNamespaceService creates a new namespace service instance
func NewNamespaceService(k8sClient k8s.ClientInterface, logger *zap.Logger) *NamespaceService {
	return &NamespaceService{
		k8sClient: k8sClient,
		logger:    logger,
	}
}

// GetNamespacesByLabels retrieves namespaces that match every provided label.
// Keys and values must be valid label syntax, otherwise ErrInvalidLabels is
// returned and no request is made.
func (s *NamespaceService) GetNamespacesByLabels(ctx context.Context, labelSelectors map[string]string) (*models.NamespaceResponse, error) {
	logger := s.logger.Named("namespace_service")
	logger.Info("Processing label selectors", zap.Any("labels", labelSelectors))

	selector, err := labels.ValidatedSelectorFromSet(labelSelectors)
	if err != nil {
		logger.Warn("Rejected label selectors", zap.Error(err))
		return nil, models.NewErrInvalidLabels(err.Error())
	}
	items, err := kubeext.ListWith(ctx, s.k8sClient.Ext(), kubeext.NamespaceKind, kubeext.Default(), kubeext.LabelParams(selector.String()))
	if err != nil {
		logger.Error("Failed to list namespaces", zap.Error(err))
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	namespaces := make([]models.Namespace, 0, len(items))
	for _, ns := range items {
		namespace := models.Namespace{
			Name:   ns.Name,
			Labels: ns.Labels,
			Phase:  string(ns.Status.Phase),
		}
		// Ensure labels map is not nil
		if namespace.Labels == nil {
			namespace.Labels = make(map[string]string)
		}
		namespaces = append(namespaces, namespace)
	}

	response := &models.NamespaceResponse{
		Namespaces: namespaces,
		Count:      len(namespaces),
	}

	logger.Info("Successfully returned namespaces", zap.Int("count", response.Count))
	return response, nil
}

// DeleteNamespace deletes a namespace in the foreground. A namespace that is
// already gone is reported as AlreadyAbsent rather than as an error.
func (s *NamespaceService) DeleteNamespace(ctx context.Context, name string) (*models.DeleteNamespaceResponse, error) {
	logger := s.logger.Named("namespace_service").With(zap.String("namespace", name))
	logger.Info("Deleting namespace")

	outcome, err := kubeext.Delete(ctx, s.k8sClient.Ext(), kubeext.NamespaceKind, name, kubeext.Default(), kubeext.ForegroundDelete())
	if err != nil {
		logger.Error("Failed to delete namespace", zap.Error(err))
		return nil, fmt.Errorf("failed to delete namespace %s: %w", name, err)
	}

	logger.Info("Namespace delete completed", zap.Bool("alreadyAbsent", outcome.AlreadyAbsent))
	return &models.DeleteNamespaceResponse{
		Name:          name,
		AlreadyAbsent: outcome.AlreadyAbsent,
	}, nil
}

// HealthCheck verifies the service health
func (s *NamespaceService) HealthCheck(ctx context.Context) error {
	s.logger.Debug("Performing namespace service health check")
	return s.k8sClient.HealthCheck(ctx)
}
