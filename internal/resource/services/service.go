package services

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/dcm-project/kube-client-ext/internal/k8s"
	"github.com/dcm-project/kube-client-ext/internal/resource/models"
	"github.com/dcm-project/kube-client-ext/pkg/kubeext"
)

// ResourceServiceInterface defines the interface for resource inspection operations
type ResourceServiceInterface interface {
	Kinds() []models.KindInfo
	ListResources(ctx context.Context, kind, namespace string) (*models.ResourceListResponse, error)
	GetResource(ctx context.Context, kind, name, namespace string) (*models.ResourceResponse, error)
	DeleteResource(ctx context.Context, kind, name, namespace string, propagation models.Propagation) (*models.DeleteResponse, error)
	ApplyResource(ctx context.Context, kind, name, namespace string, manifest []byte) (*models.ResourceResponse, error)
	GetDeploymentPods(ctx context.Context, namespace, name string) (*models.PodsResponse, error)
	GetStatefulSetPods(ctx context.Context, namespace, name string) (*models.PodsResponse, error)
	GetPodOwner(ctx context.Context, namespace, pod, ownerKind string) (*models.OwnerResponse, error)
	HealthCheck(ctx context.Context) error
}

// ResourceService serves typed resource reads, deletes and server-side
// applies through kubeext
type ResourceService struct {
	k8sClient    k8s.ClientInterface
	client       *kubeext.Client
	kinds        *registry
	fieldManager string
	logger       *zap.Logger
}

// NewResourceService creates a new resource service. Applies are made on
// behalf of fieldManager.
func NewResourceService(k8sClient k8s.ClientInterface, fieldManager string, logger *zap.Logger) *ResourceService {
	client := k8sClient.Ext()
	return &ResourceService{
		k8sClient:    k8sClient,
		client:       client,
		kinds:        newRegistry(client),
		fieldManager: fieldManager,
		logger:       logger,
	}
}

// Kinds returns the kinds this service can serve, sorted by name
func (s *ResourceService) Kinds() []models.KindInfo {
	return append([]models.KindInfo(nil), s.kinds.kinds...)
}

// ListResources lists every object of kind in namespace. An empty namespace
// means the client default, models.AllNamespaces lists across all of them.
func (s *ResourceService) ListResources(ctx context.Context, kind, namespace string) (*models.ResourceListResponse, error) {
	h, err := s.kinds.lookup(kind)
	if err != nil {
		return nil, err
	}
	info := h.info()
	ns := listNamespace(namespace)

	logger := s.logger.Named("resource_service").With(
		zap.String("kind", info.Name),
		zap.Stringer("namespace", ns),
	)
	logger.Debug("Listing resources")

	items, err := h.list(ctx, s.client, ns)
	if err != nil {
		logger.Error("Failed to list resources", zap.Error(err))
		return nil, fmt.Errorf("failed to list %s: %w", info.Resource, err)
	}

	logger.Info("Successfully listed resources", zap.Int("count", len(items)))
	return &models.ResourceListResponse{
		Kind:      info.Name,
		Namespace: s.resolved(info, ns),
		Items:     items,
		Count:     len(items),
	}, nil
}

// GetResource fetches a single object. A missing object yields ErrResourceNotFound.
func (s *ResourceService) GetResource(ctx context.Context, kind, name, namespace string) (*models.ResourceResponse, error) {
	h, err := s.kinds.lookup(kind)
	if err != nil {
		return nil, err
	}
	info := h.info()
	ns := objectNamespace(namespace)
	resolved := s.resolved(info, ns)

	logger := s.logger.Named("resource_service").With(
		zap.String("kind", info.Name),
		zap.String("name", name),
		zap.String("namespace", resolved),
	)

	obj, err := h.get(ctx, s.client, name, ns)
	if err != nil {
		logger.Error("Failed to get resource", zap.Error(err))
		return nil, fmt.Errorf("failed to get %s %s: %w", info.Name, name, err)
	}
	if obj == nil {
		logger.Debug("Resource not found")
		return nil, models.NewErrResourceNotFound(info.Name, name, resolved)
	}

	return &models.ResourceResponse{
		Kind:      info.Name,
		Name:      name,
		Namespace: resolved,
		Object:    obj,
	}, nil
}

// DeleteResource deletes a single object. Deleting an object that is already
// gone succeeds with AlreadyAbsent set.
func (s *ResourceService) DeleteResource(ctx context.Context, kind, name, namespace string, propagation models.Propagation) (*models.DeleteResponse, error) {
	h, err := s.kinds.lookup(kind)
	if err != nil {
		return nil, err
	}
	info := h.info()
	ns := objectNamespace(namespace)
	resolved := s.resolved(info, ns)

	logger := s.logger.Named("resource_service").With(
		zap.String("kind", info.Name),
		zap.String("name", name),
		zap.String("namespace", resolved),
		zap.String("propagation", string(propagation)),
	)
	logger.Info("Deleting resource")

	outcome, err := h.remove(ctx, s.client, name, ns, deleteOptions(propagation))
	if err != nil {
		logger.Error("Failed to delete resource", zap.Error(err))
		return nil, fmt.Errorf("failed to delete %s %s: %w", info.Name, name, err)
	}

	response := &models.DeleteResponse{
		Kind:          info.Name,
		Name:          name,
		Namespace:     resolved,
		Propagation:   propagation,
		AlreadyAbsent: outcome.AlreadyAbsent,
	}
	if outcome.AlreadyAbsent {
		response.Message = outcome.Status.Message
		logger.Info("Resource was already absent")
	} else {
		logger.Info("Successfully deleted resource")
	}
	return response, nil
}

// ApplyResource server-side applies a JSON or YAML manifest to the named
// object, forcing ownership of conflicting fields for the service's field
// manager. A manifest naming a different object yields ErrInvalidManifest.
func (s *ResourceService) ApplyResource(ctx context.Context, kind, name, namespace string, manifest []byte) (*models.ResourceResponse, error) {
	h, err := s.kinds.lookup(kind)
	if err != nil {
		return nil, err
	}
	info := h.info()
	ns := objectNamespace(namespace)
	resolved := s.resolved(info, ns)

	if err := checkManifest(manifest, name, resolved); err != nil {
		return nil, err
	}

	logger := s.logger.Named("resource_service").With(
		zap.String("kind", info.Name),
		zap.String("name", name),
		zap.String("namespace", resolved),
		zap.String("fieldManager", s.fieldManager),
	)
	logger.Info("Applying resource")

	obj, err := h.apply(ctx, s.client, name, ns, manifest, s.fieldManager)
	if err != nil {
		logger.Error("Failed to apply resource", zap.Error(err))
		return nil, fmt.Errorf("failed to apply %s %s: %w", info.Name, name, err)
	}

	logger.Info("Successfully applied resource")
	return &models.ResourceResponse{
		Kind:      info.Name,
		Name:      name,
		Namespace: resolved,
		Object:    obj,
	}, nil
}

// GetDeploymentPods returns the pods selected by a deployment
func (s *ResourceService) GetDeploymentPods(ctx context.Context, namespace, name string) (*models.PodsResponse, error) {
	ns := objectNamespace(namespace)
	owner := models.ObjectRef{Kind: kubeext.DeploymentKind.Name(), Name: name, Namespace: s.client.Resolve(ns)}

	pods, found, err := s.client.GetPodsByDeploymentName(ctx, name, ns)
	return s.podsResponse(owner, pods, found, err)
}

// GetStatefulSetPods returns the pods of a statefulset's current revision
func (s *ResourceService) GetStatefulSetPods(ctx context.Context, namespace, name string) (*models.PodsResponse, error) {
	ns := objectNamespace(namespace)
	owner := models.ObjectRef{Kind: kubeext.StatefulSetKind.Name(), Name: name, Namespace: s.client.Resolve(ns)}

	pods, found, err := s.client.GetPodsByStatefulSetName(ctx, name, ns)
	return s.podsResponse(owner, pods, found, err)
}

func (s *ResourceService) podsResponse(owner models.ObjectRef, pods []corev1.Pod, found bool, err error) (*models.PodsResponse, error) {
	logger := s.logger.Named("resource_service").With(
		zap.String("kind", owner.Kind),
		zap.String("name", owner.Name),
		zap.String("namespace", owner.Namespace),
	)

	if err != nil {
		logger.Error("Failed to get workload pods", zap.Error(err))
		return nil, fmt.Errorf("failed to get pods for %s %s: %w", owner.Kind, owner.Name, err)
	}
	if !found {
		return nil, models.NewErrResourceNotFound(owner.Kind, owner.Name, owner.Namespace)
	}

	summaries := make([]models.PodSummary, 0, len(pods))
	for i := range pods {
		summaries = append(summaries, summarizePod(&pods[i]))
	}

	logger.Info("Successfully retrieved workload pods", zap.Int("count", len(summaries)))
	return &models.PodsResponse{
		Owner: owner,
		Pods:  summaries,
		Count: len(summaries),
	}, nil
}

// GetPodOwner resolves the first owner of kind ownerKind referenced by a pod.
// A pod without such a reference and one whose owner was deleted both yield
// ErrOwnerNotFound.
func (s *ResourceService) GetPodOwner(ctx context.Context, namespace, pod, ownerKind string) (*models.OwnerResponse, error) {
	h, err := s.kinds.lookup(ownerKind)
	if err != nil {
		return nil, err
	}
	info := h.info()
	ns := objectNamespace(namespace)
	podRef := models.ObjectRef{Kind: kubeext.PodKind.Name(), Name: pod, Namespace: s.client.Resolve(ns)}

	logger := s.logger.Named("resource_service").With(
		zap.String("pod", pod),
		zap.String("namespace", podRef.Namespace),
		zap.String("ownerKind", info.Name),
	)

	child, err := s.client.GetPodOpt(ctx, pod, ns)
	if err != nil {
		logger.Error("Failed to get pod", zap.Error(err))
		return nil, fmt.Errorf("failed to get pod %s: %w", pod, err)
	}
	if child == nil {
		return nil, models.NewErrResourceNotFound(podRef.Kind, pod, podRef.Namespace)
	}

	obj, err := h.ownerOf(ctx, s.client, child)
	if err != nil {
		logger.Error("Failed to get pod owner", zap.Error(err))
		return nil, fmt.Errorf("failed to get %s owner of pod %s: %w", info.Name, pod, err)
	}
	if obj == nil {
		logger.Debug("Pod owner not found")
		return nil, models.NewErrOwnerNotFound(info.Name, pod, podRef.Namespace)
	}

	owner := models.ObjectRef{Kind: info.Name}
	if meta, ok := obj.(metav1.Object); ok {
		owner.Name = meta.GetName()
		owner.Namespace = meta.GetNamespace()
	}

	logger.Info("Successfully resolved pod owner", zap.String("owner", owner.Name))
	return &models.OwnerResponse{
		Pod:    podRef,
		Owner:  owner,
		Object: obj,
	}, nil
}

// HealthCheck verifies the service health
func (s *ResourceService) HealthCheck(ctx context.Context) error {
	s.logger.Debug("Performing resource service health check")
	return s.k8sClient.HealthCheck(ctx)
}

// resolved is the namespace name reported back for info in ns
func (s *ResourceService) resolved(info models.KindInfo, ns kubeext.Namespace) string {
	if !info.Namespaced {
		return ""
	}
	return s.client.Resolve(ns)
}

func objectNamespace(namespace string) kubeext.Namespace {
	if namespace == "" {
		return kubeext.Default()
	}
	return kubeext.In(namespace)
}

func listNamespace(namespace string) kubeext.Namespace {
	if namespace == models.AllNamespaces {
		return kubeext.AllNamespaces()
	}
	return objectNamespace(namespace)
}

// checkManifest rejects an empty manifest and one whose metadata addresses a
// different object than the request.
func checkManifest(manifest []byte, name, namespace string) error {
	if len(bytes.TrimSpace(manifest)) == 0 {
		return models.NewErrInvalidManifest("body is empty")
	}
	var meta metav1.PartialObjectMetadata
	if err := yaml.Unmarshal(manifest, &meta); err != nil {
		return models.NewErrInvalidManifest("%v", err)
	}
	if meta.Name != "" && meta.Name != name {
		return models.NewErrInvalidManifest("metadata.name %q does not match %q", meta.Name, name)
	}
	if meta.Namespace != "" && namespace != "" && meta.Namespace != namespace {
		return models.NewErrInvalidManifest("metadata.namespace %q does not match %q", meta.Namespace, namespace)
	}
	return nil
}

func deleteOptions(propagation models.Propagation) metav1.DeleteOptions {
	switch propagation {
	case models.PropagationForeground:
		return kubeext.ForegroundDelete()
	case models.PropagationBackground:
		return kubeext.BackgroundDelete()
	default:
		return kubeext.DeleteParams()
	}
}

func summarizePod(pod *corev1.Pod) models.PodSummary {
	summary := models.PodSummary{
		Name:      pod.Name,
		Namespace: pod.Namespace,
		Phase:     string(pod.Status.Phase),
		Node:      pod.Spec.NodeName,
		Labels:    pod.Labels,
	}
	if ref := metav1.GetControllerOfNoCopy(pod); ref != nil {
		summary.Controller = &models.ObjectRef{Kind: ref.Kind, Name: ref.Name, Namespace: pod.Namespace}
	}
	return summary
}
