package k8s

import (
	"context"

	"github.com/dcm-project/kube-client-ext/pkg/kubeext"
)

// ClientInterface defines the interface for Kubernetes client operations
type ClientInterface interface {
	// Ext returns the convenience client the services build on
	Ext() *kubeext.Client

	// DefaultNamespace returns the namespace Default() resolves to
	DefaultNamespace() string

	// HealthCheck verifies that the Kubernetes client can connect to the cluster
	HealthCheck(ctx context.Context) error
}
