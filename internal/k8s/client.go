package k8s

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
	"kubevirt.io/client-go/kubecli"

	"github.com/dcm-project/kube-client-ext/internal/config"
	"github.com/dcm-project/kube-client-ext/pkg/kubeext"
)

// serviceAccountNamespaceFile holds the pod's namespace when running in-cluster.
var serviceAccountNamespaceFile = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"

// Client wraps the kubeext client and provides shared functionality
type Client struct {
	ext    *kubeext.Client
	logger *zap.Logger
}

// NewClient creates a new shared Kubernetes client
func NewClient(cfg config.KubernetesConfig, logger *zap.Logger) (ClientInterface, error) {
	restConfig, namespace, err := getKubeConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes config: %w", err)
	}

	opts := []kubeext.Option{kubeext.WithLogger(logger.Named("kubeext"))}
	if !cfg.EnableAggregator {
		opts = append(opts, kubeext.WithAggregator(nil))
	}
	if cfg.EnableKubeVirt {
		virt, err := kubecli.GetKubevirtClientFromRESTConfig(restConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create kubevirt client: %w", err)
		}
		opts = append(opts, kubeext.WithKubeVirt(virt))
	}

	ext, err := kubeext.NewForConfig(restConfig, namespace, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("Kubernetes client initialized",
		zap.String("defaultNamespace", ext.DefaultNamespace()),
		zap.Bool("kubevirt", cfg.EnableKubeVirt),
		zap.Bool("aggregator", cfg.EnableAggregator))

	return NewClientFromExt(ext, logger), nil
}

// NewClientFromExt wraps an already built kubeext client
func NewClientFromExt(ext *kubeext.Client, logger *zap.Logger) *Client {
	return &Client{ext: ext, logger: logger}
}

// Ext returns the underlying kubeext client
func (c *Client) Ext() *kubeext.Client {
	return c.ext
}

// DefaultNamespace returns the namespace unqualified requests resolve to
func (c *Client) DefaultNamespace() string {
	return c.ext.DefaultNamespace()
}

// HealthCheck verifies that the Kubernetes client can connect to the cluster
func (c *Client) HealthCheck(ctx context.Context) error {
	c.logger.Debug("Performing Kubernetes health check")

	// Try to get server version as a simple health check
	info, err := c.ext.Kubernetes().Discovery().ServerVersion()
	if err != nil {
		c.logger.Error("Kubernetes health check failed", zap.Error(err))
		return fmt.Errorf("kubernetes health check failed: %w", err)
	}

	c.logger.Debug("Kubernetes health check successful", zap.String("version", info.GitVersion))
	return nil
}

// getKubeConfig returns the REST configuration and the default namespace
// based on the provided config
func getKubeConfig(cfg config.KubernetesConfig, logger *zap.Logger) (*rest.Config, string, error) {
	if cfg.InCluster {
		logger.Info("Using in-cluster Kubernetes configuration")
		restConfig, err := rest.InClusterConfig()
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Kubernetes config: %w", err)
		}
		namespace := cfg.Namespace
		if namespace == "" {
			namespace = inClusterNamespace()
		}
		return restConfig, namespace, nil
	}

	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if cfg.ConfigPath != "" {
		rules.ExplicitPath = cfg.ConfigPath
	}
	overrides := &clientcmd.ConfigOverrides{
		CurrentContext: cfg.Context,
		Context:        clientcmdapi.Context{Namespace: cfg.Namespace},
	}

	logger.Info("Using kubeconfig file",
		zap.String("path", cfg.ConfigPath),
		zap.String("context", cfg.Context))

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)
	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, "", fmt.Errorf("failed to create Kubernetes config: %w", err)
	}
	namespace, _, err := clientConfig.Namespace()
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve namespace: %w", err)
	}

	logger.Info("Successfully initialized Kubernetes configuration",
		zap.String("host", restConfig.Host),
		zap.String("namespace", namespace))
	return restConfig, namespace, nil
}

func inClusterNamespace() string {
	data, err := os.ReadFile(serviceAccountNamespaceFile)
	if err != nil {
		return metav1.NamespaceDefault
	}
	if ns := strings.TrimSpace(string(data)); ns != "" {
		return ns
	}
	return metav1.NamespaceDefault
}
