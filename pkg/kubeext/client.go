package kubeext

import (
	"fmt"

	"go.uber.org/zap"
	apiextensionsclientset "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	apiextensionsv1client "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset/typed/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	appsv1client "k8s.io/client-go/kubernetes/typed/apps/v1"
	autoscalingv2client "k8s.io/client-go/kubernetes/typed/autoscaling/v2"
	batchv1client "k8s.io/client-go/kubernetes/typed/batch/v1"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
	rbacv1client "k8s.io/client-go/kubernetes/typed/rbac/v1"
	storagev1client "k8s.io/client-go/kubernetes/typed/storage/v1"
	"k8s.io/client-go/rest"
	aggregatorclientset "k8s.io/kube-aggregator/pkg/client/clientset_generated/clientset"
	apiregistrationv1client "k8s.io/kube-aggregator/pkg/client/clientset_generated/clientset/typed/apiregistration/v1"
	"kubevirt.io/client-go/kubecli"
)

// VirtClient is the part of kubecli.KubevirtClient the accessors need.
type VirtClient interface {
	VirtualMachine(namespace string) kubecli.VirtualMachineInterface
	VirtualMachineInstance(namespace string) kubecli.VirtualMachineInstanceInterface
}

// Client hands out namespace-bound typed sub-clients. It holds no mutable
// state after construction and is safe for concurrent use.
type Client struct {
	kube       kubernetes.Interface
	apiext     apiextensionsclientset.Interface
	aggregator aggregatorclientset.Interface
	virt       VirtClient
	namespace  string
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDefaultNamespace sets the namespace Default() resolves to.
func WithDefaultNamespace(namespace string) Option {
	return func(c *Client) {
		if namespace != "" {
			c.namespace = namespace
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAPIExtensions enables the CustomResourceDefinition accessors.
func WithAPIExtensions(cs apiextensionsclientset.Interface) Option {
	return func(c *Client) {
		c.apiext = cs
	}
}

// WithAggregator enables the APIService accessors.
func WithAggregator(cs aggregatorclientset.Interface) Option {
	return func(c *Client) {
		c.aggregator = cs
	}
}

// WithKubeVirt enables the VirtualMachine and VirtualMachineInstance accessors.
func WithKubeVirt(virt VirtClient) Option {
	return func(c *Client) {
		c.virt = virt
	}
}

// New wraps an existing clientset. The default namespace is "default" unless
// WithDefaultNamespace says otherwise.
func New(kube kubernetes.Interface, opts ...Option) *Client {
	c := &Client{
		kube:      kube,
		namespace: metav1.NamespaceDefault,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewForConfig builds the core, apiextensions and aggregator clientsets from
// cfg. Options are applied after the clientsets are set, so they may replace them.
func NewForConfig(cfg *rest.Config, namespace string, opts ...Option) (*Client, error) {
	kube, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	apiext, err := apiextensionsclientset.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create apiextensions client: %w", err)
	}
	aggregator, err := aggregatorclientset.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator client: %w", err)
	}

	base := []Option{
		WithDefaultNamespace(namespace),
		WithAPIExtensions(apiext),
		WithAggregator(aggregator),
	}
	return New(kube, append(base, opts...)...), nil
}

// Kubernetes returns the underlying clientset.
func (c *Client) Kubernetes() kubernetes.Interface {
	return c.kube
}

// DefaultNamespace returns the namespace Default() resolves to.
func (c *Client) DefaultNamespace() string {
	return c.namespace
}

// Resolve returns the namespace name ns stands for on this client.
func (c *Client) Resolve(ns Namespace) string {
	return ns.Or(c.namespace)
}

// HasAPIExtensions reports whether the CustomResourceDefinition accessors are usable.
func (c *Client) HasAPIExtensions() bool { return c.apiext != nil }

// HasAggregator reports whether the APIService accessors are usable.
func (c *Client) HasAggregator() bool { return c.aggregator != nil }

// HasKubeVirt reports whether the VirtualMachine accessors are usable.
func (c *Client) HasKubeVirt() bool { return c.virt != nil }

// Cluster scoped

// Nodes returns the nodes client.
func (c *Client) Nodes() corev1client.NodeInterface {
	return c.kube.CoreV1().Nodes()
}

// Namespaces returns the namespaces client.
func (c *Client) Namespaces() corev1client.NamespaceInterface {
	return c.kube.CoreV1().Namespaces()
}

// PersistentVolumes returns the persistent volumes client.
func (c *Client) PersistentVolumes() corev1client.PersistentVolumeInterface {
	return c.kube.CoreV1().PersistentVolumes()
}

// ClusterRoles returns the cluster roles client.
func (c *Client) ClusterRoles() rbacv1client.ClusterRoleInterface {
	return c.kube.RbacV1().ClusterRoles()
}

// ClusterRoleBindings returns the cluster role bindings client.
func (c *Client) ClusterRoleBindings() rbacv1client.ClusterRoleBindingInterface {
	return c.kube.RbacV1().ClusterRoleBindings()
}

// StorageClasses returns the storage classes client.
func (c *Client) StorageClasses() storagev1client.StorageClassInterface {
	return c.kube.StorageV1().StorageClasses()
}

// CustomResourceDefinitions panics unless the client was built with WithAPIExtensions or NewForConfig.
func (c *Client) CustomResourceDefinitions() apiextensionsv1client.CustomResourceDefinitionInterface {
	if c.apiext == nil {
		panic("kubeext: apiextensions client not configured")
	}
	return c.apiext.ApiextensionsV1().CustomResourceDefinitions()
}

// APIServices panics unless the client was built with WithAggregator or NewForConfig.
func (c *Client) APIServices() apiregistrationv1client.APIServiceInterface {
	if c.aggregator == nil {
		panic("kubeext: aggregator client not configured")
	}
	return c.aggregator.ApiregistrationV1().APIServices()
}

// Namespaced

// Pods returns the pods client bound to ns.
func (c *Client) Pods(ns Namespace) corev1client.PodInterface {
	return c.kube.CoreV1().Pods(c.Resolve(ns))
}

// Services returns the services client bound to ns.
func (c *Client) Services(ns Namespace) corev1client.ServiceInterface {
	return c.kube.CoreV1().Services(c.Resolve(ns))
}

// Secrets returns the secrets client bound to ns.
func (c *Client) Secrets(ns Namespace) corev1client.SecretInterface {
	return c.kube.CoreV1().Secrets(c.Resolve(ns))
}

// ConfigMaps returns the config maps client bound to ns.
func (c *Client) ConfigMaps(ns Namespace) corev1client.ConfigMapInterface {
	return c.kube.CoreV1().ConfigMaps(c.Resolve(ns))
}

// ServiceAccounts returns the service accounts client bound to ns.
func (c *Client) ServiceAccounts(ns Namespace) corev1client.ServiceAccountInterface {
	return c.kube.CoreV1().ServiceAccounts(c.Resolve(ns))
}

// PersistentVolumeClaims returns the persistent volume claims client bound to ns.
func (c *Client) PersistentVolumeClaims(ns Namespace) corev1client.PersistentVolumeClaimInterface {
	return c.kube.CoreV1().PersistentVolumeClaims(c.Resolve(ns))
}

// Events returns the events client bound to ns.
func (c *Client) Events(ns Namespace) corev1client.EventInterface {
	return c.kube.CoreV1().Events(c.Resolve(ns))
}

// Deployments returns the deployments client bound to ns.
func (c *Client) Deployments(ns Namespace) appsv1client.DeploymentInterface {
	return c.kube.AppsV1().Deployments(c.Resolve(ns))
}

// ReplicaSets returns the replica sets client bound to ns.
func (c *Client) ReplicaSets(ns Namespace) appsv1client.ReplicaSetInterface {
	return c.kube.AppsV1().ReplicaSets(c.Resolve(ns))
}

// StatefulSets returns the stateful sets client bound to ns.
func (c *Client) StatefulSets(ns Namespace) appsv1client.StatefulSetInterface {
	return c.kube.AppsV1().StatefulSets(c.Resolve(ns))
}

// DaemonSets returns the daemon sets client bound to ns.
func (c *Client) DaemonSets(ns Namespace) appsv1client.DaemonSetInterface {
	return c.kube.AppsV1().DaemonSets(c.Resolve(ns))
}

// Jobs returns the jobs client bound to ns.
func (c *Client) Jobs(ns Namespace) batchv1client.JobInterface {
	return c.kube.BatchV1().Jobs(c.Resolve(ns))
}

// CronJobs returns the cron jobs client bound to ns.
func (c *Client) CronJobs(ns Namespace) batchv1client.CronJobInterface {
	return c.kube.BatchV1().CronJobs(c.Resolve(ns))
}

// Roles returns the roles client bound to ns.
func (c *Client) Roles(ns Namespace) rbacv1client.RoleInterface {
	return c.kube.RbacV1().Roles(c.Resolve(ns))
}

// RoleBindings returns the role bindings client bound to ns.
func (c *Client) RoleBindings(ns Namespace) rbacv1client.RoleBindingInterface {
	return c.kube.RbacV1().RoleBindings(c.Resolve(ns))
}

// HorizontalPodAutoscalers returns the horizontal pod autoscalers client bound to ns.
func (c *Client) HorizontalPodAutoscalers(ns Namespace) autoscalingv2client.HorizontalPodAutoscalerInterface {
	return c.kube.AutoscalingV2().HorizontalPodAutoscalers(c.Resolve(ns))
}

// VirtualMachines panics unless the client was built with WithKubeVirt.
func (c *Client) VirtualMachines(ns Namespace) kubecli.VirtualMachineInterface {
	return c.kubeVirt().VirtualMachine(c.Resolve(ns))
}

// VirtualMachineInstances panics unless the client was built with WithKubeVirt.
func (c *Client) VirtualMachineInstances(ns Namespace) kubecli.VirtualMachineInstanceInterface {
	return c.kubeVirt().VirtualMachineInstance(c.Resolve(ns))
}

func (c *Client) kubeVirt() VirtClient {
	if c.virt == nil {
		panic("kubeext: kubevirt client not configured")
	}
	return c.virt
}
