package kubeext

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	storagev1 "k8s.io/api/storage/v1"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	apiregistrationv1 "k8s.io/kube-aggregator/pkg/apis/apiregistration/v1"
	kubevirtv1 "kubevirt.io/api/core/v1"
)

// ResourceClient is the common shape of the client-go typed clients for an
// object type T and its list type L.
type ResourceClient[T, L any] interface {
	Get(ctx context.Context, name string, opts metav1.GetOptions) (*T, error)
	List(ctx context.Context, opts metav1.ListOptions) (*L, error)
	Create(ctx context.Context, obj *T, opts metav1.CreateOptions) (*T, error)
	Delete(ctx context.Context, name string, opts metav1.DeleteOptions) error
	Patch(ctx context.Context, name string, pt types.PatchType, data []byte, opts metav1.PatchOptions, subresources ...string) (*T, error)
}

// KindInfo describes a resource kind independently of its Go types.
type KindInfo interface {
	// Name is the Kind as it appears in owner references, e.g. "Deployment".
	Name() string
	// Resource is the plural resource name, e.g. "deployments".
	Resource() string
	Namespaced() bool
}

// Kind binds a resource kind to its typed client and list type.
type Kind[T, L any] struct {
	name       string
	resource   string
	namespaced bool
	bind       func(c *Client, namespace string) ResourceClient[T, L]
	items      func(list *L) []T
}

var _ KindInfo = Kind[corev1.Pod, corev1.PodList]{}

func (k Kind[T, L]) Name() string     { return k.name }
func (k Kind[T, L]) Resource() string { return k.resource }
func (k Kind[T, L]) Namespaced() bool { return k.namespaced }

// Client returns the typed client for this kind. ns is ignored for cluster
// scoped kinds.
func (k Kind[T, L]) Client(c *Client, ns Namespace) ResourceClient[T, L] {
	return k.bind(c, k.namespaceOn(c, ns))
}

func (k Kind[T, L]) namespaceOn(c *Client, ns Namespace) string {
	if !k.namespaced {
		return ""
	}
	return c.Resolve(ns)
}

var (
	PodKind = Kind[corev1.Pod, corev1.PodList]{
		name: "Pod", resource: "pods", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[corev1.Pod, corev1.PodList] {
			return c.kube.CoreV1().Pods(ns)
		},
		items: func(l *corev1.PodList) []corev1.Pod {
			return l.Items
		},
	}
	ServiceKind = Kind[corev1.Service, corev1.ServiceList]{
		name: "Service", resource: "services", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[corev1.Service, corev1.ServiceList] {
			return c.kube.CoreV1().Services(ns)
		},
		items: func(l *corev1.ServiceList) []corev1.Service {
			return l.Items
		},
	}
	SecretKind = Kind[corev1.Secret, corev1.SecretList]{
		name: "Secret", resource: "secrets", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[corev1.Secret, corev1.SecretList] {
			return c.kube.CoreV1().Secrets(ns)
		},
		items: func(l *corev1.SecretList) []corev1.Secret {
			return l.Items
		},
	}
	ConfigMapKind = Kind[corev1.ConfigMap, corev1.ConfigMapList]{
		name: "ConfigMap", resource: "configmaps", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[corev1.ConfigMap, corev1.ConfigMapList] {
			return c.kube.CoreV1().ConfigMaps(ns)
		},
		items: func(l *corev1.ConfigMapList) []corev1.ConfigMap {
			return l.Items
		},
	}
	ServiceAccountKind = Kind[corev1.ServiceAccount, corev1.ServiceAccountList]{
		name: "ServiceAccount", resource: "serviceaccounts", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[corev1.ServiceAccount, corev1.ServiceAccountList] {
			return c.kube.CoreV1().ServiceAccounts(ns)
		},
		items: func(l *corev1.ServiceAccountList) []corev1.ServiceAccount {
			return l.Items
		},
	}
	PersistentVolumeClaimKind = Kind[corev1.PersistentVolumeClaim, corev1.PersistentVolumeClaimList]{
		name: "PersistentVolumeClaim", resource: "persistentvolumeclaims", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[corev1.PersistentVolumeClaim, corev1.PersistentVolumeClaimList] {
			return c.kube.CoreV1().PersistentVolumeClaims(ns)
		},
		items: func(l *corev1.PersistentVolumeClaimList) []corev1.PersistentVolumeClaim {
			return l.Items
		},
	}
	DeploymentKind = Kind[appsv1.Deployment, appsv1.DeploymentList]{
		name: "Deployment", resource: "deployments", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[appsv1.Deployment, appsv1.DeploymentList] {
			return c.kube.AppsV1().Deployments(ns)
		},
		items: func(l *appsv1.DeploymentList) []appsv1.Deployment {
			return l.Items
		},
	}
	ReplicaSetKind = Kind[appsv1.ReplicaSet, appsv1.ReplicaSetList]{
		name: "ReplicaSet", resource: "replicasets", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[appsv1.ReplicaSet, appsv1.ReplicaSetList] {
			return c.kube.AppsV1().ReplicaSets(ns)
		},
		items: func(l *appsv1.ReplicaSetList) []appsv1.ReplicaSet {
			return l.Items
		},
	}
	StatefulSetKind = Kind[appsv1.StatefulSet, appsv1.StatefulSetList]{
		name: "StatefulSet", resource: "statefulsets", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[appsv1.StatefulSet, appsv1.StatefulSetList] {
			return c.kube.AppsV1().StatefulSets(ns)
		},
		items: func(l *appsv1.StatefulSetList) []appsv1.StatefulSet {
			return l.Items
		},
	}
	DaemonSetKind = Kind[appsv1.DaemonSet, appsv1.DaemonSetList]{
		name: "DaemonSet", resource: "daemonsets", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[appsv1.DaemonSet, appsv1.DaemonSetList] {
			return c.kube.AppsV1().DaemonSets(ns)
		},
		items: func(l *appsv1.DaemonSetList) []appsv1.DaemonSet {
			return l.Items
		},
	}
	JobKind = Kind[batchv1.Job, batchv1.JobList]{
		name: "Job", resource: "jobs", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[batchv1.Job, batchv1.JobList] {
			return c.kube.BatchV1().Jobs(ns)
		},
		items: func(l *batchv1.JobList) []batchv1.Job {
			return l.Items
		},
	}
	CronJobKind = Kind[batchv1.CronJob, batchv1.CronJobList]{
		name: "CronJob", resource: "cronjobs", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[batchv1.CronJob, batchv1.CronJobList] {
			return c.kube.BatchV1().CronJobs(ns)
		},
		items: func(l *batchv1.CronJobList) []batchv1.CronJob {
			return l.Items
		},
	}
	RoleKind = Kind[rbacv1.Role, rbacv1.RoleList]{
		name: "Role", resource: "roles", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[rbacv1.Role, rbacv1.RoleList] {
			return c.kube.RbacV1().Roles(ns)
		},
		items: func(l *rbacv1.RoleList) []rbacv1.Role {
			return l.Items
		},
	}
	RoleBindingKind = Kind[rbacv1.RoleBinding, rbacv1.RoleBindingList]{
		name: "RoleBinding", resource: "rolebindings", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[rbacv1.RoleBinding, rbacv1.RoleBindingList] {
			return c.kube.RbacV1().RoleBindings(ns)
		},
		items: func(l *rbacv1.RoleBindingList) []rbacv1.RoleBinding {
			return l.Items
		},
	}
	HorizontalPodAutoscalerKind = Kind[autoscalingv2.HorizontalPodAutoscaler, autoscalingv2.HorizontalPodAutoscalerList]{
		name: "HorizontalPodAutoscaler", resource: "horizontalpodautoscalers", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[autoscalingv2.HorizontalPodAutoscaler, autoscalingv2.HorizontalPodAutoscalerList] {
			return c.kube.AutoscalingV2().HorizontalPodAutoscalers(ns)
		},
		items: func(l *autoscalingv2.HorizontalPodAutoscalerList) []autoscalingv2.HorizontalPodAutoscaler {
			return l.Items
		},
	}
	VirtualMachineKind = Kind[kubevirtv1.VirtualMachine, kubevirtv1.VirtualMachineList]{
		name: "VirtualMachine", resource: "virtualmachines", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[kubevirtv1.VirtualMachine, kubevirtv1.VirtualMachineList] {
			return c.kubeVirt().VirtualMachine(ns)
		},
		items: func(l *kubevirtv1.VirtualMachineList) []kubevirtv1.VirtualMachine {
			return l.Items
		},
	}
	VirtualMachineInstanceKind = Kind[kubevirtv1.VirtualMachineInstance, kubevirtv1.VirtualMachineInstanceList]{
		name: "VirtualMachineInstance", resource: "virtualmachineinstances", namespaced: true,
		bind: func(c *Client, ns string) ResourceClient[kubevirtv1.VirtualMachineInstance, kubevirtv1.VirtualMachineInstanceList] {
			return c.kubeVirt().VirtualMachineInstance(ns)
		},
		items: func(l *kubevirtv1.VirtualMachineInstanceList) []kubevirtv1.VirtualMachineInstance {
			return l.Items
		},
	}
)

// Cluster scoped kinds.
var (
	NodeKind = Kind[corev1.Node, corev1.NodeList]{
		name: "Node", resource: "nodes",
		bind: func(c *Client, _ string) ResourceClient[corev1.Node, corev1.NodeList] {
			return c.Nodes()
		},
		items: func(l *corev1.NodeList) []corev1.Node {
			return l.Items
		},
	}
	NamespaceKind = Kind[corev1.Namespace, corev1.NamespaceList]{
		name: "Namespace", resource: "namespaces",
		bind: func(c *Client, _ string) ResourceClient[corev1.Namespace, corev1.NamespaceList] {
			return c.Namespaces()
		},
		items: func(l *corev1.NamespaceList) []corev1.Namespace {
			return l.Items
		},
	}
	PersistentVolumeKind = Kind[corev1.PersistentVolume, corev1.PersistentVolumeList]{
		name: "PersistentVolume", resource: "persistentvolumes",
		bind: func(c *Client, _ string) ResourceClient[corev1.PersistentVolume, corev1.PersistentVolumeList] {
			return c.PersistentVolumes()
		},
		items: func(l *corev1.PersistentVolumeList) []corev1.PersistentVolume {
			return l.Items
		},
	}
	ClusterRoleKind = Kind[rbacv1.ClusterRole, rbacv1.ClusterRoleList]{
		name: "ClusterRole", resource: "clusterroles",
		bind: func(c *Client, _ string) ResourceClient[rbacv1.ClusterRole, rbacv1.ClusterRoleList] {
			return c.ClusterRoles()
		},
		items: func(l *rbacv1.ClusterRoleList) []rbacv1.ClusterRole {
			return l.Items
		},
	}
	ClusterRoleBindingKind = Kind[rbacv1.ClusterRoleBinding, rbacv1.ClusterRoleBindingList]{
		name: "ClusterRoleBinding", resource: "clusterrolebindings",
		bind: func(c *Client, _ string) ResourceClient[rbacv1.ClusterRoleBinding, rbacv1.ClusterRoleBindingList] {
			return c.ClusterRoleBindings()
		},
		items: func(l *rbacv1.ClusterRoleBindingList) []rbacv1.ClusterRoleBinding {
			return l.Items
		},
	}
	StorageClassKind = Kind[storagev1.StorageClass, storagev1.StorageClassList]{
		name: "StorageClass", resource: "storageclasses",
		bind: func(c *Client, _ string) ResourceClient[storagev1.StorageClass, storagev1.StorageClassList] {
			return c.StorageClasses()
		},
		items: func(l *storagev1.StorageClassList) []storagev1.StorageClass {
			return l.Items
		},
	}
	CustomResourceDefinitionKind = Kind[apiextensionsv1.CustomResourceDefinition, apiextensionsv1.CustomResourceDefinitionList]{
		name: "CustomResourceDefinition", resource: "customresourcedefinitions",
		bind: func(c *Client, _ string) ResourceClient[apiextensionsv1.CustomResourceDefinition, apiextensionsv1.CustomResourceDefinitionList] {
			return c.CustomResourceDefinitions()
		},
		items: func(l *apiextensionsv1.CustomResourceDefinitionList) []apiextensionsv1.CustomResourceDefinition {
			return l.Items
		},
	}
	APIServiceKind = Kind[apiregistrationv1.APIService, apiregistrationv1.APIServiceList]{
		name: "APIService", resource: "apiservices",
		bind: func(c *Client, _ string) ResourceClient[apiregistrationv1.APIService, apiregistrationv1.APIServiceList] {
			return c.APIServices()
		},
		items: func(l *apiregistrationv1.APIServiceList) []apiregistrationv1.APIService {
			return l.Items
		},
	}
)
