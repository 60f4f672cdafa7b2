package kubeext

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apiregistrationv1 "k8s.io/kube-aggregator/pkg/apis/apiregistration/v1"
)

// Typed shorthands over Get, GetOpt and List. The Opt variants return nil, nil
// when the object does not exist. Namespaced Get variants reject AllNamespaces.

// GetPodOpt returns the named pod in ns, or nil if it does not exist.
func (c *Client) GetPodOpt(ctx context.Context, name string, ns Namespace) (*corev1.Pod, error) {
	return GetOpt(ctx, c, PodKind, name, ns)
}

// GetPod returns the named pod in ns.
func (c *Client) GetPod(ctx context.Context, name string, ns Namespace) (*corev1.Pod, error) {
	return Get(ctx, c, PodKind, name, ns)
}

// ListPods lists the pods in ns.
func (c *Client) ListPods(ctx context.Context, ns Namespace) ([]corev1.Pod, error) {
	return List(ctx, c, PodKind, ns)
}

// GetDeploymentOpt returns the named deployment in ns, or nil if it does not exist.
func (c *Client) GetDeploymentOpt(ctx context.Context, name string, ns Namespace) (*appsv1.Deployment, error) {
	return GetOpt(ctx, c, DeploymentKind, name, ns)
}

// GetDeployment returns the named deployment in ns.
func (c *Client) GetDeployment(ctx context.Context, name string, ns Namespace) (*appsv1.Deployment, error) {
	return Get(ctx, c, DeploymentKind, name, ns)
}

// ListDeployments lists the deployments in ns.
func (c *Client) ListDeployments(ctx context.Context, ns Namespace) ([]appsv1.Deployment, error) {
	return List(ctx, c, DeploymentKind, ns)
}

// ListReplicaSets lists the replica sets in ns.
func (c *Client) ListReplicaSets(ctx context.Context, ns Namespace) ([]appsv1.ReplicaSet, error) {
	return List(ctx, c, ReplicaSetKind, ns)
}

// GetServiceOpt returns the named service in ns, or nil if it does not exist.
func (c *Client) GetServiceOpt(ctx context.Context, name string, ns Namespace) (*corev1.Service, error) {
	return GetOpt(ctx, c, ServiceKind, name, ns)
}

// GetService returns the named service in ns.
func (c *Client) GetService(ctx context.Context, name string, ns Namespace) (*corev1.Service, error) {
	return Get(ctx, c, ServiceKind, name, ns)
}

// ListServices lists the services in ns.
func (c *Client) ListServices(ctx context.Context, ns Namespace) ([]corev1.Service, error) {
	return List(ctx, c, ServiceKind, ns)
}

// GetSecretOpt returns the named secret in ns, or nil if it does not exist.
func (c *Client) GetSecretOpt(ctx context.Context, name string, ns Namespace) (*corev1.Secret, error) {
	return GetOpt(ctx, c, SecretKind, name, ns)
}

// GetSecret returns the named secret in ns.
func (c *Client) GetSecret(ctx context.Context, name string, ns Namespace) (*corev1.Secret, error) {
	return Get(ctx, c, SecretKind, name, ns)
}

// ListSecrets lists the secrets in ns.
func (c *Client) ListSecrets(ctx context.Context, ns Namespace) ([]corev1.Secret, error) {
	return List(ctx, c, SecretKind, ns)
}

// GetConfigMapOpt returns the named config map in ns, or nil if it does not exist.
func (c *Client) GetConfigMapOpt(ctx context.Context, name string, ns Namespace) (*corev1.ConfigMap, error) {
	return GetOpt(ctx, c, ConfigMapKind, name, ns)
}

// GetConfigMap returns the named config map in ns.
func (c *Client) GetConfigMap(ctx context.Context, name string, ns Namespace) (*corev1.ConfigMap, error) {
	return Get(ctx, c, ConfigMapKind, name, ns)
}

// ListConfigMaps lists the config maps in ns.
func (c *Client) ListConfigMaps(ctx context.Context, ns Namespace) ([]corev1.ConfigMap, error) {
	return List(ctx, c, ConfigMapKind, ns)
}

// GetJobOpt returns the named job in ns, or nil if it does not exist.
func (c *Client) GetJobOpt(ctx context.Context, name string, ns Namespace) (*batchv1.Job, error) {
	return GetOpt(ctx, c, JobKind, name, ns)
}

// GetJob returns the named job in ns.
func (c *Client) GetJob(ctx context.Context, name string, ns Namespace) (*batchv1.Job, error) {
	return Get(ctx, c, JobKind, name, ns)
}

// ListJobs lists the jobs in ns.
func (c *Client) ListJobs(ctx context.Context, ns Namespace) ([]batchv1.Job, error) {
	return List(ctx, c, JobKind, ns)
}

// ListCronJobs lists the cron jobs in ns.
func (c *Client) ListCronJobs(ctx context.Context, ns Namespace) ([]batchv1.CronJob, error) {
	return List(ctx, c, CronJobKind, ns)
}

// GetStatefulSetOpt returns the named stateful set in ns, or nil if it does not exist.
func (c *Client) GetStatefulSetOpt(ctx context.Context, name string, ns Namespace) (*appsv1.StatefulSet, error) {
	return GetOpt(ctx, c, StatefulSetKind, name, ns)
}

// GetStatefulSet returns the named stateful set in ns.
func (c *Client) GetStatefulSet(ctx context.Context, name string, ns Namespace) (*appsv1.StatefulSet, error) {
	return Get(ctx, c, StatefulSetKind, name, ns)
}

// ListStatefulSets lists the stateful sets in ns.
func (c *Client) ListStatefulSets(ctx context.Context, ns Namespace) ([]appsv1.StatefulSet, error) {
	return List(ctx, c, StatefulSetKind, ns)
}

// GetServiceAccountOpt returns the named service account in ns, or nil if it does not exist.
func (c *Client) GetServiceAccountOpt(ctx context.Context, name string, ns Namespace) (*corev1.ServiceAccount, error) {
	return GetOpt(ctx, c, ServiceAccountKind, name, ns)
}

// GetServiceAccount returns the named service account in ns.
func (c *Client) GetServiceAccount(ctx context.Context, name string, ns Namespace) (*corev1.ServiceAccount, error) {
	return Get(ctx, c, ServiceAccountKind, name, ns)
}

// ListServiceAccounts lists the service accounts in ns.
func (c *Client) ListServiceAccounts(ctx context.Context, ns Namespace) ([]corev1.ServiceAccount, error) {
	return List(ctx, c, ServiceAccountKind, ns)
}

// GetNodeOpt returns the named node, or nil if it does not exist.
func (c *Client) GetNodeOpt(ctx context.Context, name string) (*corev1.Node, error) {
	return GetOpt(ctx, c, NodeKind, name, Default())
}

// GetNode returns the named node.
func (c *Client) GetNode(ctx context.Context, name string) (*corev1.Node, error) {
	return Get(ctx, c, NodeKind, name, Default())
}

// ListNodes lists the nodes.
func (c *Client) ListNodes(ctx context.Context) ([]corev1.Node, error) {
	return List(ctx, c, NodeKind, Default())
}

// GetNamespaceOpt returns the named namespace, or nil if it does not exist.
func (c *Client) GetNamespaceOpt(ctx context.Context, name string) (*corev1.Namespace, error) {
	return GetOpt(ctx, c, NamespaceKind, name, Default())
}

// GetNamespace returns the named namespace.
func (c *Client) GetNamespace(ctx context.Context, name string) (*corev1.Namespace, error) {
	return Get(ctx, c, NamespaceKind, name, Default())
}

// ListNamespaces lists the namespaces.
func (c *Client) ListNamespaces(ctx context.Context) ([]corev1.Namespace, error) {
	return List(ctx, c, NamespaceKind, Default())
}

// GetClusterRoleOpt returns the named cluster role, or nil if it does not exist.
func (c *Client) GetClusterRoleOpt(ctx context.Context, name string) (*rbacv1.ClusterRole, error) {
	return GetOpt(ctx, c, ClusterRoleKind, name, Default())
}

// GetClusterRole returns the named cluster role.
func (c *Client) GetClusterRole(ctx context.Context, name string) (*rbacv1.ClusterRole, error) {
	return Get(ctx, c, ClusterRoleKind, name, Default())
}

// ListClusterRoles lists the cluster roles.
func (c *Client) ListClusterRoles(ctx context.Context) ([]rbacv1.ClusterRole, error) {
	return List(ctx, c, ClusterRoleKind, Default())
}

// GetCRDOpt returns the named custom resource definition, or nil if it does not exist.
func (c *Client) GetCRDOpt(ctx context.Context, name string) (*apiextensionsv1.CustomResourceDefinition, error) {
	return GetOpt(ctx, c, CustomResourceDefinitionKind, name, Default())
}

// GetCRD returns the named custom resource definition.
func (c *Client) GetCRD(ctx context.Context, name string) (*apiextensionsv1.CustomResourceDefinition, error) {
	return Get(ctx, c, CustomResourceDefinitionKind, name, Default())
}

// ListCRDs lists the custom resource definitions.
func (c *Client) ListCRDs(ctx context.Context) ([]apiextensionsv1.CustomResourceDefinition, error) {
	return List(ctx, c, CustomResourceDefinitionKind, Default())
}

// GetAPIServiceOpt returns the named API service, or nil if it does not exist.
func (c *Client) GetAPIServiceOpt(ctx context.Context, name string) (*apiregistrationv1.APIService, error) {
	return GetOpt(ctx, c, APIServiceKind, name, Default())
}

// GetAPIService returns the named API service.
func (c *Client) GetAPIService(ctx context.Context, name string) (*apiregistrationv1.APIService, error) {
	return Get(ctx, c, APIServiceKind, name, Default())
}
