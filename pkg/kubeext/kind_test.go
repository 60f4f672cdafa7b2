package kubeext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindDescriptors(t *testing.T) {
	tests := []struct {
		kind       KindInfo
		name       string
		resource   string
		namespaced bool
	}{
		{PodKind, "Pod", "pods", true},
		{DeploymentKind, "Deployment", "deployments", true},
		{ReplicaSetKind, "ReplicaSet", "replicasets", true},
		{StatefulSetKind, "StatefulSet", "statefulsets", true},
		{DaemonSetKind, "DaemonSet", "daemonsets", true},
		{ServiceKind, "Service", "services", true},
		{SecretKind, "Secret", "secrets", true},
		{ConfigMapKind, "ConfigMap", "configmaps", true},
		{ServiceAccountKind, "ServiceAccount", "serviceaccounts", true},
		{JobKind, "Job", "jobs", true},
		{CronJobKind, "CronJob", "cronjobs", true},
		{RoleKind, "Role", "roles", true},
		{RoleBindingKind, "RoleBinding", "rolebindings", true},
		{PersistentVolumeClaimKind, "PersistentVolumeClaim", "persistentvolumeclaims", true},
		{HorizontalPodAutoscalerKind, "HorizontalPodAutoscaler", "horizontalpodautoscalers", true},
		{VirtualMachineKind, "VirtualMachine", "virtualmachines", true},
		{VirtualMachineInstanceKind, "VirtualMachineInstance", "virtualmachineinstances", true},
		{NodeKind, "Node", "nodes", false},
		{NamespaceKind, "Namespace", "namespaces", false},
		{PersistentVolumeKind, "PersistentVolume", "persistentvolumes", false},
		{ClusterRoleKind, "ClusterRole", "clusterroles", false},
		{ClusterRoleBindingKind, "ClusterRoleBinding", "clusterrolebindings", false},
		{StorageClassKind, "StorageClass", "storageclasses", false},
		{CustomResourceDefinitionKind, "CustomResourceDefinition", "customresourcedefinitions", false},
		{APIServiceKind, "APIService", "apiservices", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.Name())
			assert.Equal(t, tt.resource, tt.kind.Resource())
			assert.Equal(t, tt.namespaced, tt.kind.Namespaced())
		})
	}
}
