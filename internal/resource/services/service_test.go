package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apiextensionsfake "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset/fake"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	k8sfake "k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	"k8s.io/utils/ptr"

	"github.com/dcm-project/kube-client-ext/internal/k8s"
	"github.com/dcm-project/kube-client-ext/internal/resource/models"
	"github.com/dcm-project/kube-client-ext/pkg/kubeext"
)

const (
	testNamespace    = "team-a"
	testFieldManager = "kube-client-ext-test"
)

func controllerRef(kind, name string) metav1.OwnerReference {
	return metav1.OwnerReference{
		APIVersion: "apps/v1",
		Kind:       kind,
		Name:       name,
		UID:        types.UID(name + "-uid"),
		Controller: ptr.To(true),
	}
}

func testObjects() []runtime.Object {
	pod := func(name string, labels map[string]string, owners ...metav1.OwnerReference) *corev1.Pod {
		return &corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: testNamespace, Labels: labels, OwnerReferences: owners},
			Spec:       corev1.PodSpec{NodeName: "worker-1"},
			Status:     corev1.PodStatus{Phase: corev1.PodRunning},
		}
	}

	return []runtime.Object{
		&appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: testNamespace, UID: "web-uid"},
			Spec: appsv1.DeploymentSpec{
				Selector: &metav1.LabelSelector{MatchLabels: map[string]string{"app": "web"}},
			},
		},
		&appsv1.ReplicaSet{
			ObjectMeta: metav1.ObjectMeta{
				Name:            "web-7d9",
				Namespace:       testNamespace,
				UID:             "web-7d9-uid",
				OwnerReferences: []metav1.OwnerReference{controllerRef("Deployment", "web")},
			},
		},
		&appsv1.StatefulSet{
			ObjectMeta: metav1.ObjectMeta{Name: "db", Namespace: testNamespace, UID: "db-uid"},
			Status:     appsv1.StatefulSetStatus{CurrentRevision: "db-rev1"},
		},
		pod("web-7d9-a", map[string]string{"app": "web"}, controllerRef("ReplicaSet", "web-7d9")),
		pod("web-7d9-b", map[string]string{"app": "web"}, controllerRef("ReplicaSet", "web-7d9")),
		pod("db-0", map[string]string{"app": "db", appsv1.ControllerRevisionHashLabelKey: "db-rev1"}, controllerRef("StatefulSet", "db")),
		pod("db-1", map[string]string{"app": "db", appsv1.ControllerRevisionHashLabelKey: "db-rev0"}, controllerRef("StatefulSet", "db")),
		pod("orphan", nil),
		pod("dangling", nil, controllerRef("ReplicaSet", "gone")),
		&corev1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "creds", Namespace: testNamespace}},
		&corev1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "creds", Namespace: "team-b"}},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "settings", Namespace: testNamespace},
			Data:       map[string]string{"mode": "slow"},
		},
		&corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "worker-1"}},
	}
}

func newTestService(t *testing.T, opts ...kubeext.Option) (*ResourceService, *k8sfake.Clientset) {
	t.Helper()
	clientset := k8sfake.NewSimpleClientset(testObjects()...)
	opts = append([]kubeext.Option{kubeext.WithDefaultNamespace(testNamespace)}, opts...)
	client := k8s.NewClientFromExt(kubeext.New(clientset, opts...), zap.NewNop())
	return NewResourceService(client, testFieldManager, zap.NewNop()), clientset
}

func TestKinds(t *testing.T) {
	t.Run("built-in kinds only", func(t *testing.T) {
		service, _ := newTestService(t)

		kinds := service.Kinds()

		assert.Contains(t, kinds, models.KindInfo{Name: "Deployment", Resource: "deployments", Namespaced: true})
		assert.Contains(t, kinds, models.KindInfo{Name: "Node", Resource: "nodes", Namespaced: false})
		assert.NotContains(t, kinds, models.KindInfo{Name: "CustomResourceDefinition", Resource: "customresourcedefinitions", Namespaced: false})
		assert.IsIncreasing(t, kindNames(kinds))
	})

	t.Run("optional kinds follow configured clients", func(t *testing.T) {
		service, _ := newTestService(t, kubeext.WithAPIExtensions(apiextensionsfake.NewSimpleClientset()))

		assert.Contains(t, service.Kinds(), models.KindInfo{Name: "CustomResourceDefinition", Resource: "customresourcedefinitions", Namespaced: false})
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		service, _ := newTestService(t)

		kinds := service.Kinds()
		kinds[0].Name = "Mutated"

		assert.NotEqual(t, "Mutated", service.Kinds()[0].Name)
	})
}

func kindNames(kinds []models.KindInfo) []string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.Name)
	}
	return names
}

func TestListResources(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name              string
		kind              string
		namespace         string
		expectedKind      string
		expectedNamespace string
		expectedCount     int
	}{
		{name: "default namespace", kind: "secrets", expectedKind: "Secret", expectedNamespace: testNamespace, expectedCount: 1},
		{name: "explicit namespace", kind: "Secret", namespace: "team-b", expectedKind: "Secret", expectedNamespace: "team-b", expectedCount: 1},
		{name: "all namespaces", kind: "secret", namespace: models.AllNamespaces, expectedKind: "Secret", expectedCount: 2},
		{name: "empty namespace", kind: "pods", namespace: "team-c", expectedKind: "Pod", expectedNamespace: "team-c", expectedCount: 0},
		{name: "cluster scoped", kind: "nodes", namespace: "ignored", expectedKind: "Node", expectedCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(t)

			response, err := service.ListResources(ctx, tt.kind, tt.namespace)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedKind, response.Kind)
			assert.Equal(t, tt.expectedNamespace, response.Namespace)
			assert.Equal(t, tt.expectedCount, response.Count)
			assert.Len(t, response.Items, tt.expectedCount)
			assert.NotNil(t, response.Items)
		})
	}
}

func TestListResourcesErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown kind", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.ListResources(ctx, "widgets", "")

		assert.True(t, models.IsUnknownKindError(err))
	})

	t.Run("api error is wrapped", func(t *testing.T) {
		service, clientset := newTestService(t)
		boom := errors.New("etcd unavailable")
		clientset.PrependReactor("list", "secrets", func(k8stesting.Action) (bool, runtime.Object, error) {
			return true, nil, boom
		})

		_, err := service.ListResources(ctx, "secrets", "")

		assert.ErrorIs(t, err, boom)
		assert.False(t, models.IsNotFoundError(err))
	})
}

func TestGetResource(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	t.Run("namespaced object", func(t *testing.T) {
		response, err := service.GetResource(ctx, "deployments", "web", "")

		require.NoError(t, err)
		assert.Equal(t, "Deployment", response.Kind)
		assert.Equal(t, testNamespace, response.Namespace)
		deployment, ok := response.Object.(*appsv1.Deployment)
		require.True(t, ok)
		assert.Equal(t, "web", deployment.Name)
	})

	t.Run("cluster scoped object", func(t *testing.T) {
		response, err := service.GetResource(ctx, "Node", "worker-1", testNamespace)

		require.NoError(t, err)
		assert.Empty(t, response.Namespace)
		assert.IsType(t, &corev1.Node{}, response.Object)
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := service.GetResource(ctx, "secrets", "missing", "team-b")

		require.Error(t, err)
		assert.True(t, models.IsNotFoundError(err))
		assert.Equal(t, "Secret missing not found in namespace team-b", err.Error())
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := service.GetResource(ctx, "widgets", "web", "")

		assert.True(t, models.IsValidationError(err))
	})
}

func TestDeleteResource(t *testing.T) {
	ctx := context.Background()

	t.Run("delete is idempotent", func(t *testing.T) {
		service, _ := newTestService(t)

		first, err := service.DeleteResource(ctx, "secrets", "creds", "", models.PropagationDefault)
		require.NoError(t, err)
		assert.False(t, first.AlreadyAbsent)
		assert.Equal(t, testNamespace, first.Namespace)

		second, err := service.DeleteResource(ctx, "secrets", "creds", "", models.PropagationDefault)
		require.NoError(t, err)
		assert.True(t, second.AlreadyAbsent)
		assert.NotEmpty(t, second.Message)

		_, err = service.GetResource(ctx, "secrets", "creds", "team-b")
		assert.NoError(t, err, "other namespaces are untouched")
	})

	t.Run("propagation selects delete options", func(t *testing.T) {
		tests := []struct {
			propagation models.Propagation
			expected    metav1.DeleteOptions
		}{
			{propagation: models.PropagationDefault, expected: kubeext.DeleteParams()},
			{propagation: models.PropagationForeground, expected: kubeext.ForegroundDelete()},
			{propagation: models.PropagationBackground, expected: kubeext.BackgroundDelete()},
		}

		for _, tt := range tests {
			service, clientset := newTestService(t)

			_, err := service.DeleteResource(ctx, "deployments", "web", "", tt.propagation)
			require.NoError(t, err)

			var deleteAction k8stesting.DeleteAction
			for _, action := range clientset.Actions() {
				if a, ok := action.(k8stesting.DeleteAction); ok {
					deleteAction = a
				}
			}
			require.NotNil(t, deleteAction)
			assert.Equal(t, tt.expected, deleteAction.GetDeleteOptions(), "propagation %q", tt.propagation)
		}
	})

	t.Run("forbidden is an error", func(t *testing.T) {
		service, clientset := newTestService(t)
		clientset.PrependReactor("delete", "secrets", func(k8stesting.Action) (bool, runtime.Object, error) {
			return true, nil, errors.New("forbidden")
		})

		_, err := service.DeleteResource(ctx, "secrets", "creds", "", models.PropagationDefault)

		assert.ErrorContains(t, err, "forbidden")
	})
}

func TestApplyResource(t *testing.T) {
	ctx := context.Background()
	manifest := []byte(`{"apiVersion":"v1","kind":"ConfigMap","metadata":{"name":"settings"},"data":{"mode":"fast"}}`)

	t.Run("applies on behalf of the field manager", func(t *testing.T) {
		service, clientset := newTestService(t)

		response, err := service.ApplyResource(ctx, "configmaps", "settings", "", manifest)

		require.NoError(t, err)
		assert.Equal(t, "ConfigMap", response.Kind)
		assert.Equal(t, "settings", response.Name)
		assert.Equal(t, testNamespace, response.Namespace)
		applied, ok := response.Object.(*corev1.ConfigMap)
		require.True(t, ok)
		assert.Equal(t, "fast", applied.Data["mode"])

		var patch k8stesting.PatchActionImpl
		for _, action := range clientset.Actions() {
			if a, ok := action.(k8stesting.PatchActionImpl); ok {
				patch = a
			}
		}
		assert.Equal(t, types.ApplyPatchType, patch.GetPatchType())
		assert.Equal(t, testNamespace, patch.GetNamespace())
		assert.Equal(t, testFieldManager, patch.GetPatchOptions().FieldManager)
		require.NotNil(t, patch.GetPatchOptions().Force)
		assert.True(t, *patch.GetPatchOptions().Force)
	})

	t.Run("yaml manifest", func(t *testing.T) {
		service, _ := newTestService(t)
		yamlManifest := []byte("apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: settings\n  namespace: team-a\ndata:\n  mode: fast\n")

		response, err := service.ApplyResource(ctx, "ConfigMap", "settings", testNamespace, yamlManifest)

		require.NoError(t, err)
		assert.Equal(t, "fast", response.Object.(*corev1.ConfigMap).Data["mode"])
	})

	t.Run("invalid manifests are rejected before any request", func(t *testing.T) {
		tests := []struct {
			name     string
			manifest string
			expected string
		}{
			{name: "empty", manifest: "  ", expected: "invalid manifest: body is empty"},
			{name: "not an object", manifest: "[1, 2]", expected: "invalid manifest"},
			{name: "name mismatch", manifest: `{"metadata":{"name":"other"}}`, expected: `invalid manifest: metadata.name "other" does not match "settings"`},
			{name: "namespace mismatch", manifest: `{"metadata":{"name":"settings","namespace":"team-b"}}`, expected: `invalid manifest: metadata.namespace "team-b" does not match "team-a"`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service, clientset := newTestService(t)

				_, err := service.ApplyResource(ctx, "configmaps", "settings", "", []byte(tt.manifest))

				require.Error(t, err)
				assert.True(t, models.IsValidationError(err))
				assert.Contains(t, err.Error(), tt.expected)
				assert.Empty(t, clientset.Actions())
			})
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.ApplyResource(ctx, "widgets", "settings", "", manifest)

		assert.True(t, models.IsUnknownKindError(err))
	})

	t.Run("server errors are wrapped", func(t *testing.T) {
		service, clientset := newTestService(t)
		clientset.PrependReactor("patch", "configmaps", func(k8stesting.Action) (bool, runtime.Object, error) {
			return true, nil, errors.New("conflict")
		})

		_, err := service.ApplyResource(ctx, "configmaps", "settings", "", manifest)

		assert.EqualError(t, err, "failed to apply ConfigMap settings: conflict")
		assert.False(t, models.IsValidationError(err))
	})
}

func TestGetDeploymentPods(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	t.Run("selected pods", func(t *testing.T) {
		response, err := service.GetDeploymentPods(ctx, "", "web")

		require.NoError(t, err)
		assert.Equal(t, models.ObjectRef{Kind: "Deployment", Name: "web", Namespace: testNamespace}, response.Owner)
		assert.Equal(t, 2, response.Count)
		names := []string{response.Pods[0].Name, response.Pods[1].Name}
		assert.ElementsMatch(t, []string{"web-7d9-a", "web-7d9-b"}, names)
		assert.Equal(t, "Running", response.Pods[0].Phase)
		assert.Equal(t, "worker-1", response.Pods[0].Node)
		assert.Equal(t, &models.ObjectRef{Kind: "ReplicaSet", Name: "web-7d9", Namespace: testNamespace}, response.Pods[0].Controller)
	})

	t.Run("missing deployment", func(t *testing.T) {
		_, err := service.GetDeploymentPods(ctx, "team-b", "web")

		assert.True(t, models.IsNotFoundError(err))
		assert.Equal(t, "Deployment web not found in namespace team-b", err.Error())
	})
}

func TestGetStatefulSetPods(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	response, err := service.GetStatefulSetPods(ctx, testNamespace, "db")

	require.NoError(t, err)
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "db-0", response.Pods[0].Name)

	_, err = service.GetStatefulSetPods(ctx, testNamespace, "missing")
	assert.True(t, models.IsNotFoundError(err))
}

func TestGetPodOwner(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	t.Run("replicaset owner", func(t *testing.T) {
		response, err := service.GetPodOwner(ctx, "", "web-7d9-a", "ReplicaSet")

		require.NoError(t, err)
		assert.Equal(t, models.ObjectRef{Kind: "Pod", Name: "web-7d9-a", Namespace: testNamespace}, response.Pod)
		assert.Equal(t, models.ObjectRef{Kind: "ReplicaSet", Name: "web-7d9", Namespace: testNamespace}, response.Owner)
		assert.IsType(t, &appsv1.ReplicaSet{}, response.Object)
	})

	t.Run("no owner of that kind and dangling owner look alike", func(t *testing.T) {
		_, orphanErr := service.GetPodOwner(ctx, "", "orphan", "replicasets")
		_, danglingErr := service.GetPodOwner(ctx, "", "dangling", "replicasets")

		assert.True(t, models.IsOwnerNotFoundError(orphanErr))
		assert.True(t, models.IsOwnerNotFoundError(danglingErr))
	})

	t.Run("owner of another kind", func(t *testing.T) {
		_, err := service.GetPodOwner(ctx, "", "db-0", "ReplicaSet")

		assert.True(t, models.IsOwnerNotFoundError(err))
	})

	t.Run("missing pod", func(t *testing.T) {
		_, err := service.GetPodOwner(ctx, "", "missing", "ReplicaSet")

		assert.True(t, models.IsNotFoundError(err))
		assert.False(t, models.IsOwnerNotFoundError(err))
	})

	t.Run("unknown owner kind", func(t *testing.T) {
		_, err := service.GetPodOwner(ctx, "", "web-7d9-a", "Widget")

		assert.True(t, models.IsUnknownKindError(err))
	})
}

func TestResourceServiceHealthCheck(t *testing.T) {
	service, clientset := newTestService(t)
	assert.NoError(t, service.HealthCheck(context.Background()))

	clientset.PrependReactor("get", "version", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("connection refused")
	})
	assert.Error(t, service.HealthCheck(context.Background()))
}
