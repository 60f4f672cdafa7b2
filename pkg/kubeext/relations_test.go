package kubeext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	k8stesting "k8s.io/client-go/testing"
)

func podNames(pods []corev1.Pod) []string {
	names := make([]string, 0, len(pods))
	for _, pod := range pods {
		names = append(names, pod.Name)
	}
	return names
}

func TestGetPodsByDeploymentName(t *testing.T) {
	c, _ := newTestClient(t,
		newDeployment("web", testNamespace, map[string]string{"app": "web"}),
		newPod("web-1", testNamespace, map[string]string{"app": "web", "pod-template-hash": "abc"}),
		newPod("web-2", testNamespace, map[string]string{"app": "web", "pod-template-hash": "def"}),
		newPod("db-1", testNamespace, map[string]string{"app": "db"}),
		newPod("web-other", "other", map[string]string{"app": "web"}),
	)

	pods, found, err := c.GetPodsByDeploymentName(context.Background(), "web", Default())

	require.NoError(t, err)
	assert.True(t, found)
	assert.ElementsMatch(t, []string{"web-1", "web-2"}, podNames(pods))
}

func TestGetPodsByDeploymentNameMissing(t *testing.T) {
	c, _ := newTestClient(t, newPod("web-1", testNamespace, map[string]string{"app": "web"}))

	pods, found, err := c.GetPodsByDeploymentName(context.Background(), "web", Default())

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, pods)
}

func TestGetPodsByDeploymentNamePropagatesErrors(t *testing.T) {
	c, clientset := newTestClient(t)
	boom := errors.New("unauthorized")
	clientset.PrependReactor("get", "deployments", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, boom
	})

	_, found, err := c.GetPodsByDeploymentName(context.Background(), "web", Default())

	assert.False(t, found)
	assert.Same(t, boom, err)
}

func TestGetPodsByDeployment(t *testing.T) {
	tests := []struct {
		name       string
		deployment *appsv1.Deployment
		expected   []string
	}{
		{
			name:       "match labels",
			deployment: newDeployment("web", "shop", map[string]string{"app": "web"}),
			expected:   []string{"web-1"},
		},
		{
			name: "match expressions",
			deployment: &appsv1.Deployment{
				ObjectMeta: metav1.ObjectMeta{Name: "any", Namespace: "shop"},
				Spec: appsv1.DeploymentSpec{
					Selector: &metav1.LabelSelector{
						MatchExpressions: []metav1.LabelSelectorRequirement{
							{Key: "app", Operator: metav1.LabelSelectorOpIn, Values: []string{"web", "db"}},
						},
					},
				},
			},
			expected: []string{"web-1", "db-1"},
		},
		{
			name:       "nil selector selects nothing",
			deployment: newDeployment("web", "shop", nil),
			expected:   []string{},
		},
		{
			name: "empty selector selects nothing",
			deployment: &appsv1.Deployment{
				ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "shop"},
				Spec:       appsv1.DeploymentSpec{Selector: &metav1.LabelSelector{}},
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t,
				newPod("web-1", "shop", map[string]string{"app": "web"}),
				newPod("db-1", "shop", map[string]string{"app": "db"}),
				newPod("cache-1", "shop", map[string]string{"app": "cache"}),
			)

			pods, err := c.GetPodsByDeployment(context.Background(), tt.deployment)

			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, podNames(pods))
		})
	}
}

func TestGetPodsByStatefulSet(t *testing.T) {
	statefulSet := &appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{Name: "db", Namespace: testNamespace},
		Status:     appsv1.StatefulSetStatus{CurrentRevision: "db-7d9f"},
	}
	c, _ := newTestClient(t,
		statefulSet,
		newPod("db-0", testNamespace, map[string]string{appsv1.ControllerRevisionHashLabelKey: "db-7d9f"}),
		newPod("db-1", testNamespace, map[string]string{appsv1.ControllerRevisionHashLabelKey: "db-7d9f"}),
		newPod("db-2", testNamespace, map[string]string{appsv1.ControllerRevisionHashLabelKey: "db-5c1a"}),
	)
	ctx := context.Background()

	pods, found, err := c.GetPodsByStatefulSetName(ctx, "db", Default())
	require.NoError(t, err)
	assert.True(t, found)
	assert.ElementsMatch(t, []string{"db-0", "db-1"}, podNames(pods))

	_, found, err = c.GetPodsByStatefulSetName(ctx, "missing", Default())
	assert.NoError(t, err)
	assert.False(t, found)

	noRevision := statefulSet.DeepCopy()
	noRevision.Status.CurrentRevision = ""
	pods, err = c.GetPodsByStatefulSet(ctx, noRevision)
	require.NoError(t, err)
	assert.Empty(t, pods)
}

func TestGetOwner(t *testing.T) {
	deployment := newDeployment("web", testNamespace, map[string]string{"app": "web"})
	replicaSet := &appsv1.ReplicaSet{
		ObjectMeta: metav1.ObjectMeta{
			Name:            "web-abc",
			Namespace:       testNamespace,
			UID:             "web-abc-uid",
			OwnerReferences: []metav1.OwnerReference{ownerRef("Deployment", "web", true)},
		},
	}
	c, _ := newTestClient(t, deployment, replicaSet)
	ctx := context.Background()

	t.Run("matching reference", func(t *testing.T) {
		owner, err := GetOwner(ctx, c, DeploymentKind, replicaSet)
		require.NoError(t, err)
		require.NotNil(t, owner)
		assert.Equal(t, "web", owner.Name)
		assert.Equal(t, testNamespace, owner.Namespace)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		owner, err := GetOwner(ctx, c, StatefulSetKind, replicaSet)
		assert.NoError(t, err)
		assert.Nil(t, owner)
	})

	t.Run("first matching reference wins", func(t *testing.T) {
		pod := newPod("web-abc-1", testNamespace, nil,
			ownerRef("ReplicaSet", "gone", false),
			ownerRef("ReplicaSet", "web-abc", true),
		)
		owner, err := GetOwner(ctx, c, ReplicaSetKind, pod)
		assert.NoError(t, err)
		assert.Nil(t, owner)
	})
}

func TestGetOwnerMissingAndDanglingLookAlike(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	noReference := newPod("orphan", testNamespace, nil)
	dangling := newPod("stale", testNamespace, nil, ownerRef("Deployment", "deleted", true))

	withoutRef, errWithout := GetOwner(ctx, c, DeploymentKind, noReference)
	withDangling, errDangling := GetOwner(ctx, c, DeploymentKind, dangling)

	assert.NoError(t, errWithout)
	assert.NoError(t, errDangling)
	assert.Nil(t, withoutRef)
	assert.Nil(t, withDangling)
	assert.Equal(t, withoutRef, withDangling)
}

func TestGetOwnerClusterScoped(t *testing.T) {
	node := &corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "node-1"}}
	c, _ := newTestClient(t, node)
	mirror := newPod("kube-apiserver-node-1", "kube-system", nil, metav1.OwnerReference{
		APIVersion: "v1",
		Kind:       "Node",
		Name:       "node-1",
	})

	owner, err := GetOwner(context.Background(), c, NodeKind, mirror)

	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, "node-1", owner.Name)
}

func TestGetController(t *testing.T) {
	c, _ := newTestClient(t,
		newDeployment("web", testNamespace, nil),
		newDeployment("sidecar", testNamespace, nil),
	)
	ctx := context.Background()

	child := &appsv1.ReplicaSet{ObjectMeta: metav1.ObjectMeta{
		Name:      "web-abc",
		Namespace: testNamespace,
		OwnerReferences: []metav1.OwnerReference{
			ownerRef("Deployment", "sidecar", false),
			ownerRef("Deployment", "web", true),
		},
	}}

	controller, err := GetController(ctx, c, DeploymentKind, child)
	require.NoError(t, err)
	require.NotNil(t, controller)
	assert.Equal(t, "web", controller.Name)

	owner, err := GetOwner(ctx, c, DeploymentKind, child)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, "sidecar", owner.Name)

	none, err := GetController(ctx, c, StatefulSetKind, child)
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestListControlledBy(t *testing.T) {
	deployment := newDeployment("web", testNamespace, map[string]string{"app": "web"})
	owned := &appsv1.ReplicaSet{ObjectMeta: metav1.ObjectMeta{
		Name: "web-abc", Namespace: testNamespace,
		OwnerReferences: []metav1.OwnerReference{ownerRef("Deployment", "web", true)},
	}}
	adopted := &appsv1.ReplicaSet{ObjectMeta: metav1.ObjectMeta{
		Name: "web-old", Namespace: testNamespace,
		OwnerReferences: []metav1.OwnerReference{ownerRef("Deployment", "web", false)},
	}}
	foreign := &appsv1.ReplicaSet{ObjectMeta: metav1.ObjectMeta{
		Name: "db-abc", Namespace: testNamespace,
		OwnerReferences: []metav1.OwnerReference{ownerRef("Deployment", "db", true)},
	}}
	c, _ := newTestClient(t, deployment, owned, adopted, foreign)

	replicaSets, err := ListControlledBy(context.Background(), c, ReplicaSetKind, deployment)

	require.NoError(t, err)
	require.Len(t, replicaSets, 1)
	assert.Equal(t, "web-abc", replicaSets[0].Name)
	assert.True(t, IsControlledBy(owned, deployment))
	assert.False(t, IsControlledBy(adopted, deployment))
}
