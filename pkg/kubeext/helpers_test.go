package kubeext

import (
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	k8sfake "k8s.io/client-go/kubernetes/fake"
	"k8s.io/utils/ptr"
)

const testNamespace = "team-a"

func newTestClient(t *testing.T, objects ...runtime.Object) (*Client, *k8sfake.Clientset) {
	t.Helper()
	clientset := k8sfake.NewSimpleClientset(objects...)
	return New(clientset, WithDefaultNamespace(testNamespace)), clientset
}

func newPod(name, namespace string, labels map[string]string, owners ...metav1.OwnerReference) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:            name,
			Namespace:       namespace,
			Labels:          labels,
			OwnerReferences: owners,
		},
	}
}

func newDeployment(name, namespace string, matchLabels map[string]string) *appsv1.Deployment {
	deployment := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			UID:       types.UID(name + "-uid"),
		},
	}
	if matchLabels != nil {
		deployment.Spec.Selector = &metav1.LabelSelector{MatchLabels: matchLabels}
	}
	return deployment
}

func newSecret(name, namespace string) *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}
}

func ownerRef(kind, name string, controller bool) metav1.OwnerReference {
	return metav1.OwnerReference{
		APIVersion: "apps/v1",
		Kind:       kind,
		Name:       name,
		UID:        types.UID(name + "-uid"),
		Controller: ptr.To(controller),
	}
}
