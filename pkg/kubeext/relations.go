package kubeext

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
)

// GetPodsByDeploymentName returns the pods selected by the named deployment.
// The bool is false when the deployment does not exist.
func (c *Client) GetPodsByDeploymentName(ctx context.Context, name string, ns Namespace) ([]corev1.Pod, bool, error) {
	deployment, err := c.GetDeploymentOpt(ctx, name, ns)
	if err != nil || deployment == nil {
		return nil, false, err
	}

	pods, err := c.GetPodsByDeployment(ctx, deployment)
	if err != nil {
		return nil, false, err
	}
	return pods, true, nil
}

// GetPodsByDeployment lists the pods in the deployment's namespace that match
// its spec.selector. Pods belong to the deployment's ReplicaSets, so the
// selector is used rather than owner references. A missing or empty selector
// selects nothing.
func (c *Client) GetPodsByDeployment(ctx context.Context, deployment *appsv1.Deployment) ([]corev1.Pod, error) {
	if deployment.Spec.Selector == nil {
		return []corev1.Pod{}, nil
	}
	selector, err := metav1.LabelSelectorAsSelector(deployment.Spec.Selector)
	if err != nil {
		return nil, err
	}
	if selector.Empty() {
		return []corev1.Pod{}, nil
	}

	return ListWith(ctx, c, PodKind, namespaceOf(deployment), LabelParams(selector.String()))
}

// GetPodsByStatefulSetName returns the pods of the named statefulset's current
// revision. The bool is false when the statefulset does not exist.
func (c *Client) GetPodsByStatefulSetName(ctx context.Context, name string, ns Namespace) ([]corev1.Pod, bool, error) {
	statefulSet, err := c.GetStatefulSetOpt(ctx, name, ns)
	if err != nil || statefulSet == nil {
		return nil, false, err
	}

	pods, err := c.GetPodsByStatefulSet(ctx, statefulSet)
	if err != nil {
		return nil, false, err
	}
	return pods, true, nil
}

// GetPodsByStatefulSet lists the pods labelled with the statefulset's current
// controller revision. A statefulset without a current revision has no pods.
func (c *Client) GetPodsByStatefulSet(ctx context.Context, statefulSet *appsv1.StatefulSet) ([]corev1.Pod, error) {
	revision := statefulSet.Status.CurrentRevision
	if revision == "" {
		return []corev1.Pod{}, nil
	}

	selector := labels.Set{appsv1.ControllerRevisionHashLabelKey: revision}.String()
	return ListWith(ctx, c, PodKind, namespaceOf(statefulSet), LabelParams(selector))
}

// GetOwner follows the first owner reference of child whose kind matches owner
// and fetches that object from child's namespace. It returns nil, nil when no
// reference matches and also when the referenced owner no longer exists; the
// two cases are not distinguished.
func GetOwner[T, L any](ctx context.Context, c *Client, owner Kind[T, L], child metav1.Object) (*T, error) {
	for _, ref := range child.GetOwnerReferences() {
		if ref.Kind == owner.name {
			return GetOpt(ctx, c, owner, ref.Name, namespaceOf(child))
		}
	}
	return nil, nil
}

// GetController is GetOwner restricted to the controller reference of child.
func GetController[T, L any](ctx context.Context, c *Client, owner Kind[T, L], child metav1.Object) (*T, error) {
	ref := metav1.GetControllerOfNoCopy(child)
	if ref == nil || ref.Kind != owner.name {
		return nil, nil
	}
	return GetOpt(ctx, c, owner, ref.Name, namespaceOf(child))
}

// IsControlledBy reports whether owner is the controller of child.
func IsControlledBy(child, owner metav1.Object) bool {
	ref := metav1.GetControllerOfNoCopy(child)
	return ref != nil && ref.UID == owner.GetUID()
}

// ListControlledBy lists objects of kind in owner's namespace and keeps those
// whose controller is owner.
func ListControlledBy[T, L any, PT interface {
	*T
	metav1.Object
}](ctx context.Context, c *Client, kind Kind[T, L], owner metav1.Object) ([]T, error) {
	items, err := List(ctx, c, kind, namespaceOf(owner))
	if err != nil {
		return nil, err
	}

	owned := make([]T, 0, len(items))
	for i := range items {
		if IsControlledBy(PT(&items[i]), owner) {
			owned = append(owned, items[i])
		}
	}
	return owned, nil
}

// namespaceOf maps an object's namespace to a Namespace, treating an empty
// namespace as the client default.
func namespaceOf(obj metav1.Object) Namespace {
	if ns := obj.GetNamespace(); ns != "" {
		return In(ns)
	}
	return Default()
}
