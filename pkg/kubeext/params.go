package kubeext

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

// DeleteParams returns delete options with a zero grace period.
func DeleteParams() metav1.DeleteOptions {
	return metav1.DeleteOptions{
		GracePeriodSeconds: ptr.To[int64](0),
	}
}

// ForegroundDelete returns delete options that keep the object around until
// all of its dependents are gone.
func ForegroundDelete() metav1.DeleteOptions {
	return metav1.DeleteOptions{
		PropagationPolicy: ptr.To(metav1.DeletePropagationForeground),
	}
}

// BackgroundDelete returns delete options that remove the object at once and
// leave its dependents to the garbage collector.
func BackgroundDelete() metav1.DeleteOptions {
	return metav1.DeleteOptions{
		PropagationPolicy: ptr.To(metav1.DeletePropagationBackground),
	}
}

// PostParamsWithManager returns create options recording manager as the field manager.
// The manager must not be empty.
func PostParamsWithManager(manager string) metav1.CreateOptions {
	return metav1.CreateOptions{
		FieldManager: manager,
	}
}

// PatchParamsWithManager returns patch options recording manager as the field
// manager. Conflicts are forced so a server-side apply takes ownership of
// fields held by other managers.
func PatchParamsWithManager(manager string) metav1.PatchOptions {
	return metav1.PatchOptions{
		FieldManager: manager,
		Force:        ptr.To(true),
	}
}

// ListParams returns empty list options.
func ListParams() metav1.ListOptions {
	return metav1.ListOptions{}
}

// LabelParams returns list options filtered by a label selector such as "app=web,tier!=db".
func LabelParams(selector string) metav1.ListOptions {
	return metav1.ListOptions{
		LabelSelector: selector,
	}
}
