package kubeext

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ErrAllNamespaces is returned when AllNamespaces is passed to a call that
// addresses a single object of a namespaced kind.
var ErrAllNamespaces = errors.New("all namespaces selector is only valid for list calls")

// singleObject rejects AllNamespaces for single-object calls on namespaced kinds.
func singleObject(kind KindInfo, ns Namespace) error {
	if kind.Namespaced() && ns.spansAll() {
		return fmt.Errorf("%s: %w", kind.Name(), ErrAllNamespaces)
	}
	return nil
}

// Outcome is the successful result of a mutating call passed through NotFoundOK.
type Outcome struct {
	// AlreadyAbsent is set when the server reported the object as not found.
	AlreadyAbsent bool
	// Status is the server's status for the not-found response.
	Status metav1.Status
}

// NotFoundOK turns a not-found error from a delete or patch into a successful
// Outcome marked AlreadyAbsent. A nil error yields an empty Outcome, every
// other error is returned unchanged.
//
//	outcome, err := kubeext.NotFoundOK(c.Namespaces().Delete(ctx, "scratch", kubeext.DeleteParams()))
func NotFoundOK(err error) (Outcome, error) {
	if err == nil {
		return Outcome{}, nil
	}
	if !apierrors.IsNotFound(err) {
		return Outcome{}, err
	}

	outcome := Outcome{AlreadyAbsent: true}
	var status apierrors.APIStatus
	if errors.As(err, &status) {
		outcome.Status = status.Status()
	} else {
		outcome.Status = metav1.Status{
			Status:  metav1.StatusFailure,
			Reason:  metav1.StatusReasonNotFound,
			Message: err.Error(),
			Code:    404,
		}
	}
	return outcome, nil
}

// IgnoreNotFound returns nil for not-found errors and err otherwise.
func IgnoreNotFound(err error) error {
	if apierrors.IsNotFound(err) {
		return nil
	}
	return err
}
