package kubeext

import (
	"context"

	"go.uber.org/zap"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Get fetches the named object. A missing object is reported through the
// client-go not-found error.
func Get[T, L any](ctx context.Context, c *Client, kind Kind[T, L], name string, ns Namespace) (*T, error) {
	if err := singleObject(kind, ns); err != nil {
		return nil, err
	}
	c.logger.Debug("Getting resource",
		zap.String("kind", kind.name),
		zap.String("name", name),
		zap.String("namespace", kind.namespaceOn(c, ns)),
	)

	obj, err := kind.Client(c, ns).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// GetOpt fetches the named object and returns nil, nil when it does not exist.
func GetOpt[T, L any](ctx context.Context, c *Client, kind Kind[T, L], name string, ns Namespace) (*T, error) {
	obj, err := Get(ctx, c, kind, name, ns)
	if apierrors.IsNotFound(err) {
		return nil, nil
	}
	return obj, err
}
