package kubeext

import (
	"context"

	"go.uber.org/zap"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// Delete deletes the named object and treats an already missing object as
// success, marked AlreadyAbsent.
func Delete[T, L any](ctx context.Context, c *Client, kind Kind[T, L], name string, ns Namespace, opts metav1.DeleteOptions) (Outcome, error) {
	if err := singleObject(kind, ns); err != nil {
		return Outcome{}, err
	}
	c.logger.Debug("Deleting resource",
		zap.String("kind", kind.name),
		zap.String("name", name),
		zap.String("namespace", kind.namespaceOn(c, ns)),
	)
	return NotFoundOK(kind.Client(c, ns).Delete(ctx, name, opts))
}

// Create creates obj in ns on behalf of manager.
func Create[T, L any](ctx context.Context, c *Client, kind Kind[T, L], obj *T, ns Namespace, manager string) (*T, error) {
	if err := singleObject(kind, ns); err != nil {
		return nil, err
	}
	return kind.Client(c, ns).Create(ctx, obj, PostParamsWithManager(manager))
}

// Apply server-side applies data, a JSON or YAML manifest, to the named object
// on behalf of manager, forcing conflicts.
func Apply[T, L any](ctx context.Context, c *Client, kind Kind[T, L], name string, ns Namespace, data []byte, manager string) (*T, error) {
	if err := singleObject(kind, ns); err != nil {
		return nil, err
	}
	c.logger.Debug("Applying resource",
		zap.String("kind", kind.name),
		zap.String("name", name),
		zap.String("fieldManager", manager),
	)
	return kind.Client(c, ns).Patch(ctx, name, types.ApplyPatchType, data, PatchParamsWithManager(manager))
}
