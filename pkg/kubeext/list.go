package kubeext

import (
	"context"

	"go.uber.org/zap"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// List returns every object of kind in ns, in server order.
func List[T, L any](ctx context.Context, c *Client, kind Kind[T, L], ns Namespace) ([]T, error) {
	return ListWith(ctx, c, kind, ns, ListParams())
}

// ListWith is List with caller supplied list options.
func ListWith[T, L any](ctx context.Context, c *Client, kind Kind[T, L], ns Namespace, opts metav1.ListOptions) ([]T, error) {
	c.logger.Debug("Listing resources",
		zap.String("kind", kind.name),
		zap.String("namespace", kind.namespaceOn(c, ns)),
		zap.String("labelSelector", opts.LabelSelector),
	)

	list, err := kind.Client(c, ns).List(ctx, opts)
	if err != nil {
		return nil, err
	}

	items := kind.items(list)
	if items == nil {
		items = []T{}
	}
	return items, nil
}
