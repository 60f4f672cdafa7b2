package services

import (
	"context"
	"sort"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/dcm-project/kube-client-ext/internal/resource/models"
	"github.com/dcm-project/kube-client-ext/pkg/kubeext"
)

// kindHandle erases the type parameters of a kubeext.Kind so kinds can be
// looked up by the name a request carries.
type kindHandle interface {
	info() models.KindInfo
	list(ctx context.Context, c *kubeext.Client, ns kubeext.Namespace) ([]any, error)
	get(ctx context.Context, c *kubeext.Client, name string, ns kubeext.Namespace) (any, error)
	remove(ctx context.Context, c *kubeext.Client, name string, ns kubeext.Namespace, opts metav1.DeleteOptions) (kubeext.Outcome, error)
	apply(ctx context.Context, c *kubeext.Client, name string, ns kubeext.Namespace, manifest []byte, manager string) (any, error)
	ownerOf(ctx context.Context, c *kubeext.Client, child metav1.Object) (any, error)
}

type entry[T, L any] struct {
	kind kubeext.Kind[T, L]
}

func handle[T, L any](kind kubeext.Kind[T, L]) kindHandle {
	return entry[T, L]{kind: kind}
}

func (e entry[T, L]) info() models.KindInfo {
	return models.KindInfo{
		Name:       e.kind.Name(),
		Resource:   e.kind.Resource(),
		Namespaced: e.kind.Namespaced(),
	}
}

func (e entry[T, L]) list(ctx context.Context, c *kubeext.Client, ns kubeext.Namespace) ([]any, error) {
	items, err := kubeext.List(ctx, c, e.kind, ns)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	return out, nil
}

func (e entry[T, L]) get(ctx context.Context, c *kubeext.Client, name string, ns kubeext.Namespace) (any, error) {
	obj, err := kubeext.GetOpt(ctx, c, e.kind, name, ns)
	if err != nil || obj == nil {
		return nil, err
	}
	return obj, nil
}

func (e entry[T, L]) remove(ctx context.Context, c *kubeext.Client, name string, ns kubeext.Namespace, opts metav1.DeleteOptions) (kubeext.Outcome, error) {
	return kubeext.Delete(ctx, c, e.kind, name, ns, opts)
}

func (e entry[T, L]) apply(ctx context.Context, c *kubeext.Client, name string, ns kubeext.Namespace, manifest []byte, manager string) (any, error) {
	return kubeext.Apply(ctx, c, e.kind, name, ns, manifest, manager)
}

func (e entry[T, L]) ownerOf(ctx context.Context, c *kubeext.Client, child metav1.Object) (any, error) {
	obj, err := kubeext.GetOwner(ctx, c, e.kind, child)
	if err != nil || obj == nil {
		return nil, err
	}
	return obj, nil
}

// registry indexes kinds by lower-cased kind name and resource name.
type registry struct {
	byName map[string]kindHandle
	kinds  []models.KindInfo
}

// newRegistry registers the built-in kinds plus the optional kinds whose
// clients are configured on c.
func newRegistry(c *kubeext.Client) *registry {
	handles := []kindHandle{
		handle(kubeext.PodKind),
		handle(kubeext.ServiceKind),
		handle(kubeext.SecretKind),
		handle(kubeext.ConfigMapKind),
		handle(kubeext.ServiceAccountKind),
		handle(kubeext.PersistentVolumeClaimKind),
		handle(kubeext.DeploymentKind),
		handle(kubeext.ReplicaSetKind),
		handle(kubeext.StatefulSetKind),
		handle(kubeext.DaemonSetKind),
		handle(kubeext.JobKind),
		handle(kubeext.CronJobKind),
		handle(kubeext.RoleKind),
		handle(kubeext.RoleBindingKind),
		handle(kubeext.HorizontalPodAutoscalerKind),
		handle(kubeext.NodeKind),
		handle(kubeext.NamespaceKind),
		handle(kubeext.PersistentVolumeKind),
		handle(kubeext.ClusterRoleKind),
		handle(kubeext.ClusterRoleBindingKind),
		handle(kubeext.StorageClassKind),
	}
	if c.HasAPIExtensions() {
		handles = append(handles, handle(kubeext.CustomResourceDefinitionKind))
	}
	if c.HasAggregator() {
		handles = append(handles, handle(kubeext.APIServiceKind))
	}
	if c.HasKubeVirt() {
		handles = append(handles,
			handle(kubeext.VirtualMachineKind),
			handle(kubeext.VirtualMachineInstanceKind),
		)
	}

	r := &registry{byName: make(map[string]kindHandle, 2*len(handles))}
	for _, h := range handles {
		info := h.info()
		r.byName[strings.ToLower(info.Name)] = h
		r.byName[strings.ToLower(info.Resource)] = h
		r.kinds = append(r.kinds, info)
	}
	sort.Slice(r.kinds, func(i, j int) bool { return r.kinds[i].Name < r.kinds[j].Name })
	return r
}

// lookup resolves a kind by name ("Deployment") or resource ("deployments"),
// case-insensitively.
func (r *registry) lookup(kind string) (kindHandle, error) {
	h, ok := r.byName[strings.ToLower(kind)]
	if !ok {
		return nil, models.NewErrUnknownKind(kind)
	}
	return h, nil
}
