package kubeext

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

// Namespace selects the namespace a namespaced accessor is bound to. The zero
// value is Default().
type Namespace struct {
	name     string
	explicit bool
}

// In binds to the named namespace.
func In(name string) Namespace {
	return Namespace{name: name, explicit: true}
}

// Default binds to the client's configured default namespace.
func Default() Namespace {
	return Namespace{}
}

// AllNamespaces spans every namespace. Only list calls accept it for
// namespaced kinds, calls that address a single object fail with
// ErrAllNamespaces. Cluster scoped kinds ignore it like any other Namespace.
func AllNamespaces() Namespace {
	return In(metav1.NamespaceAll)
}

// IsDefault reports whether ns defers to the client's default namespace.
func (ns Namespace) IsDefault() bool {
	return !ns.explicit
}

// Or resolves ns against fallback.
func (ns Namespace) Or(fallback string) string {
	if ns.explicit {
		return ns.name
	}
	return fallback
}

func (ns Namespace) spansAll() bool {
	return ns.explicit && ns.name == metav1.NamespaceAll
}

func (ns Namespace) String() string {
	if !ns.explicit {
		return "<default>"
	}
	if ns.spansAll() {
		return "<all>"
	}
	return ns.name
}
