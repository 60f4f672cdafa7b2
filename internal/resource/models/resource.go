package models

import "time"

// AllNamespaces is the namespace query value that lists across every namespace
const AllNamespaces = "*"

// Propagation selects how dependents are handled when a resource is deleted
type Propagation string

const (
	PropagationDefault    Propagation = ""
	PropagationForeground Propagation = "foreground"
	PropagationBackground Propagation = "background"
)

// ParsePropagation validates a propagation query value
func ParsePropagation(value string) (Propagation, error) {
	switch p := Propagation(value); p {
	case PropagationDefault, PropagationForeground, PropagationBackground:
		return p, nil
	default:
		return "", NewErrInvalidPropagation(value)
	}
}

// KindInfo describes a resource kind the service can serve
type KindInfo struct {
	Name       string `json:"name"`
	Resource   string `json:"resource"`
	Namespaced bool   `json:"namespaced"`
}

// KindsResponse represents the response for listing supported kinds
type KindsResponse struct {
	Kinds []KindInfo `json:"kinds"`
	Count int        `json:"count"`
}

// ResourceResponse wraps a single Kubernetes object
type ResourceResponse struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	Object    any    `json:"object"`
}

// ResourceListResponse wraps the objects of one kind in a namespace
type ResourceListResponse struct {
	Kind      string `json:"kind"`
	Namespace string `json:"namespace,omitempty"`
	Items     []any  `json:"items"`
	Count     int    `json:"count"`
}

// DeleteResponse reports the outcome of a delete request
type DeleteResponse struct {
	Kind          string      `json:"kind"`
	Name          string      `json:"name"`
	Namespace     string      `json:"namespace,omitempty"`
	Propagation   Propagation `json:"propagation,omitempty"`
	AlreadyAbsent bool        `json:"alreadyAbsent"`
	Message       string      `json:"message,omitempty"`
}

// ObjectRef identifies a workload by kind, name and namespace
type ObjectRef struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// PodSummary is the subset of a pod the workload endpoints return
type PodSummary struct {
	Name       string            `json:"name"`
	Namespace  string            `json:"namespace"`
	Phase      string            `json:"phase"`
	Node       string            `json:"node,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
	Controller *ObjectRef        `json:"controller,omitempty"`
}

// PodsResponse represents the pods selected by a workload
type PodsResponse struct {
	Owner ObjectRef    `json:"owner"`
	Pods  []PodSummary `json:"pods"`
	Count int          `json:"count"`
}

// OwnerResponse represents the owner object resolved for a pod
type OwnerResponse struct {
	Pod    ObjectRef `json:"pod"`
	Owner  ObjectRef `json:"owner"`
	Object any       `json:"object"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status           string    `json:"status"`
	DefaultNamespace string    `json:"defaultNamespace,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	Error            string    `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
