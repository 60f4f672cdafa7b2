package models

import "fmt"

// ErrResourceNotFound represents an error when a named resource does not exist
type ErrResourceNotFound struct {
	Kind      string
	Name      string
	Namespace string // Empty for cluster scoped kinds
}

func (e *ErrResourceNotFound) Error() string {
	if e.Namespace != "" {
		return fmt.Sprintf("%s %s not found in namespace %s", e.Kind, e.Name, e.Namespace)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.Name)
}

// NewErrResourceNotFound creates a new ErrResourceNotFound
func NewErrResourceNotFound(kind, name string, namespace ...string) *ErrResourceNotFound {
	err := &ErrResourceNotFound{Kind: kind, Name: name}
	if len(namespace) > 0 {
		err.Namespace = namespace[0]
	}
	return err
}

// ErrOwnerNotFound represents an error when a pod has no owner of the requested
// kind, or that owner no longer exists
type ErrOwnerNotFound struct {
	OwnerKind string
	Pod       string
	Namespace string
}

func (e *ErrOwnerNotFound) Error() string {
	return fmt.Sprintf("pod %s in namespace %s has no %s owner", e.Pod, e.Namespace, e.OwnerKind)
}

// NewErrOwnerNotFound creates a new ErrOwnerNotFound
func NewErrOwnerNotFound(ownerKind, pod, namespace string) *ErrOwnerNotFound {
	return &ErrOwnerNotFound{
		OwnerKind: ownerKind,
		Pod:       pod,
		Namespace: namespace,
	}
}

// ErrUnknownKind represents a request for a kind the service does not serve
type ErrUnknownKind struct {
	Kind string
}

func (e *ErrUnknownKind) Error() string {
	return fmt.Sprintf("unsupported resource kind %q", e.Kind)
}

// NewErrUnknownKind creates a new ErrUnknownKind
func NewErrUnknownKind(kind string) *ErrUnknownKind {
	return &ErrUnknownKind{Kind: kind}
}

// ErrInvalidPropagation represents an unsupported propagation policy
type ErrInvalidPropagation struct {
	Value string
}

func (e *ErrInvalidPropagation) Error() string {
	return fmt.Sprintf("invalid propagation %q: must be foreground or background", e.Value)
}

// NewErrInvalidPropagation creates a new ErrInvalidPropagation
func NewErrInvalidPropagation(value string) *ErrInvalidPropagation {
	return &ErrInvalidPropagation{Value: value}
}

// ErrInvalidManifest represents an apply body that cannot be applied to the
// addressed object
type ErrInvalidManifest struct {
	Reason string
}

func (e *ErrInvalidManifest) Error() string {
	return fmt.Sprintf("invalid manifest: %s", e.Reason)
}

// NewErrInvalidManifest creates a new ErrInvalidManifest
func NewErrInvalidManifest(format string, args ...any) *ErrInvalidManifest {
	return &ErrInvalidManifest{Reason: fmt.Sprintf(format, args...)}
}

// Helper functions for error type checking

// IsNotFoundError checks if an error is a resource or owner not found error
func IsNotFoundError(err error) bool {
	switch err.(type) {
	case *ErrResourceNotFound, *ErrOwnerNotFound:
		return true
	default:
		return false
	}
}

// IsOwnerNotFoundError checks if an error is an owner not found error
func IsOwnerNotFoundError(err error) bool {
	_, ok := err.(*ErrOwnerNotFound)
	return ok
}

// IsUnknownKindError checks if an error is an unknown kind error
func IsUnknownKindError(err error) bool {
	_, ok := err.(*ErrUnknownKind)
	return ok
}

// IsValidationError checks if an error was caused by invalid request input
func IsValidationError(err error) bool {
	switch err.(type) {
	case *ErrUnknownKind, *ErrInvalidPropagation, *ErrInvalidManifest:
		return true
	default:
		return false
	}
}
