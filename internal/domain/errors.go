package domain

import (
	"fmt"
	"strings"
)

// ValidationError carries every violated rule, not just the first, so
// callers can surface all problems at once.
type ValidationError struct {
	Violations []string
}

func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NotFoundError signals that a referenced id does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError signals a uniqueness violation detected by a domain
// service pre-check, never by a storage constraint.
type ConflictError struct {
	Message string
}

func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func (e *ConflictError) Error() string { return e.Message }

// InvalidTransitionError signals a state change the entity's lifecycle
// does not permit.
type InvalidTransitionError struct {
	Message string
}

func NewInvalidTransitionError(format string, args ...any) *InvalidTransitionError {
	return &InvalidTransitionError{Message: fmt.Sprintf(format, args...)}
}

func (e *InvalidTransitionError) Error() string { return e.Message }
