package gateway

import (
	"errors"
	"fmt"
)

// NetworkError wraps a request that could not complete: transport failure,
// timeout, or a 5xx from the backend.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError carries the field-level messages the backend returned with
// a 4xx, so a form can map them back onto its inputs.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d field errors)", e.Message, len(e.Fields))
}

// NotFoundError reports a 404 for an id. Callers deleting an entity treat it
// as success (the delete is idempotent from their perspective).
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NotAuthenticatedError reports a 401: missing, expired, or rejected session.
type NotAuthenticatedError struct {
	Message string
}

func (e *NotAuthenticatedError) Error() string { return e.Message }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsNotAuthenticated(err error) bool {
	var na *NotAuthenticatedError
	return errors.As(err, &na)
}
