package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across layers. The typed errors below match them
// through errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrPersistence     = errors.New("persistence failed")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
	ErrNoSnapshot      = errors.New("no snapshot")
)

// FieldError describes one invalid field of a recipe draft.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string { return f.Field + ": " + f.Message }

// ValidationError is returned when a create or update carries missing or
// invalid fields. State is never mutated when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "invalid recipe: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// HasField reports whether the named field failed validation.
func (e *ValidationError) HasField(name string) bool {
	for _, f := range e.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

// NotFoundError is returned when an update targets an unknown recipe.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("recipe %q not found", e.ID) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PersistenceError reports that a snapshot write failed. The in-memory
// mutation that triggered it has already been applied and is kept.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting after %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// DeserializationError reports a snapshot that could not be decoded.
// The store recovers from it by starting empty.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decoding snapshot: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

func (e *DeserializationError) Is(target error) bool { return target == ErrCorruptSnapshot }
