package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors surfaced by every store. Handlers map these to HTTP
// statuses; anything else is treated as an internal error and its text is
// never returned to the caller.
var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("duplicate value")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
)

// ValidationError reports malformed or missing input with per-field
// messages.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
