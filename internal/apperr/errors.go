// Package apperr defines the error taxonomy shared by the services.
// The HTTP layer maps these onto status codes with errors.Is / errors.As.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks lookups for records that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrInternalInconsistency marks states that the preceding checks
	// should have made unreachable.
	ErrInternalInconsistency = errors.New("internal inconsistency")
)

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UnavailableItemsError reports every unavailable item found during
// order resolution, grouped by catalog. All groups are collected before
// failing, so the caller sees the complete picture at once.
type UnavailableItemsError struct {
	Pizzas   []string
	Drinks   []string
	Desserts []string
}

func (e *UnavailableItemsError) Error() string {
	var parts []string
	if len(e.Pizzas) > 0 {
		parts = append(parts, "pizzas not available: "+strings.Join(e.Pizzas, ", "))
	}
	if len(e.Drinks) > 0 {
		parts = append(parts, "drinks not available: "+strings.Join(e.Drinks, ", "))
	}
	if len(e.Desserts) > 0 {
		parts = append(parts, "desserts not available: "+strings.Join(e.Desserts, ", "))
	}
	return strings.Join(parts, "; ")
}

// HasAny reports whether any catalog group contains an unavailable item.
func (e *UnavailableItemsError) HasAny() bool {
	return len(e.Pizzas) > 0 || len(e.Drinks) > 0 || len(e.Desserts) > 0
}
