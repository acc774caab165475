// Package domain holds the entity envelope, sentinel errors, and shared
// contracts used by every layer of the catalog.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing or archived document.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals malformed or missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict signals mutually exclusive fields in one request.
	ErrConflict = errors.New("conflicting fields")
	// ErrAccessDenied signals an ownership violation on a mutation.
	ErrAccessDenied = errors.New("access denied")
	// ErrMissingGroup signals an absent group-identity header.
	ErrMissingGroup = errors.New("missing required header x-group-id")
	// ErrUpstream signals an embedding or image provider failure.
	ErrUpstream = errors.New("upstream provider error")
)

// AccessDeniedError wraps ErrAccessDenied with enough context for an
// actionable message: which document, who owns it, and the duplicate
// endpoint the caller should use instead.
type AccessDeniedError struct {
	Entity       string // "ingredient", "recipe", "suggestion"
	ID           string
	OwnerGroupID string
	DuplicateOp  string // e.g. "recipesDuplicate"
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf(
		"%s %q is owned by group %q; use %s to create your own editable copy",
		e.Entity, e.ID, e.OwnerGroupID, e.DuplicateOp,
	)
}

func (e *AccessDeniedError) Unwrap() error { return ErrAccessDenied }
