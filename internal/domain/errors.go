package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound     = errors.New("task not found")
	ErrHistoryTruncated = errors.New("task history cannot shrink")
	ErrIdentityChanged  = errors.New("task reference cannot change")
	ErrConcurrentUpdate = errors.New("task was modified concurrently")

	// Validation errors
	ErrInvalidStatus        = errors.New("invalid task status")
	ErrInvalidPriority      = errors.New("invalid task priority")
	ErrInvalidReferenceType = errors.New("invalid reference type")
	ErrInvalidTaskKind      = errors.New("invalid task kind")
	ErrEmptyComment         = errors.New("comment is required")
)
