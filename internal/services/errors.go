package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden matches every *ForbiddenError and is returned by Authorize.
	ErrForbidden = errors.New("access denied")
	// ErrUnauthenticated is returned by AuthSession implementations when no caller is resolved.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidPagination is returned for a negative page or a page size below one.
	ErrInvalidPagination = errors.New("page must be >= 0 and size must be >= 1")
)

// NotFoundError reports a missing Project or Task.
type NotFoundError struct {
	Resource string
	ID       uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ForbiddenError reports an existing resource the caller does not own.
type ForbiddenError struct {
	Resource string
	ID       uint64
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("unauthorized access to %s %d", e.Resource, e.ID)
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}
