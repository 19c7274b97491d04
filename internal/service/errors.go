package service

import (
	"errors"
	"fmt"

	dbutil "github.com/localroots/marketplace/internal/db"
	"gorm.io/gorm"
)

// ErrNotFound indicates the requested resource was not found.
var ErrNotFound = errors.New("not found")

// NotFoundError carries a resource-specific message and matches ErrNotFound (HTTP 404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError represents a bad-request condition (HTTP 400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthenticationError represents missing or invalid credentials where an
// identity is required (HTTP 401).
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// ConflictError represents a conflict condition (HTTP 409).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// BackendUnavailableError means the storage backend could not be reached (HTTP 503).
type BackendUnavailableError struct {
	Err error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("storage backend unavailable: %v", e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

func notFound(message string) error {
	return &NotFoundError{Message: message}
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// storeError translates storage-layer failures into the service taxonomy.
// Uniqueness is enforced by the database; a violation becomes a
// ConflictError with the given message.
func storeError(err error, conflictMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case conflictMessage != "" && dbutil.IsUniqueViolation(err):
		return &ConflictError{Message: conflictMessage}
	case dbutil.IsUnavailable(err):
		return &BackendUnavailableError{Err: err}
	}
	return err
}
