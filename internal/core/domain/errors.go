package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable indicates the database file does not exist.
	// Initialization, not verification, is the fix.
	ErrStorageUnavailable = errors.New("database not initialized")

	// ErrProviderUnreachable indicates the inference provider refused the
	// connection. It is typically wrapped with the base URL.
	ErrProviderUnreachable = errors.New("inference provider unreachable")
)

// DatabaseError indicates an internal storage inconsistency, such as a row
// that cannot be re-read immediately after a successful write. It signals a
// bug or corruption, not a user error.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("database error in %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("database error in %s", e.Op)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// TimeoutError indicates a provider operation exceeded its deadline.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Op, e.Timeout)
}

// ModelNotFoundError indicates the provider does not have the requested
// model pulled.
type ModelNotFoundError struct {
	Model string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model %q not found on provider", e.Model)
}

// MalformedResponseError indicates the provider answered successfully but
// the expected field was missing from the body.
type MalformedResponseError struct {
	Op    string
	Model string
	Body  string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response for model %q: %s", e.Op, e.Model, e.Body)
}

// IsNotFound checks if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTimeout checks if the error indicates a provider deadline.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsDatabaseError checks if the error indicates a storage inconsistency.
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}
