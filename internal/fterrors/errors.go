// Package fterrors defines the error taxonomy shared by the ledger, the
// aggregations and the stores. Every error is returned to the immediate
// caller; none of them is fatal to the process.
package fterrors

import (
	"errors"
	"fmt"
)

// ErrDivisionUndefined is returned when a ratio is requested against a zero
// denominator, such as a budget whose limit is 0.
var ErrDivisionUndefined = errors.New("ratio undefined: no limit set")

// ValidationError reports malformed input for a record. The record is never
// stored when this error is returned.
type ValidationError struct {
	Entity string
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %s '%s': %s", e.Entity, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.Field, e.Reason)
}

// NotFoundError reports an operation on an identifier that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}

// ConflictError reports an attempt to create a record whose natural key is
// already taken.
type ConflictError struct {
	Entity string
	Key    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Entity, e.Key)
}

// AuthenticationError reports a failed credential lookup. The reason is kept
// for logs; Error() deliberately does not say whether the name or the
// password was wrong.
type AuthenticationError struct {
	User   string
	Reason string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed for '%s'", e.User)
}

// StorageUnavailableError reports a backing file or database that could not
// be read or written.
type StorageUnavailableError struct {
	Backend string
	Path    string
	Err     error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("%s storage unavailable at %s: %v", e.Backend, e.Path, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsStorageUnavailable reports whether err wraps a *StorageUnavailableError.
func IsStorageUnavailable(err error) bool {
	var target *StorageUnavailableError
	return errors.As(err, &target)
}
