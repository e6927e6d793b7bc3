package fterrors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	withValue := &ValidationError{Entity: "transaction", Field: "amount", Value: "-5", Reason: "must be greater than zero"}
	assert.Equal(t, "invalid transaction amount '-5': must be greater than zero", withValue.Error())

	noValue := &ValidationError{Entity: "goal", Field: "name", Reason: "cannot be empty"}
	assert.Equal(t, "invalid goal name: cannot be empty", noValue.Error())

	assert.True(t, IsValidation(fmt.Errorf("add: %w", withValue)))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Entity: "transaction", ID: "TXN009"}
	assert.Equal(t, "transaction 'TXN009' not found", err.Error())
	assert.True(t, IsNotFound(fmt.Errorf("delete: %w", err)))
}

func TestStorageUnavailableError_Unwrap(t *testing.T) {
	err := &StorageUnavailableError{Backend: "json", Path: "data/transactions.json", Err: os.ErrPermission}
	assert.Contains(t, err.Error(), "json storage unavailable at data/transactions.json")
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.True(t, IsStorageUnavailable(fmt.Errorf("load: %w", err)))
}

func TestAuthenticationError_HidesReason(t *testing.T) {
	err := &AuthenticationError{User: "alice", Reason: "bad password"}
	assert.Equal(t, "authentication failed for 'alice'", err.Error())
}

func TestConflictError(t *testing.T) {
	err := &ConflictError{Entity: "user", Key: "alice"}
	assert.Equal(t, "user 'alice' already exists", err.Error())
}

func TestErrDivisionUndefined_IsSentinel(t *testing.T) {
	wrapped := fmt.Errorf("utilization for Rent: %w", ErrDivisionUndefined)
	assert.ErrorIs(t, wrapped, ErrDivisionUndefined)
}
