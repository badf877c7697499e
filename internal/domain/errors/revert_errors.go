package errors

import (
	"fmt"
)

// RevertError represents errors from reverting a recorded change.
type RevertError struct {
	Type     string
	Message  string
	ChangeID string
	Cause    error
}

func (e *RevertError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (change: %s) - %v", e.Type, e.Message, e.ChangeID, e.Cause)
	}
	return fmt.Sprintf("%s: %s (change: %s)", e.Type, e.Message, e.ChangeID)
}

func (e *RevertError) Unwrap() error {
	return e.Cause
}

// Revert error types
const (
	ErrTypeChangeNotFound     = "CHANGE_NOT_FOUND"
	ErrTypeTargetRowNotFound  = "TARGET_ROW_NOT_FOUND"
	ErrTypeUnrevertibleChange = "UNREVERTIBLE_CHANGE"
	ErrTypeStoreFailure       = "STORE_FAILURE"
)

// NewChangeNotFoundError creates an error for a missing change record
func NewChangeNotFoundError(changeID string) *RevertError {
	return &RevertError{
		Type:     ErrTypeChangeNotFound,
		Message:  "change record not found",
		ChangeID: changeID,
	}
}

// NewTargetRowNotFoundError creates an error for an inverse mutation whose
// target row no longer exists
func NewTargetRowNotFoundError(changeID string) *RevertError {
	return &RevertError{
		Type:     ErrTypeTargetRowNotFound,
		Message:  "target row for the inverse mutation no longer exists",
		ChangeID: changeID,
	}
}

// NewUnrevertibleChangeError creates an error for a change that cannot be
// automatically reverted
func NewUnrevertibleChangeError(changeID string) *RevertError {
	return &RevertError{
		Type:     ErrTypeUnrevertibleChange,
		Message:  "this change cannot be automatically reverted",
		ChangeID: changeID,
	}
}

// NewStoreFailureError creates an error for a failed store mutation
func NewStoreFailureError(changeID string, cause error) *RevertError {
	return &RevertError{
		Type:     ErrTypeStoreFailure,
		Message:  "store mutation failed",
		ChangeID: changeID,
		Cause:    cause,
	}
}
