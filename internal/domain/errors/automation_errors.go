package errors

import (
	"fmt"
)

// DeliveryError represents a failed automation action, e.g. an email that
// could not be dispatched. These are logged and never abort evaluation.
type DeliveryError struct {
	Type    string
	Message string
	RuleID  string
	Cause   error
}

func (e *DeliveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (rule: %s) - %v", e.Type, e.Message, e.RuleID, e.Cause)
	}
	return fmt.Sprintf("%s: %s (rule: %s)", e.Type, e.Message, e.RuleID)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

// Automation error types
const (
	ErrTypeDeliveryFailed = "DELIVERY_FAILED"
)

// NewDeliveryError creates a new delivery error
func NewDeliveryError(ruleID string, cause error) *DeliveryError {
	return &DeliveryError{
		Type:    ErrTypeDeliveryFailed,
		Message: "automation action delivery failed",
		RuleID:  ruleID,
		Cause:   cause,
	}
}
