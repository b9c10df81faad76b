package checkout

import "fmt"

// CheckoutError carries a stable code alongside a human-readable message.
type CheckoutError struct {
	Code    string
	Message string
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError flags a locally detected invalid or missing answer.
// Validation errors block the step transition and are never sent upstream.
func NewValidationError(msg string) error {
	return &CheckoutError{
		Code:    "validationError",
		Message: msg,
	}
}

// NewStateError flags an operation invoked at the wrong step.
func NewStateError(msg string) error {
	return &CheckoutError{
		Code:    "stateError",
		Message: msg,
	}
}

// ErrSessionNotFound is returned when a session ID has no stored record.
var ErrSessionNotFound = &CheckoutError{
	Code:    "sessionNotFound",
	Message: "checkout session not found or expired",
}
