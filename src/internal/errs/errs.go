// Package errs contains sentinel and typed errors used across layers for
// stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Sentinels.
var (
	// ErrSubmissionInProgress rejects re-entrant purchase submission.
	ErrSubmissionInProgress = errors.New("submission already in progress")

	// ErrForbiddenPin marks the reserved PIN that routes to PIN setup.
	ErrForbiddenPin = errors.New("pin not allowed")

	// ErrInvalidBaseCost indicates a non-positive base cost reached the
	// pricing engine (catalog data error).
	ErrInvalidBaseCost = errors.New("invalid base cost")

	// ErrNotAuthenticated indicates an operation requiring a session ran
	// without one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrWorkflowFinished indicates a terminal workflow was run again.
	ErrWorkflowFinished = errors.New("workflow already finished")
)

// ValidationError is a local field-level failure. It never reaches the
// network and carries the first violated rule only.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// VerificationFailed is the hard gate on meter/smartcard verification.
type VerificationFailed struct {
	Identifier string
	Provider   string
}

func (e *VerificationFailed) Error() string {
	return fmt.Sprintf("verification failed for %s (%s)", e.Identifier, e.Provider)
}

// AuthenticationFailed surfaces login/registration rejection to the caller
// without touching any existing session.
type AuthenticationFailed struct {
	Message string
}

func (e *AuthenticationFailed) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// NetworkFailure wraps transport-level errors from the backend gateway.
type NetworkFailure struct {
	Op  string
	Err error
}

func (e *NetworkFailure) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkFailure) Unwrap() error { return e.Err }
