/*
errors.go - Centralized error types for the ledger core

PURPOSE:
  All error types in one place for consistency and discoverability.
  The core propagates errors unchanged: no logging, no swallowing, no
  default-value substitution. Callers (the HTTP layer) classify errors
  with the helpers below and map them to status codes.

ERROR CATEGORIES:
  1. Validation errors - rejected before any storage interaction
  2. Storage faults    - surfaced unchanged from the store

NOT-FOUND IS NOT AN ERROR:
  Queries for unknown ids or products return collections that simply omit
  them. There is no ErrEventNotFound.

USAGE:
    if ledger.IsValidation(err) {
        // 400, the call was malformed; other in-flight work is unaffected
    }
*/
package ledger

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrZeroQuantityDelta is returned when constructing an inventory event
	// with a zero delta. A zero-delta event carries no information.
	ErrZeroQuantityDelta = errors.New("inventory event: quantity delta must not be zero")

	// ErrUnknownTimePeriod is returned for a granularity outside the
	// enumerated set. Checked before any storage interaction.
	ErrUnknownTimePeriod = errors.New("unknown time period")

	// ErrWindowMismatch is returned when the two comparison windows differ
	// in duration. Checked before any storage interaction, so a partial
	// comparison result is never produced.
	ErrWindowMismatch = errors.New("comparison windows must have equal duration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// WindowMismatchError reports the two unequal window durations.
type WindowMismatchError struct {
	First  time.Duration
	Second time.Duration
}

func (e *WindowMismatchError) Error() string {
	return fmt.Sprintf("comparison windows must have equal duration: first %s, second %s",
		e.First, e.Second)
}

func (e *WindowMismatchError) Unwrap() error { return ErrWindowMismatch }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error is due to invalid caller input,
// rejected before any storage interaction.
func IsValidation(err error) bool {
	return errors.Is(err, ErrZeroQuantityDelta) ||
		errors.Is(err, ErrUnknownTimePeriod) ||
		errors.Is(err, ErrWindowMismatch)
}
