/*
errors.go - Centralized error types for the flextime engine

PURPOSE:
  All engine error types in one place. Collaborator implementations and
  callers should match with errors.Is / errors.As.

ERROR CATEGORIES:
  1. Configuration errors - bad definitions or break rules
  2. Data consistency errors - violated invariants in stored records
  3. Processing errors - per-employee failures, carried in aggregate

SEE ALSO:
  - processing.go: Wraps per-employee failures in ProcessingError
*/
package flextime

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidWeekday is returned for weekday indexes outside 0..6.
	ErrInvalidWeekday = errors.New("weekday index out of range")

	// ErrDuplicateWorkday is returned when a weekday is defined twice in
	// one flextime definition.
	ErrDuplicateWorkday = errors.New("duplicate workday definition")

	// ErrMissingWorkday is returned when a flextime definition has no
	// entry for a weekday. The target for that day is undefined.
	ErrMissingWorkday = errors.New("no workday definition for weekday")

	// ErrIncompleteDefinition is returned by Validate when a definition
	// does not cover all 7 weekdays.
	ErrIncompleteDefinition = errors.New("flextime definition incomplete")

	// ErrInvalidBreakRule is returned for break rules with negative or
	// empty ranges.
	ErrInvalidBreakRule = errors.New("invalid break rule")

	// ErrOverlappingBreakRules is returned when break rule ranges overlap.
	ErrOverlappingBreakRules = errors.New("break rules overlap")

	// ErrNegativeWorkedTime flags inconsistent collaborator data: derived
	// worked time must never be negative.
	ErrNegativeWorkedTime = errors.New("negative worked time")

	// ErrStatusOutOfOrder is returned when a daily status is appended
	// with a date not strictly after the employee's latest record.
	ErrStatusOutOfOrder = errors.New("daily status date not after latest record")

	// ErrDuplicateAttendance is returned when an attendance record
	// already exists for the (employee, date).
	ErrDuplicateAttendance = errors.New("attendance already exists for date")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ProcessingError wraps a failure while processing one employee. A run
// collects these and continues with the remaining employees.
type ProcessingError struct {
	EmployeeID string
	Date       Date // zero when the failure is not tied to one date
	Err        error
}

func (e *ProcessingError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("employee %s: %v", e.EmployeeID, e.Err)
	}
	return fmt.Sprintf("employee %s on %s: %v", e.EmployeeID, e.Date, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether an error stems from bad schedule
// or break configuration rather than runtime data.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrMissingWorkday) ||
		errors.Is(err, ErrIncompleteDefinition) ||
		errors.Is(err, ErrInvalidBreakRule) ||
		errors.Is(err, ErrOverlappingBreakRules)
}
