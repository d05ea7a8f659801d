/*
definition.go - Workday and flextime schedule definitions

PURPOSE:
  Defines the per-grade working-time schedule: how many seconds an
  employee is expected to work on each weekday, and the grace windows
  around check-in/out that are not counted against the balance.

INVARIANT:
  A FlextimeDefinition must carry exactly one WorkdayDefinition per
  weekday (Monday=0 .. Sunday=6) before it is used; looking up a missing
  weekday is a configuration error, not a silent zero.

SEE ALSO:
  - breaktime.go: Break deduction rules applied to raw worked time
  - processing.go: Consumes definitions during the daily run
*/
package flextime

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// WORKDAY DEFINITION
// =============================================================================

// WorkdayDefinition is the expected working time for one weekday.
type WorkdayDefinition struct {
	Weekday       int // Monday = 0 .. Sunday = 6
	TargetSeconds int // expected seconds worked; 0 marks a non-working day
	GraceIn       time.Duration
	GraceOut      time.Duration
}

// HalfTargetSeconds is the target on a half-day vacation.
func (wd WorkdayDefinition) HalfTargetSeconds() int {
	return wd.TargetSeconds / 2
}

// =============================================================================
// FLEXTIME DEFINITION - Per-grade weekly schedule
// =============================================================================

// FlextimeDefinition is the weekly schedule for one grade plus a base grace
// that applies independent of break thresholds.
type FlextimeDefinition struct {
	BaseGraceSeconds int

	workdays map[int]WorkdayDefinition
}

func NewFlextimeDefinition(baseGraceSeconds int) *FlextimeDefinition {
	return &FlextimeDefinition{
		BaseGraceSeconds: baseGraceSeconds,
		workdays:         make(map[int]WorkdayDefinition),
	}
}

// Insert registers the definition for one weekday. Each weekday may be
// defined once.
func (d *FlextimeDefinition) Insert(wd WorkdayDefinition) error {
	if wd.Weekday < 0 || wd.Weekday > 6 {
		return fmt.Errorf("weekday %d: %w", wd.Weekday, ErrInvalidWeekday)
	}
	if _, exists := d.workdays[wd.Weekday]; exists {
		return fmt.Errorf("weekday %d: %w", wd.Weekday, ErrDuplicateWorkday)
	}
	d.workdays[wd.Weekday] = wd
	return nil
}

// WorkdayFor returns the definition for a schedule weekday index.
func (d *FlextimeDefinition) WorkdayFor(weekday int) (WorkdayDefinition, error) {
	wd, ok := d.workdays[weekday]
	if !ok {
		return WorkdayDefinition{}, fmt.Errorf("weekday %d: %w", weekday, ErrMissingWorkday)
	}
	return wd, nil
}

// Complete reports whether all 7 weekdays are defined.
func (d *FlextimeDefinition) Complete() bool {
	return len(d.workdays) == 7
}

// Validate returns an error unless the definition covers the full week.
func (d *FlextimeDefinition) Validate() error {
	if !d.Complete() {
		return fmt.Errorf("%d of 7 weekdays defined: %w", len(d.workdays), ErrIncompleteDefinition)
	}
	return nil
}

// DefinitionSource looks up the flextime schedule for a grade.
// A nil definition with a nil error means the grade has no flextime
// schedule configured; the employee is skipped for this run.
type DefinitionSource interface {
	GetByGrade(ctx context.Context, grade string) (*FlextimeDefinition, error)
}
