// Package checkin derives an employee's current check-in state from the
// day's ordered event list. The flextime processing run consumes the raw
// events directly; this service backs the "am I checked in?" surface.
package checkin

import (
	"context"

	"github.com/warp/flextime-engine/flextime"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the current check-in state of an employee.
type Status string

const (
	// StatusUnknown means the current employee could not be resolved.
	StatusUnknown Status = "unknown"
	StatusIn      Status = "in"
	StatusOut     Status = "out"
	StatusBreak   Status = "break"
)

// CurrentEmployeeSource resolves the employee the request is acting for.
type CurrentEmployeeSource interface {
	// GetCurrent returns ok=false when no employee is associated with
	// the caller.
	GetCurrent(ctx context.Context) (flextime.Employee, bool, error)
}

// =============================================================================
// STATUS SERVICE
// =============================================================================

// StatusService answers the current In/Out/Break state for today.
type StatusService struct {
	Clock     flextime.Clock
	Employees CurrentEmployeeSource
	Checkins  flextime.CheckinSource
}

func NewStatusService(clock flextime.Clock, employees CurrentEmployeeSource, checkins flextime.CheckinSource) *StatusService {
	return &StatusService{Clock: clock, Employees: employees, Checkins: checkins}
}

// CurrentStatus derives the state from today's last event:
// no events -> Out, last is a check-in -> In, last is a break
// check-out -> Break, last is a final check-out -> Out.
func (s *StatusService) CurrentStatus(ctx context.Context) (Status, error) {
	employee, ok, err := s.Employees.GetCurrent(ctx)
	if err != nil {
		return StatusUnknown, err
	}
	if !ok {
		return StatusUnknown, nil
	}

	list, err := s.Checkins.Events(ctx, s.Clock.Today(), employee.ID)
	if err != nil {
		return StatusUnknown, err
	}
	return StatusOf(list), nil
}

// StatusOf classifies an event list without resolving an employee.
func StatusOf(list flextime.CheckinList) Status {
	last, ok := list.Last()
	if !ok {
		return StatusOut
	}
	switch {
	case last.IsCheckIn:
		return StatusIn
	case last.IsBreak:
		return StatusBreak
	default:
		return StatusOut
	}
}
