/*
checkin.go - Check-in events and worked-time pairing

PURPOSE:
  Employees check in and out over the day; a checkout may be flagged as
  the start of a break. Worked time is the sum of spans from a check-in
  to the next check-out. Gaps between a check-out and the following
  check-in (breaks included) contribute nothing.

EDGE CASES:
  - A trailing unmatched check-in contributes nothing: the day has not
    been closed, so its span cannot be measured.
  - A check-out without a preceding check-in is ignored.

SEE ALSO:
  - checkin/ package: current In/Out/Break status derivation
  - processing.go: Uses CheckinList when no worklogs exist for a day
*/
package flextime

import (
	"context"
	"time"
)

// =============================================================================
// CHECK-IN EVENTS
// =============================================================================

// CheckinEvent is a single check-in or check-out.
type CheckinEvent struct {
	ID        string
	Time      time.Time
	IsCheckIn bool
	// IsBreak marks a check-out that starts a break rather than ending
	// the working day.
	IsBreak bool
}

// CheckinList is the ordered event sequence for one employee-date.
type CheckinList struct {
	Events []CheckinEvent
}

func NewCheckinList(events []CheckinEvent) CheckinList {
	return CheckinList{Events: events}
}

func (l CheckinList) Empty() bool { return len(l.Events) == 0 }

// Last returns the newest event, ok=false for an empty list.
func (l CheckinList) Last() (CheckinEvent, bool) {
	if len(l.Events) == 0 {
		return CheckinEvent{}, false
	}
	return l.Events[len(l.Events)-1], true
}

// WorkedSeconds sums the spans between each check-in and the check-out
// that follows it.
func (l CheckinList) WorkedSeconds() int {
	total := 0
	var openedAt time.Time
	open := false

	for _, e := range l.Events {
		if e.IsCheckIn {
			openedAt = e.Time
			open = true
			continue
		}
		if open {
			total += int(e.Time.Sub(openedAt).Seconds())
			open = false
		}
	}
	return total
}

// CheckinSource returns the ordered event list for one employee-date.
type CheckinSource interface {
	Events(ctx context.Context, date Date, employeeID string) (CheckinList, error)
}
