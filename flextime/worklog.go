package flextime

import (
	"context"
	"time"
)

// =============================================================================
// WORKLOGS
// =============================================================================

// WorklogEntrySeconds is the fixed contribution of one worklog entry to a
// day's worked time. Entries carry no explicit duration; each one counts
// as an hour.
const WorklogEntrySeconds = 3600

// Worklog is one logged unit of work.
type Worklog struct {
	EmployeeID string
	LogTime    time.Time
	TaskDesc   string
	Task       string
	TicketLink string
}

// WorklogTotalSeconds is the combined fixed-duration contribution of a
// day's entries.
func WorklogTotalSeconds(logs []Worklog) int {
	return len(logs) * WorklogEntrySeconds
}

// WorklogSource returns the entries an employee logged on a date.
type WorklogSource interface {
	WorklogsOn(ctx context.Context, employeeID string, date Date) ([]Worklog, error)
}
