package flextime

import "context"

// =============================================================================
// ATTENDANCE - Per-day presence record
// =============================================================================

// AttendanceStatus classifies a day for one employee.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceOnLeave AttendanceStatus = "on_leave"
	AttendanceOther   AttendanceStatus = "other"
)

// Attendance is at most one record per (employee, date). The processing
// run back-fills a record only when none exists for a processed date.
type Attendance struct {
	EmployeeID string
	Date       Date
	Status     AttendanceStatus
	Note       string
}

// AttendanceStore reads and back-fills attendance records.
type AttendanceStore interface {
	// Get returns the record for the date, or nil when none exists.
	Get(ctx context.Context, employeeID string, date Date) (*Attendance, error)

	// Create writes a new record. Implementations must reject a second
	// record for the same (employee, date).
	Create(ctx context.Context, attendance Attendance) error
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// Holiday is a calendar entry; stores use it, the processing run only
// asks the yes/no question below.
type Holiday struct {
	Date Date
	Name string
}

// HolidaySource answers whether a date is a public holiday.
type HolidaySource interface {
	IsHoliday(ctx context.Context, date Date) (bool, error)
}

// =============================================================================
// VACATION
// =============================================================================

// VacationRequest is an approved leave request for a specific date.
// Absence of a record means no approved leave.
type VacationRequest struct {
	HalfDay bool
}

// VacationSource looks up the approved request covering a date, nil when
// there is none.
type VacationSource interface {
	ApprovedRequest(ctx context.Context, employeeID string, date Date) (*VacationRequest, error)
}
