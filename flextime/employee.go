package flextime

import "context"

// =============================================================================
// EMPLOYEE - Master data consumed by the processing run
// =============================================================================

// TimeModel selects how an employee's working time is accounted.
type TimeModel string

const (
	TimeModelUndefined TimeModel = "undefined"
	TimeModelFlextime  TimeModel = "flextime"
	TimeModelFixed     TimeModel = "fixed"
)

// Employee is immutable within a processing run; it is sourced externally.
type Employee struct {
	ID          string
	Name        string
	TimeModel   TimeModel
	Grade       string
	DateOfBirth Date
	JoinDate    Date
}

// EmployeeSource lists the employees considered by a processing run.
type EmployeeSource interface {
	GetAll(ctx context.Context) ([]Employee, error)
}
