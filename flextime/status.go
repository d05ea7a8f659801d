package flextime

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAILY STATUS - The record produced per employee per date
// =============================================================================

// DailyStatus captures one reconciled day. Records are append-only: once
// written they are never revisited, and each new record's date must be
// strictly greater than the employee's latest recorded date.
type DailyStatus struct {
	EmployeeID    string
	Date          Date
	WorkedSeconds int
	TargetSeconds int

	// Balance is the running flextime balance in hours after this day.
	// Decimal, not float: tenth-of-an-hour deltas must accumulate exactly.
	Balance decimal.Decimal
}

// BalanceDelta is the day's contribution to the running balance, in hours.
func (s DailyStatus) BalanceDelta() decimal.Decimal {
	return secondsToHours(s.WorkedSeconds - s.TargetSeconds)
}

var secondsPerHour = decimal.NewFromInt(3600)

func secondsToHours(seconds int) decimal.Decimal {
	return decimal.NewFromInt(int64(seconds)).Div(secondsPerHour)
}

// StatusStore persists daily status records and answers where processing
// left off for an employee.
type StatusStore interface {
	// LatestStatusDate returns the date of the employee's newest record,
	// or ok=false when no record exists yet.
	LatestStatusDate(ctx context.Context, employee Employee) (date Date, ok bool, err error)

	// FlextimeBalance returns the running balance in hours as of the
	// latest record; zero when no record exists.
	FlextimeBalance(ctx context.Context, employee Employee) (decimal.Decimal, error)

	// Add appends one record. Implementations must reject records whose
	// date is not strictly after the employee's latest recorded date.
	Add(ctx context.Context, status DailyStatus) error
}
