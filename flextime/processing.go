/*
processing.go - Daily flextime balance reconciliation

PURPOSE:
  Brings every flextime employee's daily status up to date through
  yesterday, exactly once per missing date, preserving balance
  continuity. This is the core of the system: a date-driven fold that
  combines workday definitions, break rules, holidays, approved leave,
  attendance, check-ins and worklogs into one DailyStatus per day.

PER-DAY DECISION ORDER:
  1. Weekday target 0 (defined non-working day) -> zero day, no lookups.
  2. Holiday -> zero day. The holiday source is only consulted when the
     weekday target is non-zero.
  3. Attendance OnLeave -> approved-vacation lookup:
       no request / full day -> target 0, no worked-time query
       half day              -> target halved, worked time measured
  4. Anything else (no record, present, other leave) -> full target,
     worked time measured.

WORKED TIME:
  Worklog entries contribute a fixed hour each; when a day has no
  worklogs, paired check-in/out events are measured instead. The break
  deduction is applied once to the day's raw total.

ERROR MODEL:
  A failure on one employee never aborts the run. Failures are wrapped
  in ProcessingError, collected, and returned as one aggregate.

SEE ALSO:
  - definition.go, breaktime.go: Policy inputs
  - status.go, attendance.go: Records written by the run
*/
package flextime

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PROCESSING SERVICE
// =============================================================================

// ProcessingService orchestrates the daily reconciliation run. All
// collaborators are interface seams; see the *Source and *Store types.
type ProcessingService struct {
	Clock       Clock
	Status      StatusStore
	Employees   EmployeeSource
	Definitions DefinitionSource
	Breaks      BreakTimeSource
	Holidays    HolidaySource
	Attendance  AttendanceStore
	Vacations   VacationSource
	Checkins    CheckinSource
	Worklogs    WorklogSource
}

// NewProcessingService wires a service from its collaborators.
func NewProcessingService(
	clock Clock,
	status StatusStore,
	employees EmployeeSource,
	definitions DefinitionSource,
	breaks BreakTimeSource,
	holidays HolidaySource,
	attendance AttendanceStore,
	vacations VacationSource,
	checkins CheckinSource,
	worklogs WorklogSource,
) *ProcessingService {
	return &ProcessingService{
		Clock:       clock,
		Status:      status,
		Employees:   employees,
		Definitions: definitions,
		Breaks:      breaks,
		Holidays:    holidays,
		Attendance:  attendance,
		Vacations:   vacations,
		Checkins:    checkins,
		Worklogs:    worklogs,
	}
}

// RunSummary reports what a processing run did.
type RunSummary struct {
	Processed int // employees with at least one new status record
	Skipped   int // non-flextime, unconfigured, or already up to date
	Failed    int
	Statuses  int // total status records written
}

// ProcessDailyStatus processes every employee up to (excluding) today.
// The returned summary is valid even when the error is non-nil; the
// error aggregates all per-employee failures.
func (s *ProcessingService) ProcessDailyStatus(ctx context.Context) (RunSummary, error) {
	var summary RunSummary

	// One consistent rule set for the whole run.
	breaks, err := s.Breaks.GetDefinitions(ctx)
	if err != nil {
		return summary, fmt.Errorf("load break definitions: %w", err)
	}

	employees, err := s.Employees.GetAll(ctx)
	if err != nil {
		return summary, fmt.Errorf("list employees: %w", err)
	}

	today := s.Clock.Today()

	var errs []error
	for _, emp := range employees {
		if emp.TimeModel != TimeModelFlextime {
			summary.Skipped++
			continue
		}

		written, err := s.processEmployee(ctx, emp, today, breaks)
		if err != nil {
			summary.Failed++
			errs = append(errs, err)
			continue
		}
		if written == 0 {
			summary.Skipped++
			continue
		}
		summary.Processed++
		summary.Statuses += written
	}

	log.Printf("[Processing] run complete: %d processed, %d skipped, %d failed, %d statuses written",
		summary.Processed, summary.Skipped, summary.Failed, summary.Statuses)

	return summary, errors.Join(errs...)
}

// processEmployee walks the employee's missing dates and returns how many
// status records were written.
func (s *ProcessingService) processEmployee(ctx context.Context, emp Employee, today Date, breaks *BreakTimeDefinitions) (int, error) {
	def, err := s.Definitions.GetByGrade(ctx, emp.Grade)
	if err != nil {
		return 0, &ProcessingError{EmployeeID: emp.ID, Err: fmt.Errorf("definition lookup: %w", err)}
	}
	if def == nil {
		// Configuration gap, not an error: retried next run once the
		// grade has a schedule.
		log.Printf("[Processing] no flextime definition for grade %q, skipping employee %s", emp.Grade, emp.ID)
		return 0, nil
	}

	start := emp.JoinDate
	latest, ok, err := s.Status.LatestStatusDate(ctx, emp)
	if err != nil {
		return 0, &ProcessingError{EmployeeID: emp.ID, Err: fmt.Errorf("latest status date: %w", err)}
	}
	if ok {
		start = latest.Next()
	}

	if !start.Before(today) {
		// Already up to date; no further collaborators are consulted.
		return 0, nil
	}

	balance, err := s.Status.FlextimeBalance(ctx, emp)
	if err != nil {
		return 0, &ProcessingError{EmployeeID: emp.ID, Err: fmt.Errorf("flextime balance: %w", err)}
	}

	// Fold over the missing dates, carrying the running balance. Statuses
	// accumulate and flush as a batch after the loop; attendance back-fill
	// records are created individually as the loop runs.
	var statuses []DailyStatus
	for d := start; d.Before(today); d = d.Next() {
		status, err := s.processDay(ctx, emp, d, def, breaks, balance)
		if err != nil {
			return 0, &ProcessingError{EmployeeID: emp.ID, Date: d, Err: err}
		}
		balance = status.Balance
		statuses = append(statuses, status)
	}

	for _, status := range statuses {
		if err := s.Status.Add(ctx, status); err != nil {
			return 0, &ProcessingError{EmployeeID: emp.ID, Date: status.Date, Err: fmt.Errorf("persist status: %w", err)}
		}
	}

	return len(statuses), nil
}

// processDay computes one DailyStatus and back-fills attendance where the
// day has none.
func (s *ProcessingService) processDay(ctx context.Context, emp Employee, d Date, def *FlextimeDefinition, breaks *BreakTimeDefinitions, balance decimal.Decimal) (DailyStatus, error) {
	wd, err := def.WorkdayFor(d.ScheduleIndex())
	if err != nil {
		return DailyStatus{}, err
	}

	target := wd.TargetSeconds
	worked := 0

	var existing *Attendance
	attendanceChecked := false

	// A definitional zero target short-circuits every further lookup:
	// no holiday, vacation, worklog or check-in query on weekends.
	if target > 0 {
		holiday, err := s.Holidays.IsHoliday(ctx, d)
		if err != nil {
			return DailyStatus{}, fmt.Errorf("holiday lookup: %w", err)
		}
		if holiday {
			target = 0
		} else {
			existing, err = s.Attendance.Get(ctx, emp.ID, d)
			if err != nil {
				return DailyStatus{}, fmt.Errorf("attendance lookup: %w", err)
			}
			attendanceChecked = true

			if existing != nil && existing.Status == AttendanceOnLeave {
				request, err := s.Vacations.ApprovedRequest(ctx, emp.ID, d)
				if err != nil {
					return DailyStatus{}, fmt.Errorf("vacation lookup: %w", err)
				}
				switch {
				case request == nil || !request.HalfDay:
					// On leave for the whole day: nothing expected,
					// nothing measured.
					target = 0
				default:
					// Half-day vacation halves the target, not the
					// measurement: the full day's logs still count.
					target = wd.HalfTargetSeconds()
					worked, err = s.workedSeconds(ctx, emp, d, breaks)
					if err != nil {
						return DailyStatus{}, err
					}
				}
			} else {
				// No record, present, or other leave: a normal working
				// day that requires worked time.
				worked, err = s.workedSeconds(ctx, emp, d, breaks)
				if err != nil {
					return DailyStatus{}, err
				}
			}
		}
	}

	status := DailyStatus{
		EmployeeID:    emp.ID,
		Date:          d,
		WorkedSeconds: worked,
		TargetSeconds: target,
		Balance:       balance.Add(secondsToHours(worked - target)),
	}

	if attendanceChecked && existing == nil {
		attendanceStatus := AttendanceAbsent
		if worked > 0 {
			attendanceStatus = AttendancePresent
		}
		backfill := Attendance{EmployeeID: emp.ID, Date: d, Status: attendanceStatus}
		if err := s.Attendance.Create(ctx, backfill); err != nil {
			return DailyStatus{}, fmt.Errorf("back-fill attendance: %w", err)
		}
	}

	return status, nil
}

// workedSeconds derives the day's net worked time. Worklogs take
// precedence with a fixed duration per entry; check-in pairs are measured
// when no worklogs exist. The break deduction applies once to the total.
func (s *ProcessingService) workedSeconds(ctx context.Context, emp Employee, d Date, breaks *BreakTimeDefinitions) (int, error) {
	logs, err := s.Worklogs.WorklogsOn(ctx, emp.ID, d)
	if err != nil {
		return 0, fmt.Errorf("worklog lookup: %w", err)
	}

	raw := 0
	if len(logs) > 0 {
		raw = WorklogTotalSeconds(logs)
	} else {
		list, err := s.Checkins.Events(ctx, d, emp.ID)
		if err != nil {
			return 0, fmt.Errorf("checkin lookup: %w", err)
		}
		raw = list.WorkedSeconds()
	}

	if raw < 0 {
		return 0, fmt.Errorf("raw worked time %d: %w", raw, ErrNegativeWorkedTime)
	}
	return breaks.Deduct(raw), nil
}
