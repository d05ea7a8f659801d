// Package memory provides an in-memory implementation of every
// collaborator interface (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/flextime-engine/flextime"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Store keeps all records in mutex-guarded maps. It enforces the same
// invariants the SQLite store does: strictly increasing status dates and
// at most one attendance record per employee-date.
type Store struct {
	mu sync.RWMutex

	employees   []flextime.Employee
	definitions map[string]*flextime.FlextimeDefinition
	breaks      *flextime.BreakTimeDefinitions
	statuses    map[string][]flextime.DailyStatus // employee id -> ascending by date
	attendance  map[dayKey]flextime.Attendance
	holidays    map[string]flextime.Holiday // date string -> holiday
	vacations   map[dayKey]flextime.VacationRequest
	checkins    map[dayKey][]flextime.CheckinEvent
	worklogs    map[dayKey][]flextime.Worklog
}

// Compile-time checks: one Store serves every collaborator seam.
var (
	_ flextime.EmployeeSource   = (*Store)(nil)
	_ flextime.DefinitionSource = (*Store)(nil)
	_ flextime.BreakTimeSource  = (*Store)(nil)
	_ flextime.StatusStore      = (*Store)(nil)
	_ flextime.AttendanceStore  = (*Store)(nil)
	_ flextime.HolidaySource    = (*Store)(nil)
	_ flextime.VacationSource   = (*Store)(nil)
	_ flextime.CheckinSource    = (*Store)(nil)
	_ flextime.WorklogSource    = (*Store)(nil)
)

type dayKey struct {
	EmployeeID string
	Date       string
}

func key(employeeID string, date flextime.Date) dayKey {
	return dayKey{EmployeeID: employeeID, Date: date.String()}
}

func New() *Store {
	return &Store{
		definitions: make(map[string]*flextime.FlextimeDefinition),
		breaks:      flextime.EmptyBreakTimeDefinitions(),
		statuses:    make(map[string][]flextime.DailyStatus),
		attendance:  make(map[dayKey]flextime.Attendance),
		holidays:    make(map[string]flextime.Holiday),
		vacations:   make(map[dayKey]flextime.VacationRequest),
		checkins:    make(map[dayKey][]flextime.CheckinEvent),
		worklogs:    make(map[dayKey][]flextime.Worklog),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) GetAll(_ context.Context) ([]flextime.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]flextime.Employee, len(s.employees))
	copy(out, s.employees)
	return out, nil
}

func (s *Store) SaveEmployee(_ context.Context, emp flextime.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.employees {
		if existing.ID == emp.ID {
			s.employees[i] = emp
			return nil
		}
	}
	s.employees = append(s.employees, emp)
	return nil
}

// =============================================================================
// DEFINITIONS AND BREAK RULES
// =============================================================================

func (s *Store) GetByGrade(_ context.Context, grade string) (*flextime.FlextimeDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.definitions[grade], nil
}

func (s *Store) SetDefinition(grade string, def *flextime.FlextimeDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.definitions[grade] = def
}

func (s *Store) GetDefinitions(_ context.Context) (*flextime.BreakTimeDefinitions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.breaks, nil
}

func (s *Store) SetBreakDefinitions(breaks *flextime.BreakTimeDefinitions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breaks = breaks
}

// =============================================================================
// DAILY STATUS
// =============================================================================

func (s *Store) LatestStatusDate(_ context.Context, employee flextime.Employee) (flextime.Date, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.statuses[employee.ID]
	if len(records) == 0 {
		return flextime.Date{}, false, nil
	}
	return records[len(records)-1].Date, true, nil
}

func (s *Store) FlextimeBalance(_ context.Context, employee flextime.Employee) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.statuses[employee.ID]
	if len(records) == 0 {
		return decimal.Zero, nil
	}
	return records[len(records)-1].Balance, nil
}

func (s *Store) Add(_ context.Context, status flextime.DailyStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.statuses[status.EmployeeID]
	if len(records) > 0 && !status.Date.After(records[len(records)-1].Date) {
		return flextime.ErrStatusOutOfOrder
	}
	s.statuses[status.EmployeeID] = append(records, status)
	return nil
}

// ListStatuses returns an employee's records in ascending date order.
func (s *Store) ListStatuses(_ context.Context, employeeID string) ([]flextime.DailyStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.statuses[employeeID]
	out := make([]flextime.DailyStatus, len(records))
	copy(out, records)
	return out, nil
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (s *Store) Get(_ context.Context, employeeID string, date flextime.Date) (*flextime.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.attendance[key(employeeID, date)]; ok {
		copied := record
		return &copied, nil
	}
	return nil, nil
}

func (s *Store) Create(_ context.Context, attendance flextime.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(attendance.EmployeeID, attendance.Date)
	if _, exists := s.attendance[k]; exists {
		return flextime.ErrDuplicateAttendance
	}
	s.attendance[k] = attendance
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) IsHoliday(_ context.Context, date flextime.Date) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.holidays[date.String()]
	return ok, nil
}

func (s *Store) AddHoliday(_ context.Context, holiday flextime.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays[holiday.Date.String()] = holiday
	return nil
}

func (s *Store) ListHolidays(_ context.Context) ([]flextime.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]flextime.Holiday, 0, len(s.holidays))
	for _, h := range s.holidays {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// =============================================================================
// VACATION
// =============================================================================

func (s *Store) ApprovedRequest(_ context.Context, employeeID string, date flextime.Date) (*flextime.VacationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if request, ok := s.vacations[key(employeeID, date)]; ok {
		copied := request
		return &copied, nil
	}
	return nil, nil
}

func (s *Store) AddApprovedRequest(_ context.Context, employeeID string, date flextime.Date, request flextime.VacationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vacations[key(employeeID, date)] = request
	return nil
}

// =============================================================================
// CHECK-INS
// =============================================================================

func (s *Store) Events(_ context.Context, date flextime.Date, employeeID string) (flextime.CheckinList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.checkins[key(employeeID, date)]
	out := make([]flextime.CheckinEvent, len(events))
	copy(out, events)
	return flextime.NewCheckinList(out), nil
}

// AddCheckinEvent appends an event, keeping the list ordered by time.
func (s *Store) AddCheckinEvent(_ context.Context, employeeID string, event flextime.CheckinEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(employeeID, flextime.DateOf(event.Time))
	events := s.checkins[k]
	i := sort.Search(len(events), func(i int) bool {
		return events[i].Time.After(event.Time)
	})
	events = append(events, flextime.CheckinEvent{})
	copy(events[i+1:], events[i:])
	events[i] = event
	s.checkins[k] = events
	return nil
}

// =============================================================================
// WORKLOGS
// =============================================================================

func (s *Store) WorklogsOn(_ context.Context, employeeID string, date flextime.Date) ([]flextime.Worklog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := s.worklogs[key(employeeID, date)]
	out := make([]flextime.Worklog, len(logs))
	copy(out, logs)
	return out, nil
}

func (s *Store) CreateWorklog(_ context.Context, entry flextime.Worklog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(entry.EmployeeID, flextime.DateOf(entry.LogTime))
	s.worklogs[k] = append(s.worklogs[k], entry)
	return nil
}
