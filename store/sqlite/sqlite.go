/*
Package sqlite provides a SQLite-backed implementation of the collaborator
interfaces.

PURPOSE:
  Implements the storage side of the flextime engine (employees, daily
  status, attendance, holidays, vacation requests, check-in events,
  worklogs) using SQLite. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

INVARIANTS ENFORCED:
  daily_status:  one row per (employee, date); a new row's date must be
                 strictly greater than the employee's latest row
  attendance:    at most one row per (employee, date)

DATE HANDLING:
  Calendar dates are stored as TEXT in "2006-01-02" form, instants as
  RFC 3339 TEXT. The running balance is stored as decimal TEXT, never
  as a float column.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/flextime.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - flextime package: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/flextime-engine/flextime"
)

// Store implements the storage interfaces using SQLite. Workday and
// break definitions are configuration, not data, and live in the
// factory package instead.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ flextime.EmployeeSource  = (*Store)(nil)
	_ flextime.StatusStore     = (*Store)(nil)
	_ flextime.AttendanceStore = (*Store)(nil)
	_ flextime.HolidaySource   = (*Store)(nil)
	_ flextime.VacationSource  = (*Store)(nil)
	_ flextime.CheckinSource   = (*Store)(nil)
	_ flextime.WorklogSource   = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		time_model TEXT NOT NULL,
		grade TEXT NOT NULL,
		date_of_birth TEXT,
		join_date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_status (
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		worked_seconds INTEGER NOT NULL,
		target_seconds INTEGER NOT NULL,
		balance TEXT NOT NULL,
		PRIMARY KEY (employee_id, date)
	);

	CREATE TABLE IF NOT EXISTS attendance (
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL,
		note TEXT,
		PRIMARY KEY (employee_id, date)
	);

	CREATE TABLE IF NOT EXISTS holidays (
		date TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vacation_requests (
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		half_day INTEGER NOT NULL,
		PRIMARY KEY (employee_id, date)
	);

	CREATE TABLE IF NOT EXISTS checkin_events (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		event_time TEXT NOT NULL,
		date TEXT NOT NULL,
		is_check_in INTEGER NOT NULL,
		is_break INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_checkin_events_employee_date
		ON checkin_events(employee_id, date, event_time);

	CREATE TABLE IF NOT EXISTS worklogs (
		employee_id TEXT NOT NULL,
		log_time TEXT NOT NULL,
		date TEXT NOT NULL,
		task_desc TEXT NOT NULL,
		task TEXT,
		ticket_link TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_worklogs_employee_date
		ON worklogs(employee_id, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) GetAll(ctx context.Context) ([]flextime.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, time_model, grade, date_of_birth, join_date FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []flextime.Employee
	for rows.Next() {
		var emp flextime.Employee
		var timeModel, dob, join string
		if err := rows.Scan(&emp.ID, &emp.Name, &timeModel, &emp.Grade, &dob, &join); err != nil {
			return nil, err
		}
		emp.TimeModel = flextime.TimeModel(timeModel)
		if emp.DateOfBirth, err = parseDate(dob); err != nil {
			return nil, fmt.Errorf("employee %s date_of_birth: %w", emp.ID, err)
		}
		if emp.JoinDate, err = parseDate(join); err != nil {
			return nil, fmt.Errorf("employee %s join_date: %w", emp.ID, err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// SaveEmployee inserts or replaces an employee record.
func (s *Store) SaveEmployee(ctx context.Context, emp flextime.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, time_model, grade, date_of_birth, join_date)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   time_model = excluded.time_model,
		   grade = excluded.grade,
		   date_of_birth = excluded.date_of_birth,
		   join_date = excluded.join_date`,
		emp.ID, emp.Name, string(emp.TimeModel), emp.Grade,
		formatDate(emp.DateOfBirth), formatDate(emp.JoinDate))
	return err
}

// =============================================================================
// DAILY STATUS
// =============================================================================

func (s *Store) LatestStatusDate(ctx context.Context, employee flextime.Employee) (flextime.Date, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var date string
	err := s.db.QueryRowContext(ctx,
		`SELECT date FROM daily_status WHERE employee_id = ? ORDER BY date DESC LIMIT 1`,
		employee.ID).Scan(&date)
	if err == sql.ErrNoRows {
		return flextime.Date{}, false, nil
	}
	if err != nil {
		return flextime.Date{}, false, err
	}
	parsed, err := parseDate(date)
	if err != nil {
		return flextime.Date{}, false, err
	}
	return parsed, true, nil
}

func (s *Store) FlextimeBalance(ctx context.Context, employee flextime.Employee) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var balance string
	err := s.db.QueryRowContext(ctx,
		`SELECT balance FROM daily_status WHERE employee_id = ? ORDER BY date DESC LIMIT 1`,
		employee.ID).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(balance)
}

// Add appends one status record. Lexicographic comparison on the date
// column is safe because dates are stored zero-padded.
func (s *Store) Add(ctx context.Context, status flextime.DailyStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest string
	err := s.db.QueryRowContext(ctx,
		`SELECT date FROM daily_status WHERE employee_id = ? ORDER BY date DESC LIMIT 1`,
		status.EmployeeID).Scan(&latest)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if err == nil && formatDate(status.Date) <= latest {
		return flextime.ErrStatusOutOfOrder
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO daily_status (employee_id, date, worked_seconds, target_seconds, balance)
		 VALUES (?, ?, ?, ?, ?)`,
		status.EmployeeID, formatDate(status.Date),
		status.WorkedSeconds, status.TargetSeconds, status.Balance.String())
	return err
}

// ListStatuses returns an employee's records in ascending date order.
func (s *Store) ListStatuses(ctx context.Context, employeeID string) ([]flextime.DailyStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT employee_id, date, worked_seconds, target_seconds, balance
		 FROM daily_status WHERE employee_id = ? ORDER BY date`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []flextime.DailyStatus
	for rows.Next() {
		var status flextime.DailyStatus
		var date, balance string
		if err := rows.Scan(&status.EmployeeID, &date, &status.WorkedSeconds, &status.TargetSeconds, &balance); err != nil {
			return nil, err
		}
		if status.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		if status.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("balance for %s on %s: %w", status.EmployeeID, date, err)
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (s *Store) Get(ctx context.Context, employeeID string, date flextime.Date) (*flextime.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var record flextime.Attendance
	var status string
	var note sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT employee_id, status, note FROM attendance WHERE employee_id = ? AND date = ?`,
		employeeID, formatDate(date)).Scan(&record.EmployeeID, &status, &note)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record.Date = date
	record.Status = flextime.AttendanceStatus(status)
	record.Note = note.String
	return &record, nil
}

func (s *Store) Create(ctx context.Context, attendance flextime.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM attendance WHERE employee_id = ? AND date = ?`,
		attendance.EmployeeID, formatDate(attendance.Date)).Scan(&exists)
	if err == nil {
		return flextime.ErrDuplicateAttendance
	}
	if err != sql.ErrNoRows {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO attendance (employee_id, date, status, note) VALUES (?, ?, ?, ?)`,
		attendance.EmployeeID, formatDate(attendance.Date), string(attendance.Status), attendance.Note)
	return err
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) IsHoliday(ctx context.Context, date flextime.Date) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM holidays WHERE date = ?`, formatDate(date)).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) AddHoliday(ctx context.Context, holiday flextime.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO holidays (date, name) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET name = excluded.name`,
		formatDate(holiday.Date), holiday.Name)
	return err
}

func (s *Store) ListHolidays(ctx context.Context) ([]flextime.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT date, name FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []flextime.Holiday
	for rows.Next() {
		var holiday flextime.Holiday
		var date string
		if err := rows.Scan(&date, &holiday.Name); err != nil {
			return nil, err
		}
		if holiday.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		holidays = append(holidays, holiday)
	}
	return holidays, rows.Err()
}

// =============================================================================
// VACATION
// =============================================================================

func (s *Store) ApprovedRequest(ctx context.Context, employeeID string, date flextime.Date) (*flextime.VacationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var halfDay bool
	err := s.db.QueryRowContext(ctx,
		`SELECT half_day FROM vacation_requests WHERE employee_id = ? AND date = ?`,
		employeeID, formatDate(date)).Scan(&halfDay)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flextime.VacationRequest{HalfDay: halfDay}, nil
}

func (s *Store) AddApprovedRequest(ctx context.Context, employeeID string, date flextime.Date, request flextime.VacationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vacation_requests (employee_id, date, half_day) VALUES (?, ?, ?)
		 ON CONFLICT(employee_id, date) DO UPDATE SET half_day = excluded.half_day`,
		employeeID, formatDate(date), request.HalfDay)
	return err
}

// =============================================================================
// CHECK-INS
// =============================================================================

func (s *Store) Events(ctx context.Context, date flextime.Date, employeeID string) (flextime.CheckinList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_time, is_check_in, is_break FROM checkin_events
		 WHERE employee_id = ? AND date = ? ORDER BY event_time`,
		employeeID, formatDate(date))
	if err != nil {
		return flextime.CheckinList{}, err
	}
	defer rows.Close()

	var events []flextime.CheckinEvent
	for rows.Next() {
		var event flextime.CheckinEvent
		var eventTime string
		if err := rows.Scan(&event.ID, &eventTime, &event.IsCheckIn, &event.IsBreak); err != nil {
			return flextime.CheckinList{}, err
		}
		if event.Time, err = time.Parse(time.RFC3339, eventTime); err != nil {
			return flextime.CheckinList{}, fmt.Errorf("checkin event %s: %w", event.ID, err)
		}
		events = append(events, event)
	}
	return flextime.NewCheckinList(events), rows.Err()
}

func (s *Store) AddCheckinEvent(ctx context.Context, employeeID string, event flextime.CheckinEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checkin_events (id, employee_id, event_time, date, is_check_in, is_break)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, employeeID, event.Time.UTC().Format(time.RFC3339),
		formatDate(flextime.DateOf(event.Time)), event.IsCheckIn, event.IsBreak)
	return err
}

// =============================================================================
// WORKLOGS
// =============================================================================

func (s *Store) WorklogsOn(ctx context.Context, employeeID string, date flextime.Date) ([]flextime.Worklog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT employee_id, log_time, task_desc, task, ticket_link FROM worklogs
		 WHERE employee_id = ? AND date = ? ORDER BY log_time`,
		employeeID, formatDate(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []flextime.Worklog
	for rows.Next() {
		var entry flextime.Worklog
		var logTime string
		var task, ticket sql.NullString
		if err := rows.Scan(&entry.EmployeeID, &logTime, &entry.TaskDesc, &task, &ticket); err != nil {
			return nil, err
		}
		if entry.LogTime, err = time.Parse(time.RFC3339, logTime); err != nil {
			return nil, fmt.Errorf("worklog for %s: %w", employeeID, err)
		}
		entry.Task = task.String
		entry.TicketLink = ticket.String
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (s *Store) CreateWorklog(ctx context.Context, entry flextime.Worklog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO worklogs (employee_id, log_time, date, task_desc, task, ticket_link)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.EmployeeID, entry.LogTime.UTC().Format(time.RFC3339),
		formatDate(flextime.DateOf(entry.LogTime)), entry.TaskDesc, entry.Task, entry.TicketLink)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func formatDate(d flextime.Date) string { return d.String() }

func parseDate(value string) (flextime.Date, error) {
	if value == "" {
		return flextime.Date{}, nil
	}
	return flextime.ParseDate(value)
}
