/*
handlers.go - HTTP API handlers for the flextime engine

PURPOSE:
  Exposes the flextime engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                  List all employees
    POST   /api/employees                  Create employee
    GET    /api/employees/{id}             Get employee details
    GET    /api/employees/{id}/balance     Current flextime balance
    GET    /api/employees/{id}/statuses    Processed daily statuses

  Time recording:
    POST   /api/employees/{id}/checkins    Record a check-in/out event
    GET    /api/employees/{id}/checkins/status  Current In/Out/Break state
    POST   /api/employees/{id}/worklogs    Create a worklog entry
    POST   /api/employees/{id}/vacations   Register an approved vacation day
    POST   /api/employees/{id}/attendance  Record an attendance entry

  Calendar:
    GET    /api/holidays                   List public holidays
    POST   /api/holidays                   Create a public holiday

  Admin:
    POST   /api/processing/run             Trigger a daily processing run

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (duplicate attendance)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scheduler.go: Automated processing runs
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/flextime-engine/checkin"
	"github.com/warp/flextime-engine/flextime"
	"github.com/warp/flextime-engine/worklog"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is the persistence surface the API needs. Both the SQLite and
// the in-memory store satisfy it.
type Store interface {
	GetAll(ctx context.Context) ([]flextime.Employee, error)
	SaveEmployee(ctx context.Context, emp flextime.Employee) error
	ListStatuses(ctx context.Context, employeeID string) ([]flextime.DailyStatus, error)
	FlextimeBalance(ctx context.Context, employee flextime.Employee) (decimal.Decimal, error)
	Create(ctx context.Context, attendance flextime.Attendance) error
	AddHoliday(ctx context.Context, holiday flextime.Holiday) error
	ListHolidays(ctx context.Context) ([]flextime.Holiday, error)
	AddApprovedRequest(ctx context.Context, employeeID string, date flextime.Date, request flextime.VacationRequest) error
	AddCheckinEvent(ctx context.Context, employeeID string, event flextime.CheckinEvent) error
	Events(ctx context.Context, date flextime.Date, employeeID string) (flextime.CheckinList, error)
	CreateWorklog(ctx context.Context, entry flextime.Worklog) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      Store
	Processing *flextime.ProcessingService
	Worklogs   *worklog.Service
	Clock      flextime.Clock

	// Now is the instant source for request defaults; time.Now when nil.
	Now func() time.Time
}

// NewHandler creates a new handler with the given store and engine.
func NewHandler(store Store, processing *flextime.ProcessingService, clock flextime.Clock) *Handler {
	return &Handler{
		Store:      store,
		Processing: processing,
		Worklogs:   worklog.NewService(store),
		Clock:      clock,
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// findEmployee resolves a path id to an employee record.
func (h *Handler) findEmployee(ctx context.Context, id string) (flextime.Employee, bool, error) {
	employees, err := h.Store.GetAll(ctx)
	if err != nil {
		return flextime.Employee{}, false, err
	}
	for _, emp := range employees {
		if emp.ID == id {
			return emp, true, nil
		}
	}
	return flextime.Employee{}, false, nil
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, emp := range employees {
		dtos[i] = toEmployeeDTO(emp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok, err := h.findEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	model := flextime.TimeModel(req.TimeModel)
	switch model {
	case flextime.TimeModelFlextime, flextime.TimeModelFixed:
	default:
		writeError(w, http.StatusBadRequest, "time_model must be flextime or fixed", nil)
		return
	}

	joinDate, err := flextime.ParseDate(req.JoinDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid join_date format (use YYYY-MM-DD)", err)
		return
	}

	emp := flextime.Employee{
		ID:        req.ID,
		Name:      req.Name,
		TimeModel: model,
		Grade:     req.Grade,
		JoinDate:  joinDate,
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// =============================================================================
// BALANCE AND STATUS HANDLERS
// =============================================================================

// GetBalance returns the running flextime balance of an employee.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	emp, ok, err := h.findEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	balance, err := h.Store.FlextimeBalance(r.Context(), emp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get balance", err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceDTO{
		EmployeeID: emp.ID,
		Balance:    balance.String(),
		AsOf:       h.Clock.Today().String(),
	})
}

// ListStatuses returns an employee's processed daily statuses.
func (h *Handler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	emp, ok, err := h.findEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	statuses, err := h.Store.ListStatuses(r.Context(), emp.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list statuses", err)
		return
	}

	dtos := make([]DailyStatusDTO, len(statuses))
	for i, status := range statuses {
		dtos[i] = toDailyStatusDTO(status)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// TIME RECORDING HANDLERS
// =============================================================================

// RecordCheckin records a check-in/out event for an employee.
func (h *Handler) RecordCheckin(w http.ResponseWriter, r *http.Request) {
	emp, ok, err := h.findEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	var req CheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	instant, err := parseInstant(req.Time, h.now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid time format (use RFC 3339)", err)
		return
	}

	event := flextime.CheckinEvent{
		ID:        fmt.Sprintf("ci-%d", h.now().UnixNano()),
		Time:      instant,
		IsCheckIn: req.IsCheckIn,
		IsBreak:   req.IsBreak,
	}
	if err := h.Store.AddCheckinEvent(r.Context(), emp.ID, event); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record checkin", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": event.ID})
}

// GetCheckinStatus returns the employee's current In/Out/Break state,
// derived from today's last event.
func (h *Handler) GetCheckinStatus(w http.ResponseWriter, r *http.Request) {
	emp, ok, err := h.findEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	list, err := h.Store.Events(r.Context(), h.Clock.Today(), emp.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load checkins", err)
		return
	}
	writeJSON(w, http.StatusOK, CheckinStatusDTO{
		EmployeeID: emp.ID,
		Status:     string(checkin.StatusOf(list)),
	})
}

// CreateWorklog creates a validated worklog entry.
func (h *Handler) CreateWorklog(w http.ResponseWriter, r *http.Request) {
	emp, ok, err := h.findEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	var req WorklogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	logTime, err := parseInstant(req.LogTime, h.now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid log_time format (use RFC 3339)", err)
		return
	}

	entry := flextime.Worklog{
		EmployeeID: emp.ID,
		LogTime:    logTime,
		TaskDesc:   req.TaskDesc,
		Task:       req.Task,
		TicketLink: req.TicketLink,
	}
	if err := h.Worklogs.Create(r.Context(), entry); err != nil {
		if errors.Is(err, worklog.ErrEmptyTaskDesc) || errors.Is(err, worklog.ErrFutureLogTime) {
			writeError(w, http.StatusBadRequest, "Invalid worklog", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create worklog", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// CreateVacation registers an approved vacation day.
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	emp, ok, err := h.findEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	var req VacationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := flextime.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	request := flextime.VacationRequest{HalfDay: req.HalfDay}
	if err := h.Store.AddApprovedRequest(r.Context(), emp.ID, date, request); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to register vacation", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// CreateAttendance records an attendance entry.
func (h *Handler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	emp, ok, err := h.findEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	var req AttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := flextime.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	record := flextime.Attendance{
		EmployeeID: emp.ID,
		Date:       date,
		Status:     flextime.AttendanceStatus(req.Status),
		Note:       req.Note,
	}
	if err := h.Store.Create(r.Context(), record); err != nil {
		if errors.Is(err, flextime.ErrDuplicateAttendance) {
			writeError(w, http.StatusConflict, "Attendance already recorded for this day", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to record attendance", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns all public holidays.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, holiday := range holidays {
		dtos[i] = HolidayDTO{Date: holiday.Date.String(), Name: holiday.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday creates a public holiday.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := flextime.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	if err := h.Store.AddHoliday(r.Context(), flextime.Holiday{Date: date, Name: req.Name}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// PROCESSING HANDLERS
// =============================================================================

// TriggerProcessing runs the daily reconciliation immediately. The
// summary is returned even when some employees failed.
func (h *Handler) TriggerProcessing(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Processing.ProcessDailyStatus(r.Context())
	writeJSON(w, http.StatusOK, toRunSummaryDTO(summary, err))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
