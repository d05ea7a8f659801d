/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/flextime-engine/flextime"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TimeModel string `json:"time_model"`
	Grade     string `json:"grade"`
	JoinDate  string `json:"join_date"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TimeModel string `json:"time_model"`
	Grade     string `json:"grade"`
	JoinDate  string `json:"join_date"`
}

// DailyStatusDTO represents one processed day.
type DailyStatusDTO struct {
	Date          string `json:"date"`
	WorkedSeconds int    `json:"worked_seconds"`
	TargetSeconds int    `json:"target_seconds"`
	Balance       string `json:"balance"` // hours, decimal string
}

// BalanceDTO is the running balance of an employee.
type BalanceDTO struct {
	EmployeeID string `json:"employee_id"`
	Balance    string `json:"balance"` // hours, decimal string
	AsOf       string `json:"as_of"`
}

// CheckinRequest records a check-in or check-out.
type CheckinRequest struct {
	Time      string `json:"time"` // RFC 3339; empty = now
	IsCheckIn bool   `json:"is_check_in"`
	IsBreak   bool   `json:"is_break,omitempty"`
}

// CheckinStatusDTO is the current In/Out/Break state.
type CheckinStatusDTO struct {
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
}

// WorklogRequest creates a worklog entry.
type WorklogRequest struct {
	LogTime    string `json:"log_time"` // RFC 3339; empty = now
	TaskDesc   string `json:"task_desc"`
	Task       string `json:"task,omitempty"`
	TicketLink string `json:"ticket_link,omitempty"`
}

// VacationRequestDTO registers an approved vacation day.
type VacationRequestDTO struct {
	Date    string `json:"date"`
	HalfDay bool   `json:"half_day,omitempty"`
}

// AttendanceRequest records an attendance entry.
type AttendanceRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// HolidayDTO represents a public holiday.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// RunSummaryDTO reports what a processing run did.
type RunSummaryDTO struct {
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	Statuses  int    `json:"statuses"`
	Error     string `json:"error,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(emp flextime.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        emp.ID,
		Name:      emp.Name,
		TimeModel: string(emp.TimeModel),
		Grade:     emp.Grade,
		JoinDate:  emp.JoinDate.String(),
	}
}

func toDailyStatusDTO(status flextime.DailyStatus) DailyStatusDTO {
	return DailyStatusDTO{
		Date:          status.Date.String(),
		WorkedSeconds: status.WorkedSeconds,
		TargetSeconds: status.TargetSeconds,
		Balance:       status.Balance.String(),
	}
}

func toRunSummaryDTO(summary flextime.RunSummary, err error) RunSummaryDTO {
	dto := RunSummaryDTO{
		Processed: summary.Processed,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
		Statuses:  summary.Statuses,
	}
	if err != nil {
		dto.Error = err.Error()
	}
	return dto
}

// parseInstant parses an RFC 3339 instant, defaulting to now when empty.
func parseInstant(value string, now func() time.Time) (time.Time, error) {
	if value == "" {
		return now(), nil
	}
	return time.Parse(time.RFC3339, value)
}
