/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic
	data for testing and demos. Each scenario creates employees and a
	week of time records that demonstrate specific engine features.

AVAILABLE SCENARIOS:

	standard-week:  Flextime employee with a normal week of check-ins
	vacation-week:  Week containing a holiday, a full and a half
	                vacation day
	worklog-user:   Employee who records worklogs instead of check-ins

HOW SCENARIOS WORK:
 1. Create employees (grade "default", joined at the week start)
 2. Seed check-ins, worklogs, holidays and vacations relative to today
 3. Trigger a processing run via POST /api/processing/run to see the
    resulting statuses and balances

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "standard-week"}

NOTE:

	Scenarios add data, they do not clear existing records. Only use in
	development/demo environments.

SEE ALSO:
  - handlers.go: Store surface used to seed data
  - flextime/processing.go: Engine the scenarios demonstrate
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/warp/flextime-engine/flextime"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var scenarios = []ScenarioDTO{
	{
		ID:          "standard-week",
		Name:        "Standard Week",
		Description: "Flextime employee with a normal week of check-ins",
	},
	{
		ID:          "vacation-week",
		Name:        "Vacation Week",
		Description: "Week containing a holiday, a full and a half vacation day",
	},
	{
		ID:          "worklog-user",
		Name:        "Worklog User",
		Description: "Employee who records worklogs instead of check-ins",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	var err error
	switch req.ScenarioID {
	case "standard-week":
		err = h.loadStandardWeekScenario(ctx)
	case "vacation-week":
		err = h.loadVacationWeekScenario(ctx)
	case "worklog-user":
		err = h.loadWorklogUserScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// weekStart returns the Monday seven days before today, so each scenario
// seeds one fully processable week.
func (h *Handler) weekStart() flextime.Date {
	d := h.Clock.Today().AddDays(-7)
	for d.ScheduleIndex() != 0 {
		d = d.Prev()
	}
	return d
}

// seedWorkday adds a plain in-at-9, out-at-17 check-in pair.
func (h *Handler) seedWorkday(ctx context.Context, employeeID string, date flextime.Date) error {
	in := flextime.CheckinEvent{
		ID:        "ci-" + employeeID + "-" + date.String() + "-in",
		Time:      date.Time.Add(9 * time.Hour),
		IsCheckIn: true,
	}
	out := flextime.CheckinEvent{
		ID:   "ci-" + employeeID + "-" + date.String() + "-out",
		Time: date.Time.Add(17 * time.Hour),
	}
	if err := h.Store.AddCheckinEvent(ctx, employeeID, in); err != nil {
		return err
	}
	return h.Store.AddCheckinEvent(ctx, employeeID, out)
}

func (h *Handler) loadStandardWeekScenario(ctx context.Context) error {
	start := h.weekStart()
	emp := flextime.Employee{
		ID:        "emp-standard",
		Name:      "Sam Standard",
		TimeModel: flextime.TimeModelFlextime,
		Grade:     "default",
		JoinDate:  start,
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	for i := 0; i < 5; i++ {
		if err := h.seedWorkday(ctx, emp.ID, start.AddDays(i)); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadVacationWeekScenario(ctx context.Context) error {
	start := h.weekStart()
	emp := flextime.Employee{
		ID:        "emp-vacation",
		Name:      "Vera Vacation",
		TimeModel: flextime.TimeModelFlextime,
		Grade:     "default",
		JoinDate:  start,
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	// Monday: public holiday.
	holiday := flextime.Holiday{Date: start, Name: "Demo Holiday"}
	if err := h.Store.AddHoliday(ctx, holiday); err != nil {
		return err
	}

	// Tuesday: full vacation day.
	tue := start.AddDays(1)
	if err := h.Store.Create(ctx, flextime.Attendance{
		EmployeeID: emp.ID, Date: tue, Status: flextime.AttendanceOnLeave,
	}); err != nil {
		return err
	}
	if err := h.Store.AddApprovedRequest(ctx, emp.ID, tue, flextime.VacationRequest{}); err != nil {
		return err
	}

	// Wednesday: half day vacation, morning worked.
	wed := start.AddDays(2)
	if err := h.Store.Create(ctx, flextime.Attendance{
		EmployeeID: emp.ID, Date: wed, Status: flextime.AttendanceOnLeave,
	}); err != nil {
		return err
	}
	if err := h.Store.AddApprovedRequest(ctx, emp.ID, wed, flextime.VacationRequest{HalfDay: true}); err != nil {
		return err
	}
	halfIn := flextime.CheckinEvent{
		ID:        "ci-" + emp.ID + "-" + wed.String() + "-in",
		Time:      wed.Time.Add(8 * time.Hour),
		IsCheckIn: true,
	}
	halfOut := flextime.CheckinEvent{
		ID:   "ci-" + emp.ID + "-" + wed.String() + "-out",
		Time: wed.Time.Add(12 * time.Hour),
	}
	if err := h.Store.AddCheckinEvent(ctx, emp.ID, halfIn); err != nil {
		return err
	}
	if err := h.Store.AddCheckinEvent(ctx, emp.ID, halfOut); err != nil {
		return err
	}

	// Thursday and Friday: normal days.
	for i := 3; i < 5; i++ {
		if err := h.seedWorkday(ctx, emp.ID, start.AddDays(i)); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadWorklogUserScenario(ctx context.Context) error {
	start := h.weekStart()
	emp := flextime.Employee{
		ID:        "emp-worklog",
		Name:      "Wes Worklog",
		TimeModel: flextime.TimeModelFlextime,
		Grade:     "default",
		JoinDate:  start,
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	// Eight one-hour entries per weekday; each entry counts a fixed hour.
	tasks := []string{"standup", "review", "feature work", "testing",
		"docs", "support", "pairing", "cleanup"}
	for i := 0; i < 5; i++ {
		day := start.AddDays(i)
		for j, task := range tasks {
			entry := flextime.Worklog{
				EmployeeID: emp.ID,
				LogTime:    day.Time.Add(time.Duration(9+j) * time.Hour),
				TaskDesc:   task,
			}
			if err := h.Store.CreateWorklog(ctx, entry); err != nil {
				return err
			}
		}
	}
	return nil
}
