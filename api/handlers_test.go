package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/flextime-engine/api"
	"github.com/warp/flextime-engine/factory"
	"github.com/warp/flextime-engine/flextime"
	"github.com/warp/flextime-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// The test week starts Monday 2025-03-03; "today" is the next Monday so a
// full seeded week is processable.
var (
	weekMonday = flextime.NewDate(2025, time.March, 3)
	testToday  = weekMonday.AddDays(7)
	testNow    = testToday.Time.Add(12 * time.Hour)
)

type testEnv struct {
	store  *memory.Store
	server *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	store := memory.New()
	cfg := factory.DefaultConfig()
	clock := flextime.FixedClock{Date: testToday}

	processing := flextime.NewProcessingService(
		clock, store, store, cfg, cfg, store, store, store, store, store)

	handler := api.NewHandler(store, processing, clock)
	handler.Now = func() time.Time { return testNow }
	handler.Worklogs.Now = handler.Now

	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)
	return &testEnv{store: store, server: server}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) createEmployee(t *testing.T, id string) {
	resp := e.do(t, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		ID:        id,
		Name:      "Test " + id,
		TimeModel: "flextime",
		Grade:     "default",
		JoinDate:  weekMonday.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestAPI_CreateAndListEmployees(t *testing.T) {
	env := newTestEnv(t)
	env.createEmployee(t, "emp-1")

	resp := env.do(t, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	employees := decode[[]api.EmployeeDTO](t, resp)
	require.Len(t, employees, 1)
	assert.Equal(t, "emp-1", employees[0].ID)
	assert.Equal(t, "flextime", employees[0].TimeModel)
	assert.Equal(t, weekMonday.String(), employees[0].JoinDate)
}

func TestAPI_GetEmployee_NotFound(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/employees/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CreateEmployee_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		ID: "emp-1", Name: "X", TimeModel: "hourly", JoinDate: weekMonday.String(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "unknown time model")

	resp = env.do(t, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		ID: "emp-1", Name: "X", TimeModel: "flextime", JoinDate: "03.03.2025",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "bad date format")

	resp = env.do(t, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		Name: "X", TimeModel: "flextime", JoinDate: weekMonday.String(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing id")
}

// =============================================================================
// TIME RECORDING
// =============================================================================

func TestAPI_CheckinAndStatus(t *testing.T) {
	env := newTestEnv(t)
	env.createEmployee(t, "emp-1")

	resp := env.do(t, http.MethodPost, "/api/employees/emp-1/checkins", api.CheckinRequest{
		Time:      testToday.Time.Add(9 * time.Hour).Format(time.RFC3339),
		IsCheckIn: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/employees/emp-1/checkins/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode[api.CheckinStatusDTO](t, resp)
	assert.Equal(t, "in", status.Status)
}

func TestAPI_CreateWorklog_Validation(t *testing.T) {
	env := newTestEnv(t)
	env.createEmployee(t, "emp-1")

	resp := env.do(t, http.MethodPost, "/api/employees/emp-1/worklogs", api.WorklogRequest{
		TaskDesc: "  ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "empty description")

	resp = env.do(t, http.MethodPost, "/api/employees/emp-1/worklogs", api.WorklogRequest{
		LogTime:  testNow.Add(time.Hour).Format(time.RFC3339),
		TaskDesc: "future work",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "future log time")

	resp = env.do(t, http.MethodPost, "/api/employees/emp-1/worklogs", api.WorklogRequest{
		TaskDesc: "code review",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestAPI_CreateAttendance_DuplicateConflict(t *testing.T) {
	env := newTestEnv(t)
	env.createEmployee(t, "emp-1")

	body := api.AttendanceRequest{Date: weekMonday.String(), Status: "on_leave"}
	resp := env.do(t, http.MethodPost, "/api/employees/emp-1/attendance", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/employees/emp-1/attendance", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestAPI_Holidays(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/holidays", api.HolidayDTO{
		Date: weekMonday.String(), Name: "Rosenmontag",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/holidays", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	holidays := decode[[]api.HolidayDTO](t, resp)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Rosenmontag", holidays[0].Name)
}

// =============================================================================
// PROCESSING
// =============================================================================

func TestAPI_ProcessingRun_EndToEnd(t *testing.T) {
	// GIVEN: An employee with one worked Monday recorded via the API
	// WHEN: A processing run is triggered
	// THEN: Statuses and the balance are readable over the API

	env := newTestEnv(t)
	env.createEmployee(t, "emp-1")

	for _, c := range []api.CheckinRequest{
		{Time: weekMonday.Time.Add(9 * time.Hour).Format(time.RFC3339), IsCheckIn: true},
		{Time: weekMonday.Time.Add(17 * time.Hour).Format(time.RFC3339)},
	} {
		resp := env.do(t, http.MethodPost, "/api/employees/emp-1/checkins", c)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := env.do(t, http.MethodPost, "/api/processing/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[api.RunSummaryDTO](t, resp)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 7, summary.Statuses)
	assert.Empty(t, summary.Error)

	resp = env.do(t, http.MethodGet, "/api/employees/emp-1/statuses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	statuses := decode[[]api.DailyStatusDTO](t, resp)
	require.Len(t, statuses, 7)
	// Monday: 8h raw minus 30min break against an 8h target.
	assert.Equal(t, 27000, statuses[0].WorkedSeconds)
	assert.Equal(t, "-0.5", statuses[0].Balance)

	resp = env.do(t, http.MethodGet, "/api/employees/emp-1/balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balance := decode[api.BalanceDTO](t, resp)
	// Four further full-deficit weekdays; the weekend stays flat.
	assert.Equal(t, "-32.5", balance.Balance)
}

func TestAPI_Scenario_LoadAndProcess(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{
		"scenario_id": "standard-week",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/processing/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[api.RunSummaryDTO](t, resp)
	assert.Equal(t, 1, summary.Processed)

	resp = env.do(t, http.MethodGet, "/api/employees/emp-standard/statuses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	statuses := decode[[]api.DailyStatusDTO](t, resp)
	assert.Len(t, statuses, 7)
}

func TestAPI_Scenario_Unknown(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{
		"scenario_id": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Scheduler smoke test: RunNow performs one immediate run.
func TestScheduler_RunNow(t *testing.T) {
	store := memory.New()
	cfg := factory.DefaultConfig()
	clock := flextime.FixedClock{Date: testToday}
	processing := flextime.NewProcessingService(
		clock, store, store, cfg, cfg, store, store, store, store, store)

	ctx := context.Background()
	require.NoError(t, store.SaveEmployee(ctx, flextime.Employee{
		ID:        "emp-1",
		TimeModel: flextime.TimeModelFlextime,
		Grade:     "default",
		JoinDate:  weekMonday,
	}))

	scheduler := api.NewProcessingScheduler(processing)
	scheduler.RunNow()

	statuses, err := store.ListStatuses(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, statuses, 7)
}
