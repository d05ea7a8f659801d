package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/flextime-engine/flextime"
	"github.com/warp/flextime-engine/store/memory"
)

var day = flextime.NewDate(2025, time.March, 3)

func status(employeeID string, d flextime.Date, balance string) flextime.DailyStatus {
	return flextime.DailyStatus{
		EmployeeID:    employeeID,
		Date:          d,
		WorkedSeconds: 28800,
		TargetSeconds: 28800,
		Balance:       decimal.RequireFromString(balance),
	}
}

func TestStore_StatusOrdering(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	emp := flextime.Employee{ID: "emp-1"}

	require.NoError(t, store.Add(ctx, status(emp.ID, day, "1.5")))
	require.NoError(t, store.Add(ctx, status(emp.ID, day.Next(), "2.5")))

	// Same date and earlier date are both out of order.
	assert.ErrorIs(t, store.Add(ctx, status(emp.ID, day.Next(), "3")), flextime.ErrStatusOutOfOrder)
	assert.ErrorIs(t, store.Add(ctx, status(emp.ID, day, "3")), flextime.ErrStatusOutOfOrder)

	latest, ok, err := store.LatestStatusDate(ctx, emp)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, latest.Equal(day.Next()))

	balance, err := store.FlextimeBalance(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, "2.5", balance.String())
}

func TestStore_EmptyBalanceIsZero(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	emp := flextime.Employee{ID: "emp-none"}

	_, ok, err := store.LatestStatusDate(ctx, emp)
	require.NoError(t, err)
	assert.False(t, ok)

	balance, err := store.FlextimeBalance(ctx, emp)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestStore_AttendanceDuplicateRejected(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	record := flextime.Attendance{EmployeeID: "emp-1", Date: day, Status: flextime.AttendancePresent}
	require.NoError(t, store.Create(ctx, record))
	assert.ErrorIs(t, store.Create(ctx, record), flextime.ErrDuplicateAttendance)

	// Different date and different employee are independent.
	assert.NoError(t, store.Create(ctx, flextime.Attendance{
		EmployeeID: "emp-1", Date: day.Next(), Status: flextime.AttendanceAbsent,
	}))
	assert.NoError(t, store.Create(ctx, flextime.Attendance{
		EmployeeID: "emp-2", Date: day, Status: flextime.AttendancePresent,
	}))
}

func TestStore_CheckinEventsKeptOrderedByTime(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	late := flextime.CheckinEvent{ID: "late", Time: day.Time.Add(17 * time.Hour)}
	early := flextime.CheckinEvent{ID: "early", Time: day.Time.Add(9 * time.Hour), IsCheckIn: true}
	require.NoError(t, store.AddCheckinEvent(ctx, "emp-1", late))
	require.NoError(t, store.AddCheckinEvent(ctx, "emp-1", early))

	list, err := store.Events(ctx, day, "emp-1")
	require.NoError(t, err)
	require.Len(t, list.Events, 2)
	assert.Equal(t, "early", list.Events[0].ID)
	assert.Equal(t, "late", list.Events[1].ID)
}

func TestStore_CheckinEventsKeyedByDate(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.AddCheckinEvent(ctx, "emp-1", flextime.CheckinEvent{
		ID: "other-day", Time: day.Next().Time.Add(9 * time.Hour), IsCheckIn: true,
	}))

	list, err := store.Events(ctx, day, "emp-1")
	require.NoError(t, err)
	assert.True(t, list.Empty())
}

func TestStore_SaveEmployeeUpserts(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	emp := flextime.Employee{ID: "emp-1", Name: "Old Name", TimeModel: flextime.TimeModelFlextime}
	require.NoError(t, store.SaveEmployee(ctx, emp))
	emp.Name = "New Name"
	require.NoError(t, store.SaveEmployee(ctx, emp))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "New Name", all[0].Name)
}

func TestStore_HolidaysAndVacations(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.AddHoliday(ctx, flextime.Holiday{Date: day, Name: "Demo"}))
	isHoliday, err := store.IsHoliday(ctx, day)
	require.NoError(t, err)
	assert.True(t, isHoliday)

	isHoliday, err = store.IsHoliday(ctx, day.Next())
	require.NoError(t, err)
	assert.False(t, isHoliday)

	require.NoError(t, store.AddApprovedRequest(ctx, "emp-1", day, flextime.VacationRequest{HalfDay: true}))
	request, err := store.ApprovedRequest(ctx, "emp-1", day)
	require.NoError(t, err)
	require.NotNil(t, request)
	assert.True(t, request.HalfDay)

	request, err = store.ApprovedRequest(ctx, "emp-1", day.Next())
	require.NoError(t, err)
	assert.Nil(t, request)
}

func TestStore_WorklogsKeyedByLogDate(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.CreateWorklog(ctx, flextime.Worklog{
		EmployeeID: "emp-1",
		LogTime:    day.Time.Add(10 * time.Hour),
		TaskDesc:   "review",
	}))

	logs, err := store.WorklogsOn(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	logs, err = store.WorklogsOn(ctx, "emp-1", day.Next())
	require.NoError(t, err)
	assert.Empty(t, logs)
}
