package checkin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/flextime-engine/checkin"
	"github.com/warp/flextime-engine/flextime"
	"github.com/warp/flextime-engine/store/memory"
)

var serviceDay = flextime.NewDate(2025, time.March, 3)

type fixedEmployee struct {
	emp flextime.Employee
	ok  bool
}

func (f fixedEmployee) GetCurrent(_ context.Context) (flextime.Employee, bool, error) {
	return f.emp, f.ok, nil
}

func newStatusService(t *testing.T, events ...flextime.CheckinEvent) *checkin.StatusService {
	store := memory.New()
	ctx := context.Background()
	for _, e := range events {
		require.NoError(t, store.AddCheckinEvent(ctx, "emp-1", e))
	}
	return checkin.NewStatusService(
		flextime.FixedClock{Date: serviceDay},
		fixedEmployee{emp: flextime.Employee{ID: "emp-1"}, ok: true},
		store,
	)
}

func event(hour int, isCheckIn, isBreak bool) flextime.CheckinEvent {
	return flextime.CheckinEvent{
		ID:        time.Duration(hour).String(),
		Time:      serviceDay.Time.Add(time.Duration(hour) * time.Hour),
		IsCheckIn: isCheckIn,
		IsBreak:   isBreak,
	}
}

func TestStatusService_NoEvents_Out(t *testing.T) {
	svc := newStatusService(t)
	status, err := svc.CurrentStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkin.StatusOut, status)
}

func TestStatusService_LastEventCheckIn_In(t *testing.T) {
	svc := newStatusService(t, event(9, true, false))
	status, err := svc.CurrentStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkin.StatusIn, status)
}

func TestStatusService_LastEventBreakOut_Break(t *testing.T) {
	svc := newStatusService(t,
		event(9, true, false),
		event(12, false, true),
	)
	status, err := svc.CurrentStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkin.StatusBreak, status)
}

func TestStatusService_LastEventFinalOut_Out(t *testing.T) {
	svc := newStatusService(t,
		event(9, true, false),
		event(12, false, true),
		event(13, true, false),
		event(17, false, false),
	)
	status, err := svc.CurrentStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkin.StatusOut, status)
}

func TestStatusService_NoCurrentEmployee_Unknown(t *testing.T) {
	svc := checkin.NewStatusService(
		flextime.FixedClock{Date: serviceDay},
		fixedEmployee{ok: false},
		memory.New(),
	)
	status, err := svc.CurrentStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkin.StatusUnknown, status)
}

func TestStatusOf_OnlyConsidersLastEvent(t *testing.T) {
	list := flextime.NewCheckinList([]flextime.CheckinEvent{
		{IsCheckIn: true},
		{IsBreak: true},
		{IsCheckIn: true},
	})
	assert.Equal(t, checkin.StatusIn, checkin.StatusOf(list))
}
