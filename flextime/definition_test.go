package flextime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/flextime-engine/flextime"
)

func TestDefinition_InsertAndLookup(t *testing.T) {
	def := flextime.NewFlextimeDefinition(1800)
	require.NoError(t, def.Insert(flextime.WorkdayDefinition{Weekday: 0, TargetSeconds: 28800}))

	wd, err := def.WorkdayFor(0)
	require.NoError(t, err)
	assert.Equal(t, 28800, wd.TargetSeconds)
	assert.Equal(t, 14400, wd.HalfTargetSeconds())
}

func TestDefinition_DuplicateWeekday_Rejected(t *testing.T) {
	def := flextime.NewFlextimeDefinition(0)
	require.NoError(t, def.Insert(flextime.WorkdayDefinition{Weekday: 2, TargetSeconds: 28800}))

	err := def.Insert(flextime.WorkdayDefinition{Weekday: 2, TargetSeconds: 14400})
	assert.ErrorIs(t, err, flextime.ErrDuplicateWorkday)
}

func TestDefinition_WeekdayOutOfRange_Rejected(t *testing.T) {
	def := flextime.NewFlextimeDefinition(0)
	assert.ErrorIs(t, def.Insert(flextime.WorkdayDefinition{Weekday: 7}), flextime.ErrInvalidWeekday)
	assert.ErrorIs(t, def.Insert(flextime.WorkdayDefinition{Weekday: -1}), flextime.ErrInvalidWeekday)
}

func TestDefinition_MissingWeekday_IsError(t *testing.T) {
	def := flextime.NewFlextimeDefinition(0)
	_, err := def.WorkdayFor(4)
	assert.ErrorIs(t, err, flextime.ErrMissingWorkday)
	assert.True(t, flextime.IsConfigurationError(err))
}

func TestDefinition_Validate(t *testing.T) {
	def := flextime.NewFlextimeDefinition(0)
	for weekday := 0; weekday < 6; weekday++ {
		require.NoError(t, def.Insert(flextime.WorkdayDefinition{Weekday: weekday}))
	}

	assert.False(t, def.Complete())
	assert.ErrorIs(t, def.Validate(), flextime.ErrIncompleteDefinition)

	require.NoError(t, def.Insert(flextime.WorkdayDefinition{Weekday: 6}))
	assert.True(t, def.Complete())
	assert.NoError(t, def.Validate())
}
