package factory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/flextime-engine/factory"
	"github.com/warp/flextime-engine/flextime"
)

func TestParseConfig_DefaultPreset(t *testing.T) {
	cfg := factory.DefaultConfig()
	ctx := context.Background()

	def, err := cfg.GetByGrade(ctx, "default")
	require.NoError(t, err)
	require.NotNil(t, def)
	require.NoError(t, def.Validate())

	monday, err := def.WorkdayFor(0)
	require.NoError(t, err)
	assert.Equal(t, 28800, monday.TargetSeconds)

	saturday, err := def.WorkdayFor(5)
	require.NoError(t, err)
	assert.Equal(t, 0, saturday.TargetSeconds)

	breaks, err := cfg.GetDefinitions(ctx)
	require.NoError(t, err)
	// 8h day falls into the 30min band.
	assert.Equal(t, 27000, breaks.Deduct(28800))
}

func TestParseConfig_UnknownGrade_IsNil(t *testing.T) {
	cfg := factory.DefaultConfig()
	def, err := cfg.GetByGrade(context.Background(), "executive")
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestParseConfig_IncompleteWeek_Rejected(t *testing.T) {
	_, err := factory.ParseConfig([]byte(`{
		"grades": [{"grade": "partial", "workdays": [
			{"weekday": 0, "target_seconds": 28800}
		]}]
	}`))
	assert.ErrorIs(t, err, flextime.ErrIncompleteDefinition)
}

func TestParseConfig_DuplicateWeekday_Rejected(t *testing.T) {
	_, err := factory.ParseConfig([]byte(`{
		"grades": [{"grade": "dup", "workdays": [
			{"weekday": 0, "target_seconds": 28800},
			{"weekday": 0, "target_seconds": 14400}
		]}]
	}`))
	assert.ErrorIs(t, err, flextime.ErrDuplicateWorkday)
}

func TestParseConfig_OverlappingBreakRules_Rejected(t *testing.T) {
	_, err := factory.ParseConfig([]byte(`{
		"grades": [{"grade": "g", "workdays": [
			{"weekday": 0, "target_seconds": 28800},
			{"weekday": 1, "target_seconds": 28800},
			{"weekday": 2, "target_seconds": 28800},
			{"weekday": 3, "target_seconds": 28800},
			{"weekday": 4, "target_seconds": 28800},
			{"weekday": 5, "target_seconds": 0},
			{"weekday": 6, "target_seconds": 0}
		]}],
		"break_rules": [
			{"min_work_seconds": 0, "deduction_seconds": 600},
			{"min_work_seconds": 21600, "deduction_seconds": 1800}
		]
	}`))
	assert.ErrorIs(t, err, flextime.ErrOverlappingBreakRules)
}

func TestParseConfig_NoGrades_Rejected(t *testing.T) {
	_, err := factory.ParseConfig([]byte(`{"grades": []}`))
	assert.Error(t, err)

	_, err = factory.ParseConfig([]byte(`not json`))
	assert.Error(t, err)
}
