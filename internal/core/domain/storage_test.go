package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTemperature(t *testing.T) {
	tests := []struct {
		temp     float64
		severity string
		resolved bool
	}{
		{1.5, SeverityCritical, false},
		{6.5, SeverityCritical, false},
		{2.5, SeverityWarning, true},
		{5.5, SeverityWarning, true},
		{4.0, SeverityInfo, true},
		{3.0, SeverityInfo, true},
		{5.0, SeverityInfo, true},
	}

	for _, tt := range tests {
		severity, resolved := ClassifyTemperature(tt.temp)
		assert.Equal(t, tt.severity, severity, "temp %.1f", tt.temp)
		assert.Equal(t, tt.resolved, resolved, "temp %.1f", tt.temp)
	}
}

func TestEvaluateMaintenance_CriticalEvents(t *testing.T) {
	now := date(2024, 6, 1)
	last := date(2024, 5, 1)

	check := EvaluateMaintenance(4, &last, now)
	assert.True(t, check.Needed)
	assert.Equal(t, "Multiple temperature issues detected", check.Reason)

	// Exactly 3 events does not trip the rule
	check = EvaluateMaintenance(3, &last, now)
	assert.False(t, check.Needed)
}

func TestEvaluateMaintenance_Overdue(t *testing.T) {
	now := date(2024, 6, 1)

	old := now.AddDate(0, 0, -91)
	check := EvaluateMaintenance(0, &old, now)
	assert.True(t, check.Needed)
	assert.Equal(t, "Regular maintenance due", check.Reason)

	recent := now.AddDate(0, 0, -90)
	check = EvaluateMaintenance(0, &recent, now)
	assert.False(t, check.Needed)
}

func TestEvaluateMaintenance_NoHistory(t *testing.T) {
	check := EvaluateMaintenance(0, nil, time.Now())
	assert.True(t, check.Needed)
	assert.Equal(t, "Regular maintenance due", check.Reason)
}

func TestTrend(t *testing.T) {
	assert.Equal(t, "0%", Trend(0, 0))
	assert.Equal(t, "+100%", Trend(5, 0))
	assert.Equal(t, "+50.0%", Trend(15, 10))
	assert.Equal(t, "-25.0%", Trend(15, 20))
}

func TestCanTransitionUnit(t *testing.T) {
	assert.True(t, CanTransitionUnit(UnitQuarantine, UnitAvailable))
	assert.True(t, CanTransitionUnit(UnitAvailable, UnitReserved))
	assert.True(t, CanTransitionUnit(UnitReserved, UnitAvailable))
	assert.True(t, CanTransitionUnit(UnitReserved, UnitTransfused))

	// Terminal states admit no exit
	assert.False(t, CanTransitionUnit(UnitTransfused, UnitAvailable))
	assert.False(t, CanTransitionUnit(UnitDiscarded, UnitAvailable))
	assert.False(t, CanTransitionUnit(UnitQuarantine, UnitReserved))
}
