package domain

import (
	"fmt"
	"time"
)

// Storage log severities
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Refrigerator temperature thresholds in degrees Celsius. Readings outside
// the hard range are critical; readings outside the soft range but inside
// the hard range are warnings.
const (
	TempHardMin = 2.0
	TempHardMax = 6.0
	TempSoftMin = 3.0
	TempSoftMax = 5.0
)

// ClassifyTemperature maps a temperature reading to a severity and the
// resolved flag the log entry should carry. Critical readings start
// unresolved so they surface as open alerts.
func ClassifyTemperature(temp float64) (severity string, resolved bool) {
	if temp < TempHardMin || temp > TempHardMax {
		return SeverityCritical, false
	}
	if temp < TempSoftMin || temp > TempSoftMax {
		return SeverityWarning, true
	}
	return SeverityInfo, true
}

// Maintenance rule constants
const (
	MaintenanceCriticalEvents = 3  // more than this many critical events in the window
	MaintenanceWindowDays     = 30 // trailing window for critical events
	MaintenanceMaxAgeDays     = 90 // more than this many days since last maintenance
)

// MaintenanceCheck is the outcome of evaluating a refrigerator's maintenance state
type MaintenanceCheck struct {
	Needed            bool       `json:"maintenance_needed"`
	Reason            string     `json:"reason,omitempty"`
	LastMaintenance   *time.Time `json:"last_maintenance,omitempty"`
	TemperatureIssues int64      `json:"temperature_issues"`
}

// EvaluateMaintenance applies the maintenance rule: flag when more than
// MaintenanceCriticalEvents critical temperature events occurred in the
// trailing window, or when more than MaintenanceMaxAgeDays have elapsed
// since the last recorded maintenance. A refrigerator with no maintenance
// history at all is treated as overdue.
func EvaluateMaintenance(criticalEvents int64, lastMaintenance *time.Time, now time.Time) MaintenanceCheck {
	check := MaintenanceCheck{
		LastMaintenance:   lastMaintenance,
		TemperatureIssues: criticalEvents,
	}

	if criticalEvents > MaintenanceCriticalEvents {
		check.Needed = true
		check.Reason = "Multiple temperature issues detected"
		return check
	}

	if lastMaintenance == nil || daysBetween(*lastMaintenance, now) > MaintenanceMaxAgeDays {
		check.Needed = true
		check.Reason = "Regular maintenance due"
	}

	return check
}

// Trend returns the percentage change between a current and previous count,
// formatted for dashboard display. A zero previous count reads as +100%
// when anything new appeared, and flat otherwise.
func Trend(current, previous int64) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}
	pct := float64(current-previous) / float64(previous) * 100
	return fmt.Sprintf("%+.1f%%", pct)
}
