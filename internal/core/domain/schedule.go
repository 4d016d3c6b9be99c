package domain

import (
	"fmt"
	"time"
)

// Appointment slot rules. Bookings run on the hour during working hours
// on weekdays; a donor must be three months past their last donation.
const (
	ScheduleOpenHour          = 9
	ScheduleCloseHour         = 17
	ScheduleWindowDays        = 30
	ScheduleEligibilityMonths = 3
)

// ScheduleSlots returns every bookable slot of a working day, "09:00" through "16:00".
func ScheduleSlots() []string {
	slots := make([]string, 0, ScheduleCloseHour-ScheduleOpenHour)
	for hour := ScheduleOpenHour; hour < ScheduleCloseHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}
	return slots
}

// ValidSlot reports whether the slot names an on-the-hour working-hours slot.
func ValidSlot(slot string) bool {
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return false
	}
	return t.Minute() == 0 && t.Hour() >= ScheduleOpenHour && t.Hour() < ScheduleCloseHour
}

// IsWorkingDay reports whether appointments may be booked on the given day.
func IsWorkingDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// EligibleToSchedule checks the appointment-booking gate: a donor with a
// donation inside the trailing three months may not book yet.
func EligibleToSchedule(lastDonation *time.Time, now time.Time) bool {
	if lastDonation == nil {
		return true
	}
	return !lastDonation.After(now.AddDate(0, -ScheduleEligibilityMonths, 0))
}
