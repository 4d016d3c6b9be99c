package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleSlots(t *testing.T) {
	slots := ScheduleSlots()
	require.Len(t, slots, 8)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "16:00", slots[len(slots)-1])
}

func TestValidSlot(t *testing.T) {
	assert.True(t, ValidSlot("09:00"))
	assert.True(t, ValidSlot("16:00"))

	assert.False(t, ValidSlot("08:00"), "before opening")
	assert.False(t, ValidSlot("17:00"), "at closing")
	assert.False(t, ValidSlot("09:30"), "not on the hour")
	assert.False(t, ValidSlot("9am"))
	assert.False(t, ValidSlot(""))
}

func TestIsWorkingDay(t *testing.T) {
	assert.True(t, IsWorkingDay(date(2024, 3, 1)))   // Friday
	assert.False(t, IsWorkingDay(date(2024, 3, 2)))  // Saturday
	assert.False(t, IsWorkingDay(date(2024, 3, 3)))  // Sunday
	assert.True(t, IsWorkingDay(date(2024, 3, 4)))   // Monday
}

func TestEligibleToSchedule(t *testing.T) {
	now := date(2024, 6, 1)

	assert.True(t, EligibleToSchedule(nil, now))

	recent := date(2024, 5, 1)
	assert.False(t, EligibleToSchedule(&recent, now))

	// Exactly three months back is eligible again
	boundary := date(2024, 3, 1)
	assert.True(t, EligibleToSchedule(&boundary, now))

	old := date(2024, 1, 15)
	assert.True(t, EligibleToSchedule(&old, now))
}
