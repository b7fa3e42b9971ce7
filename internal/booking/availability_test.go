package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailableDatesFillsWindow(t *testing.T) {
	cal := Calendar{ClosedWeekday: time.Sunday, WindowSize: 4}

	// Thursday 2024-06-06: window spans a Sunday, which must be
	// skipped without shortening the result.
	ref := time.Date(2024, 6, 6, 10, 30, 0, 0, time.UTC)
	dates := cal.AvailableDates(ref)

	assert.Equal(t, []string{"2024-06-06", "2024-06-07", "2024-06-08", "2024-06-10"}, dates)
}

func TestAvailableDatesStartsOnReferenceDay(t *testing.T) {
	cal := DefaultCalendar()

	ref := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC) // Monday
	dates := cal.AvailableDates(ref)

	assert.Len(t, dates, cal.WindowSize)
	assert.Equal(t, "2024-06-03", dates[0])
}

func TestAvailableDatesSkipsClosedReferenceDay(t *testing.T) {
	cal := DefaultCalendar()

	ref := time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC) // Sunday
	dates := cal.AvailableDates(ref)

	assert.Len(t, dates, cal.WindowSize)
	assert.Equal(t, "2024-06-10", dates[0])
	assert.NotContains(t, dates, "2024-06-09")
}

func TestAvailableDatesUsesUTCDay(t *testing.T) {
	cal := DefaultCalendar()

	// 00:30 on the 7th in UTC+5 is still 19:30 UTC on the 6th; the
	// window must start on the UTC day, not the local one
	loc := time.FixedZone("PKT", 5*60*60)
	lateLocal := time.Date(2024, 6, 7, 0, 30, 0, 0, loc)
	dates := cal.AvailableDates(lateLocal)

	assert.Equal(t, "2024-06-06", dates[0])
}

func TestDateAvailable(t *testing.T) {
	cal := DefaultCalendar()
	ref := time.Date(2024, 6, 6, 9, 0, 0, 0, time.UTC)

	assert.True(t, cal.DateAvailable("2024-06-06", ref))
	assert.True(t, cal.DateAvailable("2024-06-10", ref))
	assert.False(t, cal.DateAvailable("2024-06-09", ref)) // Sunday
	assert.False(t, cal.DateAvailable("2024-06-20", ref)) // outside window
	assert.False(t, cal.DateAvailable("2024-06-05", ref)) // past
}

func TestTimeSlots(t *testing.T) {
	assert.Len(t, TimeSlots, 12)

	assert.True(t, ValidTimeSlot("09:00"))
	assert.True(t, ValidTimeSlot("11:30"))
	assert.True(t, ValidTimeSlot("16:00"))
	assert.True(t, ValidTimeSlot("18:30"))

	assert.False(t, ValidTimeSlot("12:00")) // midday break
	assert.False(t, ValidTimeSlot("19:00"))
	assert.False(t, ValidTimeSlot("9:00")) // not zero-padded
	assert.False(t, ValidTimeSlot(""))
}
