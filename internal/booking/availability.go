package booking

import "time"

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// TimeSlots is the fixed bookable slot list: a morning block and an
// evening block on the half hour.
var TimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"16:00", "16:30", "17:00", "17:30", "18:00", "18:30",
}

// ValidTimeSlot reports whether t is one of the bookable slots.
func ValidTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if t == slot {
			return true
		}
	}
	return false
}

// Calendar decides which dates are open for booking: a fixed-size
// window starting at the reference day, skipping the clinic's closed
// weekday. All date math is done at UTC midnight so the side
// validating a request and the side presenting options always agree,
// including near midnight.
type Calendar struct {
	ClosedWeekday time.Weekday
	WindowSize    int
}

// DefaultCalendar is the clinic's standard calendar: closed on
// Sundays, four bookable dates offered at a time.
func DefaultCalendar() Calendar {
	return Calendar{ClosedWeekday: time.Sunday, WindowSize: 4}
}

// AvailableDates returns the ordered bookable dates starting at ref's
// UTC calendar day. The window is always filled: the closed weekday is
// skipped over rather than shortening the result.
func (c Calendar) AvailableDates(ref time.Time) []string {
	utc := ref.UTC()
	day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	dates := make([]string, 0, c.WindowSize)
	for len(dates) < c.WindowSize {
		if day.Weekday() != c.ClosedWeekday {
			dates = append(dates, day.Format(DateLayout))
		}
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// DateAvailable reports whether date is in the bookable window at ref.
func (c Calendar) DateAvailable(date string, ref time.Time) bool {
	for _, d := range c.AvailableDates(ref) {
		if d == date {
			return true
		}
	}
	return false
}
