package domain

import "time"

// DateLayout is the calendar date format used for date-only fields
const DateLayout = "2006-01-02"

// Clock supplies the current time
type Clock func() time.Time

// SystemClock returns the wall clock
func SystemClock() time.Time {
	return time.Now()
}

// DelayDays computes schedule slippage in whole calendar days, never negative.
// Terminal issues are measured against their activity date, open ones against now.
func DelayDays(dueDate *time.Time, activityDate time.Time, status IssueStatus, now time.Time) int {
	if dueDate == nil || dueDate.IsZero() {
		return 0
	}

	end := now
	if status.IsTerminal() {
		end = activityDate
	}

	days := daysBetween(*dueDate, end)
	if days < 0 {
		return 0
	}
	return days
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// CalendarDate strips the time of day, keeping the date as seen in t's location
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(CalendarDate(to).Sub(CalendarDate(from)).Hours() / 24)
}
