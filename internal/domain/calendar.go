package domain

import "time"

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// RestDay is the weekday on which no installment may fall due
const RestDay = time.Sunday

// IsAllowedDueDate reports whether date may carry an installment due date
func IsAllowedDueDate(date time.Time) bool {
	return date.Weekday() != RestDay
}

// NextAllowedDueDate returns date itself when allowed, otherwise the first
// allowed day after it
func NextAllowedDueDate(date time.Time) time.Time {
	for !IsAllowedDueDate(date) {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// DateOnly truncates t to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative when b is before a)
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
