package core

import (
	"regexp"
	"time"
)

// MonthFormat is the label format that groups entries ("YYYY-MM").
const MonthFormat = "2006-01"

// DateFormat is the calendar date format used for the optional entry
// date ("YYYY-MM-DD").
const DateFormat = "2006-01-02"

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonth reports whether s is a syntactically valid month label.
func ValidMonth(s string) bool {
	return monthRe.MatchString(s)
}

// CurrentMonth returns the label of the current calendar month.
func CurrentMonth() string {
	return time.Now().UTC().Format(MonthFormat)
}

// DateRangeFor returns the first and last calendar day of the given
// month as "YYYY-MM-DD" strings. The last day is computed from the
// calendar, so leap-year February comes out right.
func DateRangeFor(month string) (string, string, error) {
	if !ValidMonth(month) {
		return "", "", ErrInvalidMonth
	}
	first, err := time.Parse(MonthFormat, month)
	if err != nil {
		return "", "", ErrInvalidMonth
	}
	last := first.AddDate(0, 1, -1)
	return first.Format(DateFormat), last.Format(DateFormat), nil
}

// ValidDate reports whether date is a syntactically valid calendar date
// that falls within the day range of month, inclusive.
func ValidDate(date, month string) bool {
	d, err := time.Parse(DateFormat, date)
	if err != nil || d.Format(DateFormat) != date {
		return false
	}
	min, max, err := DateRangeFor(month)
	if err != nil {
		return false
	}
	return date >= min && date <= max
}
