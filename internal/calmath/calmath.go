// Package calmath holds the Gregorian calendar rules used by package calendar.
package calmath

import "time"

// monthLengths is indexed by time.Month; February is the non-leap length.
var monthLengths = [...]int{
	time.January:   31,
	time.February:  28,
	time.March:     31,
	time.April:     30,
	time.May:       31,
	time.June:      30,
	time.July:      31,
	time.August:    31,
	time.September: 30,
	time.October:   31,
	time.November:  30,
	time.December:  31,
}

// IsLeapYear determines if the year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// MonthLength returns the number of days in month, adding the leap day to
// February when leap is set.
func MonthLength(month time.Month, leap bool) int {
	if month == time.February && leap {
		return 29
	}
	return monthLengths[month]
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(month time.Month, year int) int {
	return MonthLength(month, IsLeapYear(year))
}

// DayOfWeek calculates the day of the week for a given date.
func DayOfWeek(year int, month time.Month, day int) time.Weekday {
	// Zeller's Congruence algorithm adjustment for Gregorian calendar
	m := int(month)
	if m < 3 {
		m += 12
		year -= 1
	}
	k := year % 100
	j := year / 100
	h := (day + ((13 * (m + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	// Zeller counts from Saturday.
	return time.Weekday((h + 6) % 7)
}
