// Package unixtime converts between civil date/time fields and Unix
// milliseconds with exact Gregorian accounting. It ignores leap seconds and
// assumes the proleptic Gregorian calendar.
package unixtime

import "time"

// Millis converts a given date and time to the number of milliseconds since
// 1970-01-01 00:00:00 UTC.
// This implementation is based on the Go standard library's time package but
// does not depend on time.Location.
func Millis(year int, month time.Month, day, hour, minute, second, millisecond int) int64 {
	daysSinceStartOfYear := []uint64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

	d := daysSinceEpoch(year) + daysSinceStartOfYear[month-1] + uint64(day-1)
	if month > time.February && (year%4 == 0 && (year%100 != 0 || year%400 == 0)) {
		d++ // +leap year
	}
	abs := d*secondsPerDay + uint64(hour)*secondsPerHour + uint64(minute)*secondsPerMinute + uint64(second)
	unix := int64(abs) + (absoluteToInternal + internalToUnix)
	return unix*millisPerSecond + int64(millisecond)
}

// Civil is the inverse of Millis. Negative inputs resolve to dates before
// the epoch with a non-negative time of day.
func Civil(ms int64) (year int, month time.Month, day, hour, minute, second, millisecond int) {
	days := floorDiv(ms, millisPerDay)
	rem := ms - days*millisPerDay

	year, month, day = civilFromDays(days)
	hour = int(rem / (secondsPerHour * millisPerSecond))
	rem %= secondsPerHour * millisPerSecond
	minute = int(rem / (secondsPerMinute * millisPerSecond))
	rem %= secondsPerMinute * millisPerSecond
	second = int(rem / millisPerSecond)
	millisecond = int(rem % millisPerSecond)
	return
}

// The constants were copied from time.go in the Go standard library's time package.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	daysPer400Years  = 365*400 + 97
	daysPer100Years  = 365*100 + 24
	daysPer4Years    = 365*4 + 1

	absoluteZeroYear         = -292277022399
	internalYear             = 1
	absoluteToInternal int64 = (absoluteZeroYear - internalYear) * 365.2425 * secondsPerDay
	unixToInternal     int64 = (1969*365 + 1969/4 - 1969/100 + 1969/400) * secondsPerDay
	internalToUnix     int64 = -unixToInternal

	millisPerSecond = 1000
	millisPerDay    = secondsPerDay * millisPerSecond

	// daysFromYear0ToEpoch shifts epoch days to days since 0000-03-01.
	daysFromYear0ToEpoch = 719468
)

// daysSinceEpoch takes a year and returns the number of days from
// the absolute epoch to the start of that year.
// This is basically (year - zeroYear) * 365, but accounting for leap days.
//
// This function was copied from time.go in the Go standard library time package.
func daysSinceEpoch(year int) uint64 {
	y := uint64(int64(year) - absoluteZeroYear)

	// Add in days from 400-year cycles.
	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	// Add in 100-year cycles.
	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	// Add in 4-year cycles.
	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	// Add in non-leap years.
	n = y
	d += 365 * n

	return d
}

// civilFromDays maps days since 1970-01-01 to a date. Years are counted from
// March so the leap day falls at the end of each cycle.
func civilFromDays(days int64) (int, time.Month, int) {
	z := days + daysFromYear0ToEpoch
	era := floorDiv(z, daysPer400Years)
	doe := z - era*daysPer400Years
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := int(doy - (153*mp+2)/5 + 1)
	month := int(mp + 3)
	if month > 12 {
		month -= 12
	}
	year := int(yoe + era*400)
	if month <= 2 {
		year++
	}
	return year, time.Month(month), day
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
