package calendar

import (
	"math"
	"time"

	"github.com/AndrewOt/a-first-date/internal/calmath"
	"github.com/AndrewOt/a-first-date/internal/unixtime"
)

const (
	epochYear = 1970

	// meanYearDays is the mean length of a Gregorian year.
	meanYearDays = 365.2425
)

// FromMillis converts milliseconds since 1970-01-01 00:00:00 UTC to a Date.
//
// The year and day of year are estimated from the mean Gregorian year, which
// may place a date up to a day away from the exact calendar date. The result
// is always a valid date. Use FromMillisExact for exact accounting.
func FromMillis(ms int64) Date {
	days := floorDiv64(ms, millisPerDay)

	years := float64(days) / meanYearDays
	whole := math.Floor(years)
	year := epochYear + int(whole)
	leap := calmath.IsLeapYear(year)

	remaining := (years - whole) * meanYearDays
	month := time.January
	for ; month < time.December; month++ {
		length := float64(calmath.MonthLength(month, leap))
		if remaining < length {
			break
		}
		remaining -= length
	}
	day := int(remaining) + 1
	if length := calmath.MonthLength(month, leap); day > length {
		day = length
	}

	d := Date{
		Year:         year,
		Month:        month,
		MonthName:    month.String(),
		Day:          day,
		IsLeapYear:   leap,
		TimezoneName: UnsetZone,
	}
	d.setClock(ms - days*millisPerDay)
	return d
}

// FromMillisExact is like FromMillis but uses exact Gregorian accounting.
func FromMillisExact(ms int64) Date {
	year, month, day, hour, minute, second, millisecond := unixtime.Civil(ms)
	return Date{
		Year:         year,
		Month:        month,
		MonthName:    month.String(),
		Day:          day,
		Hour:         hour,
		Minute:       minute,
		Second:       second,
		Millisecond:  millisecond,
		IsLeapYear:   calmath.IsLeapYear(year),
		TimezoneName: UnsetZone,
	}
}

// UnixMilli returns the fields of d as milliseconds since the epoch, treating
// them as UTC. Timezone and DST state are ignored.
func (d Date) UnixMilli() int64 {
	return unixtime.Millis(d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, d.Millisecond)
}

// setClock sets the time of day from milliseconds past midnight.
func (d *Date) setClock(rem int64) {
	d.Hour = int(rem / millisPerHour)
	rem %= millisPerHour
	d.Minute = int(rem / millisPerMinute)
	rem %= millisPerMinute
	d.Second = int(rem / millisPerSecond)
	d.Millisecond = int(rem % millisPerSecond)
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
