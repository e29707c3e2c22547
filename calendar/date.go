// Package calendar implements a mutable calendar/clock value with unit
// arithmetic, timezone offsets and daylight saving adjustment.
//
// Date fields are wall clock fields. Add walks the unit chain
//
//	millisecond -> second -> minute -> hour -> day -> month -> year
//
// carrying overflow and borrowing underflow into the next larger unit.
package calendar

import (
	"time"

	"github.com/AndrewOt/a-first-date/internal/calmath"
)

// UnsetZone is the TimezoneName of a Date without a timezone.
const UnsetZone = "unset"

const (
	millisPerSecond  = 1000
	secondsPerMinute = 60
	minutesPerHour   = 60
	hoursPerDay      = 24
	monthsPerYear    = 12

	millisPerMinute = millisPerSecond * secondsPerMinute
	millisPerHour   = millisPerMinute * minutesPerHour
	millisPerDay    = millisPerHour * hoursPerDay
)

// Date is a calendar date and wall clock time.
type Date struct {
	Year      int
	Month     time.Month
	MonthName string // Always Month.String().
	Day       int
	Hour      int
	Minute    int
	Second    int

	Millisecond int
	IsLeapYear  bool

	// TimezoneName is UnsetZone until SetTimezone succeeds.
	TimezoneName string
	// TimezoneOffset is the applied UTC offset in hours, nil until SetTimezone succeeds.
	TimezoneOffset *int
	// DaylightSavings is nil while unknown.
	DaylightSavings *bool
}

// step describes one link of the unit chain.
type step struct {
	modulus int
	next    Unit
}

var chain = map[Unit]step{
	Millisecond: {millisPerSecond, Second},
	Second:      {secondsPerMinute, Minute},
	Minute:      {minutesPerHour, Hour},
	Hour:        {hoursPerDay, Day},
}

// field returns the field holding a zero-based unit of the chain.
func (d *Date) field(u Unit) *int {
	switch u {
	case Millisecond:
		return &d.Millisecond
	case Second:
		return &d.Second
	case Minute:
		return &d.Minute
	case Hour:
		return &d.Hour
	}
	return nil
}

// Add adds delta units to d. Negative deltas subtract. Carries move up the
// chain until a unit absorbs them. Adding years does not revalidate Day, so
// February 29 survives a move into a common year.
func (d *Date) Add(delta int, unit Unit) {
	for delta != 0 {
		switch unit {
		case Year:
			d.setYear(d.Year + delta)
			return
		case Month:
			c := PropagateMonth(d.Month, delta)
			d.Month, d.MonthName = time.Month(c.Value), c.Label
			unit, delta = Year, c.Carry
		case Day:
			d.addDays(delta)
			return
		default:
			s, ok := chain[unit]
			if !ok {
				return
			}
			f := d.field(unit)
			c := Propagate(*f, delta, s.modulus)
			*f = c.Value
			unit, delta = s.next, c.Carry
		}
	}
}

// addDays walks one month at a time so every intermediate day is valid for
// the month it lands in.
func (d *Date) addDays(delta int) {
	for {
		c := PropagateDay(d.Day, delta, d.Month, d.IsLeapYear)
		if !c.Carried() {
			d.Day = c.Value
			return
		}
		if c.Carry > 0 {
			delta -= calmath.MonthLength(d.Month, d.IsLeapYear) - d.Day + 1
			d.Day = 1
			d.Add(1, Month)
		} else {
			delta += d.Day
			d.Add(-1, Month)
			d.Day = calmath.MonthLength(d.Month, d.IsLeapYear)
		}
	}
}

func (d *Date) setYear(year int) {
	d.Year = year
	d.IsLeapYear = calmath.IsLeapYear(year)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return calmath.DayOfWeek(d.Year, d.Month, d.Day)
}
