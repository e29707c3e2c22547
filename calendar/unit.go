package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// Unit is a calendar unit that Add understands.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Month
	Year
)

// ErrUnknownUnit is returned by ParseUnit for names it does not recognise.
var ErrUnknownUnit = errors.New("unknown unit")

var unitNames = [...]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Month:       "month",
	Year:        "year",
}

var unitShort = map[string]Unit{
	"ms": Millisecond,
	"s":  Second,
	"m":  Minute,
	"h":  Hour,
	"d":  Day,
	"mo": Month,
	"y":  Year,
}

func (u Unit) String() string {
	if u < Millisecond || u > Year {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit accepts a unit name, its plural or its short form (ms, s, m, h,
// d, mo, y). Case is ignored.
func ParseUnit(s string) (Unit, error) {
	l := strings.ToLower(strings.TrimSpace(s))
	if u, ok := unitShort[l]; ok {
		return u, nil
	}
	l = strings.TrimSuffix(l, "s")
	for u, name := range unitNames {
		if l == name {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}
