package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AndrewOt/a-first-date/tzcatalog"
	"github.com/AndrewOt/a-first-date/zdump"
)

// ErrNoTimezone is returned by IsDST for a Date without a timezone.
var ErrNoTimezone = errors.New("timezone not set")

// SetTimezone shifts d to the UTC offset of name as resolved by c and records
// the zone. A previously applied offset is replaced, not accumulated, so
// repeating a call has no further effect. On error d is unchanged.
func (d *Date) SetTimezone(c tzcatalog.Catalog, name string) error {
	offset, err := c.Offset(name)
	if err != nil {
		return fmt.Errorf("set timezone %q: %w", name, err)
	}
	previous := 0
	if d.TimezoneOffset != nil {
		previous = *d.TimezoneOffset
	}
	d.Add(offset-previous, Hour)
	d.TimezoneName = name
	d.TimezoneOffset = &offset

	logrus.WithFields(logrus.Fields{
		"zone":     name,
		"offset":   offset,
		"previous": previous,
	}).Debug("applied timezone")
	return nil
}

// SetDaylightSavings moves the clock forward one hour when DST turns on and
// back one hour when it turns off. Turning it off while unknown only records
// the state.
func (d *Date) SetDaylightSavings(on bool) {
	was := d.DaylightSavings != nil && *d.DaylightSavings
	switch {
	case on && !was:
		d.Add(1, Hour)
	case !on && was:
		d.Add(-1, Hour)
	}
	d.DaylightSavings = &on
}

// IsDST reports whether d falls inside the DST window that p resolves for
// d's year and timezone, using the northern hemisphere rule.
func (d Date) IsDST(ctx context.Context, p zdump.Provider) (bool, error) {
	if d.TimezoneName == "" || d.TimezoneName == UnsetZone {
		return false, ErrNoTimezone
	}
	w, err := p.Window(ctx, d.Year, d.TimezoneName)
	if err != nil {
		return false, fmt.Errorf("DST window for %s %d: %w", d.TimezoneName, d.Year, err)
	}
	return zdump.Northern.Contains(w, d.stamp()), nil
}

func (d Date) stamp() zdump.Stamp {
	return zdump.Stamp{
		Weekday: d.Weekday(),
		Year:    d.Year,
		Month:   d.Month,
		Day:     d.Day,
		Time:    zdump.HMS{Hours: d.Hour, Minutes: d.Minute, Seconds: d.Second},
	}
}
