package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fixture is 2025-05-23 03:46:48.447 UTC.
const fixture int64 = 1747972008447

// at builds a UTC Date without timezone state.
func at(year int, month time.Month, day, hour, minute, second, millisecond int) Date {
	return Date{
		Year:         year,
		Month:        month,
		MonthName:    month.String(),
		Day:          day,
		Hour:         hour,
		Minute:       minute,
		Second:       second,
		Millisecond:  millisecond,
		IsLeapYear:   year%4 == 0 && (year%100 != 0 || year%400 == 0),
		TimezoneName: UnsetZone,
	}
}

func TestDate_Add(t *testing.T) {
	tests := []struct {
		delta int
		unit  Unit
		want  Date
	}{
		{0, Hour, at(2025, time.May, 23, 3, 46, 48, 447)},

		{-1, Millisecond, at(2025, time.May, 23, 3, 46, 48, 446)},
		{600, Millisecond, at(2025, time.May, 23, 3, 46, 49, 47)},
		{-448, Millisecond, at(2025, time.May, 23, 3, 46, 47, 999)},
		{millisPerDay, Millisecond, at(2025, time.May, 24, 3, 46, 48, 447)},

		{15, Second, at(2025, time.May, 23, 3, 47, 3, 447)},
		{-15, Second, at(2025, time.May, 23, 3, 46, 33, 447)},

		{3, Minute, at(2025, time.May, 23, 3, 49, 48, 447)},
		{-3, Minute, at(2025, time.May, 23, 3, 43, 48, 447)},
		{15, Minute, at(2025, time.May, 23, 4, 1, 48, 447)},
		{-47, Minute, at(2025, time.May, 23, 2, 59, 48, 447)},

		{3, Hour, at(2025, time.May, 23, 6, 46, 48, 447)},
		{-1, Hour, at(2025, time.May, 23, 2, 46, 48, 447)},
		{21, Hour, at(2025, time.May, 24, 0, 46, 48, 447)},
		{-4, Hour, at(2025, time.May, 22, 23, 46, 48, 447)},

		{1, Day, at(2025, time.May, 24, 3, 46, 48, 447)},
		{9, Day, at(2025, time.June, 1, 3, 46, 48, 447)},
		{-23, Day, at(2025, time.April, 30, 3, 46, 48, 447)},
		{-142, Day, at(2025, time.January, 1, 3, 46, 48, 447)},
		{-143, Day, at(2024, time.December, 31, 3, 46, 48, 447)},
		{365, Day, at(2026, time.May, 23, 3, 46, 48, 447)},
		{-366, Day, at(2024, time.May, 22, 3, 46, 48, 447)},

		{-1, Month, at(2025, time.April, 23, 3, 46, 48, 447)},
		{9, Month, at(2026, time.February, 23, 3, 46, 48, 447)},
		{-5, Month, at(2024, time.December, 23, 3, 46, 48, 447)},
		{-17, Month, at(2023, time.December, 23, 3, 46, 48, 447)},

		{1, Year, at(2026, time.May, 23, 3, 46, 48, 447)},
		{3, Year, at(2028, time.May, 23, 3, 46, 48, 447)},
		{-1, Year, at(2024, time.May, 23, 3, 46, 48, 447)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%+d %v", tt.delta, tt.unit), func(t *testing.T) {
			got := FromMillis(fixture)
			got.Add(tt.delta, tt.unit)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Add(%d, %v) mismatch (-want +got):\n%s", tt.delta, tt.unit, diff)
			}
		})
	}
}

func TestDate_Add_LeapFebruary(t *testing.T) {
	tests := []struct {
		name  string
		start Date
		delta int
		unit  Unit
		want  Date
	}{
		{"into leap day", at(2024, time.February, 28, 12, 0, 0, 0), 1, Day, at(2024, time.February, 29, 12, 0, 0, 0)},
		{"past leap day", at(2024, time.February, 28, 12, 0, 0, 0), 2, Day, at(2024, time.March, 1, 12, 0, 0, 0)},
		{"common february", at(2025, time.February, 28, 12, 0, 0, 0), 1, Day, at(2025, time.March, 1, 12, 0, 0, 0)},
		{"back over leap day", at(2024, time.March, 1, 0, 0, 0, 0), -1, Day, at(2024, time.February, 29, 0, 0, 0, 0)},
		{"midnight rollover", at(2024, time.February, 29, 23, 59, 59, 999), 1, Millisecond, at(2024, time.March, 1, 0, 0, 0, 0)},
		{"new year", at(2024, time.December, 31, 23, 59, 59, 999), 1, Millisecond, at(2025, time.January, 1, 0, 0, 0, 0)},
		{"old year", at(2025, time.January, 1, 0, 0, 0, 0), -1, Second, at(2024, time.December, 31, 23, 59, 59, 0)},
		{"many months of days", at(2024, time.January, 31, 0, 0, 0, 0), 60, Day, at(2024, time.March, 31, 0, 0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start
			got.Add(tt.delta, tt.unit)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Add(%d, %v) mismatch (-want +got):\n%s", tt.delta, tt.unit, diff)
			}
		})
	}
}

func TestDate_Add_YearKeepsDay(t *testing.T) {
	d := at(2024, time.February, 29, 0, 0, 0, 0)
	d.Add(1, Year)
	want := Date{
		Year:         2025,
		Month:        time.February,
		MonthName:    "February",
		Day:          29,
		IsLeapYear:   false,
		TimezoneName: UnsetZone,
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Add(1, Year) mismatch (-want +got):\n%s", diff)
	}

	d.Add(-1, Year)
	if !d.IsLeapYear || d.Day != 29 {
		t.Errorf("Add(-1, Year) = %+v, want leap February 29", d)
	}
}

func TestDate_Add_RoundTrip(t *testing.T) {
	deltas := []int{1, 59, 61, 1000, 3599, 86401, 1 << 20}
	for _, unit := range []Unit{Millisecond, Second, Minute, Hour, Day} {
		for _, delta := range deltas {
			d := FromMillis(fixture)
			d.Add(delta, unit)
			d.Add(-delta, unit)
			if diff := cmp.Diff(FromMillis(fixture), d); diff != "" {
				t.Errorf("Add(±%d, %v) mismatch (-want +got):\n%s", delta, unit, diff)
			}
		}
	}
}

func TestDate_Add_MatchesExact(t *testing.T) {
	start := FromMillisExact(fixture)
	steps := []struct {
		unit  Unit
		delta int
		width int64
	}{
		{Millisecond, 123456789, 1},
		{Second, -98765, millisPerSecond},
		{Minute, 400000, millisPerMinute},
		{Hour, -30000, millisPerHour},
		{Day, 1234, millisPerDay},
	}
	for _, s := range steps {
		d := start
		d.Add(s.delta, s.unit)
		want := FromMillisExact(fixture + int64(s.delta)*s.width)
		if diff := cmp.Diff(want, d); diff != "" {
			t.Errorf("Add(%d, %v) mismatch (-want +got):\n%s", s.delta, s.unit, diff)
		}
	}
}

func TestDate_Weekday(t *testing.T) {
	if got := FromMillis(fixture).Weekday(); got != time.Friday {
		t.Errorf("Weekday() = %v, want Friday", got)
	}
}
