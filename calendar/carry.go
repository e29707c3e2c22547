package calendar

import (
	"time"

	"github.com/AndrewOt/a-first-date/internal/calmath"
)

// Carry is the result of adding a delta to one unit. Value is the new value
// of the unit, Carry the amount that overflowed into the next larger unit.
// Label is the month name for month results and empty otherwise.
type Carry struct {
	Value int
	Carry int
	Label string
}

// Carried reports whether the delta left the unit's range.
func (c Carry) Carried() bool {
	return c.Carry != 0
}

// Propagate adds delta to a zero-based unit value with the given modulus.
// Division is floored, so a negative result borrows from the next unit:
// Propagate(0, -1, 60) is {Value: 59, Carry: -1}.
func Propagate(current, delta, modulus int) Carry {
	v := current + delta
	return Carry{Value: floorMod(v, modulus), Carry: floorDiv(v, modulus)}
}

// PropagateMonth adds delta months to month and labels the result with the
// month name.
func PropagateMonth(month time.Month, delta int) Carry {
	c := Propagate(int(month)-1, delta, monthsPerYear)
	c.Value++
	c.Label = time.Month(c.Value).String()
	return c
}

// PropagateDay adds delta days to a one-based day of month. The modulus is
// the length of month, with February extended in leap years.
func PropagateDay(day, delta int, month time.Month, leap bool) Carry {
	c := Propagate(day-1, delta, calmath.MonthLength(month, leap))
	c.Value++
	return c
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
