package zdump

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedOutput is returned when zdump output lacks the transition
// lines a Rule needs.
var ErrMalformedOutput = errors.New("malformed zdump output")

// Window is the daylight saving period of one year in local time.
type Window struct {
	// Start is the first local instant observed with DST in effect.
	Start Stamp
	// End is the last local instant observed with DST in effect.
	End Stamp
}

// Rule describes in which months a hemisphere enters and leaves DST.
// Only rules whose start month precedes the end month are supported.
type Rule struct {
	Name       string
	StartMonth time.Month
	EndMonth   time.Month
}

// Northern is the North American pattern: DST starts in March and ends in
// November.
var Northern = Rule{Name: "northern", StartMonth: time.March, EndMonth: time.November}

func (r Rule) String() string {
	return r.Name
}

// Window picks the transitions of r from parsed zdump lines. The start is the
// first DST line in the start month, the end is the last DST line in the end
// month. DST lines in other months are ignored.
func (r Rule) Window(lines []Line) (Window, error) {
	var (
		w                  Window
		haveStart, haveEnd bool
	)
	for _, l := range lines {
		if !l.IsDST {
			continue
		}
		switch l.Local.Month {
		case r.StartMonth:
			if !haveStart {
				w.Start, haveStart = l.Local, true
			}
		case r.EndMonth:
			w.End, haveEnd = l.Local, true
		}
	}
	if !haveStart || !haveEnd {
		return Window{}, fmt.Errorf("%w: rule %s needs DST transitions in %v and %v, found start=%v end=%v",
			ErrMalformedOutput, r.Name, r.StartMonth, r.EndMonth, haveStart, haveEnd)
	}
	return w, nil
}

// Contains reports whether the local date/time at falls inside w. The year
// and weekday of at are ignored. Months before the start month and after the
// end month are never inside; months strictly between always are.
func (r Rule) Contains(w Window, at Stamp) bool {
	switch {
	case at.Month < r.StartMonth || at.Month > r.EndMonth:
		return false
	case at.Month == r.StartMonth:
		if at.Day != w.Start.Day {
			return at.Day > w.Start.Day
		}
		return at.Time.Compare(w.Start.Time) >= 0
	case at.Month == r.EndMonth:
		if at.Day != w.End.Day {
			return at.Day < w.End.Day
		}
		return at.Time.Compare(w.End.Time) <= 0
	default:
		return true
	}
}
