// Package zdump resolves daylight saving time windows from the output of the
// zdump utility and decides whether a local date/time falls inside them.
//
// zdump -V prints one line per transition boundary:
//
//	America/New_York  Sun Mar  9 06:59:59 2025 UT = Sun Mar  9 01:59:59 2025 EST isdst=0 gmtoff=-18000
//	America/New_York  Sun Mar  9 07:00:00 2025 UT = Sun Mar  9 03:00:00 2025 EDT isdst=1 gmtoff=-14400
//
// The left side of "=" is universal time, the right side is local time.
package zdump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Line is one parsed line of zdump -V output.
type Line struct {
	Zone   string // Zone name as passed to zdump.
	UT     Stamp  // Universal time side.
	Local  Stamp  // Local time side.
	Abbrev string // Zone abbreviation, e.g. EDT.
	IsDST  bool   // isdst=1
	GMTOff int    // gmtoff in seconds east of UT. Zero when zdump omits it.
}

// Stamp is a calendar date and wall clock time as printed by zdump.
type Stamp struct {
	Weekday time.Weekday
	Year    int
	Month   time.Month
	Day     int
	Time    HMS
}

// HMS represents the time that is shown on a watch.
type HMS struct {
	Hours   int
	Minutes int
	Seconds int
}

// Compare returns -1, 0 or +1 depending on whether h is before, equal to or
// after o.
func (h HMS) Compare(o HMS) int {
	switch {
	case h.Hours != o.Hours:
		return cmpInt(h.Hours, o.Hours)
	case h.Minutes != o.Minutes:
		return cmpInt(h.Minutes, o.Minutes)
	default:
		return cmpInt(h.Seconds, o.Seconds)
	}
}

func (h HMS) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", h.Hours, h.Minutes, h.Seconds)
}

func (s Stamp) String() string {
	return fmt.Sprintf("%s %s %2d %s %d", s.Weekday.String()[:3], s.Month.String()[:3], s.Day, s.Time, s.Year)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ParseError is an error that occurred during parsing.
// It contains the line number and the line where the error occurred.
type ParseError struct {
	LineNumber int
	Line       string
	Err        error
}

// Error returns a string representation of the parse error, implementing the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.LineNumber, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// dstMarker identifies lines that carry a DST flag. Lines without it, such
// as the "= NULL" bounds printed for extreme times, are skipped.
const dstMarker = "isdst="

// lineGrammar matches a complete zdump -V line.
var lineGrammar = regexp.MustCompile(`^(\S+)\s+` +
	`(\w{3})\s+(\w{3})\s+(\d{1,2})\s+(\d{1,2}:\d{2}:\d{2})\s+(-?\d+)\s+UTC?\s+=\s+` +
	`(\w{3})\s+(\w{3})\s+(\d{1,2})\s+(\d{1,2}:\d{2}:\d{2})\s+(-?\d+)\s+` +
	`(\S+)\s+isdst=([01])(?:\s+gmtoff=(-?\d+))?\s*$`)

// Parse reads zdump -V output and returns its lines in order.
func Parse(r io.Reader) ([]Line, error) {
	var (
		result     []Line
		lineNumber int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if !strings.Contains(line, dstMarker) {
			continue
		}
		l, err := parseLine(line)
		if err != nil {
			return result, &ParseError{lineNumber, line, err}
		}
		result = append(result, l)
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner: %w", err)
	}
	return result, nil
}

func parseLine(line string) (Line, error) {
	m := lineGrammar.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Line{}, fmt.Errorf("unexpected line format")
	}
	var (
		l    = Line{Zone: m[1], Abbrev: m[12], IsDST: m[13] == "1"}
		errs error
		err  error
	)
	if l.UT, err = parseStamp(m[2], m[3], m[4], m[5], m[6]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("UT: %w", err))
	}
	if l.Local, err = parseStamp(m[7], m[8], m[9], m[10], m[11]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("local: %w", err))
	}
	if m[14] != "" {
		if l.GMTOff, err = strconv.Atoi(m[14]); err != nil {
			errs = errors.Join(errs, fmt.Errorf("gmtoff %q: %w", m[14], err))
		}
	}
	return l, errs
}

func parseStamp(weekday, month, day, hms, year string) (Stamp, error) {
	var (
		s    Stamp
		errs error
		err  error
	)
	if s.Weekday, err = parseWeekday(weekday); err != nil {
		errs = errors.Join(errs, err)
	}
	if s.Month, err = parseMonth(month); err != nil {
		errs = errors.Join(errs, err)
	}
	if s.Day, err = strconv.Atoi(day); err != nil {
		errs = errors.Join(errs, fmt.Errorf("day %q: %w", day, err))
	}
	if s.Time, err = parseHMS(hms); err != nil {
		errs = errors.Join(errs, fmt.Errorf("time %q: %w", hms, err))
	}
	if s.Year, err = strconv.Atoi(year); err != nil {
		errs = errors.Join(errs, fmt.Errorf("year %q: %w", year, err))
	}
	return s, errs
}

// parseMonth accepts an English month name or its three letter abbreviation.
func parseMonth(s string) (time.Month, error) {
	if len(s) < 3 {
		return 0, fmt.Errorf("month %q: too short", s)
	}
	l := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		if isAbbrev(l, strings.ToLower(m.String()), 3) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("month %q: invalid", s)
}

// parseWeekday accepts an English weekday name or its three letter abbreviation.
func parseWeekday(s string) (time.Weekday, error) {
	if len(s) < 3 {
		return 0, fmt.Errorf("weekday %q: too short", s)
	}
	l := strings.ToLower(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if isAbbrev(l, strings.ToLower(d.String()), 3) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("weekday %q: invalid", s)
}

// parseHMS parses a time in HH:MM:SS format.
func parseHMS(s string) (HMS, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return HMS{}, fmt.Errorf("expected 3 parts, got %d", len(parts))
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return HMS{}, fmt.Errorf("hours: %v", err)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return HMS{}, fmt.Errorf("minutes: %v", err)
	}
	ss, err := strconv.Atoi(parts[2])
	if err != nil {
		return HMS{}, fmt.Errorf("seconds: %v", err)
	}
	if hh > 24 || mm > 59 || ss > 60 {
		return HMS{}, fmt.Errorf("out of range")
	}
	return HMS{Hours: hh, Minutes: mm, Seconds: ss}, nil
}

// isAbbrev reports whether s is a prefix of long that is at least min
// characters long.
func isAbbrev(s, long string, min int) bool {
	return len(s) >= min && strings.HasPrefix(long, s)
}
