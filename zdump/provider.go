package zdump

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

// ErrDecode is returned when zdump output is not valid UTF-8 text.
var ErrDecode = errors.New("zdump output is not valid text")

// Provider resolves the DST window of a zone for one year.
type Provider interface {
	Window(ctx context.Context, year int, zone string) (Window, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, year int, zone string) (Window, error)

// Window calls fn.
func (fn ProviderFunc) Window(ctx context.Context, year int, zone string) (Window, error) {
	return fn(ctx, year, zone)
}

// DefaultPath is the zdump executable looked up in PATH when Command.Path is empty.
const DefaultPath = "zdump"

// Command is a Provider that runs zdump. The zero value is ready to use.
type Command struct {
	// Path is the zdump executable. If empty, DefaultPath is used.
	Path string
	// Rule selects the transitions. If its name is empty, Northern is used.
	Rule Rule
}

var _ Provider = &Command{}

// Args returns the zdump arguments that list the transitions of zone within
// year.
func Args(year int, zone string) []string {
	return []string{"-V", "-c", fmt.Sprintf("%d,%d", year, year+1), zone}
}

func (c *Command) path() string {
	if c.Path == "" {
		return DefaultPath
	}
	return c.Path
}

func (c *Command) rule() Rule {
	if c.Rule.Name == "" {
		return Northern
	}
	return c.Rule
}

// Window runs zdump for zone and year and extracts the DST window.
func (c *Command) Window(ctx context.Context, year int, zone string) (Window, error) {
	out, err := c.Output(ctx, year, zone)
	if err != nil {
		return Window{}, err
	}
	lines, err := Parse(bytes.NewReader(out))
	if err != nil {
		return Window{}, pkgerrors.Wrapf(err, "failed to parse %s output for %s", c.path(), zone)
	}
	w, err := c.rule().Window(lines)
	if err != nil {
		return Window{}, pkgerrors.Wrapf(err, "zone %s, year %d", zone, year)
	}
	logrus.WithFields(logrus.Fields{
		"zone":  zone,
		"start": w.Start.String(),
		"end":   w.End.String(),
	}).Debug("resolved DST window")
	return w, nil
}

// Output runs zdump and returns its standard output.
func (c *Command) Output(ctx context.Context, year int, zone string) ([]byte, error) {
	args := Args(year, zone)
	logrus.WithFields(logrus.Fields{
		"path": c.path(),
		"args": strings.Join(args, " "),
	}).Debug("running zdump")

	out, err := exec.CommandContext(ctx, c.path(), args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, pkgerrors.Wrapf(err, "failed to run %s: %s", c.path(), bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, pkgerrors.Wrapf(err, "failed to run %s", c.path())
	}
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("%s %s: %w", c.path(), zone, ErrDecode)
	}
	return out, nil
}

// Recurrence is a Provider that computes windows from the United States rule
// in force since 2007: DST starts on the second Sunday of March at 02:00
// standard time and ends on the first Sunday of November at 02:00 daylight
// time. The zone is not consulted.
type Recurrence struct{}

var _ Provider = Recurrence{}

var (
	recurrenceStart = HMS{Hours: 3}
	recurrenceEnd   = HMS{Hours: 1, Minutes: 59, Seconds: 59}
)

// Window returns the window for year.
func (Recurrence) Window(_ context.Context, year int, zone string) (Window, error) {
	start, err := nthSunday(year, time.March, 2)
	if err != nil {
		return Window{}, fmt.Errorf("start of DST %d: %w", year, err)
	}
	end, err := nthSunday(year, time.November, 1)
	if err != nil {
		return Window{}, fmt.Errorf("end of DST %d: %w", year, err)
	}
	w := Window{
		Start: stampOf(start, recurrenceStart),
		End:   stampOf(end, recurrenceEnd),
	}
	logrus.WithFields(logrus.Fields{
		"zone":  zone,
		"start": w.Start.String(),
		"end":   w.End.String(),
	}).Debug("computed DST window from recurrence")
	return w, nil
}

// nthSunday returns the n-th Sunday of month in year.
func nthSunday(year int, month time.Month, n int) (time.Time, error) {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.MONTHLY,
		Dtstart:   time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		Count:     1,
		Byweekday: []rrule.Weekday{rrule.SU.Nth(n)},
	})
	if err != nil {
		return time.Time{}, err
	}
	occ := r.All()
	if len(occ) == 0 || occ[0].Month() != month {
		return time.Time{}, fmt.Errorf("no Sunday #%d in %v", n, month)
	}
	return occ[0], nil
}

func stampOf(t time.Time, hms HMS) Stamp {
	return Stamp{Weekday: t.Weekday(), Year: t.Year(), Month: t.Month(), Day: t.Day(), Time: hms}
}

// Fallback is a Provider that asks Primary and, when the Primary executable
// cannot be found, Secondary.
type Fallback struct {
	Primary   Provider
	Secondary Provider
}

var _ Provider = Fallback{}

// Window returns the window of the first provider that is available.
func (f Fallback) Window(ctx context.Context, year int, zone string) (Window, error) {
	w, err := f.Primary.Window(ctx, year, zone)
	if err == nil || !unavailable(err) {
		return w, err
	}
	logrus.WithError(err).Debug("primary DST provider unavailable, using fallback")
	return f.Secondary.Window(ctx, year, zone)
}

func unavailable(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
