package calendar

import (
	"context"
	"runtime"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/AndrewOt/a-first-date/tzcatalog"
	"github.com/AndrewOt/a-first-date/zdump"
)

// DefaultZoneFile holds the system timezone name on Debian-like systems.
const DefaultZoneFile = "/etc/timezone"

// Env holds what Now needs from the host.
type Env struct {
	Clock quartz.Clock
	Fs    afero.Fs

	// ZoneFile is read for the timezone name unless Zone is set.
	ZoneFile string
	// Zone overrides the system timezone name.
	Zone string

	Catalog     tzcatalog.Catalog
	Transitions zdump.Provider

	// GOOS gates timezone detection. Only "linux" is supported.
	GOOS string
}

// DefaultEnv returns an Env for the running host. DST windows come from
// zdump, or from the US recurrence rule when zdump is not installed.
func DefaultEnv() *Env {
	return &Env{
		Clock:    quartz.NewReal(),
		Fs:       afero.NewOsFs(),
		ZoneFile: DefaultZoneFile,
		Catalog:  tzcatalog.Default(),
		Transitions: zdump.Fallback{
			Primary:   &zdump.Command{},
			Secondary: zdump.Recurrence{},
		},
		GOOS: runtime.GOOS,
	}
}

// Now returns the current time. On Linux the system timezone and DST are
// applied; elsewhere the UTC value is returned with both left unset.
// The returned Date is valid up to the step that failed.
func (e *Env) Now(ctx context.Context) (Date, error) {
	d := FromMillis(e.Clock.Now().UnixMilli())
	if e.GOOS != "linux" {
		logrus.WithField("goos", e.GOOS).Debug("timezone detection unsupported, using UTC")
		return d, nil
	}

	zone := e.Zone
	if zone == "" {
		var err error
		if zone, err = tzcatalog.SystemZone(e.Fs, e.ZoneFile); err != nil {
			return d, err
		}
	}
	if err := d.SetTimezone(e.Catalog, zone); err != nil {
		return d, err
	}
	dst, err := d.IsDST(ctx, e.Transitions)
	if err != nil {
		return d, err
	}
	d.SetDaylightSavings(dst)
	return d, nil
}
