package calendar

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/AndrewOt/a-first-date/tzcatalog"
	"github.com/AndrewOt/a-first-date/zdump"
)

func newTestEnv(t *testing.T, goos string) *Env {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.UnixMilli(fixture))

	memFS := afero.NewMemMapFs()
	if err := afero.WriteFile(memFS, DefaultZoneFile, []byte("America/New_York\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &Env{
		Clock:    clock,
		Fs:       memFS,
		ZoneFile: DefaultZoneFile,
		Catalog:  testCatalog,
		Transitions: zdump.ProviderFunc(func(context.Context, int, string) (zdump.Window, error) {
			return window2025, nil
		}),
		GOOS: goos,
	}
}

func TestEnv_Now(t *testing.T) {
	got, err := newTestEnv(t, "linux").Now(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := at(2025, time.May, 22, 23, 46, 48, 447)
	want.TimezoneName = "America/New_York"
	want.TimezoneOffset = intPtr(-5)
	want.DaylightSavings = boolPtr(true)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Now() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnv_Now_StandardTime(t *testing.T) {
	env := newTestEnv(t, "linux")
	env.Clock.(*quartz.Mock).Set(time.Date(2025, time.December, 24, 18, 0, 0, 0, time.UTC))

	got, err := env.Now(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := at(2025, time.December, 24, 13, 0, 0, 0)
	want.TimezoneName = "America/New_York"
	want.TimezoneOffset = intPtr(-5)
	want.DaylightSavings = boolPtr(false)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Now() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnv_Now_Unsupported(t *testing.T) {
	env := newTestEnv(t, "darwin")
	env.Transitions = nil
	env.Catalog = nil

	got, err := env.Now(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(FromMillis(fixture), got); diff != "" {
		t.Errorf("Now() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnv_Now_ZoneOverride(t *testing.T) {
	env := newTestEnv(t, "linux")
	env.Zone = "Asia/Tokyo"
	env.Fs = afero.NewMemMapFs()

	got, err := env.Now(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.TimezoneName != "Asia/Tokyo" || got.Hour != 13 {
		t.Errorf("Now() = %v in %s, want 13:46 in Asia/Tokyo", got, got.TimezoneName)
	}
}

func TestEnv_Now_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Env)
		target error
	}{
		{
			name:   "missing zone file",
			modify: func(e *Env) { e.Fs = afero.NewMemMapFs() },
			target: fs.ErrNotExist,
		},
		{
			name: "empty zone file",
			modify: func(e *Env) {
				e.Fs = afero.NewMemMapFs()
				_ = afero.WriteFile(e.Fs, DefaultZoneFile, []byte("\n"), 0o644)
			},
			target: tzcatalog.ErrNoZone,
		},
		{
			name:   "unknown zone",
			modify: func(e *Env) { e.Catalog = catalog{} },
			target: tzcatalog.ErrNotFound,
		},
		{
			name: "malformed zdump output",
			modify: func(e *Env) {
				e.Transitions = zdump.ProviderFunc(func(context.Context, int, string) (zdump.Window, error) {
					return zdump.Window{}, zdump.ErrMalformedOutput
				})
			},
			target: zdump.ErrMalformedOutput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "linux")
			tt.modify(env)
			_, err := env.Now(context.Background())
			if !errors.Is(err, tt.target) {
				t.Errorf("Now() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestDefaultEnv(t *testing.T) {
	env := DefaultEnv()
	if env.ZoneFile != DefaultZoneFile {
		t.Errorf("ZoneFile = %q, want %q", env.ZoneFile, DefaultZoneFile)
	}
	if _, ok := env.Transitions.(zdump.Fallback); !ok {
		t.Errorf("Transitions = %T, want zdump.Fallback", env.Transitions)
	}
	if env.Clock == nil || env.Fs == nil || env.Catalog == nil {
		t.Errorf("DefaultEnv() left dependencies unset: %+v", env)
	}
}
