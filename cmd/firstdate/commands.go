package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AndrewOt/a-first-date/calendar"
	"github.com/AndrewOt/a-first-date/internal/config"
)

func parseMillis(s string) (int64, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds: %v", err)
	}
	return ms, nil
}

func newNowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the current date and time",
		Long: `Print the current date and time.

On Linux the system timezone and daylight saving time are applied.
Elsewhere the time is printed in UTC.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.newEnv(a.cfg).Now(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get current time: %w", err)
			}
			logrus.WithFields(logrus.Fields{
				"zone": d.TimezoneName,
				"dst":  d.DaylightSavings != nil && *d.DaylightSavings,
			}).Debug("current time")
			fmt.Fprintln(cmd.OutOrStdout(), d.Format(a.use24Hour()))
			return nil
		},
	}
}

func newConvertCommand(a *app) *cobra.Command {
	var (
		exact bool
		zone  string
	)
	cmd := &cobra.Command{
		Use:   "convert <millis>",
		Short: "Convert milliseconds since the epoch to a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := parseMillis(args[0])
			if err != nil {
				return err
			}
			d := calendar.FromMillis(ms)
			if exact {
				d = calendar.FromMillisExact(ms)
			}
			if zone != "" {
				if err := d.SetTimezone(catalog(a.cfg), zone); err != nil {
					return err
				}
				dst, err := d.IsDST(cmd.Context(), provider(a.cfg))
				if err != nil {
					return err
				}
				d.SetDaylightSavings(dst)
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Format(a.use24Hour()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "use exact Gregorian accounting instead of the mean year estimate")
	cmd.Flags().StringVarP(&zone, "zone", "z", "", "apply the offset and daylight saving time of this timezone")
	return cmd
}

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <millis> <delta> <unit> [<delta> <unit>...]",
		Short: "Add calendar units to a date",
		Long: `Add calendar units to the date of a millisecond timestamp.

Units are millisecond (ms), second (s), minute (m), hour (h), day (d),
month (mo) and year (y). Negative deltas subtract.`,
		Example: "  firstdate add 1747972008447 9 days -1 month",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 3 || len(args)%2 != 1 {
				return fmt.Errorf("expected <millis> followed by <delta> <unit> pairs, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := parseMillis(args[0])
			if err != nil {
				return err
			}
			d := calendar.FromMillis(ms)
			for i := 1; i < len(args); i += 2 {
				delta, err := strconv.Atoi(args[i])
				if err != nil {
					return fmt.Errorf("invalid delta %q: %v", args[i], err)
				}
				unit, err := calendar.ParseUnit(args[i+1])
				if err != nil {
					return err
				}
				d.Add(delta, unit)
				logrus.WithFields(logrus.Fields{
					"delta": delta,
					"unit":  unit,
					"date":  d.String(),
				}).Debug("added")
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Format(a.use24Hour()))
			return nil
		},
	}
}

func newOffsetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "offset <zone>",
		Short: "Print the standard UTC offset of a timezone in hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := catalog(a.cfg).Offset(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), offset)
			return nil
		},
	}
}

func newDSTCommand(a *app) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "dst <zone>",
		Short: "Print the daylight saving time window of a timezone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			w, err := provider(a.cfg).Window(cmd.Context(), year, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "start: %s\n", w.Start)
			fmt.Fprintf(out, "end:   %s\n", w.End)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year to resolve (default current year)")
	return cmd
}

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", a.configPath)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := config.Save(a.configPath, config.Default()); err != nil {
				return err
			}
			logrus.Infof("wrote default configuration to %s", a.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
