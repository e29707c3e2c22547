package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AndrewOt/a-first-date/calendar"
	"github.com/AndrewOt/a-first-date/internal/config"
	"github.com/AndrewOt/a-first-date/tzcatalog"
	"github.com/AndrewOt/a-first-date/zdump"
)

// app carries the global flags and the loaded configuration to subcommands.
type app struct {
	logLevel   string
	configPath string
	use12Hour  bool

	cfg *config.Config

	// newEnv builds the environment for the now command.
	newEnv func(cfg *config.Config) *calendar.Env
}

func setupLogger(logLevel string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}
	return nil
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewCommand returns the root command.
func NewCommand() *cobra.Command {
	return newRootCommand(&app{newEnv: envFromConfig})
}

func newRootCommand(a *app) *cobra.Command {
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		defaultConfig = "firstdate.yaml"
	}

	cmd := &cobra.Command{
		Use:   "firstdate",
		Short: "firstdate converts, shifts and prints calendar dates",
		Long: `firstdate converts millisecond timestamps to calendar dates, adds and
subtracts calendar units, and applies timezone offsets and daylight saving time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := setupLogger(a.logLevel); err != nil {
				return err
			}
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logrus.WithFields(logrus.Fields{
				"config":     a.configPath,
				"dst_source": cfg.DSTSource,
			}).Debug("loaded configuration")
			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&a.logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&a.configPath, "config", defaultConfig, "config file path")
	globalFlags.BoolVar(&a.use12Hour, "12h", false, "print 12-hour time with AM/PM")

	cmd.AddCommand(
		newNowCommand(a),
		newConvertCommand(a),
		newAddCommand(a),
		newOffsetCommand(a),
		newDSTCommand(a),
		newConfigCommand(a),
	)
	return cmd
}

// use24Hour reports whether dates are printed in 24-hour form.
func (a *app) use24Hour() bool {
	return a.cfg.Clock24h && !a.use12Hour
}

// catalog returns the timezone table selected by cfg.
func catalog(cfg *config.Config) tzcatalog.Catalog {
	if cfg.TimezoneTable == "" {
		return tzcatalog.Default()
	}
	return tzcatalog.NewFile(afero.NewOsFs(), cfg.TimezoneTable)
}

// provider returns the DST window source selected by cfg.
func provider(cfg *config.Config) zdump.Provider {
	if cfg.DSTSource == config.DSTSourceRule {
		return zdump.Recurrence{}
	}
	return zdump.Fallback{
		Primary:   &zdump.Command{Path: cfg.ZdumpPath},
		Secondary: zdump.Recurrence{},
	}
}

func envFromConfig(cfg *config.Config) *calendar.Env {
	env := calendar.DefaultEnv()
	env.ZoneFile = cfg.TimezoneFile
	env.Zone = cfg.Timezone
	env.Catalog = catalog(cfg)
	env.Transitions = provider(cfg)
	return env
}
