// Package config holds the YAML configuration of the firstdate command.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DST sources.
const (
	DSTSourceZdump = "zdump"
	DSTSourceRule  = "rule"
)

// Config is the top-level configuration.
type Config struct {
	// TimezoneTable is the offset table to read. Empty selects the embedded table.
	TimezoneTable string `yaml:"timezone_table"`

	// TimezoneFile holds the system timezone name.
	TimezoneFile string `yaml:"timezone_file"`

	// Timezone, if set, is used instead of the name in TimezoneFile.
	Timezone string `yaml:"timezone,omitempty"`

	// ZdumpPath is the zdump executable.
	ZdumpPath string `yaml:"zdump_path"`

	// DSTSource selects where DST windows come from:
	//   - "zdump" (default) runs ZdumpPath, falling back to the rule when it is missing
	//   - "rule" always uses the US recurrence rule
	DSTSource string `yaml:"dst_source"`

	// Clock24h selects 24-hour output.
	Clock24h bool `yaml:"clock_24h"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		TimezoneFile: "/etc/timezone",
		ZdumpPath:    "zdump",
		DSTSource:    DSTSourceZdump,
		Clock24h:     true,
	}
}

// Normalize replaces empty or unknown values with defaults.
func (c *Config) Normalize() {
	d := Default()
	if c.TimezoneFile == "" {
		c.TimezoneFile = d.TimezoneFile
	}
	if c.ZdumpPath == "" {
		c.ZdumpPath = d.ZdumpPath
	}
	switch c.DSTSource {
	case DSTSourceZdump, DSTSourceRule:
	default:
		c.DSTSource = d.DSTSource
	}
}

// DefaultPath returns the configuration file in the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to locate user config directory")
	}
	return filepath.Join(dir, "firstdate", "config.yaml"), nil
}

// Load reads the configuration at path. A missing file yields the defaults.
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, pkgerrors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to parse config %s", path)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path atomically with 0600 permissions, creating the
// parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return pkgerrors.Wrapf(err, "failed to create %s", dir)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal config")
	}

	tmp, err := os.CreateTemp(dir, ".firstdate-config-*.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pkgerrors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return pkgerrors.Wrapf(err, "failed to sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return pkgerrors.Wrapf(os.Rename(tmpName, path), "failed to replace %s", path)
}
