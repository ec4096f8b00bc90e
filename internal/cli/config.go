package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"pyscan/pkg/errors"
)

// configFile is the per-project configuration file name, looked up in
// the scanned root.
const configFile = "pyscan.toml"

// Config holds per-project settings loaded from pyscan.toml.
//
// Example:
//
//	exclude = ["os", "sys"]
//	colormap = "plasma"
//	own_modules = false
//
//	[serve]
//	addr = ":9000"
//	watch = true
type Config struct {
	// Exclude lists packages removed from frequency results.
	Exclude []string `toml:"exclude"`

	// Colormap names the default color ramp for plots.
	Colormap string `toml:"colormap"`

	// OwnModules toggles own-module substitution. Defaults to true
	// when absent.
	OwnModules *bool `toml:"own_modules"`

	// Seed fixes the word cloud layout seed.
	Seed uint64 `toml:"seed"`

	Serve ServeConfig `toml:"serve"`
}

// ServeConfig holds settings for the serve command.
type ServeConfig struct {
	Addr  string `toml:"addr"`
	Watch bool   `toml:"watch"`
}

// ProcessOwnModules resolves the OwnModules toggle with its default.
func (c *Config) ProcessOwnModules() bool {
	if c.OwnModules == nil {
		return true
	}
	return *c.OwnModules
}

// loadConfig reads pyscan.toml from the project root. A missing file is
// not an error and yields the zero config.
func loadConfig(root string) (*Config, error) {
	path := filepath.Join(root, configFile)
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return &cfg, nil
}
