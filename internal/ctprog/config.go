// Public domain.

package ctprog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfig is read when present if no config file is named.
const DefaultConfig = "cusptransit.yaml"

// Config holds defaults for the command line.
//
//	system: K
//	latitude: 52.22
//	longitude: 11.0
//	obscodes: /usr/local/share/obscode.dat
type Config struct {
	System    string  `yaml:"system"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Obscodes  string  `yaml:"obscodes"`
}

func defaultConfig() *Config {
	return &Config{System: "P", Obscodes: "obscode.dat"}
}

// ReadConfig reads fn over the defaults.  A missing file is an error only
// if required.
func ReadConfig(fn string, required bool) (*Config, error) {
	cfg := defaultConfig()
	b, err := os.ReadFile(fn)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
		return cfg, nil
	case err != nil:
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", fn, err)
	}
	if cfg.Latitude < -90 || cfg.Latitude > 90 {
		return nil, fmt.Errorf("config file %s: latitude %g", fn, cfg.Latitude)
	}
	return cfg, nil
}
