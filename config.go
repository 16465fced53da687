//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Output surface ring bounds.
const (
	DefaultOutputSurfaces = 4
	MinOutputSurfaces     = 2
	MaxOutputSurfaces     = 8
)

// Config configures a Driver.
type Config struct {
	// Display is the X display name. Empty selects $DISPLAY.
	Display string `toml:"display"`

	// LibraryPath is searched for libvdpau and libX11 before the system
	// paths.
	LibraryPath string `toml:"library_path"`

	// OutputSurfaces is the number of output surfaces in each presentation
	// ring.
	OutputSurfaces int `toml:"output_surfaces"`

	// Debug enables debug logging on stderr when no logger was set with
	// SetLogger.
	Debug bool `toml:"debug"`

	// StrictCapacity rejects presentations to drawables larger than the
	// output surfaces with StatusResolutionNotSupported instead of clipping
	// them.
	StrictCapacity bool `toml:"strict_capacity"`
}

// DefaultConfig returns the configuration used when no file or
// environment override is present.
func DefaultConfig() Config {
	return Config{OutputSurfaces: DefaultOutputSurfaces}
}

// Environment variables read by LoadConfig.
const (
	EnvConfig         = "VDPVA_CONFIG"
	EnvDisplay        = "VDPVA_DISPLAY"
	EnvLibraryPath    = "VDPVA_LIBRARY_PATH"
	EnvOutputSurfaces = "VDPVA_OUTPUT_SURFACES"
	EnvDebug          = "VDPVA_DEBUG"
	EnvStrictCapacity = "VDPVA_STRICT_CAPACITY"
)

// LoadConfig reads a TOML configuration file and applies environment
// overrides on top of it. An empty path uses $VDPVA_CONFIG; when that is
// unset too, only the defaults and the environment apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("vdpva: reading config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return Config{}, fmt.Errorf("vdpva: %s:%d:%d: %w", path, row, col, err)
			}
			return Config{}, fmt.Errorf("vdpva: parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDisplay); v != "" {
		c.Display = v
	}
	if v := os.Getenv(EnvLibraryPath); v != "" {
		c.LibraryPath = v
	}
	if v := os.Getenv(EnvOutputSurfaces); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("vdpva: %s=%q: %w", EnvOutputSurfaces, v, err)
		}
		c.OutputSurfaces = n
	}
	for _, b := range []struct {
		env string
		dst *bool
	}{
		{EnvDebug, &c.Debug},
		{EnvStrictCapacity, &c.StrictCapacity},
	} {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		on, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("vdpva: %s=%q: %w", b.env, v, err)
		}
		*b.dst = on
	}
	return nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(v)
}

// Validate checks the configuration. A zero OutputSurfaces selects the
// default.
func (c *Config) Validate() error {
	if c.OutputSurfaces == 0 {
		c.OutputSurfaces = DefaultOutputSurfaces
	}
	if c.OutputSurfaces < MinOutputSurfaces || c.OutputSurfaces > MaxOutputSurfaces {
		return fmt.Errorf("vdpva: output_surfaces must be in [%d, %d], got %d",
			MinOutputSurfaces, MaxOutputSurfaces, c.OutputSurfaces)
	}
	return nil
}

// Save writes c to path as TOML.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
