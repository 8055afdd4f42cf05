// Package config loads sheetdock's runtime settings from defaults, an
// optional .sheetdock.toml file, SHEETDOCK_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	sderrors "github.com/matzehuels/sheetdock/pkg/errors"
)

// Config holds the tunables of the drag and snap interaction and of the
// surfaces that host it.
type Config struct {
	SnapThreshold float64       `mapstructure:"snap_threshold"`
	Clearance     float64       `mapstructure:"clearance"`
	RotationSpeed float64       `mapstructure:"rotation_speed"`
	FineFactor    float64       `mapstructure:"fine_factor"`
	FontSize      float64       `mapstructure:"font_size"`
	Tick          time.Duration `mapstructure:"tick"`
	Verbose       bool          `mapstructure:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SnapThreshold: 20,
		Clearance:     2,
		RotationSpeed: 100,
		FineFactor:    0.1,
		FontSize:      14,
		Tick:          50 * time.Millisecond,
	}
}

// New returns a viper instance with defaults, env binding and, unless path
// is empty, an explicit config file. With an empty path the working and home
// directories are searched for .sheetdock.toml.
func New(path string) *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("snap_threshold", d.SnapThreshold)
	v.SetDefault("clearance", d.Clearance)
	v.SetDefault("rotation_speed", d.RotationSpeed)
	v.SetDefault("fine_factor", d.FineFactor)
	v.SetDefault("font_size", d.FontSize)
	v.SetDefault("tick", d.Tick)
	v.SetDefault("verbose", d.Verbose)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".sheetdock")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("SHEETDOCK")
	v.AutomaticEnv()
	return v
}

// Load reads the config file (a missing default file is fine), binds flags
// and returns the validated configuration.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := New(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "read config")
		}
	}
	if flags != nil {
		if f := flags.Lookup("verbose"); f != nil {
			if err := v.BindPFlag("verbose", f); err != nil {
				return Config{}, fmt.Errorf("bind verbose: %w", err)
			}
		}
	}
	return Decode(v)
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every tunable is in range.
func (c Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"snap_threshold", c.SnapThreshold > 0},
		{"clearance", c.Clearance >= 0},
		{"rotation_speed", c.RotationSpeed > 0},
		{"fine_factor", c.FineFactor > 0 && c.FineFactor <= 1},
		{"font_size", c.FontSize > 0},
		{"tick", c.Tick > 0},
	}
	for _, ch := range checks {
		if !ch.ok {
			return sderrors.New(sderrors.ErrCodeInvalidInput, "config: %s out of range", ch.name)
		}
	}
	return nil
}
