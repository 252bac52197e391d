package cliconfig

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/bft-labs/treeship/internal/domain"
)

// Config holds CLI configuration for treeship.
type Config struct {
	Source string
	Dest   string

	RunSizeMB      int
	ExcludePattern string

	RsyncPath    string
	RsyncOptions string

	MaxAttempts int
	RetryDelay  time.Duration

	Verbose bool
}

// DefaultConfig returns a Config with default values. Operator transfer
// options are seeded from the RSYNC_OPTIONS environment variable; a
// rsync_options value from the config file or TREESHIP_RSYNC_OPTIONS
// replaces the seed like any other layered override.
func DefaultConfig() Config {
	return Config{
		RunSizeMB:    128,
		RsyncPath:    "rsync",
		RsyncOptions: os.Getenv("RSYNC_OPTIONS"),
		MaxAttempts:  5,
		RetryDelay:   90 * time.Second,
	}
}

// RunSizeBytes returns the run-size threshold in bytes.
func (c *Config) RunSizeBytes() uint64 {
	return uint64(c.RunSizeMB) << 20
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source directory is required", domain.ErrInvalidConfig)
	}
	info, err := os.Stat(c.Source)
	if err != nil {
		return fmt.Errorf("%w: source %q: %v", domain.ErrInvalidConfig, c.Source, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: source %q is not a directory", domain.ErrInvalidConfig, c.Source)
	}
	if c.Dest == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrInvalidConfig)
	}
	if c.RunSizeMB <= 0 {
		return fmt.Errorf("%w: run size must be positive", domain.ErrInvalidConfig)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1", domain.ErrInvalidConfig)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay must not be negative", domain.ErrInvalidConfig)
	}
	if c.ExcludePattern != "" {
		if _, err := regexp.Compile(c.ExcludePattern); err != nil {
			return fmt.Errorf("%w: exclude pattern: %v", domain.ErrInvalidConfig, err)
		}
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
