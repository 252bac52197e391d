package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type FileConfig struct {
	RunSizeMB      int    `toml:"run_size_mb"`
	ExcludePattern string `toml:"exclude_pattern"`
	RsyncPath      string `toml:"rsync_path"`
	RsyncOptions   string `toml:"rsync_options"`
	MaxAttempts    int    `toml:"max_attempts"`
	RetryDelay     string `toml:"retry_delay"`
	Verbose        *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.treeship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".treeship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt("run-size", fc.RunSizeMB, &cfg.RunSizeMB)
	s.setString("exclude_pattern", fc.ExcludePattern, &cfg.ExcludePattern)
	s.setString("rsync-path", fc.RsyncPath, &cfg.RsyncPath)
	s.setString("rsync-options", fc.RsyncOptions, &cfg.RsyncOptions)
	s.setInt("max-attempts", fc.MaxAttempts, &cfg.MaxAttempts)
	if err := s.setDuration("retry-delay", fc.RetryDelay, &cfg.RetryDelay); err != nil {
		return err
	}
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
