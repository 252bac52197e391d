package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (TREESHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setIntFromString("run-size", os.Getenv("TREESHIP_RUN_SIZE_MB"), &cfg.RunSizeMB); err != nil {
		return err
	}
	s.setString("exclude_pattern", os.Getenv("TREESHIP_EXCLUDE_PATTERN"), &cfg.ExcludePattern)
	s.setString("rsync-path", os.Getenv("TREESHIP_RSYNC_PATH"), &cfg.RsyncPath)
	s.setString("rsync-options", os.Getenv("TREESHIP_RSYNC_OPTIONS"), &cfg.RsyncOptions)
	if err := s.setIntFromString("max-attempts", os.Getenv("TREESHIP_MAX_ATTEMPTS"), &cfg.MaxAttempts); err != nil {
		return err
	}
	if err := s.setDuration("retry-delay", os.Getenv("TREESHIP_RETRY_DELAY"), &cfg.RetryDelay); err != nil {
		return err
	}
	s.setBoolFromString("verbose", os.Getenv("TREESHIP_VERBOSE"), &cfg.Verbose)

	return nil
}
