package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"TREESHIP_RUN_SIZE_MB":     "512",
				"TREESHIP_EXCLUDE_PATTERN": `\.iso$`,
				"TREESHIP_RSYNC_PATH":      "/opt/rsync",
				"TREESHIP_RSYNC_OPTIONS":   "--compress",
				"TREESHIP_MAX_ATTEMPTS":    "7",
				"TREESHIP_RETRY_DELAY":     "2m",
				"TREESHIP_VERBOSE":         "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				RunSizeMB:      512,
				ExcludePattern: `\.iso$`,
				RsyncPath:      "/opt/rsync",
				RsyncOptions:   "--compress",
				MaxAttempts:    7,
				RetryDelay:     2 * time.Minute,
				Verbose:        true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"TREESHIP_RUN_SIZE_MB":     "512",
				"TREESHIP_EXCLUDE_PATTERN": "tmp",
			},
			changed: map[string]bool{"run-size": true},
			initial: Config{RunSizeMB: 128},
			expected: Config{
				RunSizeMB:      128,
				ExcludePattern: "tmp",
			},
			wantErr: false,
		},
		{
			name: "rsync options replace the env seed",
			envVars: map[string]string{
				"TREESHIP_RSYNC_OPTIONS": "--compress",
			},
			changed: map[string]bool{},
			initial: Config{RsyncOptions: "--bwlimit=20000"},
			expected: Config{
				RsyncOptions: "--compress",
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid int",
			envVars: map[string]string{
				"TREESHIP_RUN_SIZE_MB": "lots",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"TREESHIP_RETRY_DELAY": "ninety",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name:     "no env vars leaves config untouched",
			envVars:  map[string]string{},
			changed:  map[string]bool{},
			initial:  Config{RunSizeMB: 128, RsyncPath: "rsync"},
			expected: Config{RunSizeMB: 128, RsyncPath: "rsync"},
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
