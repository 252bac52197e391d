package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
run_size_mb = 256
exclude_pattern = '\.bak$'
rsync_path = "/usr/local/bin/rsync"
rsync_options = "--bwlimit=20000"
max_attempts = 3
retry_delay = "30s"
verbose = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig error = %v", err)
	}
	if fc.RunSizeMB != 256 {
		t.Errorf("RunSizeMB = %v, want 256", fc.RunSizeMB)
	}
	if fc.ExcludePattern != `\.bak$` {
		t.Errorf("ExcludePattern = %q, want %q", fc.ExcludePattern, `\.bak$`)
	}
	if fc.RsyncPath != "/usr/local/bin/rsync" {
		t.Errorf("RsyncPath = %v", fc.RsyncPath)
	}
	if fc.RsyncOptions != "--bwlimit=20000" {
		t.Errorf("RsyncOptions = %v", fc.RsyncOptions)
	}
	if fc.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %v, want 3", fc.MaxAttempts)
	}
	if fc.RetryDelay != "30s" {
		t.Errorf("RetryDelay = %v, want 30s", fc.RetryDelay)
	}
	if fc.Verbose == nil || !*fc.Verbose {
		t.Errorf("Verbose = %v, want true", fc.Verbose)
	}
}

func TestLoadFileConfig_Missing(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadFileConfig on missing file error = nil, want error")
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("run_size_mb = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig on invalid TOML error = nil, want error")
	}
}

func TestApplyFileConfig(t *testing.T) {
	verbose := true

	tests := []struct {
		name     string
		fc       FileConfig
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all values",
			fc: FileConfig{
				RunSizeMB:      64,
				ExcludePattern: "tmp",
				RsyncPath:      "/opt/rsync",
				RsyncOptions:   "--compress",
				MaxAttempts:    2,
				RetryDelay:     "45s",
				Verbose:        &verbose,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				RunSizeMB:      64,
				ExcludePattern: "tmp",
				RsyncPath:      "/opt/rsync",
				RsyncOptions:   "--compress",
				MaxAttempts:    2,
				RetryDelay:     45 * time.Second,
				Verbose:        true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			fc: FileConfig{
				RunSizeMB:      64,
				ExcludePattern: "tmp",
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
			name:    "rsync options replace the env seed",
			fc:      FileConfig{RsyncOptions: "--compress"},
			changed: map[string]bool{},
			initial: Config{RsyncOptions: "--bwlimit=20000"},
			expected: Config{
				RsyncOptions: "--compress",
			},
			wantErr: false,
		},
		{
			name:     "invalid retry delay",
			fc:       FileConfig{RetryDelay: "ninety seconds"},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fc, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	p := DefaultConfigPath()
	if p == "" {
		t.Skip("no user home directory")
	}
	if !strings.HasSuffix(p, filepath.Join(".treeship", "config.toml")) {
		t.Errorf("DefaultConfigPath = %q", p)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if FileExists(path) {
		t.Error("FileExists = true for missing file")
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists = false for existing file")
	}
}
