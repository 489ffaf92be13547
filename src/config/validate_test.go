package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  string
		wantWarn string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "wrong version",
			mutate:  func(c *Config) { c.Version = 2 },
			wantErr: "version: must be 1",
		},
		{
			name:    "absolute build dir",
			mutate:  func(c *Config) { c.Paths.BuildDir = "/tmp/build" },
			wantErr: "paths.build_dir: must be relative",
		},
		{
			name:    "cache dir escapes base",
			mutate:  func(c *Config) { c.Paths.CacheDir = "../cache" },
			wantErr: "paths.cache_dir: must stay inside base_dir",
		},
		{
			name:    "log file with directory",
			mutate:  func(c *Config) { c.Paths.LogFile = "logs/compile.log" },
			wantErr: "paths.log_file: must be a file name",
		},
		{
			name:    "missing image",
			mutate:  func(c *Config) { c.Toolchain.Image = "" },
			wantErr: "toolchain.image: is required",
		},
		{
			name:    "relative mount",
			mutate:  func(c *Config) { c.Toolchain.CacheMount = "cache" },
			wantErr: "toolchain.cache_mount: must be an absolute container path",
		},
		{
			name:    "same mounts",
			mutate:  func(c *Config) { c.Toolchain.CacheMount = "/src/" },
			wantErr: "source_mount and cache_mount must differ",
		},
		{
			name:    "reserved env key",
			mutate:  func(c *Config) { c.Toolchain.Env["UID"] = "0" },
			wantErr: `key "UID" is reserved`,
		},
		{
			name:    "invalid env key",
			mutate:  func(c *Config) { c.Toolchain.Env["1BAD"] = "x" },
			wantErr: `key "1BAD" is not a valid identifier`,
		},
		{
			name:    "blank command",
			mutate:  func(c *Config) { c.Build.Command = "   " },
			wantErr: "build.command: is required",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Build.Timeout = -1 },
			wantErr: "build.timeout: must not be negative",
		},
		{
			name:     "unknown runtime",
			mutate:   func(c *Config) { c.Toolchain.Runtime = "nerdctl" },
			wantWarn: `toolchain.runtime: "nerdctl" is not a known engine`,
		},
		{
			name:   "absolute runtime path",
			mutate: func(c *Config) { c.Toolchain.Runtime = "/opt/bin/docker" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			warnings, err := Validate(cfg)

			if tt.wantErr == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}

			joined := strings.Join(warnings, "\n")
			if tt.wantWarn == "" && len(warnings) > 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
			if tt.wantWarn != "" && !strings.Contains(joined, tt.wantWarn) {
				t.Errorf("warnings = %v, want containing %q", warnings, tt.wantWarn)
			}
		})
	}
}
