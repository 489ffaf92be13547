package config

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedEnv are always emitted by the invoker from the session identity.
var reservedEnv = map[string]bool{"UID": true, "GID": true}

// knownRuntimes are engines whose run subcommand accepts the docker flag set.
var knownRuntimes = map[string]bool{"docker": true, "podman": true}

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	// ── Version ───────────────────────────────────────────────────────────

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("version: must be 1, got %d", cfg.Version))
	}

	// ── Paths ─────────────────────────────────────────────────────────────

	for _, p := range []struct{ key, val string }{
		{"paths.build_dir", cfg.Paths.BuildDir},
		{"paths.cache_dir", cfg.Paths.CacheDir},
	} {
		switch {
		case p.val == "":
			errs = append(errs, fmt.Sprintf("%s: is required", p.key))
		case filepath.IsAbs(p.val):
			errs = append(errs, fmt.Sprintf("%s: must be relative to base_dir, got %q", p.key, p.val))
		case escapes(p.val):
			errs = append(errs, fmt.Sprintf("%s: must stay inside base_dir, got %q", p.key, p.val))
		}
	}

	switch lf := cfg.Paths.LogFile; {
	case lf == "":
		errs = append(errs, "paths.log_file: is required")
	case filepath.Base(lf) != lf || lf == "." || lf == "..":
		errs = append(errs, fmt.Sprintf("paths.log_file: must be a file name, got %q", lf))
	}

	// ── Toolchain ─────────────────────────────────────────────────────────

	tc := cfg.Toolchain
	if tc.Runtime == "" {
		errs = append(errs, "toolchain.runtime: is required")
	} else if !knownRuntimes[tc.Runtime] && !filepath.IsAbs(tc.Runtime) {
		warnings = append(warnings, fmt.Sprintf("toolchain.runtime: %q is not a known engine (docker, podman); it must accept docker run flags", tc.Runtime))
	}
	if tc.Image == "" {
		errs = append(errs, "toolchain.image: is required")
	}
	if tc.Shell == "" {
		errs = append(errs, "toolchain.shell: is required")
	}
	for _, m := range []struct{ key, val string }{
		{"toolchain.source_mount", tc.SourceMount},
		{"toolchain.cache_mount", tc.CacheMount},
	} {
		if !path.IsAbs(m.val) {
			errs = append(errs, fmt.Sprintf("%s: must be an absolute container path, got %q", m.key, m.val))
		}
	}
	if tc.SourceMount != "" && path.Clean(tc.SourceMount) == path.Clean(tc.CacheMount) {
		errs = append(errs, fmt.Sprintf("toolchain: source_mount and cache_mount must differ, both are %q", tc.SourceMount))
	}
	if strings.Contains(tc.MountOptions, ":") {
		errs = append(errs, fmt.Sprintf("toolchain.mount_options: must not contain ':', got %q", tc.MountOptions))
	}
	for _, k := range tc.EnvKeys() {
		switch {
		case !envKeyPattern.MatchString(k):
			errs = append(errs, fmt.Sprintf("toolchain.env: key %q is not a valid identifier", k))
		case reservedEnv[k]:
			errs = append(errs, fmt.Sprintf("toolchain.env: key %q is reserved for the invoking identity", k))
		}
	}

	// ── Build ─────────────────────────────────────────────────────────────

	if strings.TrimSpace(cfg.Build.Command) == "" {
		errs = append(errs, "build.command: is required")
	}
	if cfg.Build.Description == "" {
		warnings = append(warnings, "build.description: empty, log sections will have a blank header")
	}
	if cfg.Build.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("build.timeout: must not be negative, got %s", cfg.Build.Timeout.Std()))
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return warnings, nil
}

// escapes reports whether a relative path climbs out of its parent.
func escapes(rel string) bool {
	clean := filepath.Clean(rel)
	return clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
