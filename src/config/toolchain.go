package config

import (
	"sort"
	"time"
)

// DefaultBuildCommand prepares the emsdk environment and cache, then runs the
// project's own makefile from the mounted source tree.
const DefaultBuildCommand = "source /opt/emsdk/emsdk_env.sh > /dev/null 2>&1 && " +
	"mkdir -p /cache/emsdk && " +
	"chmod 755 /cache/emsdk && " +
	"cd src && make all"

// ToolchainConfig describes the container that hosts the compiler.
type ToolchainConfig struct {
	// Runtime is a registered runtime name (docker, podman) or a path to a
	// binary that accepts the docker run flag set.
	Runtime string `yaml:"runtime" toml:"runtime"`

	// Image is the toolchain image reference.
	Image string `yaml:"image" toml:"image"`

	// Shell wraps the build command as `<shell> -c <command>`.
	Shell string `yaml:"shell" toml:"shell"`

	// SourceMount is the in-container path of the base directory. It is
	// also the container working directory.
	SourceMount string `yaml:"source_mount" toml:"source_mount"`

	// CacheMount is the in-container path of the cache directory.
	CacheMount string `yaml:"cache_mount" toml:"cache_mount"`

	// MountOptions is appended to both bind specs (z relabels for SELinux).
	MountOptions string `yaml:"mount_options" toml:"mount_options"`

	// Env holds extra variables passed with -e after UID and GID.
	Env map[string]string `yaml:"env" toml:"env"`
}

// BuildConfig describes the single command run inside the toolchain.
type BuildConfig struct {
	Description string   `yaml:"description" toml:"description"`
	Command     string   `yaml:"command" toml:"command"`
	Timeout     Duration `yaml:"timeout" toml:"timeout"`
}

// DefaultToolchainConfig returns the stock flang-wasm container settings.
func DefaultToolchainConfig() ToolchainConfig {
	return ToolchainConfig{
		Runtime:      "docker",
		Image:        "ghcr.io/r-wasm/flang-wasm:main",
		Shell:        "bash",
		SourceMount:  "/src",
		CacheMount:   "/cache",
		MountOptions: "z",
		Env: map[string]string{
			"EM_CACHE": "/cache/emsdk",
		},
	}
}

// DefaultBuildConfig returns the stock make-based build.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Description: "Compiling project with make",
		Command:     DefaultBuildCommand,
	}
}

// EnvKeys returns the configured env keys in emission order.
func (t ToolchainConfig) EnvKeys() []string {
	keys := make([]string, 0, len(t.Env))
	for k := range t.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Duration is a time.Duration that decodes from strings like "90s" or "10m"
// in both YAML and TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
