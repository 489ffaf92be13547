package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".fortwasm.yml"

// Config is the top-level fortwasm configuration.
type Config struct {
	Version   int             `yaml:"version" toml:"version"`
	Paths     PathsConfig     `yaml:"paths" toml:"paths"`
	Toolchain ToolchainConfig `yaml:"toolchain" toml:"toolchain"`
	Build     BuildConfig     `yaml:"build" toml:"build"`
}

// PathsConfig describes the host-side directory layout of a session.
// BuildDir and CacheDir are relative to BaseDir; LogFile lives in BuildDir.
type PathsConfig struct {
	// BaseDir is the project root mounted into the container.
	// Empty means the current working directory.
	BaseDir  string `yaml:"base_dir" toml:"base_dir"`
	BuildDir string `yaml:"build_dir" toml:"build_dir"`
	CacheDir string `yaml:"cache_dir" toml:"cache_dir"`
	LogFile  string `yaml:"log_file" toml:"log_file"`
}

// Load reads configuration from a YAML or TOML file.
// If path is empty, it tries the default file.
// Returns defaults if the default file doesn't exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return Defaults(), nil
		}
		return nil, err
	}

	cfg := Defaults()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the configuration that reproduces the stock flang-wasm
// build: make all inside ghcr.io/r-wasm/flang-wasm:main.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			BuildDir: "build",
			CacheDir: "cache",
			LogFile:  "compile.log",
		},
		Toolchain: DefaultToolchainConfig(),
		Build:     DefaultBuildConfig(),
	}
}
