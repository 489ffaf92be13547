package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sofmeright/fortwasm/src/build"
	"github.com/sofmeright/fortwasm/src/config"
)

// Session is the state of a single build run.
type Session struct {
	BaseDir  string
	BuildDir string
	CacheDir string
	LogPath  string
	UID      int
	GID      int

	Start   time.Time     // captured immediately before the invocation
	Elapsed time.Duration // set once the invocation succeeds
}

// New resolves the directory layout for baseDir (the current working
// directory when empty) and captures the invoking user's identity.
func New(paths config.PathsConfig) (*Session, error) {
	base := paths.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		base = wd
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolving base dir %s: %w", base, err)
	}

	buildDir := filepath.Join(abs, paths.BuildDir)
	return &Session{
		BaseDir:  abs,
		BuildDir: buildDir,
		CacheDir: filepath.Join(abs, paths.CacheDir),
		LogPath:  filepath.Join(buildDir, paths.LogFile),
		UID:      os.Getuid(),
		GID:      os.Getgid(),
	}, nil
}

// LogName returns the bare file name of the compile log.
func (s *Session) LogName() string {
	return filepath.Base(s.LogPath)
}

// Invocation resolves the container command for this session.
func (s *Session) Invocation(tc config.ToolchainConfig, bc config.BuildConfig) build.Invocation {
	env := []build.EnvVar{
		{Key: "UID", Value: fmt.Sprint(s.UID)},
		{Key: "GID", Value: fmt.Sprint(s.GID)},
	}
	for _, k := range tc.EnvKeys() {
		env = append(env, build.EnvVar{Key: k, Value: tc.Env[k]})
	}

	return build.NewInvocation(build.RunOptions{
		Runtime: build.ResolveRuntime(tc.Runtime),
		Image:   tc.Image,
		Shell:   tc.Shell,
		Mounts: []build.Mount{
			{Source: s.BaseDir, Target: tc.SourceMount, Options: tc.MountOptions},
			{Source: s.CacheDir, Target: tc.CacheMount, Options: tc.MountOptions},
		},
		Env:     env,
		WorkDir: tc.SourceMount,
		UID:     s.UID,
		GID:     s.GID,
	}, bc.Command, bc.Description)
}
