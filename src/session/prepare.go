package session

import (
	"fmt"
	"os"
)

// CacheDirMode is applied to the cache directory on every run.
const CacheDirMode os.FileMode = 0o755

// PrepareError reports a failed directory setup step.
type PrepareError struct {
	Step string // "create", "chown" or "chmod"
	Path string
	Err  error
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
}

func (e *PrepareError) Unwrap() error { return e.Err }

// Prepare creates the build and cache directories and hands the cache to the
// invoking identity. Existing directories are not an error, so calling it
// again leaves the layout unchanged.
func Prepare(s *Session) error {
	for _, dir := range []string{s.BuildDir, s.CacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &PrepareError{Step: "create", Path: dir, Err: err}
		}
	}

	if err := os.Chown(s.CacheDir, s.UID, s.GID); err != nil {
		return &PrepareError{Step: "chown", Path: s.CacheDir, Err: err}
	}
	if err := os.Chmod(s.CacheDir, CacheDirMode); err != nil {
		return &PrepareError{Step: "chmod", Path: s.CacheDir, Err: err}
	}
	return nil
}
