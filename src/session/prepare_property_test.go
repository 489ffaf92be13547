package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPrepareIdempotenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	root := t.TempDir()

	// Preparing any layout twice succeeds and leaves the same directories.
	properties.Property("second Prepare changes nothing", prop.ForAll(
		func(base, build, cache string) bool {
			if build == cache {
				return true
			}
			s := &Session{
				BuildDir: filepath.Join(root, base, build),
				CacheDir: filepath.Join(root, base, cache),
				UID:      os.Getuid(),
				GID:      os.Getgid(),
			}
			if err := Prepare(s); err != nil {
				return false
			}
			before, err := os.Stat(s.CacheDir)
			if err != nil {
				return false
			}
			if err := Prepare(s); err != nil {
				return false
			}
			after, err := os.Stat(s.CacheDir)
			return err == nil && after.Mode() == before.Mode() && after.Mode().Perm() == CacheDirMode
		},
		gen.Identifier(),
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
