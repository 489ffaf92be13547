package build

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Runtime identifies a container engine whose run subcommand accepts the
// docker flag set (--rm, -v, -e, -w, --user).
type Runtime struct {
	Name    string // registry key, e.g. "docker"
	Binary  string // executable name or absolute path
	Display string // label used in operator messages, e.g. "Docker"
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Runtime{}
)

func init() {
	Register(Runtime{Name: "docker", Binary: "docker", Display: "Docker"})
	Register(Runtime{Name: "podman", Binary: "podman", Display: "Podman"})
}

// Register adds a runtime to the global registry.
func Register(rt Runtime) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[rt.Name]; exists {
		panic(fmt.Sprintf("build: duplicate runtime registration: %s", rt.Name))
	}
	registry[rt.Name] = rt
}

// Lookup returns the registered runtime with the given name.
func Lookup(name string) (Runtime, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	rt, ok := registry[name]
	return rt, ok
}

// Runtimes returns sorted names of all registered runtimes.
func Runtimes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveRuntime maps a configured runtime to a Runtime. Registered names
// resolve through the registry; anything else (typically a path to a
// compatible binary) is used as-is and labelled by its base name.
func ResolveRuntime(nameOrPath string) Runtime {
	if rt, ok := Lookup(nameOrPath); ok {
		return rt
	}
	base := filepath.Base(nameOrPath)
	return Runtime{
		Name:    base,
		Binary:  nameOrPath,
		Display: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}
