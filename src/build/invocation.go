package build

import (
	"strconv"

	"github.com/alessio/shellescape"
)

// Mount is a read-write bind mount from the host into the container.
type Mount struct {
	Source  string
	Target  string
	Options string // appended after a colon when non-empty, e.g. "z"
}

// Spec renders the -v argument: source:target[:options].
func (m Mount) Spec() string {
	if m.Options == "" {
		return m.Source + ":" + m.Target
	}
	return m.Source + ":" + m.Target + ":" + m.Options
}

// EnvVar is a single -e KEY=VALUE pair. Order is preserved.
type EnvVar struct {
	Key   string
	Value string
}

// RunOptions is the container contract for one run.
type RunOptions struct {
	Runtime Runtime
	Image   string
	Shell   string
	Mounts  []Mount
	Env     []EnvVar
	WorkDir string
	UID     int
	GID     int
}

// Invocation is a fully resolved container command. It is built once and
// never changes; Argv returns a copy.
type Invocation struct {
	runtime     Runtime
	argv        []string
	command     string
	description string
}

// NewInvocation builds the run command line:
//
//	<runtime> run --rm -v <mount>... -e <env>... -w <workdir>
//	  --user <uid>:<gid> <image> <shell> -c <command>
func NewInvocation(opts RunOptions, command, description string) Invocation {
	argv := []string{opts.Runtime.Binary, "run", "--rm"}
	for _, m := range opts.Mounts {
		argv = append(argv, "-v", m.Spec())
	}
	for _, e := range opts.Env {
		argv = append(argv, "-e", e.Key+"="+e.Value)
	}
	if opts.WorkDir != "" {
		argv = append(argv, "-w", opts.WorkDir)
	}
	argv = append(argv,
		"--user", strconv.Itoa(opts.UID)+":"+strconv.Itoa(opts.GID),
		opts.Image,
		opts.Shell, "-c", command,
	)

	return Invocation{
		runtime:     opts.Runtime,
		argv:        argv,
		command:     command,
		description: description,
	}
}

// Runtime returns the engine this invocation runs on.
func (inv Invocation) Runtime() Runtime { return inv.runtime }

// Command returns the shell command string run inside the container.
func (inv Invocation) Command() string { return inv.command }

// Description returns the label used for log sections and progress output.
func (inv Invocation) Description() string { return inv.description }

// Argv returns the complete argument vector, runtime binary first.
func (inv Invocation) Argv() []string {
	out := make([]string, len(inv.argv))
	copy(out, inv.argv)
	return out
}

// String returns the command line with every argument shell-quoted, suitable
// for pasting into a POSIX shell.
func (inv Invocation) String() string {
	return shellescape.QuoteCommand(inv.argv)
}
