package build

import (
	"reflect"
	"strings"
	"testing"
)

func defaultOptions() RunOptions {
	rt, _ := Lookup("docker")
	return RunOptions{
		Runtime: rt,
		Image:   "ghcr.io/r-wasm/flang-wasm:main",
		Shell:   "bash",
		Mounts: []Mount{
			{Source: "/work", Target: "/src", Options: "z"},
			{Source: "/work/cache", Target: "/cache", Options: "z"},
		},
		Env: []EnvVar{
			{Key: "UID", Value: "1000"},
			{Key: "GID", Value: "1000"},
			{Key: "EM_CACHE", Value: "/cache/emsdk"},
		},
		WorkDir: "/src",
		UID:     1000,
		GID:     1000,
	}
}

func TestNewInvocationArgv(t *testing.T) {
	inv := NewInvocation(defaultOptions(), "cd src && make all", "Compiling project with make")

	want := []string{
		"docker", "run", "--rm",
		"-v", "/work:/src:z",
		"-v", "/work/cache:/cache:z",
		"-e", "UID=1000",
		"-e", "GID=1000",
		"-e", "EM_CACHE=/cache/emsdk",
		"-w", "/src",
		"--user", "1000:1000",
		"ghcr.io/r-wasm/flang-wasm:main",
		"bash", "-c", "cd src && make all",
	}
	if got := inv.Argv(); !reflect.DeepEqual(got, want) {
		t.Fatalf("argv mismatch\n got: %q\nwant: %q", got, want)
	}
	if inv.Description() != "Compiling project with make" {
		t.Errorf("description = %q", inv.Description())
	}
	if inv.Command() != "cd src && make all" {
		t.Errorf("command = %q", inv.Command())
	}
	if inv.Runtime().Display != "Docker" {
		t.Errorf("runtime display = %q", inv.Runtime().Display)
	}
}

func TestInvocationString(t *testing.T) {
	inv := NewInvocation(defaultOptions(), "cd src && make all", "build")

	got := inv.String()
	if !strings.HasPrefix(got, "docker run --rm -v /work:/src:z ") {
		t.Errorf("unexpected prefix: %s", got)
	}
	if !strings.HasSuffix(got, " bash -c 'cd src && make all'") {
		t.Errorf("command not quoted as a single word: %s", got)
	}
}

func TestInvocationStringQuotesAwkwardPaths(t *testing.T) {
	opts := defaultOptions()
	opts.Mounts[0].Source = "/home/me/my project"
	inv := NewInvocation(opts, "echo 'hi'", "build")

	got := inv.String()
	if !strings.Contains(got, "'/home/me/my project:/src:z'") {
		t.Errorf("space in mount not quoted: %s", got)
	}
	if !strings.HasSuffix(got, `'echo '"'"'hi'"'"''`) {
		t.Errorf("single quotes not escaped: %s", got)
	}
}

func TestInvocationArgvIsACopy(t *testing.T) {
	inv := NewInvocation(defaultOptions(), "make", "build")

	argv := inv.Argv()
	argv[0] = "rm"
	if inv.Argv()[0] != "docker" {
		t.Fatal("mutating Argv result changed the invocation")
	}
}

func TestMountSpec(t *testing.T) {
	tests := []struct {
		name  string
		mount Mount
		want  string
	}{
		{"with options", Mount{Source: "/a", Target: "/b", Options: "z"}, "/a:/b:z"},
		{"no options", Mount{Source: "/a", Target: "/b"}, "/a:/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mount.Spec(); got != tt.want {
				t.Errorf("Spec() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewInvocationOmitsEmptyWorkDir(t *testing.T) {
	opts := defaultOptions()
	opts.WorkDir = ""
	for _, a := range NewInvocation(opts, "make", "build").Argv() {
		if a == "-w" {
			t.Fatal("unexpected -w flag")
		}
	}
}
