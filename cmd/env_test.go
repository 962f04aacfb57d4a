// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// flag parsing -> tag driver -> codec -> store -> SQLite.
//
// The binary runs with TAG_STORE=sqlite because extended attribute support
// depends on the filesystem the temp dir lives on. The xattr backend has its
// own tests in internal/store, which skip where xattrs are unavailable.

package cmd

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the tag binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "tag-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "tag"
		if os.PathSeparator == '\\' {
			binaryName = "tag.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates a temporary working directory and TAG_HOME.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// file creates an empty file (and its parents) under the working directory.
func (e *testEnv) file(name string) {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, nil, 0644))
}

// run executes tag with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	stdout, stderr, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("tag %v failed: %v\nstderr: %s", args, err, stderr)
	}
	return stdout
}

// runErr executes tag and returns stdout, stderr and any error.
func (e *testEnv) runErr(args ...string) (string, string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"TAG_HOME="+e.home,
		"TAG_STORE=sqlite",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// fails runs tag expecting exit status 1 and returns stdout and stderr.
func (e *testEnv) fails(args ...string) (string, string) {
	e.t.Helper()
	stdout, stderr, err := e.runErr(args...)
	var exitErr *exec.ExitError
	require.True(e.t, errors.As(err, &exitErr), "tag %v: want exit error, got %v", args, err)
	assert.Equal(e.t, 1, exitErr.ExitCode())
	return stdout, stderr
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}
