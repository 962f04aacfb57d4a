package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag_AddAndList(t *testing.T) {
	env := newTestEnv(t)
	env.file("notes.txt")

	env.run("-a", "work,home:blue", "notes.txt")

	out := env.run("notes.txt")
	assert.Equal(t, fmt.Sprintf("%-31s\thome,work\n", "notes.txt"), out)

	out = env.run("--list", "notes.txt")
	assert.Equal(t, fmt.Sprintf("%-31s\thome,work\n", "notes.txt"), out)
}

func TestTag_Set(t *testing.T) {
	env := newTestEnv(t)
	env.file("a")

	env.run("-a", "old", "a")
	env.run("-s", "new,newer", "a")
	assert.Equal(t, "new,newer\n", env.run("-N", "a"))

	env.run("-s", "", "a")
	assert.Equal(t, "a\n", env.run("a"), "empty set clears all tags")
}

func TestTag_Remove(t *testing.T) {
	env := newTestEnv(t)
	env.file("a")
	env.run("-a", "draft,wip,keep", "a")

	env.run("-r", "draft,wip", "a")
	assert.Equal(t, "keep\n", env.run("-N", "a"))

	env.run("-a", "x,y", "a")
	env.run("-r", "*", "a")
	assert.Equal(t, "", env.run("-N", "a"))
}

func TestTag_Match(t *testing.T) {
	env := newTestEnv(t)
	env.file("a")
	env.file("b")
	env.file("c")
	env.run("-a", "work,home", "a")
	env.run("-a", "work", "b")

	assert.Equal(t, "a\nb\n", sortLines(env.run("-m", "work", "-T")))
	assert.Equal(t, "a\n", env.run("-m", "work,home", "-T"))
	assert.Equal(t, "a\nb\n", sortLines(env.run("-m", "*", "-T")))
	assert.Equal(t, "c\n", env.run("-m", "", "-T"))

	out := env.run("-m", "nothing")
	assert.Empty(t, out, "no hits is still success")
}

func TestTag_Recursive(t *testing.T) {
	env := newTestEnv(t)
	env.file("dir/sub/deep.txt")
	env.file("dir/.hidden")
	env.run("-a", "deep", "dir/sub/deep.txt")
	env.run("-a", "hid", "dir/.hidden")

	out := env.run("-m", "*", "-R", "-T", "dir")
	assert.Equal(t, "dir/sub/deep.txt\n", out)

	out = env.run("-m", "*", "-R", "-A", "-T", "dir")
	assert.Equal(t, "dir/.hidden\ndir/sub/deep.txt\n", sortLines(out))

	out = env.run("-m", "*", "-T", "dir")
	assert.Empty(t, out, "without -R only the directory itself is considered")
}

func TestTag_DisplayToggles(t *testing.T) {
	env := newTestEnv(t)
	env.file("f")
	env.file("d/x")
	env.run("-a", "b,a", "f", "d")

	assert.Equal(t, "f\n    a\n    b\n", env.run("-g", "f"))
	assert.Equal(t, "a\nb\n", env.run("-g", "-N", "f"))
	assert.Equal(t, "f\n", env.run("-T", "f"))
	assert.Equal(t, "d/\n", env.run("-p", "-T", "d"))
	assert.Equal(t, "f\x00", env.run("-0", "-T", "f"))

	// last toggle of a pair wins
	assert.Equal(t, "f\n", env.run("-N", "-n", "-T", "f"))
	assert.Equal(t, fmt.Sprintf("%-31s\ta,b\n", "f"), env.run("-g", "-G", "f"))
}

func TestTag_Color(t *testing.T) {
	env := newTestEnv(t)
	env.file("f")
	env.run("-a", "r:red", "f")

	out := env.run("-c", "-N", "f")
	assert.True(t, strings.HasPrefix(out, "\x1b[41mr\x1b["), "got %q", out)

	assert.Equal(t, "r\n", env.run("-c", "-C", "-N", "f"))
	assert.Equal(t, "r\n", env.run("-N", "f"), "piped output is not colored by default")
}

func TestTag_DefaultsToWorkingDirectory(t *testing.T) {
	env := newTestEnv(t)
	env.file("one")
	env.file("two")
	env.file(".dot")
	env.run("-a", "x", "one")

	assert.Equal(t, "one\ntwo\n", sortLines(env.run("-T")))
	assert.Equal(t, ".dot\none\ntwo\n", sortLines(env.run("-T", "-A")))
	assert.Equal(t, "one\n", env.run("-m", "x", "-T"))
}

func TestTag_OperationRespecified(t *testing.T) {
	env := newTestEnv(t)
	env.file("a")

	_, stderr := env.fails("-a", "x", "-r", "y", "a")
	env.contains(stderr, "operation respecified")

	_, stderr = env.fails("-a", "x", "-a", "y", "a")
	env.contains(stderr, "operation respecified")

	assert.Equal(t, "a\n", env.run("a"), "nothing was written")
}

func TestTag_InvalidTag(t *testing.T) {
	env := newTestEnv(t)
	env.file("a")

	_, stderr := env.fails("-a", "bad\nname", "a")
	env.contains(stderr, "invalid tag")

	_, stderr = env.fails("-a", "caf\xe9", "a")
	env.contains(stderr, "invalid UTF-8")
}

func TestTag_PerPathFailure(t *testing.T) {
	env := newTestEnv(t)
	env.file("good")

	stdout, stderr := env.fails("missing", "good")
	assert.Equal(t, "good\n", stdout)
	env.contains(stderr, "tag: missing: ")

	_, stderr = env.fails("-a", "x", "missing", "good")
	env.contains(stderr, "tag: missing: ")
	assert.Equal(t, "x\n", env.run("-N", "good"), "remaining paths still processed")
}

func TestTag_Version(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("--version")
	assert.True(t, strings.HasPrefix(out, "tag v"), "got %q", out)
	assert.Equal(t, out, env.run("-v"))
}

func TestTag_Guide(t *testing.T) {
	env := newTestEnv(t)

	env.contains(env.run("--guide"), "# Tag Guide")
	env.contains(env.run("--guide=syntax"), "name:color")

	_, stderr := env.fails("--guide=nonexistent")
	env.contains(stderr, "Available:")
}

func TestTag_Info(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("--info")
	env.contains(out, "Version:")
	env.contains(out, "store.backend")
	env.contains(out, "sqlite")
	env.contains(out, filepath.Join(env.home, "log", "tag-log.db"))
}

func TestTag_LocalConfig(t *testing.T) {
	env := newTestEnv(t)
	env.file("f")
	env.run("-a", "b,a", "f")

	require.NoError(t, os.MkdirAll(filepath.Join(env.dir, ".tag"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, ".tag", "config.yaml"),
		[]byte("display:\n  garrulous: true\n  name: false\n"), 0644))
	assert.Equal(t, "a\nb\n", env.run("f"))
	assert.Equal(t, fmt.Sprintf("%-31s\ta,b\n", "f"), env.run("-G", "-n", "f"), "flags override config")
}

func TestTag_AuditLog(t *testing.T) {
	env := newTestEnv(t)
	env.file("f")
	env.run("-a", "x", "f")

	assert.FileExists(t, filepath.Join(env.home, "log", "tag-log.db"))
}

// sortLines sorts newline-terminated output so tests do not depend on
// directory order.
func sortLines(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	slices.Sort(lines)
	return strings.Join(lines, "\n") + "\n"
}

func TestTag_Prune(t *testing.T) {
	env := newTestEnv(t)
	env.file("keep")
	env.file("gone")
	env.run("-a", "x", "keep", "gone")
	require.NoError(t, os.Remove(filepath.Join(env.dir, "gone")))

	out := env.run("--prune", "--dry-run")
	env.contains(out, "would prune: ")
	env.contains(out, "gone")
	assert.NotContains(t, out, "keep")

	out = env.run("--prune")
	env.contains(out, "pruned: ")

	assert.Empty(t, env.run("--prune"))
	assert.Equal(t, "x\n", env.run("-N", "keep"))
}
