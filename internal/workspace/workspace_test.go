package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStamped(t *testing.T, dir, name string, stamp time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0644))
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestSelectArtifactNewestWins(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	writeStamped(t, dir, "one.go", base.Add(1*time.Second))
	writeStamped(t, dir, "two.go", base.Add(2*time.Second))
	newest := writeStamped(t, dir, "three.go", base.Add(3*time.Second))

	got, err := SelectArtifact(dir, ".go")
	require.NoError(t, err)
	assert.Equal(t, newest, got)
}

func TestSelectArtifactIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	match := writeStamped(t, dir, "app.go", base)
	writeStamped(t, dir, "notes.txt", base.Add(time.Minute))
	writeStamped(t, dir, "script.py", base.Add(2*time.Minute))

	got, err := SelectArtifact(dir, ".go")
	require.NoError(t, err)
	assert.Equal(t, match, got)
}

func TestSelectArtifactTieBreaksLexicographically(t *testing.T) {
	dir := t.TempDir()
	stamp := time.Now().Add(-time.Hour).Truncate(time.Second)

	writeStamped(t, dir, "alpha.go", stamp)
	want := writeStamped(t, dir, "zeta.go", stamp)

	got, err := SelectArtifact(dir, ".go")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSelectArtifactEmptyDir(t *testing.T) {
	got, err := SelectArtifact(t.TempDir(), ".go")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectArtifactMissingDir(t *testing.T) {
	got, err := SelectArtifact(filepath.Join(t.TempDir(), "nope"), ".go")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectArtifactSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor.go"), 0755))
	want := writeStamped(t, dir, "main.go", time.Now().Add(-2*time.Hour))

	got, err := SelectArtifact(dir, ".go")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteArtifactOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, WriteArtifact(path, "package main\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))
}

func TestEnsureDirInitializesModule(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "coding")

	require.NoError(t, EnsureDir(dir))

	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "module coding")
	assert.Contains(t, string(data), "go 1.21")
}

func TestEnsureDirKeepsExistingModule(t *testing.T) {
	dir := t.TempDir()
	gomod := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(gomod, []byte("module custom\n"), 0644))

	require.NoError(t, EnsureDir(dir))

	data, err := os.ReadFile(gomod)
	require.NoError(t, err)
	assert.Equal(t, "module custom\n", string(data))
}

func TestModuleNameSanitizes(t *testing.T) {
	assert.Equal(t, "myapp", moduleName(filepath.Join(t.TempDir(), "My-App")))
	assert.Equal(t, "coding", moduleName(filepath.Join(t.TempDir(), "---")))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "missing")))

	file := writeStamped(t, dir, "f.go", time.Now())
	assert.False(t, Exists(file))
}
