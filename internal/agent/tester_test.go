package agent

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"devcrew/internal/workspace"
)

func TestCreateTestFile(t *testing.T) {
	dir := t.TempDir()
	tester := NewTester(dir, zap.NewNop())

	res := tester.CreateTestFile("package main\n\nfunc main() {}\n", "hello_world.go")
	require.True(t, res.Success)
	assert.Equal(t, filepath.Join(dir, "hello_world_test.go"), res.TestFile)

	data, err := os.ReadFile(res.TestFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package main")
	assert.Contains(t, string(data), "func TestSmoke(t *testing.T)")
	assert.Contains(t, string(data), "hello_world.go")
}

func TestCreateTestFileFailure(t *testing.T) {
	tester := NewTester(filepath.Join(t.TempDir(), "missing"), zap.NewNop())

	res := tester.CreateTestFile("package main", "app.go")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestRunTestsSuccess(t *testing.T) {
	dir := t.TempDir()
	tester := NewTester(dir, zap.NewNop())
	tester.Bin = "true"
	tester.Args = nil

	res := tester.RunTests(context.Background(), filepath.Join(dir, "app_test.go"))
	assert.True(t, res.Success)
	assert.Zero(t, res.ExitCode)
	assert.Empty(t, res.Error)
}

func TestRunTestsValidCodeInModuleDir(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}

	dir := filepath.Join(t.TempDir(), "coding")
	require.NoError(t, workspace.EnsureDir(dir))

	code := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"Hello, World!\")\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.go"), []byte(code), 0644))

	tester := NewTester(dir, zap.NewNop())
	created := tester.CreateTestFile(code, "hello.go")
	require.True(t, created.Success)

	res := tester.RunTests(context.Background(), created.TestFile)
	assert.True(t, res.Success, res.Output)
	assert.Zero(t, res.ExitCode)
	assert.Empty(t, res.Error)
}

func TestRunTestsNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	tester := NewTester(dir, zap.NewNop())
	tester.Bin = "sh"
	tester.Args = []string{"-c", "echo assertion failed; exit 1"}

	res := tester.RunTests(context.Background(), filepath.Join(dir, "app_test.go"))
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Output, "assertion failed")
	assert.NotEmpty(t, res.Error)
}

func TestRunTestsMissingRunner(t *testing.T) {
	dir := t.TempDir()
	tester := NewTester(dir, zap.NewNop())
	tester.Bin = "definitely-not-a-binary"
	tester.Args = nil

	res := tester.RunTests(context.Background(), filepath.Join(dir, "app_test.go"))
	assert.False(t, res.Success)
	assert.Equal(t, -1, res.ExitCode)
	assert.NotEmpty(t, res.Error)
}
