package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Tester owns the test-side capabilities: writing a test stub next to the
// artifact and running the external test runner against it. Neither
// operation needs the LLM runtime.
type Tester struct {
	WorkDir string

	// Runner invocation, overridable in tests. Defaults to `go test`.
	Bin  string
	Args []string

	log *zap.Logger
}

func NewTester(workDir string, log *zap.Logger) *Tester {
	return &Tester{
		WorkDir: workDir,
		Bin:     "go",
		Args:    []string{"test", "-v", "."},
		log:     log,
	}
}

// CreateTestFile writes a smoke-test stub for the artifact into the
// working directory, named after the artifact's stem.
func (t *Tester) CreateTestFile(code, filename string) TestFileResult {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	testFile := filepath.Join(t.WorkDir, stem+"_test.go")

	content := fmt.Sprintf(`package main

import "testing"

// Tests for %s. The stub exercises the generated entry point; task-specific
// assertions get layered on by later cycles.
func TestSmoke(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("main panicked: %%v", r)
		}
	}()
	main()
}
`, filepath.Base(filename))

	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.log.Error("could not create test file", zap.String("path", testFile), zap.Error(err))
		return TestFileResult{Success: false, Error: fmt.Sprintf("create test file: %v", err)}
	}
	return TestFileResult{Success: true, TestFile: testFile}
}

// RunTests invokes the external runner against testFile's directory and
// reports the exit code. A failing run is data, not an error: the caller
// decides whether to route it to the debugger.
func (t *Tester) RunTests(ctx context.Context, testFile string) TestRunResult {
	cmd := exec.CommandContext(ctx, t.Bin, t.Args...)
	cmd.Dir = filepath.Dir(testFile)

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))

	if err == nil {
		return TestRunResult{Success: true, ExitCode: 0, TestFile: testFile, Output: output}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		t.log.Warn("tests failed",
			zap.String("test_file", testFile),
			zap.Int("exit_code", exitErr.ExitCode()))
		msg := output
		if msg == "" {
			msg = exitErr.Error()
		}
		return TestRunResult{
			Success:  false,
			ExitCode: exitErr.ExitCode(),
			TestFile: testFile,
			Output:   output,
			Error:    msg,
		}
	}

	t.log.Error("could not run tests", zap.String("test_file", testFile), zap.Error(err))
	return TestRunResult{
		Success:  false,
		ExitCode: -1,
		TestFile: testFile,
		Output:   output,
		Error:    fmt.Sprintf("run tests: %v", err),
	}
}
