package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optest/internal/cli"
	"optest/internal/config"
	"optest/internal/domain"
	"optest/internal/exitcodes"
	"optest/internal/parser"
	"optest/internal/storage"
	"optest/internal/ui"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return cfg
}

func testCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return exitcodes.Success
	}
	var exitErr *exitcodes.ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	return exitErr.ExitCode()
}

func TestRunCommand_CapturesOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsFile = filepath.Join(cfg.ProjectPath, "optest.prom")
	st := storage.NewFileStorage(cfg)
	var stats bytes.Buffer
	rc := NewRunCommand(cfg, st, ui.NewFormatter(&stats))

	cmd, stdout, _ := testCommand()
	require.NoError(t, rc.Execute(cmd, nil))

	assert.Contains(t, stdout.String(), "TEST(testPlus, plus) PASS")
	assert.Contains(t, stdout.String(), "2 Tests 0 Failures 0 Ignored\nOK\n")

	captured, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, stdout.String(), captured)

	assert.Contains(t, stats.String(), "✓ All tests passed!")
	assert.FileExists(t, cfg.MetricsFile)
}

func TestRunCommand_PassesArgumentsThrough(t *testing.T) {
	cfg := testConfig(t)
	cfg.Stats = false
	rc := NewRunCommand(cfg, storage.NewFileStorage(cfg), nil)

	cmd, stdout, _ := testCommand()
	require.NoError(t, rc.Execute(cmd, []string{"-g", "testPlus", "-r", "2"}))

	assert.Equal(t, 2, strings.Count(stdout.String(), "TEST(testPlus, plus) PASS"))
	assert.NotContains(t, stdout.String(), "testMinus")
	assert.Contains(t, stdout.String(), "2 Tests 0 Failures 0 Ignored")
}

func TestRunCommand_BadArguments(t *testing.T) {
	cfg := testConfig(t)
	rc := NewRunCommand(cfg, storage.NewFileStorage(cfg), nil)

	cmd, stdout, _ := testCommand()
	err := rc.Execute(cmd, []string{"--nope"})
	assert.Equal(t, exitcodes.RuntimeErr, exitCode(t, err))
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRunCommand_Help(t *testing.T) {
	cfg := testConfig(t)
	rc := NewRunCommand(cfg, storage.NewFileStorage(cfg), nil)

	cmd, stdout, _ := testCommand()
	require.NoError(t, rc.Execute(cmd, []string{"--help"}))
	assert.Contains(t, stdout.String(), "-g GROUP")
}

func writeOutput(t *testing.T, cfg *config.Config, content string) string {
	t.Helper()
	path := cfg.GetOutputPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const failedOutput = "TEST(testPlus, plus) PASS\n" +
	"TEST(testMinus, minus) FAIL: minus.go:18: Expression Evaluated To FALSE\n" +
	"\n-----------------------\n2 Tests 1 Failures 0 Ignored\nFAIL\n"

func TestVerifyCommand(t *testing.T) {
	tests := []struct {
		name           string
		output         string
		ignoreFailures bool
		expectedCode   int
	}{
		{name: "passing run", output: "-----------------------\n2 Tests 0 Failures 0 Ignored\nOK\n", expectedCode: exitcodes.Success},
		{name: "failing run", output: failedOutput, expectedCode: exitcodes.TestFailure},
		{name: "failing run ignored", output: failedOutput, ignoreFailures: true, expectedCode: exitcodes.Success},
		{name: "missing summary", output: "TEST(testPlus, plus) PASS\n", expectedCode: exitcodes.RuntimeErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.IgnoreFailures = tt.ignoreFailures
			writeOutput(t, cfg, tt.output)

			vc := NewVerifyCommand(cfg, storage.NewFileStorage(cfg), parser.NewOutputParser())
			cmd, _, stderr := testCommand()
			err := vc.Execute(cmd, nil)

			assert.Equal(t, tt.expectedCode, exitCode(t, err))
			if tt.ignoreFailures {
				assert.Contains(t, stderr.String(), "There were failing tests")
			}
		})
	}
}

func TestVerifyCommand_ExplicitFile(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.ProjectPath, "elsewhere.txt")
	require.NoError(t, os.WriteFile(path, []byte(failedOutput), 0644))

	vc := NewVerifyCommand(cfg, storage.NewFileStorage(cfg), parser.NewOutputParser())
	cmd, _, _ := testCommand()
	err := vc.Execute(cmd, []string{path})
	assert.Equal(t, exitcodes.TestFailure, exitCode(t, err))
	assert.Contains(t, err.Error(), path)

	err = vc.Execute(cmd, []string{filepath.Join(cfg.ProjectPath, "missing.txt")})
	assert.Equal(t, exitcodes.RuntimeErr, exitCode(t, err))
}

func TestRunThenVerify(t *testing.T) {
	cfg := testConfig(t)
	cfg.Stats = false
	st := storage.NewFileStorage(cfg)

	cmd, _, _ := testCommand()
	require.NoError(t, NewRunCommand(cfg, st, nil).Execute(cmd, nil))
	require.NoError(t, NewVerifyCommand(cfg, st, parser.NewOutputParser()).Execute(cmd, nil))
}

func TestListCommand(t *testing.T) {
	cfg := testConfig(t)
	cfg.Flags.TestCases = true
	writeOutput(t, cfg, failedOutput)

	var out bytes.Buffer
	lc := NewListCommand(cfg, storage.NewFileStorage(cfg), parser.NewOutputParser(), ui.NewFormatter(&out))
	cmd, _, _ := testCommand()
	require.NoError(t, lc.Execute(cmd, nil))

	assert.Contains(t, out.String(), "├── testPlus\n│   └── plus\n")
	assert.Contains(t, out.String(), "└── testMinus\n    └── minus [F]\n")
}

type fakeViewer struct {
	got []domain.AssertionFailure
}

func (f *fakeViewer) View(failures []domain.AssertionFailure) error {
	f.got = failures
	return nil
}

func TestFailuresCommand(t *testing.T) {
	cfg := testConfig(t)
	writeOutput(t, cfg, failedOutput)

	viewer := &fakeViewer{}
	fc := NewFailuresCommand(cfg, storage.NewFileStorage(cfg), parser.NewOutputParser(), viewer)
	cmd, _, _ := testCommand()
	require.NoError(t, fc.Execute(cmd, nil))

	require.Len(t, viewer.got, 1)
	assert.Equal(t, "testMinus", viewer.got[0].Group)
	assert.Equal(t, 18, viewer.got[0].Line)
}

func TestFailuresCommand_NoCapture(t *testing.T) {
	cfg := testConfig(t)
	fc := NewFailuresCommand(cfg, storage.NewFileStorage(cfg), parser.NewOutputParser(), &fakeViewer{})
	cmd, _, _ := testCommand()
	assert.Error(t, fc.Execute(cmd, nil))
}

type fakeExecutor struct {
	output   string
	exitCode int
	err      error
	path     string
	args     []string
}

func (f *fakeExecutor) Run(ctx context.Context, out io.Writer, path string, args ...string) (domain.ExecResult, error) {
	f.path = path
	f.args = args
	if f.err != nil {
		return domain.ExecResult{Path: path}, f.err
	}
	if _, err := io.WriteString(out, f.output); err != nil {
		return domain.ExecResult{}, err
	}
	return domain.ExecResult{Path: path, Output: f.output, ExitCode: f.exitCode}, nil
}

func TestExecCommand(t *testing.T) {
	passed := "TEST(testPlus, plus) PASS\n\n-----------------------\n1 Tests 0 Failures 0 Ignored\nOK\n"

	tests := []struct {
		name           string
		executor       *fakeExecutor
		ignoreFailures bool
		expectedCode   int
	}{
		{name: "passing executable", executor: &fakeExecutor{output: passed}, expectedCode: exitcodes.Success},
		{name: "failing executable", executor: &fakeExecutor{output: failedOutput, exitCode: 1}, expectedCode: exitcodes.TestFailure},
		{name: "failing executable ignored", executor: &fakeExecutor{output: failedOutput, exitCode: 1}, ignoreFailures: true, expectedCode: exitcodes.Success},
		{name: "crash after summary", executor: &fakeExecutor{output: passed, exitCode: 139}, expectedCode: exitcodes.RuntimeErr},
		{name: "no summary", executor: &fakeExecutor{output: "Segmentation fault\n", exitCode: 139}, expectedCode: exitcodes.RuntimeErr},
		{name: "cannot start", executor: &fakeExecutor{err: errors.New("no such file")}, expectedCode: exitcodes.RuntimeErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.IgnoreFailures = tt.ignoreFailures
			st := storage.NewFileStorage(cfg)

			ec := NewExecCommand(cfg, tt.executor, st, parser.NewOutputParser())
			cmd, stdout, _ := testCommand()
			err := ec.Execute(cmd, []string{"./build/unit_tests", "-v"})

			assert.Equal(t, tt.expectedCode, exitCode(t, err))
			assert.Equal(t, "./build/unit_tests", tt.executor.path)
			assert.Equal(t, []string{"-v"}, tt.executor.args)
			if tt.executor.err == nil {
				captured, loadErr := st.Load()
				require.NoError(t, loadErr)
				assert.Equal(t, stdout.String(), captured)
			}
		})
	}
}

func TestSplitRootArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		rootArgs   []string
		engineArgs []string
	}{
		{name: "no args"},
		{name: "engine only", args: []string{"-v", "-g", "testPlus"}, engineArgs: []string{"-v", "-g", "testPlus"}},
		{name: "output with value", args: []string{"--output", "out.txt", "-r", "2"}, rootArgs: []string{"--output", "out.txt"}, engineArgs: []string{"-r", "2"}},
		{name: "inline values", args: []string{"--config=optest.yaml", "-v", "-o=out.txt"}, rootArgs: []string{"--config=optest.yaml", "-o=out.txt"}, engineArgs: []string{"-v"}},
		{name: "short attached", args: []string{"-oout.txt", "-n", "plus"}, rootArgs: []string{"-oout.txt"}, engineArgs: []string{"-n", "plus"}},
		{name: "after terminator", args: []string{"-o", "a.txt", "--", "--output", "b.txt"}, rootArgs: []string{"-o", "a.txt"}, engineArgs: []string{"--output", "b.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootArgs, engineArgs := splitRootArgs(tt.args)
			assert.Equal(t, tt.rootArgs, rootArgs)
			assert.Equal(t, tt.engineArgs, engineArgs)
		})
	}
}

func newRootCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	testConfig(t)

	cfg := config.New()
	var flags cli.Flags
	root := &cobra.Command{Use: "optest", SilenceUsage: true, SilenceErrors: true}
	NewCommands(cfg).Register(root, &flags, cfg)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestRootCommand_RunHonorsRootFlags(t *testing.T) {
	tests := []struct {
		name string
		args func(path string) []string
	}{
		{name: "flag before run", args: func(p string) []string { return []string{"--output", p, "run"} }},
		{name: "flag after run", args: func(p string) []string { return []string{"run", "-o", p, "-g", "testPlus"} }},
		{name: "inline flag after run", args: func(p string) []string { return []string{"run", "--output=" + p} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "captured.txt")
			root, out := newRootCommand(t)
			root.SetArgs(tt.args(path))

			require.NoError(t, root.Execute())
			assert.FileExists(t, path)
			assert.Contains(t, out.String(), "TEST(testPlus, plus) PASS")

			captured, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(captured), "0 Failures 0 Ignored")
		})
	}
}

func TestRootCommand_RunHonorsConfigFile(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "optest.prom")
	configFile := filepath.Join(dir, "optest.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("stats: false\nmetrics_file: "+metricsFile+"\n"), 0644))

	root, out := newRootCommand(t)
	root.SetArgs([]string{"run", "--config", configFile, "-o", filepath.Join(dir, "output.txt"), "-n", "minus"})

	require.NoError(t, root.Execute())
	assert.FileExists(t, metricsFile)
	assert.NotContains(t, out.String(), "testPlus")
	assert.Contains(t, out.String(), "1 Tests 0 Failures 0 Ignored")
}

func TestRunCommand_MetricsWarningOnCommandStderr(t *testing.T) {
	cfg := testConfig(t)
	cfg.Stats = false
	blocker := filepath.Join(cfg.ProjectPath, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg.MetricsFile = filepath.Join(blocker, "optest.prom")
	rc := NewRunCommand(cfg, storage.NewFileStorage(cfg), nil)

	cmd, stdout, stderr := testCommand()
	require.NoError(t, rc.Execute(cmd, nil))

	assert.Contains(t, stderr.String(), "Warning:")
	assert.NotContains(t, stdout.String(), "Warning:")
}
