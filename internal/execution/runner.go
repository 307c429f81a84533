package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"optest/internal/config"
	"optest/internal/domain"
)

// Runner executes an external test executable
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run executes path with args, echoing stdout and stderr to out while keeping a copy.
// A non-zero exit status is reported in the result; only a failure to start is an error.
func (r *Runner) Run(ctx context.Context, out io.Writer, path string, args ...string) (domain.ExecResult, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	// Start with current environment
	cmd.Env = os.Environ()

	// Set working directory
	cmd.Dir = r.config.ProjectPath

	var output bytes.Buffer
	w := io.MultiWriter(out, &output)
	cmd.Stdout = w
	cmd.Stderr = w

	start := time.Now()
	err := cmd.Run()
	result := domain.ExecResult{
		Path:     path,
		Output:   output.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return result, fmt.Errorf("run test executable %s: %w", path, err)
	}
	return result, nil
}
