package execution

import (
	"context"
	"io"

	"optest/internal/domain"
)

// Executor runs a test executable and returns its captured output
type Executor interface {
	Run(ctx context.Context, out io.Writer, path string, args ...string) (domain.ExecResult, error)
}
