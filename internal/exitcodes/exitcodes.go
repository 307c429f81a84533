// Package exitcodes defines the exit codes used by optest.
//
// * Success (0): every executed case passed
// * TestFailure (1): one or more cases failed
// * RuntimeErr (2): usage errors, unreadable output, missing summary
package exitcodes

import "fmt"

const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// New wraps err with an exit code.
func New(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}
