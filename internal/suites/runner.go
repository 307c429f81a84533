// Package suites registers the operator test groups with the fixture engine.
package suites

import (
	"io"

	"optest/internal/fixture"
)

// RunAllTests registers every group, always in the same order.
func RunAllTests(r *fixture.Registry) error {
	for _, register := range []fixture.RegisterFunc{
		registerPlus,
		registerMinus,
	} {
		if err := register(r); err != nil {
			return err
		}
	}
	return nil
}

// Main runs the operator suites with args passed through to the engine
// and returns the process exit code.
func Main(args []string, out io.Writer, reporters ...fixture.Reporter) int {
	return fixture.Main(args, out, RunAllTests, reporters...)
}
