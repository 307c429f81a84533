package commands

import (
	"errors"
	"fmt"
	"os"

	"optest/internal/config"
	"optest/internal/exitcodes"
	"optest/internal/parser"
	"optest/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// VerifyCommand handles the verify command
type VerifyCommand struct {
	config  *config.Config
	storage storage.Storage
	parser  parser.Parser
}

// NewVerifyCommand creates a new VerifyCommand
func NewVerifyCommand(cfg *config.Config, st storage.Storage, outputParser parser.Parser) *VerifyCommand {
	return &VerifyCommand{
		config:  cfg,
		storage: st,
		parser:  outputParser,
	}
}

// Execute runs the command
func (vc *VerifyCommand) Execute(cmd *cobra.Command, args []string) error {
	path := vc.storage.Path()
	var output string
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return exitcodes.New(exitcodes.RuntimeErr, fmt.Errorf("read output file: %w", err))
		}
		output = string(data)
	} else {
		var err error
		if output, err = vc.storage.Load(); err != nil {
			return exitcodes.New(exitcodes.RuntimeErr, err)
		}
	}

	return checkOutput(cmd, vc.parser, output, path, vc.config.IgnoreFailures)
}

// checkOutput fails when output has no summary line, or when the summary
// reports failures and ignoreFailures is not set
func checkOutput(cmd *cobra.Command, p parser.Parser, output, path string, ignoreFailures bool) error {
	summary, err := p.ParseSummary(output)
	if err != nil {
		if errors.Is(err, parser.ErrNoSummary) {
			return exitcodes.New(exitcodes.RuntimeErr, fmt.Errorf("%w: %s", err, path))
		}
		return exitcodes.New(exitcodes.RuntimeErr, err)
	}

	if summary.OK() {
		color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "✓ %d Tests %d Failures %d Ignored\n",
			summary.Tests, summary.Failures, summary.Ignored)
		return nil
	}

	message := fmt.Sprintf("There were failing tests. See the results at: %s", path)
	if ignoreFailures {
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", message)
		return nil
	}
	return exitcodes.New(exitcodes.TestFailure, errors.New(message))
}
