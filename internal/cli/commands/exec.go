package commands

import (
	"context"
	"fmt"
	"io"

	"optest/internal/config"
	"optest/internal/exitcodes"
	"optest/internal/execution"
	"optest/internal/parser"
	"optest/internal/storage"

	"github.com/spf13/cobra"
)

// ExecCommand handles the exec command
type ExecCommand struct {
	config   *config.Config
	executor execution.Executor
	storage  storage.Storage
	parser   parser.Parser
}

// NewExecCommand creates a new ExecCommand
func NewExecCommand(cfg *config.Config, executor execution.Executor, st storage.Storage, outputParser parser.Parser) *ExecCommand {
	return &ExecCommand{
		config:   cfg,
		executor: executor,
		storage:  st,
		parser:   outputParser,
	}
}

// Execute runs the command
func (ec *ExecCommand) Execute(cmd *cobra.Command, args []string) error {
	capture, err := ec.storage.Create()
	if err != nil {
		return exitcodes.New(exitcodes.RuntimeErr, err)
	}
	defer capture.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := io.MultiWriter(cmd.OutOrStdout(), capture)
	result, err := ec.executor.Run(ctx, out, args[0], args[1:]...)
	if err != nil {
		return exitcodes.New(exitcodes.RuntimeErr, err)
	}

	if err := checkOutput(cmd, ec.parser, result.Output, ec.storage.Path(), ec.config.IgnoreFailures); err != nil {
		return err
	}
	// a clean summary from a process that still exited non-zero means it broke after reporting
	if result.ExitCode != 0 && !ec.config.IgnoreFailures {
		return exitcodes.New(exitcodes.RuntimeErr, fmt.Errorf("test executable %s exited with status %d", result.Path, result.ExitCode))
	}
	return nil
}
