package main

import (
	"errors"
	"fmt"
	"os"

	"optest/internal/cli"
	"optest/internal/cli/commands"
	"optest/internal/config"
	"optest/internal/exitcodes"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "optest",
		Short:         "Fixture-based test runner for the operators sample",
		Long:          `Runs the plus and minus test groups through a small fixture engine: every case runs between its group's setup and teardown, failures are reported per case, and the exit code tells calling scripts whether everything passed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *exitcodes.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(exitcodes.RuntimeErr)
	}
}
