package commands

import (
	"fmt"
	"io"
	"os"
	"slices"

	"optest/internal/config"
	"optest/internal/domain"
	"optest/internal/exitcodes"
	"optest/internal/fixture"
	"optest/internal/metrics"
	"optest/internal/storage"
	"optest/internal/suites"
	"optest/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *RunCommand {
	return &RunCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// lastResult keeps the result of the run for stats and metrics
type lastResult struct {
	result *domain.RunResult
}

func (l *lastResult) RunStarted(int)                       {}
func (l *lastResult) CaseFinished(domain.CaseResult)       {}
func (l *lastResult) RunFinished(result *domain.RunResult) { l.result = result }

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {
		fmt.Fprint(cmd.OutOrStdout(), fixture.Usage())
		return nil
	}

	capture, err := rc.storage.Create()
	if err != nil {
		return exitcodes.New(exitcodes.RuntimeErr, err)
	}
	defer capture.Close()

	last := &lastResult{}
	reporters := []fixture.Reporter{last}

	var recorder *metrics.Recorder
	if rc.config.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		reporters = append(reporters, recorder)
	}
	if rc.config.Progress && ui.IsTerminal(os.Stderr) {
		reporters = append(reporters, ui.NewProgressBar(os.Stderr))
	}

	out := io.MultiWriter(cmd.OutOrStdout(), capture)
	code := suites.Main(args, out, reporters...)

	if last.result == nil {
		return exitcodes.New(code, fmt.Errorf("test run did not start"))
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(rc.config.MetricsFile); err != nil {
			color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}

	if rc.config.Stats && rc.formatter != nil {
		rc.formatter.PrintRunStats(last.result)
	}

	if code != exitcodes.Success {
		return exitcodes.New(code, fmt.Errorf("%d of %d test case(s) failed. See the results at: %s",
			last.result.Failures, last.result.Tests, rc.storage.Path()))
	}
	return nil
}
