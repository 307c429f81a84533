package commands

import (
	"optest/internal/config"
	"optest/internal/fixture"
	"optest/internal/parser"
	"optest/internal/storage"
	"optest/internal/suites"
	"optest/internal/ui"

	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	storage   storage.Storage
	parser    parser.Parser
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	st storage.Storage,
	outputParser parser.Parser,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		storage:   st,
		parser:    outputParser,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	registry, err := fixture.Build(suites.RunAllTests)
	if err != nil {
		return err
	}

	// Mark cases that failed in the last captured run, when there is one
	var failed map[string]struct{}
	if output, err := lc.storage.Load(); err == nil {
		failed = make(map[string]struct{})
		for _, f := range lc.parser.ParseFailures(output) {
			failed[f.Group+"."+f.Case] = struct{}{}
		}
	}

	lc.formatter.PrintCaseList(registry, lc.config.Flags.TestCases, failed)
	return nil
}
