package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"optest/internal/domain"
	"optest/internal/fixture"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintRunStats prints a per-group table for a finished run and a one-line verdict
func (f *Formatter) PrintRunStats(result *domain.RunResult) {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetTitle(fmt.Sprintf("Test Execution Statistics (%s)", formatDuration(result.Duration)))
	t.AppendHeader(table.Row{"Group", "Tests", "Passed", "Failed", "Ignored", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Ignored", Align: text.AlignRight},
	})

	for _, g := range result.Groups() {
		t.AppendRow(table.Row{g.Name, g.Tests, g.Passed, g.Failed, g.Ignored, statusText(g.OK())})
	}

	passed := result.Tests - result.Failures - result.Ignored
	t.AppendFooter(table.Row{"Total", result.Tests, passed, result.Failures, result.Ignored, statusText(result.OK())})

	if result.OK() {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}
	if color.NoColor {
		t.SetStyle(table.StyleLight)
	}
	t.Render()

	fmt.Fprintln(f.out)
	if result.OK() {
		color.New(color.FgGreen).Fprintln(f.out, "✓ All tests passed!")
		return
	}
	color.New(color.FgRed).Fprintf(f.out, "✗ %d of %d test case(s) failed\n", result.Failures, result.Tests)
	for _, c := range result.Failed() {
		color.New(color.FgRed).Fprintf(f.out, "  |_ TEST(%s, %s): %s\n", c.Group, c.Case, c.Failure.Error())
	}
}

// PrintCaseList prints the registered groups, optionally with their cases.
// failed is optional; cases in it (keyed "group.case") are marked with [F] from the last run.
func (f *Formatter) PrintCaseList(registry *fixture.Registry, showCases bool, failed map[string]struct{}) {
	groups := registry.Groups()
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	if !showCases {
		color.New(color.FgGreen).Fprintf(f.out, "Found %d test group(s):\n\n", len(groups))
		for i, g := range groups {
			connector := "├── "
			if i == len(groups)-1 {
				connector = "└── "
			}
			cyan.Fprintf(f.out, "%s%s\n", connector, g.Name)
		}
		return
	}

	color.New(color.FgGreen).Fprintf(f.out, "Found %d test group(s) with %d test case(s):\n\n", len(groups), registry.CaseCount())
	for i, g := range groups {
		isLastGroup := i == len(groups)-1
		if isLastGroup {
			cyan.Fprintf(f.out, "└── %s\n", g.Name)
		} else {
			cyan.Fprintf(f.out, "├── %s\n", g.Name)
		}

		branch := "│   "
		if isLastGroup {
			branch = "    "
		}

		cases := g.Cases()
		if len(cases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", branch, red.Sprint("(no test cases registered)"))
			continue
		}
		for j, c := range cases {
			prefix := branch + "├── "
			if j == len(cases)-1 {
				prefix = branch + "└── "
			}
			marker := ""
			if _, ok := failed[g.Name+"."+c.Name]; ok {
				marker = " " + red.Sprint("[F]")
			}
			fmt.Fprintf(f.out, "%s%s%s\n", prefix, yellow.Sprint(c.Name), marker)
		}
	}
}

func statusText(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}
