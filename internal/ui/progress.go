package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"optest/internal/domain"
)

// ProgressBar reports case progress while the engine runs
type ProgressBar struct {
	out            io.Writer
	bar            *progressbar.ProgressBar
	passed, failed int
}

// NewProgressBar creates a progress bar drawing on out (usually stderr)
func NewProgressBar(out io.Writer) *ProgressBar {
	return &ProgressBar{out: out}
}

// RunStarted sizes the bar for the number of cases about to run
func (p *ProgressBar) RunStarted(total int) {
	p.passed, p.failed = 0, 0
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(p.description()),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(p.out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// CaseFinished advances the bar and updates the pass/fail counts
func (p *ProgressBar) CaseFinished(result domain.CaseResult) {
	if p.bar == nil {
		return
	}
	if result.State == domain.StateFailed {
		p.failed++
	} else {
		p.passed++
	}
	p.bar.Describe(p.description())
	_ = p.bar.Add(1)
}

// RunFinished completes the bar
func (p *ProgressBar) RunFinished(*domain.RunResult) {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func (p *ProgressBar) description() string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[success: %d", p.passed) +
		" | " +
		color.RedString("failed: %d]", p.failed)
}
