package fixture

import (
	"fmt"
	"io"
	"strings"
	"time"

	"optest/internal/domain"
	"optest/internal/exitcodes"
)

// SummarySeparator precedes the summary line in runner output
const SummarySeparator = "-----------------------"

// Reporter observes a run as it progresses
type Reporter interface {
	RunStarted(total int)
	CaseFinished(result domain.CaseResult)
	RunFinished(result *domain.RunResult)
}

// Engine runs the groups of a registry
type Engine struct {
	registry  *Registry
	opts      Options
	out       io.Writer
	reporters []Reporter
}

// NewEngine creates an Engine writing its text output to out
func NewEngine(registry *Registry, opts Options, out io.Writer) *Engine {
	if opts.Repeat < 1 {
		opts.Repeat = 1
	}
	return &Engine{
		registry: registry,
		opts:     opts,
		out:      out,
	}
}

// AddReporter registers a reporter notified of every finished case
func (e *Engine) AddReporter(r Reporter) {
	if r != nil {
		e.reporters = append(e.reporters, r)
	}
}

// Selected returns the groups and cases chosen by the filters, in run order
func (e *Engine) Selected() []*Case {
	var selected []*Case
	for _, g := range e.registry.Groups() {
		if !MatchName(e.opts.GroupFilter, g.Name) {
			continue
		}
		for _, c := range g.Cases() {
			if MatchName(e.opts.NameFilter, c.Name) {
				selected = append(selected, c)
			}
		}
	}
	return selected
}

// Run executes every selected case, prints per-case lines and the summary
func (e *Engine) Run() *domain.RunResult {
	start := time.Now()
	result := &domain.RunResult{}
	selected := e.Selected()

	for _, r := range e.reporters {
		r.RunStarted(len(selected) * e.opts.Repeat)
	}

	for pass := 1; pass <= e.opts.Repeat; pass++ {
		if e.opts.Verbose {
			fmt.Fprintf(e.out, "Test run %d of %d\n", pass, e.opts.Repeat)
		}
		current := ""
		for _, c := range selected {
			g, _ := e.registry.Lookup(c.Group)
			if e.opts.Verbose && c.Group != current {
				fmt.Fprintf(e.out, "GROUP(%s)\n", c.Group)
				current = c.Group
			}
			res := e.runCase(g, c)
			result.Record(res)
			e.printCase(res)
			for _, r := range e.reporters {
				r.CaseFinished(res)
			}
		}
		result.Passes++
	}

	result.Duration = time.Since(start)
	e.printSummary(result)
	for _, r := range e.reporters {
		r.RunFinished(result)
	}
	return result
}

// runCase moves one case from Pending through Running to a terminal state
func (e *Engine) runCase(g *Group, c *Case) domain.CaseResult {
	t := newT(c.Group, c.Name)
	start := time.Now()

	t.state = domain.StateRunning
	if t.protect(g.Setup) {
		t.protect(c.Body)
	}
	t.protect(g.TearDown)
	if !t.state.Terminal() {
		t.state = domain.StatePassed
	}

	return domain.CaseResult{
		Group:    c.Group,
		Case:     c.Name,
		State:    t.state,
		Failure:  t.failure,
		Reason:   t.reason,
		Duration: time.Since(start),
	}
}

func (e *Engine) printCase(res domain.CaseResult) {
	line := fmt.Sprintf("TEST(%s, %s) %s", res.Group, res.Case, res.State)
	switch res.State {
	case domain.StateFailed:
		line += ": " + res.Failure.Error()
	case domain.StateIgnored:
		if res.Reason != "" {
			line += ": " + res.Reason
		}
	}
	fmt.Fprintln(e.out, line)
}

func (e *Engine) printSummary(result *domain.RunResult) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(SummarySeparator + "\n")
	s := result.Summary()
	fmt.Fprintf(&b, "%d Tests %d Failures %d Ignored\n", s.Tests, s.Failures, s.Ignored)
	if result.OK() {
		b.WriteString("OK\n")
	} else {
		b.WriteString("FAIL\n")
	}
	io.WriteString(e.out, b.String())
}

// Run builds the registry with register, parses args and runs the selected cases.
// Argument errors are reported before any case runs.
func Run(args []string, out io.Writer, register RegisterFunc, reporters ...Reporter) (*domain.RunResult, error) {
	opts, err := ParseOptions(args)
	if err != nil {
		return nil, err
	}
	registry, err := Build(register)
	if err != nil {
		return nil, err
	}
	engine := NewEngine(registry, opts, out)
	for _, r := range reporters {
		engine.AddReporter(r)
	}
	return engine.Run(), nil
}

// Main is the single entry operation of a test executable: it registers all
// groups, runs them and returns the process exit code.
func Main(args []string, out io.Writer, register RegisterFunc, reporters ...Reporter) int {
	result, err := Run(args, out, register, reporters...)
	if err != nil {
		fmt.Fprintf(out, "%v\n%s", err, Usage())
		return exitcodes.RuntimeErr
	}
	return ExitCode(result)
}

// ExitCode maps a run result to the process exit code
func ExitCode(result *domain.RunResult) int {
	if result == nil || !result.OK() {
		return exitcodes.TestFailure
	}
	return exitcodes.Success
}
