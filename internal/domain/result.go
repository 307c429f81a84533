package domain

import "time"

// CaseResult is the outcome of one case in one run pass
type CaseResult struct {
	Group    string
	Case     string
	State    CaseState
	Failure  *AssertionFailure // set when State is StateFailed
	Reason   string            // set when State is StateIgnored
	Duration time.Duration
}

// GroupResult aggregates the cases of one group
type GroupResult struct {
	Name    string
	Tests   int
	Passed  int
	Failed  int
	Ignored int
}

// OK reports whether no case in the group failed
func (g GroupResult) OK() bool {
	return g.Failed == 0
}

// RunResult accumulates pass/fail counts for a single invocation
type RunResult struct {
	Tests    int
	Failures int
	Ignored  int
	Passes   int
	Cases    []CaseResult
	Duration time.Duration
}

// Record adds a finished case to the counters
func (r *RunResult) Record(c CaseResult) {
	r.Tests++
	switch c.State {
	case StateFailed:
		r.Failures++
	case StateIgnored:
		r.Ignored++
	}
	r.Cases = append(r.Cases, c)
}

// OK reports whether every executed case passed or was ignored
func (r *RunResult) OK() bool {
	return r.Failures == 0
}

// Failed returns the failed cases in execution order
func (r *RunResult) Failed() []CaseResult {
	var failed []CaseResult
	for _, c := range r.Cases {
		if c.State == StateFailed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Groups returns per-group aggregates in first-seen order
func (r *RunResult) Groups() []GroupResult {
	var groups []GroupResult
	index := make(map[string]int)
	for _, c := range r.Cases {
		i, ok := index[c.Group]
		if !ok {
			i = len(groups)
			index[c.Group] = i
			groups = append(groups, GroupResult{Name: c.Group})
		}
		g := &groups[i]
		g.Tests++
		switch c.State {
		case StatePassed:
			g.Passed++
		case StateFailed:
			g.Failed++
		case StateIgnored:
			g.Ignored++
		}
	}
	return groups
}

// Summary returns the counts printed at the end of a run
func (r *RunResult) Summary() Summary {
	return Summary{Tests: r.Tests, Failures: r.Failures, Ignored: r.Ignored}
}

// Summary is the final tally line of a run, as printed or parsed from output
type Summary struct {
	Tests    int `json:"tests"`
	Failures int `json:"failures"`
	Ignored  int `json:"ignored"`
}

// OK reports whether the summary has no failures
func (s Summary) OK() bool {
	return s.Failures == 0
}

// ExecResult is the outcome of running an external test executable
type ExecResult struct {
	Path     string        // Path to the executable that was run
	Output   string        // Combined stdout and stderr
	ExitCode int           // Process exit status
	Duration time.Duration // Time taken to execute
}
