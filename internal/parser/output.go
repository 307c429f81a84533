package parser

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"optest/internal/domain"
)

var _ Parser = (*OutputParser)(nil)

// ErrNoSummary is returned when captured output has no summary line
var ErrNoSummary = errors.New("failed to find test summary in test output")

var (
	summaryPattern  = regexp.MustCompile(`^\s*(\d+)\s+Tests\s+(\d+)\s+Failures\s+(\d+)\s+Ignored\s*$`)
	casePattern     = regexp.MustCompile(`^TEST\((.+?), (.+?)\) (PASS|FAIL|IGNORE)(?:: (.*))?$`)
	locationPattern = regexp.MustCompile(`^([^:\s]+):(\d+): (.*)$`)
)

// OutputParser parses the plain text written by the fixture engine
type OutputParser struct{}

// NewOutputParser creates a new OutputParser
func NewOutputParser() *OutputParser {
	return &OutputParser{}
}

// ParseSummary returns the first summary line found in output
func (p *OutputParser) ParseSummary(output string) (domain.Summary, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		m := summaryPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		// the pattern only admits digits, so Atoi can only fail on overflow
		tests, err1 := strconv.Atoi(m[1])
		failures, err2 := strconv.Atoi(m[2])
		ignored, err3 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil || err3 != nil {
			return domain.Summary{}, errors.Errorf("malformed summary line %q", scanner.Text())
		}
		return domain.Summary{Tests: tests, Failures: failures, Ignored: ignored}, nil
	}
	if err := scanner.Err(); err != nil {
		return domain.Summary{}, errors.Wrap(err, "read test output")
	}
	return domain.Summary{}, ErrNoSummary
}

// ParseCases returns one result per case line, in output order
func (p *OutputParser) ParseCases(output string) []domain.CaseResult {
	var cases []domain.CaseResult
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		m := casePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		res := domain.CaseResult{Group: m[1], Case: m[2]}
		switch m[3] {
		case "PASS":
			res.State = domain.StatePassed
		case "IGNORE":
			res.State = domain.StateIgnored
			res.Reason = m[4]
		case "FAIL":
			res.State = domain.StateFailed
			res.Failure = p.parseFailure(m[1], m[2], m[4])
		}
		cases = append(cases, res)
	}
	return cases
}

// ParseFailures returns the failures reported in output
func (p *OutputParser) ParseFailures(output string) []domain.AssertionFailure {
	var failures []domain.AssertionFailure
	for _, c := range p.ParseCases(output) {
		if c.Failure != nil {
			failures = append(failures, *c.Failure)
		}
	}
	return failures
}

func (p *OutputParser) parseFailure(group, name, detail string) *domain.AssertionFailure {
	failure := &domain.AssertionFailure{Group: group, Case: name, Message: detail}
	if m := locationPattern.FindStringSubmatch(detail); m != nil {
		line, err := strconv.Atoi(m[2])
		if err == nil {
			failure.File = m[1]
			failure.Line = line
			failure.Message = m[3]
		}
	}
	return failure
}
