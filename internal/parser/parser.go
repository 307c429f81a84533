package parser

import "optest/internal/domain"

// Parser parses captured runner output and extracts failures
type Parser interface {
	ParseSummary(output string) (domain.Summary, error)
	ParseCases(output string) []domain.CaseResult
	ParseFailures(output string) []domain.AssertionFailure
}
