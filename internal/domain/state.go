package domain

// CaseState is the lifecycle state of a single test case
type CaseState int

const (
	StatePending CaseState = iota
	StateRunning
	StatePassed
	StateFailed
	StateIgnored
)

// String provides the word used for the state in runner output
func (s CaseState) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateRunning:
		return "RUNNING"
	case StatePassed:
		return "PASS"
	case StateFailed:
		return "FAIL"
	case StateIgnored:
		return "IGNORE"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state is final for a run pass
func (s CaseState) Terminal() bool {
	return s == StatePassed || s == StateFailed || s == StateIgnored
}
