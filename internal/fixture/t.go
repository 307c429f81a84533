package fixture

import (
	"fmt"
	"path/filepath"
	"runtime"

	"optest/internal/domain"
)

// abortCase is the panic value used to unwind a case after a failed assertion
type abortCase struct{}

// T is handed to setup, teardown and case bodies to record the case outcome
type T struct {
	group string
	name  string

	state   domain.CaseState
	failure *domain.AssertionFailure
	reason  string
}

func newT(group, name string) *T {
	return &T{group: group, name: name, state: domain.StatePending}
}

// Group returns the name of the group the running case belongs to
func (t *T) Group() string { return t.group }

// Name returns the name of the running case
func (t *T) Name() string { return t.name }

// Failed reports whether an assertion has failed in this case
func (t *T) Failed() bool { return t.state == domain.StateFailed }

// Assert fails the case when cond is false
func (t *T) Assert(cond bool, msg ...any) {
	if cond {
		return
	}
	text := "Expression Evaluated To FALSE"
	if len(msg) > 0 {
		text = fmt.Sprint(msg...)
	}
	t.failAt(2, text)
}

// AssertEqualInt fails the case when got differs from want
func (t *T) AssertEqualInt(want, got int) {
	if want == got {
		return
	}
	t.failAt(2, fmt.Sprintf("Expected %d Was %d", want, got))
}

// Fail fails the case unconditionally
func (t *T) Fail(msg string) {
	t.failAt(2, msg)
}

// Ignore stops the case and reports it as ignored
func (t *T) Ignore(msg string) {
	if !t.Failed() {
		t.state = domain.StateIgnored
		t.reason = msg
	}
	panic(abortCase{})
}

func (t *T) failAt(skip int, msg string) {
	_, file, line, ok := runtime.Caller(skip)
	if ok {
		file = filepath.Base(file)
	} else {
		file, line = "", 0
	}
	t.fail(file, line, msg)
	panic(abortCase{})
}

// fail records the first failure of the case; later ones are dropped
func (t *T) fail(file string, line int, msg string) {
	t.state = domain.StateFailed
	if t.failure != nil {
		return
	}
	t.failure = &domain.AssertionFailure{
		Group:   t.group,
		Case:    t.name,
		File:    file,
		Line:    line,
		Message: msg,
	}
}

// protect runs fn and reports whether it returned without aborting
func (t *T) protect(fn func(t *T)) (completed bool) {
	if fn == nil {
		return true
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		completed = false
		if _, ok := r.(abortCase); ok {
			return
		}
		t.fail("", 0, fmt.Sprintf("panic: %v", r))
	}()
	fn(t)
	return true
}
