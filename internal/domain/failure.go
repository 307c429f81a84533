package domain

import "fmt"

// AssertionFailure is raised when an actual value does not satisfy an expected condition
type AssertionFailure struct {
	Group   string `json:"group"`
	Case    string `json:"case"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (f *AssertionFailure) Error() string {
	if f.File == "" {
		return f.Message
	}
	return fmt.Sprintf("%s:%d: %s", f.File, f.Line, f.Message)
}
