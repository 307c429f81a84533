package ui

import "optest/internal/domain"

// Viewer displays test failures in an interactive TUI
type Viewer interface {
	View(failures []domain.AssertionFailure) error
}
