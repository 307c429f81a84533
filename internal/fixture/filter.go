package fixture

import (
	"path/filepath"
	"strings"
)

// MatchName reports whether name is selected by pattern.
// An empty pattern selects everything. Patterns with * or ? are matched as
// wildcards; patterns without them select names containing the pattern.
func MatchName(pattern, name string) bool {
	if pattern == "" {
		return true
	}

	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// "*plus*" style patterns: every non-empty part must appear, in order
		rest := name
		hasPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasPart = true
			i := strings.Index(rest, part)
			if i < 0 {
				return false
			}
			rest = rest[i+len(part):]
		}
		return hasPart
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
