// Package diff renders unified diffs of fixed files.
package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

// Unified returns a unified diff between before and after, or an empty
// string when they are identical.
func Unified(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}

	return text, nil
}

// splitLines splits s after each newline. The last line always ends with a
// newline so hunks stay line-aligned; an empty string yields no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}

	lines[len(lines)-1] += "\n"

	return lines
}
