package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWhitespace is returned for an unsupported indent or line ending.
var ErrInvalidWhitespace = errors.New("invalid whitespace configuration")

// Default whitespace settings.
const (
	DefaultIndent     = "    "
	DefaultLineEnding = "\n"
)

// WhitespacesConfig is the indentation unit and line ending used when a fixer
// has to emit new whitespace.
type WhitespacesConfig struct {
	Indent     string
	LineEnding string
}

// DefaultWhitespacesConfig returns four-space indentation with `\n` line endings.
func DefaultWhitespacesConfig() WhitespacesConfig {
	return WhitespacesConfig{Indent: DefaultIndent, LineEnding: DefaultLineEnding}
}

// NewWhitespacesConfig validates and builds a WhitespacesConfig. The indent must
// be a non-empty run of spaces or a single tab, the line ending `\n` or `\r\n`.
func NewWhitespacesConfig(indent, lineEnding string) (WhitespacesConfig, error) {
	if indent == "" || (indent != "\t" && strings.Trim(indent, " ") != "") {
		return WhitespacesConfig{}, fmt.Errorf("%w: indent %q must be spaces or a single tab", ErrInvalidWhitespace, indent)
	}

	if lineEnding != "\n" && lineEnding != "\r\n" {
		return WhitespacesConfig{}, fmt.Errorf("%w: line ending %q must be \\n or \\r\\n", ErrInvalidWhitespace, lineEnding)
	}

	return WhitespacesConfig{Indent: indent, LineEnding: lineEnding}, nil
}
