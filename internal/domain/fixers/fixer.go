// Package fixers contains the token-stream rewriting rules.
package fixers

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	m "csrules.dev/pkg/csrules/internal/model"
)

// NamePrefix is the vendor prefix carried by every rule in this package.
const NamePrefix = "CsRules/"

// ErrInvalidConfiguration is returned when a rule receives an unknown option
// or an option value outside its allowed set.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Fixer is a rule that rewrites one file's token buffer in place.
type Fixer interface {
	Name() string
	Definition() Definition
	IsRisky() bool
	// Priority orders fixers; higher runs first.
	Priority() int
	Options() []OptionSpec
	// Configure validates and applies options. A nil map selects defaults.
	Configure(options map[string]any) error
	// IsCandidate is a fast pre-check. A true result does not guarantee a change.
	IsCandidate(tokens *m.Tokens) bool
	Fix(tokens *m.Tokens)
}

// WhitespacesAware is implemented by fixers that need the indent unit and
// line ending of the project.
type WhitespacesAware interface {
	SetWhitespacesConfig(cfg m.WhitespacesConfig)
}

// Definition documents a rule.
type Definition struct {
	Summary     string
	Description string
	// RiskyDescription explains the risk for risky rules.
	RiskyDescription string
	Samples          []CodeSample
}

// CodeSample is a before snippet, optionally with non-default options.
type CodeSample struct {
	Code    string
	Options map[string]any
}

// OptionSpec declares one configuration option.
type OptionSpec struct {
	Name        string
	Description string
	Allowed     []any
	Default     any
}

// ResolveOptions validates options against specs and fills in defaults.
func ResolveOptions(fixer string, specs []OptionSpec, options map[string]any) (map[string]any, error) {
	known := make(map[string]OptionSpec, len(specs))
	for _, spec := range specs {
		known[spec.Name] = spec
	}

	for name := range options {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: [%s] unknown option %q, expected one of %s",
				ErrInvalidConfiguration, fixer, name, optionNames(specs))
		}
	}

	resolved := make(map[string]any, len(specs))

	for _, spec := range specs {
		value, ok := options[spec.Name]
		if !ok {
			resolved[spec.Name] = spec.Default
			continue
		}

		if len(spec.Allowed) > 0 && !isAllowed(value, spec.Allowed) {
			return nil, fmt.Errorf("%w: [%s] option %q value %v is not allowed, expected one of %v",
				ErrInvalidConfiguration, fixer, spec.Name, value, spec.Allowed)
		}

		resolved[spec.Name] = value
	}

	return resolved, nil
}

func isAllowed(value any, allowed []any) bool {
	for _, candidate := range allowed {
		if fmt.Sprintf("%T", candidate) == fmt.Sprintf("%T", value) && candidate == value {
			return true
		}
	}

	return false
}

func optionNames(specs []OptionSpec) string {
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Name)
	}

	if len(names) == 0 {
		return "no options"
	}

	sort.Strings(names)

	return strings.Join(names, ", ")
}

// All returns a fresh, unconfigured instance of every rule in this package.
func All() []Fixer {
	return []Fixer{
		NewLineBreakBeforeThrowExpression(),
		NewVariableCase(),
		NewPhpdocSimplifyArrayKey(),
	}
}

// SortByPriority orders fixers so higher priorities run first, breaking ties
// by name for a stable order.
func SortByPriority(list []Fixer) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Priority() != list[j].Priority() {
			return list[i].Priority() > list[j].Priority()
		}

		return list[i].Name() < list[j].Name()
	})
}
