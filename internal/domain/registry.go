// Package domain contains the rule configuration and fix workflow of csrules.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"csrules.dev/pkg/csrules/internal/domain/fixers"
)

var (
	// ErrUnknownRule is returned for a CsRules/* name that is not registered.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrRiskyNotAllowed is returned when a risky rule is enabled without
	// risky rules being allowed.
	ErrRiskyNotAllowed = errors.New("risky rule not allowed")
	// ErrChangesDetected is returned by a dry run that found files to fix.
	ErrChangesDetected = errors.New("changes detected")
)

// FixerFactory builds a fresh, unconfigured fixer.
type FixerFactory func() fixers.Fixer

// Registry maps rule names to fixer factories.
type Registry interface {
	// Names returns the registered rule names in sorted order.
	Names() []string
	// Lookup resolves name case-insensitively to its registered spelling.
	Lookup(name string) (string, bool)
	// New builds a fresh fixer for name.
	New(name string) (fixers.Fixer, error)
}

type registry struct {
	factories map[string]FixerFactory
	names     []string
}

// NewRegistry registers each factory under the name of the fixer it builds.
func NewRegistry(factories ...FixerFactory) Registry {
	r := &registry{factories: make(map[string]FixerFactory, len(factories))}

	for _, factory := range factories {
		name := factory().Name()
		if _, ok := r.factories[name]; !ok {
			r.names = append(r.names, name)
		}

		r.factories[name] = factory
	}

	sort.Strings(r.names)

	return r
}

// DefaultRegistry registers every rule shipped with csrules.
func DefaultRegistry() Registry {
	return NewRegistry(
		func() fixers.Fixer { return fixers.NewLineBreakBeforeThrowExpression() },
		func() fixers.Fixer { return fixers.NewVariableCase() },
		func() fixers.Fixer { return fixers.NewPhpdocSimplifyArrayKey() },
	)
}

func (r *registry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *registry) Lookup(name string) (string, bool) {
	if _, ok := r.factories[name]; ok {
		return name, true
	}

	for _, registered := range r.names {
		if strings.EqualFold(registered, name) {
			return registered, true
		}
	}

	return "", false
}

func (r *registry) New(name string) (fixers.Fixer, error) {
	registered, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}

	return r.factories[registered](), nil
}

// IsCustomRule reports whether name belongs to the CsRules namespace, the
// rules executed by this tool. Names are matched case-insensitively.
func IsCustomRule(name string) bool {
	return len(name) >= len(fixers.NamePrefix) && strings.EqualFold(name[:len(fixers.NamePrefix)], fixers.NamePrefix)
}
