// Package controller provides output adapters for displaying fix results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "csrules.dev/pkg/csrules/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeFix StartMode = iota
	ModeDryRun
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode     StartMode
	showDiff bool
}

// WithFixMode selects ModeDryRun when dryRun is set and ModeFix otherwise.
func WithFixMode(dryRun bool) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeFix
		if dryRun {
			c.mode = ModeDryRun
		}
	}
}

// WithDiff makes the UI print the diff of every changed file.
func WithDiff(show bool) StartOption {
	return func(c *StartConfig) {
		c.showDiff = show
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var cfg StartConfig
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying fix progress and rule documentation.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int)
	// DisplayResult may be called concurrently from fix workers.
	DisplayResult(ctx context.Context, result m.FixResult)
	DisplaySummary(ctx context.Context, summary m.FixSummary)
	DisplayRules(ctx context.Context, rules []m.RuleInfo) error
	DisplayDescription(ctx context.Context, desc m.RuleDescription) error
}

// NewUI returns the interactive TUI when output is a terminal and the plain
// SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
