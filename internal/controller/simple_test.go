package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	m "csrules.dev/pkg/csrules/internal/model"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return cmd, &buf
}

func TestSimpleUI_DisplayResult(t *testing.T) {
	fixed := m.FixResult{
		Path:    "src/a.php",
		Status:  m.StatusFixed,
		Applied: []string{"CsRules/variable_case"},
		Diff:    "--- a/src/a.php\n+++ b/src/a.php\n@@ -1 +1 @@\n-$a_b\n+$aB\n",
	}

	tests := []struct {
		name        string
		options     []StartOption
		result      m.FixResult
		wantContain []string
		wantMissing []string
	}{
		{
			name:        "fixed without diff",
			options:     []StartOption{WithFixMode(false)},
			result:      fixed,
			wantContain: []string{"Fixed src/a.php (CsRules/variable_case)"},
			wantMissing: []string{"+$aB"},
		},
		{
			name:        "dry run with diff",
			options:     []StartOption{WithFixMode(true), WithDiff(true)},
			result:      fixed,
			wantContain: []string{"Would fix src/a.php", "-$a_b\n+$aB\n"},
		},
		{
			name:        "error",
			result:      m.FixResult{Path: "b.php", Status: m.StatusError, Err: "tokenize: unterminated comment"},
			wantContain: []string{"Error b.php: tokenize: unterminated comment"},
		},
		{
			name:        "unchanged is silent",
			result:      m.FixResult{Path: "c.php", Status: m.StatusUnchanged},
			wantMissing: []string{"c.php"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, buf := newTestCommand()
			ui := NewSimpleUI(cmd)

			if err := ui.Start(context.Background(), tt.options...); err != nil {
				t.Fatalf("Start() error = %v", err)
			}

			ui.DisplayResult(context.Background(), tt.result)

			got := buf.String()
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q, got: %s", want, got)
				}
			}

			for _, unwanted := range tt.wantMissing {
				if strings.Contains(got, unwanted) {
					t.Errorf("output should not contain %q, got: %s", unwanted, got)
				}
			}
		})
	}
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewSimpleUI(cmd)

	ui.DisplaySummary(context.Background(), m.FixSummary{Scanned: 7, Fixed: 2, Unchanged: 3, Cached: 1, Errored: 1, DryRun: true})

	got := buf.String()
	for _, want := range []string{"Would fix", "Unchanged", "Cached", "Errors", "7"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q, got: %s", want, got)
		}
	}
}

func TestSimpleUI_DisplayConcurrencyInfo(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewSimpleUI(cmd)

	ui.DisplayConcurrencyInfo(context.Background(), 4, 1, 3)
	ui.DisplayConcurrencyInfo(context.Background(), 2, 0, 0)

	want := "Fixing with 4 worker(s) (shard 1/3)\nFixing with 2 worker(s)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestSimpleUI_DisplayRules(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewSimpleUI(cmd)

	rules := []m.RuleInfo{
		{Name: "array_syntax", Enabled: true, Options: map[string]any{"syntax": "short"}},
		{Name: "CsRules/variable_case", Enabled: true, Custom: true, Risky: true, Options: map[string]any{"case": "camel_case"}},
		{Name: "single_line_throw", Enabled: false},
	}

	if err := ui.DisplayRules(context.Background(), rules); err != nil {
		t.Fatalf("DisplayRules() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"array_syntax", "syntax=short", "delegated", "CsRules/variable_case", "custom, risky", "case=camel_case", "single_line_throw", "1 custom"} {
		if !strings.Contains(got, want) {
			t.Errorf("rules output missing %q, got: %s", want, got)
		}
	}
}

func TestSimpleUI_DisplayDescription(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewSimpleUI(cmd)

	desc := m.RuleDescription{
		Name:             "CsRules/variable_case",
		Summary:          "Enforce camel or snake case for variables.",
		Risky:            true,
		RiskyDescription: "Renames variables.",
		Options:          []m.RuleOption{{Name: "case", Allowed: []string{"camel_case", "snake_case"}, Default: "camel_case"}},
		Samples: []m.RuleSample{
			{Code: "<?php $a_b = 1;\n", Diff: "-<?php $a_b = 1;\n+<?php $aB = 1;\n"},
			{Code: "<?php $a = 1;\n", Options: map[string]any{"case": "snake_case"}},
		},
	}

	if err := ui.DisplayDescription(context.Background(), desc); err != nil {
		t.Fatalf("DisplayDescription() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"CsRules/variable_case",
		"Risky: Renames variables.",
		"camel_case, snake_case",
		"Example #1:",
		"+<?php $aB = 1;",
		"Example #2 (case=snake_case):",
		"<?php $a = 1;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("description missing %q, got: %s", want, got)
		}
	}
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewSimpleUI(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ui.Start(ctx); err == nil {
		t.Error("Start() should fail on a cancelled context")
	}

	ui.DisplayResult(ctx, m.FixResult{Path: "a.php", Status: m.StatusFixed})

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNewUI(t *testing.T) {
	cmd, _ := newTestCommand()

	if _, ok := NewUI(cmd, false).(*SimpleUI); !ok {
		t.Error("expected SimpleUI without a terminal")
	}

	if _, ok := NewUI(cmd, true).(*TUI); !ok {
		t.Error("expected TUI on a terminal")
	}

	if IsTTY(nil) {
		t.Error("nil file is not a terminal")
	}
}
