package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "csrules.dev/pkg/csrules/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command

	mu     sync.Mutex
	config StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.config = newStartConfig(options)
	s.mu.Unlock()

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if shardCount > 0 {
		s.printf("Fixing with %d worker(s) (shard %d/%d)\n", threads, shardIndex, shardCount)
		return
	}

	s.printf("Fixing with %d worker(s)\n", threads)
}

// DisplayResult prints changed and failed files. Unchanged and cached files
// are not listed.
func (s *SimpleUI) DisplayResult(ctx context.Context, result m.FixResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch result.Status {
	case m.StatusFixed:
		s.printf("%s %s (%s)\n", s.fixedVerb(), result.Path, strings.Join(result.Applied, ", "))

		if s.config.showDiff && result.Diff != "" {
			s.printf("%s", result.Diff)
		}
	case m.StatusError:
		s.printf("Error %s: %s\n", result.Path, result.Err)
	case m.StatusUnchanged, m.StatusCached:
	}
}

func (s *SimpleUI) fixedVerb() string {
	if s.config.mode == ModeDryRun {
		return "Would fix"
	}

	return "Fixed"
}

// DisplaySummary prints the per-status file counts.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.FixSummary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("\n%s", renderSummaryTable(summary))
}

func renderSummaryTable(summary m.FixSummary) string {
	var tableBuffer bytes.Buffer

	fixedLabel := "Fixed"
	if summary.DryRun {
		fixedLabel = "Would fix"
	}

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Status", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	table.Append([]string{fixedLabel, strconv.Itoa(summary.Fixed)})
	table.Append([]string{"Unchanged", strconv.Itoa(summary.Unchanged)})
	table.Append([]string{"Cached", strconv.Itoa(summary.Cached)})
	table.Append([]string{"Errors", strconv.Itoa(summary.Errored)})
	table.SetFooter([]string{"Total", strconv.Itoa(summary.Scanned)})

	table.Render()

	return tableBuffer.String()
}

// DisplayRules prints the rule set as a table.
func (s *SimpleUI) DisplayRules(ctx context.Context, rules []m.RuleInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderRulesTable(rules))

	return nil
}

func renderRulesTable(rules []m.RuleInfo) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Rule", "Enabled", "Kind", "Priority", "Options"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	custom := 0

	for _, rule := range rules {
		kind, priority := "delegated", "-"

		if rule.Custom {
			custom++
			kind, priority = "custom", strconv.Itoa(rule.Priority)

			if rule.Risky {
				kind = "custom, risky"
			}
		}

		table.Append([]string{rule.Name, yesNo(rule.Enabled), kind, priority, formatOptions(rule.Options)})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(rules)), "", fmt.Sprintf("%d custom", custom), "", ""})
	table.Render()

	return tableBuffer.String()
}

// DisplayDescription prints the documentation of a rule.
func (s *SimpleUI) DisplayDescription(ctx context.Context, desc m.RuleDescription) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderDescription(desc))

	return nil
}

func renderDescription(desc m.RuleDescription) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n%s\n", desc.Name, desc.Summary)

	if desc.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", desc.Description)
	}

	if desc.Risky {
		fmt.Fprintf(&b, "\nRisky: %s\n", desc.RiskyDescription)
	}

	fmt.Fprintf(&b, "\nPriority: %d\n", desc.Priority)

	if len(desc.Options) > 0 {
		var tableBuffer bytes.Buffer

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader([]string{"Option", "Allowed", "Default", "Description"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetAutoWrapText(false)

		for _, option := range desc.Options {
			table.Append([]string{option.Name, strings.Join(option.Allowed, ", "), option.Default, option.Description})
		}

		table.Render()
		fmt.Fprintf(&b, "\n%s", tableBuffer.String())
	}

	for i, sample := range desc.Samples {
		fmt.Fprintf(&b, "\nExample #%d", i+1)

		if len(sample.Options) > 0 {
			fmt.Fprintf(&b, " (%s)", formatOptions(sample.Options))
		}

		b.WriteString(":\n\n")

		if sample.Diff == "" {
			b.WriteString(sample.Code)
			continue
		}

		b.WriteString(sample.Diff)
	}

	return b.String()
}

func formatOptions(options map[string]any) string {
	if len(options) == 0 {
		return ""
	}

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, options[key]))
	}

	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
