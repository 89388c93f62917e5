package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "csrules.dev/pkg/csrules/internal/model"
)

// Lines taken by the pager header and footer.
const pagerChrome = 4

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	fixedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// TUI implements UI for terminals. Results are collected while workers run
// and shown in a scrollable Bubble Tea pager once the run is over; output
// that fits the screen is printed directly.
type TUI struct {
	cmd *cobra.Command

	mu      sync.Mutex
	config  StartConfig
	results []m.FixResult
	summary *m.FixSummary
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// Start resets the collected results.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.config = newStartConfig(options)
	p.results = nil
	p.summary = nil

	return nil
}

// Close finalizes the UI.
func (p *TUI) Close(_ context.Context) {}

// DisplayConcurrencyInfo shows concurrency settings.
func (p *TUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	if err := ctx.Err(); err != nil {
		return
	}

	line := fmt.Sprintf("csrules: fixing with %d worker(s)", threads)
	if shardCount > 0 {
		line += fmt.Sprintf(" (shard %d/%d)", shardIndex, shardCount)
	}

	_, _ = fmt.Fprintln(p.output(), mutedStyle.Render(line))
}

// DisplayResult collects a result for the final report.
func (p *TUI) DisplayResult(ctx context.Context, result m.FixResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.results = append(p.results, result)
}

// DisplaySummary stores the summary shown by Wait.
func (p *TUI) DisplaySummary(ctx context.Context, summary m.FixSummary) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.summary = &summary
}

// Wait shows the collected results and blocks until the user quits the pager.
func (p *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.mu.Lock()
	content := p.renderResults()
	p.mu.Unlock()

	if err := p.page("csrules results", content); err != nil {
		_, _ = fmt.Fprintf(p.output(), "display error: %v\n", err)
	}
}

func (p *TUI) renderResults() string {
	var b strings.Builder

	verb := "fixed"
	if p.config.mode == ModeDryRun {
		verb = "would fix"
	}

	for _, result := range sortedResults(p.results) {
		switch result.Status {
		case m.StatusFixed:
			fmt.Fprintf(&b, "%s %s %s\n", fixedStyle.Render("✓ "+verb), result.Path,
				mutedStyle.Render("("+strings.Join(result.Applied, ", ")+")"))

			if p.config.showDiff {
				b.WriteString(colorDiff(result.Diff))
			}
		case m.StatusError:
			fmt.Fprintf(&b, "%s %s: %s\n", errorStyle.Render("✗ error"), result.Path, result.Err)
		case m.StatusUnchanged, m.StatusCached:
		}
	}

	if p.summary != nil {
		if b.Len() > 0 {
			b.WriteString("\n")
		}

		b.WriteString(renderSummaryTable(*p.summary))
	}

	return b.String()
}

func sortedResults(results []m.FixResult) []m.FixResult {
	sorted := append([]m.FixResult(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	return sorted
}

func colorDiff(patch string) string {
	if patch == "" {
		return ""
	}

	var b strings.Builder

	for _, line := range strings.SplitAfter(patch, "\n") {
		if line == "" {
			continue
		}

		text := strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			b.WriteString(mutedStyle.Render(text))
		case strings.HasPrefix(text, "@@"):
			b.WriteString(hunkStyle.Render(text))
		case strings.HasPrefix(text, "+"):
			b.WriteString(addedStyle.Render(text))
		case strings.HasPrefix(text, "-"):
			b.WriteString(removedStyle.Render(text))
		default:
			b.WriteString(text)
		}

		b.WriteString("\n")
	}

	return b.String()
}

// DisplayRules shows the rule set in the pager.
func (p *TUI) DisplayRules(ctx context.Context, rules []m.RuleInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.page("csrules rules", renderRulesTable(rules))
}

// DisplayDescription shows a rule's documentation in the pager.
func (p *TUI) DisplayDescription(ctx context.Context, desc m.RuleDescription) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.page(desc.Name, renderDescription(desc))
}

// page prints content directly when it fits the terminal, otherwise it runs
// the scrollable pager.
func (p *TUI) page(title string, content string) error {
	out := p.output()
	width, height := terminalSize(out)

	if height == 0 || strings.Count(content, "\n")+pagerChrome <= height {
		_, err := fmt.Fprintf(out, "%s\n\n%s", titleStyle.Render(title), content)
		return err
	}

	program := tea.NewProgram(
		newPagerModel(title, content, width, height),
		tea.WithOutput(out),
		tea.WithInput(p.cmd.InOrStdin()),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}

	return nil
}

func (p *TUI) output() io.Writer {
	return p.cmd.OutOrStdout()
}

func terminalSize(w io.Writer) (int, int) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}

	return width, height
}

// pagerModel is a Bubble Tea model scrolling a block of text.
type pagerModel struct {
	title    string
	viewport viewport.Model
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, max(height-pagerChrome, 1))
	vp.SetContent(content)

	return pagerModel{title: title, viewport: vp}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(msg.Height-pagerChrome, 1)

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		case "g", "home":
			pm.viewport.GotoTop()
			return pm, nil
		case "G", "end":
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	total := pm.viewport.TotalLineCount()
	first := min(pm.viewport.YOffset+1, total)
	last := min(pm.viewport.YOffset+pm.viewport.Height, total)

	footer := fmt.Sprintf("Lines %d-%d of %d | ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit", first, last, total)

	return titleStyle.Render(pm.title) + "\n\n" + pm.viewport.View() + "\n\n" + mutedStyle.Render(footer)
}
