package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"csrules.dev/pkg/csrules/internal/adapter"
	"csrules.dev/pkg/csrules/internal/controller"
	"csrules.dev/pkg/csrules/internal/domain/fixers"
	m "csrules.dev/pkg/csrules/internal/model"
	pkg "csrules.dev/pkg/csrules/pkg"
	"csrules.dev/pkg/csrules/pkg/diff"
)

// FixArgs contains the arguments for a fix run.
type FixArgs struct {
	Paths           []m.Path
	Exclude         []string
	Config          Config
	Parallel        int
	DryRun          bool
	ShowDiff        bool
	UseCache        bool
	CacheFile       m.Path
	ShardIndex      int
	TotalShardCount int
	// Version is stored in the cache; a new version invalidates it.
	Version string
	// SpillDir holds the temporary result spill; empty selects the OS temp dir.
	SpillDir string
}

// Workflow defines the commands of csrules.
type Workflow interface {
	Fix(ctx context.Context, args FixArgs) error
	ListRules(ctx context.Context, cfg Config) error
	Describe(ctx context.Context, name string, cfg Config) error
}

type workflow struct {
	adapter.CacheStore
	adapter.PHPTokenizerAdapter
	controller.UI
	Orchestrator
	Registry

	streamer SourceStreamer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	tokenizer adapter.PHPTokenizerAdapter,
	cacheStore adapter.CacheStore,
	ui controller.UI,
	orchestrator Orchestrator,
	registry Registry,
) Workflow {
	return &workflow{
		CacheStore:          cacheStore,
		PHPTokenizerAdapter: tokenizer,
		UI:                  ui,
		Orchestrator:        orchestrator,
		Registry:            registry,
		streamer:            NewSourceStreamer(fsAdapter),
	}
}

// Fix resolves the configuration, fixes every discovered source with up to
// args.Parallel workers and reports the results. Configuration errors are
// returned before any file is read. Failing files do not stop the others.
func (w *workflow) Fix(ctx context.Context, args FixArgs) error {
	if _, err := Resolve(w.Registry, args.Config); err != nil {
		return fmt.Errorf("resolve rules: %w", err)
	}

	cache, err := w.loadCache(ctx, args)
	if err != nil {
		return err
	}

	threads := normalizeBufferSize(args.Parallel)

	if err := w.Start(ctx, controller.WithFixMode(args.DryRun), controller.WithDiff(args.ShowDiff)); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	w.DisplayConcurrencyInfo(ctx, threads, args.ShardIndex, args.TotalShardCount)

	results, err := pkg.NewFileSpill[m.FixResult](args.SpillDir)
	if err != nil {
		return fmt.Errorf("create result spill: %w", err)
	}

	defer func() {
		if err := results.Remove(); err != nil {
			slog.Error("Failed to remove result spill", "path", results.Path(), "error", err)
		}
	}()

	if err := w.fixSources(ctx, args, threads, cache, results); err != nil {
		return err
	}

	summary, err := summarizeResults(results, cache, args.DryRun)
	if err != nil {
		return fmt.Errorf("summarize results: %w", err)
	}

	if cache != nil {
		if err := w.Save(ctx, args.CacheFile, cache); err != nil {
			slog.Error("Failed to save cache", "path", args.CacheFile, "error", err)
			return fmt.Errorf("save cache: %w", err)
		}
	}

	w.DisplaySummary(ctx, summary)
	w.Wait(ctx)

	if summary.HasErrors() {
		return fmt.Errorf("%d of %d file(s) could not be fixed", summary.Errored, summary.Scanned)
	}

	if args.DryRun && summary.HasChanges() {
		return fmt.Errorf("%w: %d file(s)", ErrChangesDetected, summary.Fixed)
	}

	return nil
}

func (w *workflow) loadCache(ctx context.Context, args FixArgs) (*m.FixCache, error) {
	if !args.UseCache || args.CacheFile == "" {
		return nil, nil
	}

	signature, err := args.Config.Signature(args.Version)
	if err != nil {
		return nil, err
	}

	cache, err := w.Load(ctx, args.CacheFile)
	if err != nil {
		return nil, fmt.Errorf("load cache: %w", err)
	}

	if cache.Signature != signature || cache.Version != args.Version {
		slog.Debug("Cache invalidated", "path", args.CacheFile)
		return m.NewFixCache(args.Version, signature), nil
	}

	return cache, nil
}

// fixSources streams the shard's sources through the worker pool. Results,
// cached ones included, are spilled in completion order and every worker has
// returned before it does.
func (w *workflow) fixSources(ctx context.Context, args FixArgs, threads int, cache *m.FixCache, results pkg.FileSpill[m.FixResult]) error {
	sources, discoverErrs := w.streamer.Get(ctx, args.Paths, args.Exclude, threads)
	shard := w.streamer.ShardSources(ctx, sources, threads, args.ShardIndex, args.TotalShardCount)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for source := range shard {
		if groupCtx.Err() != nil {
			continue
		}

		if cache.IsFresh(source.Origin.FullPath, source.Origin.Hash) {
			result := m.FixResult{Path: source.Origin.FullPath, Hash: source.Origin.Hash, Status: m.StatusCached}

			group.Go(func() error {
				return w.record(groupCtx, results, result)
			})

			continue
		}

		current := source

		group.Go(func() error {
			return w.fixOne(groupCtx, args, current, results)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if err := <-discoverErrs; err != nil {
		return fmt.Errorf("discover sources: %w", err)
	}

	return ctx.Err()
}

// fixOne builds a private set of fixers so no fixer is shared between workers.
func (w *workflow) fixOne(ctx context.Context, args FixArgs, source m.Source, results pkg.FileSpill[m.FixResult]) error {
	list, err := Resolve(w.Registry, args.Config)
	if err != nil {
		return err
	}

	result, err := w.FixSource(ctx, source, list, FixOptions{DryRun: args.DryRun})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		slog.Error("Failed to fix source", "path", source.Origin.FullPath, "error", err)
	}

	return w.record(ctx, results, result)
}

func (w *workflow) record(ctx context.Context, results pkg.FileSpill[m.FixResult], result m.FixResult) error {
	if err := results.Append(result); err != nil {
		return fmt.Errorf("spill result: %w", err)
	}

	w.DisplayResult(ctx, result)

	return nil
}

// ListRules shows the effective rule set.
func (w *workflow) ListRules(ctx context.Context, cfg Config) error {
	return w.DisplayRules(ctx, RuleInfos(w.Registry, cfg))
}

// Describe shows the documentation of a custom rule with the diff each of
// its samples produces.
func (w *workflow) Describe(ctx context.Context, name string, cfg Config) error {
	fixer, err := w.New(name)
	if err != nil {
		return err
	}

	def := fixer.Definition()
	desc := m.RuleDescription{
		Name:             fixer.Name(),
		Summary:          def.Summary,
		Description:      def.Description,
		Risky:            fixer.IsRisky(),
		RiskyDescription: def.RiskyDescription,
		Priority:         fixer.Priority(),
	}

	for _, spec := range fixer.Options() {
		desc.Options = append(desc.Options, describeOption(spec))
	}

	for _, sample := range def.Samples {
		rendered, err := w.renderSample(fixer.Name(), sample, cfg.Whitespaces)
		if err != nil {
			return err
		}

		desc.Samples = append(desc.Samples, rendered)
	}

	return w.DisplayDescription(ctx, desc)
}

func (w *workflow) renderSample(name string, sample fixers.CodeSample, ws m.WhitespacesConfig) (m.RuleSample, error) {
	fixer, err := w.New(name)
	if err != nil {
		return m.RuleSample{}, err
	}

	if err := fixer.Configure(sample.Options); err != nil {
		return m.RuleSample{}, fmt.Errorf("sample of %s: %w", name, err)
	}

	if aware, ok := fixer.(fixers.WhitespacesAware); ok {
		aware.SetWhitespacesConfig(ws)
	}

	tokens, err := w.Tokenize([]byte(sample.Code))
	if err != nil {
		return m.RuleSample{}, fmt.Errorf("sample of %s: %w", name, err)
	}

	applyFixers(tokens, []fixers.Fixer{fixer})

	patch, err := diff.Unified("sample.php", sample.Code, tokens.Code())
	if err != nil {
		return m.RuleSample{}, err
	}

	return m.RuleSample{Code: sample.Code, Options: sample.Options, Diff: patch}, nil
}

func describeOption(spec fixers.OptionSpec) m.RuleOption {
	option := m.RuleOption{
		Name:        spec.Name,
		Description: spec.Description,
		Default:     fmt.Sprint(spec.Default),
	}

	for _, allowed := range spec.Allowed {
		option.Allowed = append(option.Allowed, fmt.Sprint(allowed))
	}

	return option
}
