package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"csrules.dev/pkg/csrules/internal/adapter"
	adaptermocks "csrules.dev/pkg/csrules/internal/adapter/mocks"
	controllermocks "csrules.dev/pkg/csrules/internal/controller/mocks"
	"csrules.dev/pkg/csrules/internal/domain"
	"csrules.dev/pkg/csrules/internal/domain/fixers"
	m "csrules.dev/pkg/csrules/internal/model"
)

const (
	dirtyPHP = "<?php\n$my_value = $other ?? throw new Exception();\n"
	fixedPHP = "<?php\n$myValue = $other\n    ?? throw new Exception();\n"
	cleanPHP = "<?php\n$clean = 1;\n"
)

type recordedRun struct {
	mu      sync.Mutex
	results []m.FixResult
	summary m.FixSummary
}

func (r *recordedRun) byPath() map[string]m.FixResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]m.FixResult, len(r.results))
	for _, result := range r.results {
		out[filepath.Base(string(result.Path))] = result
	}

	return out
}

// expectFixRun registers the UI calls made by a complete fix run.
func expectFixRun(ui *controllermocks.MockUI) *recordedRun {
	run := &recordedRun{}

	ui.EXPECT().Start(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	ui.EXPECT().DisplayConcurrencyInfo(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once()
	ui.EXPECT().DisplayResult(mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		run.mu.Lock()
		defer run.mu.Unlock()

		run.results = append(run.results, args.Get(1).(m.FixResult))
	}).Maybe()
	ui.EXPECT().DisplaySummary(mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		run.summary = args.Get(1).(m.FixSummary)
	}).Once()
	ui.EXPECT().Wait(mock.Anything).Once()
	ui.EXPECT().Close(mock.Anything).Once()

	return run
}

func newTestWorkflow(ui *controllermocks.MockUI) domain.Workflow {
	fs := adapter.NewLocalSourceFSAdapter()
	tokenizer := adapter.NewLocalPHPTokenizerAdapter()

	return domain.NewWorkflow(
		fs,
		tokenizer,
		adapter.NewYAMLCacheStore(),
		ui,
		domain.NewOrchestrator(fs, tokenizer),
		domain.DefaultRegistry(),
	)
}

func fixArgs(t *testing.T, root string) domain.FixArgs {
	t.Helper()

	return domain.FixArgs{
		Paths:    []m.Path{m.Path(root + "/...")},
		Config:   domain.NewConfig(map[string]any{fixers.VariableCaseName: true}),
		Parallel: 2,
		Version:  "test",
		SpillDir: t.TempDir(),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}

func TestWorkflow_Fix(t *testing.T) {
	ctx := context.Background()

	t.Run("fixes dirty files", func(t *testing.T) {
		root := t.TempDir()
		writePHP(t, root, "src/dirty.php", dirtyPHP)
		writePHP(t, root, "clean.php", cleanPHP)
		writePHP(t, root, "vendor/lib/dep.php", dirtyPHP)

		ui := controllermocks.NewMockUI(t)
		run := expectFixRun(ui)

		err := newTestWorkflow(ui).Fix(ctx, fixArgs(t, root))
		require.NoError(t, err)

		assert.Equal(t, fixedPHP, readFile(t, filepath.Join(root, "src/dirty.php")))
		assert.Equal(t, dirtyPHP, readFile(t, filepath.Join(root, "vendor/lib/dep.php")))

		assert.Equal(t, m.FixSummary{Scanned: 2, Fixed: 1, Unchanged: 1}, run.summary)

		results := run.byPath()
		assert.Equal(t, m.StatusFixed, results["dirty.php"].Status)
		assert.Equal(t, m.StatusUnchanged, results["clean.php"].Status)
	})

	t.Run("dry run reports changes without writing", func(t *testing.T) {
		root := t.TempDir()
		writePHP(t, root, "dirty.php", dirtyPHP)

		ui := controllermocks.NewMockUI(t)
		run := expectFixRun(ui)

		args := fixArgs(t, root)
		args.DryRun = true

		err := newTestWorkflow(ui).Fix(ctx, args)
		require.ErrorIs(t, err, domain.ErrChangesDetected)

		assert.Equal(t, dirtyPHP, readFile(t, filepath.Join(root, "dirty.php")))
		assert.Equal(t, m.FixSummary{Scanned: 1, Fixed: 1, DryRun: true}, run.summary)
		assert.NotEmpty(t, run.byPath()["dirty.php"].Diff)
	})

	t.Run("dry run on clean tree succeeds", func(t *testing.T) {
		root := t.TempDir()
		writePHP(t, root, "clean.php", cleanPHP)

		ui := controllermocks.NewMockUI(t)
		expectFixRun(ui)

		args := fixArgs(t, root)
		args.DryRun = true

		require.NoError(t, newTestWorkflow(ui).Fix(ctx, args))
	})

	t.Run("failing file does not stop the others", func(t *testing.T) {
		root := t.TempDir()
		writePHP(t, root, "broken.php", "<?php\n/* never closed\n")
		writePHP(t, root, "dirty.php", dirtyPHP)

		ui := controllermocks.NewMockUI(t)
		run := expectFixRun(ui)

		err := newTestWorkflow(ui).Fix(ctx, fixArgs(t, root))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 file(s)")

		assert.Equal(t, fixedPHP, readFile(t, filepath.Join(root, "dirty.php")))
		assert.Equal(t, 1, run.summary.Errored)
		assert.Equal(t, 1, run.summary.Fixed)
		assert.Equal(t, m.StatusError, run.byPath()["broken.php"].Status)
	})

	t.Run("invalid configuration fails before any file is read", func(t *testing.T) {
		root := t.TempDir()
		writePHP(t, root, "dirty.php", dirtyPHP)

		ui := controllermocks.NewMockUI(t)

		args := fixArgs(t, root)
		args.Config = domain.NewConfig(map[string]any{fixers.VariableCaseName: map[string]any{"case": "kebab_case"}})

		err := newTestWorkflow(ui).Fix(ctx, args)
		require.ErrorIs(t, err, fixers.ErrInvalidConfiguration)
		assert.Equal(t, dirtyPHP, readFile(t, filepath.Join(root, "dirty.php")))
	})

	t.Run("missing path", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		ui.EXPECT().Start(mock.Anything, mock.Anything, mock.Anything).Return(nil)
		ui.EXPECT().DisplayConcurrencyInfo(mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		ui.EXPECT().Close(mock.Anything)

		args := fixArgs(t, filepath.Join(t.TempDir(), "nope"))
		args.Paths = []m.Path{m.Path(filepath.Join(t.TempDir(), "nope"))}

		err := newTestWorkflow(ui).Fix(ctx, args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "discover sources")
	})

	t.Run("sharding splits the files", func(t *testing.T) {
		root := t.TempDir()
		for _, name := range []string{"a.php", "b.php", "c.php", "d.php"} {
			writePHP(t, root, name, dirtyPHP)
		}

		ui := controllermocks.NewMockUI(t)
		run := expectFixRun(ui)

		args := fixArgs(t, root)
		args.ShardIndex = 1
		args.TotalShardCount = 2

		require.NoError(t, newTestWorkflow(ui).Fix(ctx, args))

		assert.Equal(t, 2, run.summary.Scanned)
		assert.Equal(t, dirtyPHP, readFile(t, filepath.Join(root, "a.php")))
		assert.Equal(t, fixedPHP, readFile(t, filepath.Join(root, "b.php")))
		assert.Equal(t, dirtyPHP, readFile(t, filepath.Join(root, "c.php")))
		assert.Equal(t, fixedPHP, readFile(t, filepath.Join(root, "d.php")))
	})
}

func TestWorkflow_FixCache(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	cacheFile := filepath.Join(t.TempDir(), ".csrules.cache")

	writePHP(t, root, "dirty.php", dirtyPHP)
	writePHP(t, root, "clean.php", cleanPHP)

	cachedArgs := func() domain.FixArgs {
		args := fixArgs(t, root)
		args.UseCache = true
		args.CacheFile = m.Path(cacheFile)

		return args
	}

	t.Run("first run fills the cache", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		run := expectFixRun(ui)

		require.NoError(t, newTestWorkflow(ui).Fix(ctx, cachedArgs()))
		assert.Equal(t, m.FixSummary{Scanned: 2, Fixed: 1, Unchanged: 1}, run.summary)

		cache, err := adapter.NewYAMLCacheStore().Load(ctx, m.Path(cacheFile))
		require.NoError(t, err)
		assert.Len(t, cache.Hashes, 2)
		assert.Equal(t, "test", cache.Version)
		assert.NotEmpty(t, cache.Signature)
	})

	t.Run("second run skips unchanged files", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		run := expectFixRun(ui)

		require.NoError(t, newTestWorkflow(ui).Fix(ctx, cachedArgs()))
		assert.Equal(t, m.FixSummary{Scanned: 2, Cached: 2}, run.summary)
	})

	t.Run("edited file is fixed again", func(t *testing.T) {
		writePHP(t, root, "clean.php", "<?php\n$now_dirty = 1;\n")

		ui := controllermocks.NewMockUI(t)
		run := expectFixRun(ui)

		require.NoError(t, newTestWorkflow(ui).Fix(ctx, cachedArgs()))
		assert.Equal(t, m.FixSummary{Scanned: 2, Fixed: 1, Cached: 1}, run.summary)
		assert.Equal(t, "<?php\n$nowDirty = 1;\n", readFile(t, filepath.Join(root, "clean.php")))
	})

	t.Run("configuration change invalidates the cache", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		run := expectFixRun(ui)

		args := cachedArgs()
		args.Config = domain.NewConfig(map[string]any{fixers.VariableCaseName: true, "array_syntax": false})

		require.NoError(t, newTestWorkflow(ui).Fix(ctx, args))
		assert.Equal(t, 0, run.summary.Cached)
		assert.Equal(t, 2, run.summary.Unchanged)
	})

	t.Run("no-cache ignores the cache", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		run := expectFixRun(ui)

		args := cachedArgs()
		args.UseCache = false

		require.NoError(t, newTestWorkflow(ui).Fix(ctx, args))
		assert.Equal(t, 0, run.summary.Cached)
	})
}

func TestWorkflow_ListRules(t *testing.T) {
	ui := controllermocks.NewMockUI(t)

	var infos []m.RuleInfo

	ui.EXPECT().DisplayRules(mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		infos = args.Get(1).([]m.RuleInfo)
	}).Return(nil).Once()

	require.NoError(t, newTestWorkflow(ui).ListRules(context.Background(), domain.NewConfig(nil)))

	require.Len(t, infos, 24)
	assert.Equal(t, "@Symfony", infos[0].Name)
	assert.True(t, infos[len(infos)-1].Custom)

	for _, info := range infos {
		if info.Name == fixers.VariableCaseName {
			assert.False(t, info.Enabled)
			assert.True(t, info.Risky)
		}
	}
}

func TestWorkflow_Describe(t *testing.T) {
	ctx := context.Background()

	t.Run("renders samples", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)

		var desc m.RuleDescription

		ui.EXPECT().DisplayDescription(mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			desc = args.Get(1).(m.RuleDescription)
		}).Return(nil).Once()

		require.NoError(t, newTestWorkflow(ui).Describe(ctx, "csrules/variable_case", domain.NewConfig(nil)))

		assert.Equal(t, fixers.VariableCaseName, desc.Name)
		assert.True(t, desc.Risky)
		require.Len(t, desc.Options, 1)
		assert.Equal(t, m.RuleOption{
			Name:        "case",
			Description: desc.Options[0].Description,
			Allowed:     []string{fixers.CamelCase, fixers.SnakeCase},
			Default:     fixers.CamelCase,
		}, desc.Options[0])

		require.Len(t, desc.Samples, 2)
		assert.Contains(t, desc.Samples[0].Diff, "+<?php $myVariable = 2;")
		assert.Contains(t, desc.Samples[1].Diff, "+<?php $my_variable = 2;")
	})

	t.Run("throw sample uses configured whitespace", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)

		var desc m.RuleDescription

		ui.EXPECT().DisplayDescription(mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			desc = args.Get(1).(m.RuleDescription)
		}).Return(nil).Once()

		cfg := domain.NewConfig(nil)
		cfg.Whitespaces.Indent = "\t"

		require.NoError(t, newTestWorkflow(ui).Describe(ctx, fixers.LineBreakBeforeThrowExpressionName, cfg))
		require.Len(t, desc.Samples, 1)
		assert.Contains(t, desc.Samples[0].Diff, "+\t?? throw")
	})

	t.Run("unknown rule", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)

		err := newTestWorkflow(ui).Describe(ctx, "CsRules/nope", domain.NewConfig(nil))
		require.ErrorIs(t, err, domain.ErrUnknownRule)
	})
}

func TestWorkflow_FixCacheStoreErrors(t *testing.T) {
	ctx := context.Background()
	cacheFile := m.Path(filepath.Join(t.TempDir(), ".csrules.cache"))

	newWorkflow := func(ui *controllermocks.MockUI, store *adaptermocks.MockCacheStore) domain.Workflow {
		fs := adapter.NewLocalSourceFSAdapter()
		tokenizer := adapter.NewLocalPHPTokenizerAdapter()

		return domain.NewWorkflow(fs, tokenizer, store, ui, domain.NewOrchestrator(fs, tokenizer), domain.DefaultRegistry())
	}

	t.Run("load failure stops before the UI starts", func(t *testing.T) {
		root := t.TempDir()
		writePHP(t, root, "dirty.php", dirtyPHP)

		ui := controllermocks.NewMockUI(t)
		store := adaptermocks.NewMockCacheStore(t)
		store.EXPECT().Load(mock.Anything, cacheFile).Return(nil, errors.New("corrupt"))

		args := fixArgs(t, root)
		args.UseCache = true
		args.CacheFile = cacheFile

		err := newWorkflow(ui, store).Fix(ctx, args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load cache")
		assert.Equal(t, dirtyPHP, readFile(t, filepath.Join(root, "dirty.php")))
	})

	t.Run("save failure is reported", func(t *testing.T) {
		root := t.TempDir()
		writePHP(t, root, "clean.php", cleanPHP)

		ui := controllermocks.NewMockUI(t)
		ui.EXPECT().Start(mock.Anything, mock.Anything, mock.Anything).Return(nil)
		ui.EXPECT().DisplayConcurrencyInfo(mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		ui.EXPECT().DisplayResult(mock.Anything, mock.Anything)
		ui.EXPECT().Close(mock.Anything)

		store := adaptermocks.NewMockCacheStore(t)
		store.EXPECT().Load(mock.Anything, cacheFile).Return(&m.FixCache{}, nil)
		store.EXPECT().Save(mock.Anything, cacheFile, mock.MatchedBy(func(cache *m.FixCache) bool {
			return len(cache.Hashes) == 1 && cache.Version == "test"
		})).Return(errors.New("read-only"))

		args := fixArgs(t, root)
		args.UseCache = true
		args.CacheFile = cacheFile

		err := newWorkflow(ui, store).Fix(ctx, args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save cache")
	})
}
