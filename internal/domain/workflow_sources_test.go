package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"csrules.dev/pkg/csrules/internal/adapter"
	controllermocks "csrules.dev/pkg/csrules/internal/controller/mocks"
	m "csrules.dev/pkg/csrules/internal/model"
)

// slowSpill fails cached results and holds every other append for delay.
type slowSpill struct {
	errSpill[m.FixResult]

	delay   time.Duration
	pending atomic.Int32
}

func (s *slowSpill) Append(result m.FixResult) error {
	if result.Status == m.StatusCached {
		return s.err
	}

	s.pending.Add(1)
	defer s.pending.Add(-1)

	time.Sleep(s.delay)

	return nil
}

func TestWorkflow_FixSourcesWaitsForWorkers(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.php"), []byte("<?php\n$a = $b ?? throw new E();\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.php"), []byte("<?php\n$b = 1;\n"), 0o600))

	fs := adapter.NewLocalSourceFSAdapter()
	tokenizer := adapter.NewLocalPHPTokenizerAdapter()
	paths := []m.Path{m.Path(root + "/...")}

	sources, err := fs.Get(ctx, paths)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	cache := m.NewFixCache("test", "sig")

	for _, source := range sources {
		if filepath.Base(string(source.Origin.FullPath)) == "b.php" {
			cache.Record(source.Origin.FullPath, source.Origin.Hash)
		}
	}

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().DisplayResult(mock.Anything, mock.Anything).Maybe()

	w, ok := NewWorkflow(fs, tokenizer, adapter.NewYAMLCacheStore(), ui, NewOrchestrator(fs, tokenizer), DefaultRegistry()).(*workflow)
	require.True(t, ok)

	errAppend := errors.New("disk full")
	spill := &slowSpill{errSpill: errSpill[m.FixResult]{err: errAppend}, delay: 50 * time.Millisecond}

	err = w.fixSources(ctx, FixArgs{Paths: paths, Config: NewConfig(nil)}, 2, cache, spill)
	require.ErrorIs(t, err, errAppend)
	assert.Zero(t, spill.pending.Load(), "a worker was still spilling after fixSources returned")
}
