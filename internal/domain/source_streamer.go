package domain

import (
	"context"
	"log/slog"

	"csrules.dev/pkg/csrules/internal/adapter"
	m "csrules.dev/pkg/csrules/internal/model"
)

// SourceStreamer discovers sources and streams them to the fix workers.
type SourceStreamer interface {
	Get(ctx context.Context, paths []m.Path, exclude []string, threads int) (<-chan m.Source, <-chan error)
	ShardSources(ctx context.Context, sources <-chan m.Source, threads int, shardIndex, totalShardCount int) <-chan m.Source
}

type sourceStreamer struct {
	adapter.SourceFSAdapter
}

// NewSourceStreamer creates a SourceStreamer over the filesystem adapter.
func NewSourceStreamer(fsAdapter adapter.SourceFSAdapter) SourceStreamer {
	return &sourceStreamer{SourceFSAdapter: fsAdapter}
}

// Get streams the sources found under paths in path order. A discovery
// failure is sent on the error channel; both channels close when done.
func (ss *sourceStreamer) Get(ctx context.Context, paths []m.Path, exclude []string, threads int) (<-chan m.Source, <-chan error) {
	ch := make(chan m.Source, normalizeBufferSize(threads))
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		defer close(errCh)

		sources, err := ss.SourceFSAdapter.Get(ctx, paths, exclude...)
		if err != nil {
			slog.Error("Failed to discover sources", "error", err)
			errCh <- err

			return
		}

		slog.Debug("Discovered sources", "count", len(sources))

		for _, source := range sources {
			if ctx.Err() != nil {
				slog.Debug("Source streaming cancelled")
				errCh <- ctx.Err()

				return
			}

			select {
			case <-ctx.Done():
				slog.Debug("Source streaming cancelled")
				errCh <- ctx.Err()

				return
			case ch <- source:
			}
		}
	}()

	return ch, errCh
}

// ShardSources keeps every totalShardCount-th source starting at
// shardIndex. A non-positive totalShardCount passes everything through.
func (ss *sourceStreamer) ShardSources(ctx context.Context, sources <-chan m.Source, threads int, shardIndex, totalShardCount int) <-chan m.Source {
	ch := make(chan m.Source, normalizeBufferSize(threads))

	go func() {
		defer close(ch)

		index := 0

		for source := range sources {
			if totalShardCount > 0 && index%totalShardCount != shardIndex {
				index++
				continue
			}

			index++

			select {
			case <-ctx.Done():
				slog.Debug("Source sharding cancelled")
				drain(sources)

				return
			case ch <- source:
			}
		}
	}()

	return ch
}

// normalizeBufferSize ensures the buffer size is at least 1.
func normalizeBufferSize(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}

func drain[T any](ch <-chan T) {
	for range ch {
	}
}
