package domain

import (
	"context"
	"fmt"
	"log/slog"

	"csrules.dev/pkg/csrules/internal/adapter"
	"csrules.dev/pkg/csrules/internal/domain/fixers"
	m "csrules.dev/pkg/csrules/internal/model"
	"csrules.dev/pkg/csrules/pkg/diff"
)

// FixOptions controls what FixSource does with a changed file.
type FixOptions struct {
	// DryRun reports changes without writing them.
	DryRun bool
}

// Orchestrator applies a list of fixers to one source file.
type Orchestrator interface {
	FixSource(ctx context.Context, source m.Source, list []fixers.Fixer, opts FixOptions) (m.FixResult, error)
}

type orchestrator struct {
	fsAdapter adapter.SourceFSAdapter
	tokenizer adapter.PHPTokenizerAdapter
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem and tokenizer adapters.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, tokenizer adapter.PHPTokenizerAdapter) Orchestrator {
	return &orchestrator{
		fsAdapter: fsAdapter,
		tokenizer: tokenizer,
	}
}

// FixSource tokenizes the file, runs every candidate fixer once in list
// order and writes the result back unless opts.DryRun is set. A failing file
// yields a result with StatusError alongside the error.
func (o *orchestrator) FixSource(ctx context.Context, source m.Source, list []fixers.Fixer, opts FixOptions) (m.FixResult, error) {
	if source.Origin == nil || source.Origin.FullPath == "" {
		return m.FixResult{Status: m.StatusError, Err: "missing source origin"}, fmt.Errorf("missing source origin")
	}

	result := m.FixResult{Path: source.Origin.FullPath}

	if err := ctx.Err(); err != nil {
		return o.failed(result, err)
	}

	content, err := o.fsAdapter.ReadFile(ctx, source.Origin.FullPath)
	if err != nil {
		slog.Error("Failed to read source", "path", source.Origin.FullPath, "error", err)
		return o.failed(result, fmt.Errorf("read %s: %w", source.Origin.FullPath, err))
	}

	tokens, err := o.tokenizer.Tokenize(content)
	if err != nil {
		slog.Error("Failed to tokenize source", "path", source.Origin.FullPath, "error", err)
		return o.failed(result, fmt.Errorf("%s: %w", source.Origin.FullPath, err))
	}

	before := string(content)
	result.Applied = applyFixers(tokens, list)
	after := tokens.Code()

	if after == before {
		result.Status = m.StatusUnchanged
		result.Hash = source.Origin.Hash
		result.Applied = nil

		return result, nil
	}

	result.Status = m.StatusFixed

	result.Diff, err = diff.Unified(string(displayPath(source)), before, after)
	if err != nil {
		return o.failed(result, err)
	}

	if opts.DryRun {
		return result, nil
	}

	if err := o.fsAdapter.WriteFile(ctx, source.Origin.FullPath, []byte(after)); err != nil {
		slog.Error("Failed to write fixed source", "path", source.Origin.FullPath, "error", err)
		return o.failed(result, fmt.Errorf("write %s: %w", source.Origin.FullPath, err))
	}

	result.Hash, err = o.fsAdapter.HashFile(ctx, source.Origin.FullPath)
	if err != nil {
		slog.Error("Failed to hash fixed source", "path", source.Origin.FullPath, "error", err)
		result.Hash = ""
	}

	slog.Debug("Fixed source", "path", source.Origin.FullPath, "applied", result.Applied)

	return result, nil
}

func (o *orchestrator) failed(result m.FixResult, err error) (m.FixResult, error) {
	result.Status = m.StatusError
	result.Err = err.Error()
	result.Applied = nil
	result.Diff = ""

	return result, err
}

// applyFixers runs each candidate fixer and returns the names of those that
// changed the buffer.
func applyFixers(tokens *m.Tokens, list []fixers.Fixer) []string {
	var applied []string

	code := tokens.Code()

	for _, fixer := range list {
		if !fixer.IsCandidate(tokens) {
			continue
		}

		fixer.Fix(tokens)

		if next := tokens.Code(); next != code {
			applied = append(applied, fixer.Name())
			code = next
		}
	}

	return applied
}

func displayPath(source m.Source) m.Path {
	if source.Origin.ShortPath != "" {
		return source.Origin.ShortPath
	}

	return source.Origin.FullPath
}
