// Package adapter contains infrastructure adapters for the csrules CLI.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "csrules.dev/pkg/csrules/internal/model"
)

// PHPExtension is the file extension of discovered sources.
const PHPExtension = ".php"

var skippedDirs = map[string]struct{}{
	".git":         {},
	"vendor":       {},
	"node_modules": {},
}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get discovers PHP sources under paths. A path ending in `/...` is
	// scanned recursively; a plain directory only at its top level; a file is
	// taken as is. Exclude entries are regular expressions matched against
	// the discovered path.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile writes content to a file, preserving its permissions when it exists.
	WriteFile(ctx context.Context, path m.Path, content []byte) error

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(ctx context.Context, path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get walks the requested roots and returns one Source per PHP file, sorted
// by path and without duplicates.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	seen := make(map[string]struct{})

	var sources []m.Source

	for _, p := range paths {
		root, recursive := splitRecursive(string(p))

		err := a.walk(ctx, root, recursive, func(path string) error {
			clean := filepath.Clean(path)
			if _, ok := seen[clean]; ok || isExcluded(clean, patterns) {
				return nil
			}

			seen[clean] = struct{}{}

			source, err := a.newSource(ctx, root, clean)
			if err != nil {
				return err
			}

			sources = append(sources, source)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Origin.FullPath < sources[j].Origin.FullPath
	})

	return sources, nil
}

func (a *LocalSourceFSAdapter) walk(ctx context.Context, root string, recursive bool, fn func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return fn(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path == root {
				return nil
			}

			if _, skip := skippedDirs[d.Name()]; skip || !recursive {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != PHPExtension {
			return nil
		}

		return fn(path)
	})
}

func (a *LocalSourceFSAdapter) newSource(ctx context.Context, root, path string) (m.Source, error) {
	hash, err := a.HashFile(ctx, m.Path(path))
	if err != nil {
		return m.Source{}, err
	}

	short := path
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") && rel != "." {
		short = rel
	}

	return m.Source{
		Origin: &m.File{
			FullPath:  m.Path(path),
			ShortPath: m.Path(short),
			Hash:      hash,
		},
	}, nil
}

// splitRecursive strips a trailing `/...` and reports whether it was present.
func splitRecursive(p string) (string, bool) {
	switch {
	case p == "...":
		return ".", true
	case strings.HasSuffix(p, "/..."):
		root := strings.TrimSuffix(p, "/...")
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return p, false
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		if expr == "" {
			continue
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

func isExcluded(path string, patterns []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// WriteFile replaces the file contents, keeping the existing mode.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(string(path)); err == nil {
		perm = info.Mode().Perm()
	}

	return os.WriteFile(string(path), content, perm)
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}
