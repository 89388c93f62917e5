// Package pkg provides general-purpose utilities for csrules.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// spillDirName is created below the temp directory when no directory is given.
const spillDirName = "csrules-spill"

// FileSpill is an append-only, disk-backed list of items of type T. Fix
// results are spilled through it so memory stays flat on large trees.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Range(f func(index uint64, item T) error) error
	Close() error
	// Remove closes the spill and deletes its backing file.
	Remove() error
}

type fileSpillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
	closed  bool
}

// NewFileSpill creates a spill file in dir. An empty dir selects a
// csrules-spill directory under os.TempDir.
func NewFileSpill[T any](dir string) (FileSpill[T], error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), spillDirName)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "spill-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created filespill", "path", file.Name())

	return &fileSpillImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append implements FileSpill.
func (f *fileSpillImpl[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return fmt.Errorf("append to closed spill %s", f.path)
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	f.length++

	return nil
}

// Path implements FileSpill.
func (f *fileSpillImpl[T]) Path() string {
	return f.path
}

// Len implements FileSpill.
func (f *fileSpillImpl[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Range implements FileSpill. Items are decoded in append order.
func (f *fileSpillImpl[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open file for range", "path", f.path, "error", err)
		return fmt.Errorf("failed to open file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); i < f.length; i++ {
		// gob leaves zero-valued fields untouched, so each item needs a fresh value.
		var item T

		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item during range", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	slog.Debug("range completed", "path", f.path, "count", f.length)

	return nil
}

// Close implements FileSpill. Closing twice is a no-op.
func (f *fileSpillImpl[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closeLocked()
}

func (f *fileSpillImpl[T]) closeLocked() error {
	if f.closed {
		return nil
	}

	f.closed = true

	if err := f.file.Close(); err != nil {
		slog.Error("failed to close file", "path", f.path, "error", err)
		return err
	}

	slog.Debug("closed filespill", "path", f.path, "length", f.length)

	return nil
}

// Remove implements FileSpill.
func (f *fileSpillImpl[T]) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	closeErr := f.closeLocked()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to remove spill file", "path", f.path, "error", err)
		return errors.Join(closeErr, fmt.Errorf("failed to remove spill file: %w", err))
	}

	return closeErr
}
