package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	Path    string
	Applied []string
	Diff    string
}

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill in directory", func(t *testing.T) {
		dir := t.TempDir()

		spill, err := NewFileSpill[int](dir)
		require.NoError(t, err)
		defer spill.Remove()

		require.Equal(t, dir, filepath.Dir(spill.Path()))
		require.True(t, strings.HasSuffix(spill.Path(), ".gob"))
	})

	t.Run("NewFileSpill default directory", func(t *testing.T) {
		spill, err := NewFileSpill[int]("")
		require.NoError(t, err)
		defer spill.Remove()

		require.Contains(t, spill.Path(), spillDirName)
	})

	t.Run("Len returns correct count", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		require.Equal(t, uint64(0), spill.Len())

		require.NoError(t, spill.Append(1))
		require.Equal(t, uint64(1), spill.Len())

		require.NoError(t, spill.Append(2))
		require.NoError(t, spill.Append(3))
		require.Equal(t, uint64(3), spill.Len())
	})

	t.Run("Range iterates in append order", func(t *testing.T) {
		spill, err := NewFileSpill[string](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		for _, s := range []string{"a", "b", "c"} {
			require.NoError(t, spill.Append(s))
		}

		var (
			got     []string
			indexes []uint64
		)

		err = spill.Range(func(index uint64, item string) error {
			got = append(got, item)
			indexes = append(indexes, index)

			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c"}, got)
		require.Equal(t, []uint64{0, 1, 2}, indexes)
	})

	t.Run("Range does not leak fields between items", func(t *testing.T) {
		spill, err := NewFileSpill[record](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		require.NoError(t, spill.Append(record{Path: "a.php", Applied: []string{"x"}, Diff: "--- a"}))
		require.NoError(t, spill.Append(record{Path: "b.php"}))

		var got []record

		require.NoError(t, spill.Range(func(_ uint64, item record) error {
			got = append(got, item)
			return nil
		}))

		require.Len(t, got, 2)
		require.Equal(t, record{Path: "b.php"}, got[1])
	})

	t.Run("Range stops on callback error", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		for i := 0; i < 5; i++ {
			require.NoError(t, spill.Append(i))
		}

		stop := errors.New("stop")
		seen := 0

		err = spill.Range(func(_ uint64, item int) error {
			seen++
			if item == 2 {
				return stop
			}

			return nil
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 3, seen)
	})

	t.Run("Range on empty spill", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		called := false

		require.NoError(t, spill.Range(func(uint64, int) error {
			called = true
			return nil
		}))
		require.False(t, called)
	})

	t.Run("Range after Close still reads", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		require.NoError(t, spill.Append(7))
		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close())

		var got []int

		require.NoError(t, spill.Range(func(_ uint64, item int) error {
			got = append(got, item)
			return nil
		}))
		require.Equal(t, []int{7}, got)

		require.Error(t, spill.Append(8))
	})

	t.Run("Remove deletes the file", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)

		require.NoError(t, spill.Append(1))
		require.NoError(t, spill.Remove())

		_, err = os.Stat(spill.Path())
		require.True(t, errors.Is(err, os.ErrNotExist))
		require.NoError(t, spill.Remove())
	})

	t.Run("concurrent appends", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)

			go func(v int) {
				defer wg.Done()

				if err := spill.Append(v); err != nil {
					t.Error(err)
				}
			}(i)
		}

		wg.Wait()

		sum := 0

		require.NoError(t, spill.Range(func(_ uint64, item int) error {
			sum += item
			return nil
		}))
		require.Equal(t, uint64(50), spill.Len())
		require.Equal(t, 49*50/2, sum)
	})
}

func BenchmarkAppend(b *testing.B) {
	spill, err := NewFileSpill[record](b.TempDir())
	require.NoError(b, err)
	defer spill.Remove()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = spill.Append(record{Path: "src/a.php", Applied: []string{"CsRules/variable_case"}})
	}
}
