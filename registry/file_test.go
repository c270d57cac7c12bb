package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UberPyro/ChannelSorter2/types"
)

func TestFile(t *testing.T) {
	t.Run("round-trips ids through the flat file format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "categories.txt")
		reg := NewFile(path)
		ctx := t.Context()

		require.NoError(t, reg.SetIDs(ctx, []int64{100, 200, 300}))

		ids, err := reg.IDs(ctx)
		require.NoError(t, err)
		require.Equal(t, []int64{100, 200, 300}, ids)

		// Interop contract: one identifier per line, nothing else.
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "100\n200\n300\n", string(raw))
	})

	t.Run("missing file reads as empty", func(t *testing.T) {
		reg := NewFile(filepath.Join(t.TempDir(), "missing.txt"))

		ids, err := reg.IDs(t.Context())

		require.NoError(t, err)
		require.Empty(t, ids)
	})

	t.Run("tolerates blank lines and surrounding whitespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "categories.txt")
		require.NoError(t, os.WriteFile(path, []byte("  100\n\n200  \n"), 0o644))
		reg := NewFile(path)

		ids, err := reg.IDs(t.Context())

		require.NoError(t, err)
		require.Equal(t, []int64{100, 200}, ids)
	})

	t.Run("rejects non-numeric lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "categories.txt")
		require.NoError(t, os.WriteFile(path, []byte("100\nprojects-a-d\n"), 0o644))
		reg := NewFile(path)

		_, err := reg.IDs(t.Context())

		require.ErrorIs(t, err, types.ErrMalformedRegistry)
	})

	t.Run("SetIDs replaces previous contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "categories.txt")
		reg := NewFile(path)
		ctx := t.Context()

		require.NoError(t, reg.SetIDs(ctx, []int64{1, 2, 3}))
		require.NoError(t, reg.SetIDs(ctx, []int64{9}))

		ids, err := reg.IDs(ctx)
		require.NoError(t, err)
		require.Equal(t, []int64{9}, ids)
	})
}

func TestStatic(t *testing.T) {
	t.Run("returns and updates the fixed list", func(t *testing.T) {
		reg := NewStatic([]int64{5, 6})
		ctx := t.Context()

		ids, err := reg.IDs(ctx)
		require.NoError(t, err)
		require.Equal(t, []int64{5, 6}, ids)

		require.NoError(t, reg.SetIDs(ctx, []int64{7}))
		ids, err = reg.IDs(ctx)
		require.NoError(t, err)
		require.Equal(t, []int64{7}, ids)
	})

	t.Run("callers cannot mutate internal state through returned slices", func(t *testing.T) {
		reg := NewStatic([]int64{5, 6})

		ids, err := reg.IDs(t.Context())
		require.NoError(t, err)
		ids[0] = 999

		again, err := reg.IDs(t.Context())
		require.NoError(t, err)
		require.Equal(t, []int64{5, 6}, again)
	})
}
