package balance

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UberPyro/ChannelSorter2/types"
)

func TestDynamicProgramming_Boundaries(t *testing.T) {
	t.Run("matches the exhaustive search exactly", func(t *testing.T) {
		exhaustive := NewExhaustive()
		dp := NewDynamicProgramming()
		rng := rand.New(rand.NewPCG(42, 7))

		for range 200 {
			n := 1 + rng.IntN(9)
			weights := make([]int, n)
			for i := range weights {
				weights[i] = rng.IntN(12) // zero weights included on purpose
			}
			groups := 1 + rng.IntN(n+1)

			want, err := exhaustive.Boundaries(weights, groups)
			require.NoError(t, err)
			got, err := dp.Boundaries(weights, groups)
			require.NoError(t, err)
			require.Equal(t, want, got, "weights=%v groups=%d", weights, groups)
		}
	})

	t.Run("keeps the lexicographic tie-break", func(t *testing.T) {
		dp := NewDynamicProgramming()

		boundaries, err := dp.Boundaries([]int{1, 1, 1, 1}, 2)
		require.NoError(t, err)
		require.Equal(t, []int{2}, boundaries)

		// Every split of all-zero weights costs zero; the smallest tuple wins.
		boundaries, err = dp.Boundaries([]int{0, 0, 0, 0}, 3)
		require.NoError(t, err)
		require.Equal(t, []int{0, 1}, boundaries)
	})

	t.Run("single group yields no boundaries", func(t *testing.T) {
		dp := NewDynamicProgramming()

		boundaries, err := dp.Boundaries([]int{9, 9, 9}, 1)

		require.NoError(t, err)
		require.Empty(t, boundaries)
	})

	t.Run("rejects degenerate group counts", func(t *testing.T) {
		dp := NewDynamicProgramming()

		_, err := dp.Boundaries([]int{1}, 0)
		require.ErrorIs(t, err, types.ErrInvalidGroupCount)

		_, err = dp.Boundaries([]int{1}, 3)
		require.ErrorIs(t, err, types.ErrInvalidGroupCount)
	})
}
