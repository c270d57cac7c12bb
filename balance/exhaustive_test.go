package balance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UberPyro/ChannelSorter2/types"
)

func TestExhaustive_Boundaries(t *testing.T) {
	t.Run("prefers balanced halves over skewed ones", func(t *testing.T) {
		part := NewExhaustive()

		boundaries, err := part.Boundaries([]int{5, 3, 3, 5}, 2)

		require.NoError(t, err)
		require.Equal(t, []int{2}, boundaries)
		require.Equal(t, []int64{8, 8}, SegmentSums([]int{5, 3, 3, 5}, boundaries))
	})

	t.Run("breaks cost ties lexicographically", func(t *testing.T) {
		part := NewExhaustive()

		// [1] and [3] both cost 1+9=10; [2] costs 4+4=8 and wins outright.
		boundaries, err := part.Boundaries([]int{1, 1, 1, 1}, 2)
		require.NoError(t, err)
		require.Equal(t, []int{2}, boundaries)

		// All three splits of [2,2] into 2 groups: [0]=16, [1]=8, [2]=16.
		boundaries, err = part.Boundaries([]int{2, 2}, 2)
		require.NoError(t, err)
		require.Equal(t, []int{1}, boundaries)
	})

	t.Run("single group yields no boundaries", func(t *testing.T) {
		part := NewExhaustive()

		boundaries, err := part.Boundaries([]int{4, 7, 1}, 1)

		require.NoError(t, err)
		require.Empty(t, boundaries)
	})

	t.Run("boundaries are strictly increasing and in range", func(t *testing.T) {
		part := NewExhaustive()
		weights := []int{3, 0, 5, 1, 0, 2, 8, 4}

		for groups := 1; groups <= len(weights)+1; groups++ {
			boundaries, err := part.Boundaries(weights, groups)
			require.NoError(t, err)
			require.Len(t, boundaries, groups-1)
			for i, b := range boundaries {
				require.GreaterOrEqual(t, b, 0)
				require.LessOrEqual(t, b, len(weights))
				if i > 0 {
					require.Greater(t, b, boundaries[i-1])
				}
			}
		}
	})

	t.Run("matches independently enumerated minimum cost", func(t *testing.T) {
		part := NewExhaustive()
		weights := []int{4, 0, 2, 7, 1, 3}

		for groups := 2; groups <= 4; groups++ {
			boundaries, err := part.Boundaries(weights, groups)
			require.NoError(t, err)

			got := sumOfSquares(SegmentSums(weights, boundaries))
			want := referenceMinCost(t, weights, groups)
			require.Equal(t, want, got, "groups=%d", groups)
		}
	})

	t.Run("zero-weight buckets may form empty segments", func(t *testing.T) {
		part := NewExhaustive()

		// First bucket is empty; [0 2] and [1 2] tie at cost 72 and the
		// lexicographically smaller tuple wins, leaving segment one empty.
		boundaries, err := part.Boundaries([]int{0, 6, 6}, 3)

		require.NoError(t, err)
		require.Equal(t, []int{0, 2}, boundaries)
		require.Equal(t, []int64{0, 6, 6}, SegmentSums([]int{0, 6, 6}, boundaries))
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		part := NewExhaustive()
		weights := []int{2, 5, 2, 5, 2, 5}

		first, err := part.Boundaries(weights, 3)
		require.NoError(t, err)
		for range 5 {
			again, err := part.Boundaries(weights, 3)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	})

	t.Run("rejects degenerate group counts", func(t *testing.T) {
		part := NewExhaustive()

		_, err := part.Boundaries([]int{1, 2, 3}, 0)
		require.ErrorIs(t, err, types.ErrInvalidGroupCount)

		_, err = part.Boundaries([]int{1, 2, 3}, -2)
		require.ErrorIs(t, err, types.ErrInvalidGroupCount)

		_, err = part.Boundaries([]int{1, 2, 3}, 5)
		require.ErrorIs(t, err, types.ErrInvalidGroupCount)
	})
}

// referenceMinCost recomputes the true minimum sum-of-squares cost by listing
// every strictly increasing boundary tuple, independently of the search under
// test.
func referenceMinCost(t *testing.T, weights []int, groups int) int64 {
	t.Helper()

	best := int64(-1)
	var enumerate func(remaining, next int, current []int)
	enumerate = func(remaining, next int, current []int) {
		if remaining == 0 {
			cost := sumOfSquares(SegmentSums(weights, current))
			if best < 0 || cost < best {
				best = cost
			}

			return
		}
		for i := next; i < len(weights); i++ {
			enumerate(remaining-1, i+1, append(current, i))
		}
	}
	enumerate(groups-1, 0, nil)
	require.GreaterOrEqual(t, best, int64(0))

	return best
}

func sumOfSquares(sums []int64) int64 {
	var total int64
	for _, s := range sums {
		total += s * s
	}

	return total
}
