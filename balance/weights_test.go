package balance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UberPyro/ChannelSorter2/types"
)

func namedChannels(names ...string) []types.Channel {
	channels := make([]types.Channel, len(names))
	for i, name := range names {
		channels[i] = types.Channel{ID: int64(i + 1), Name: name, Position: i}
	}

	return channels
}

func TestLetterBuckets(t *testing.T) {
	t.Run("counts channels per uppercased leading letter", func(t *testing.T) {
		channels := namedChannels("ada", "agda", "blang", "curry", "c-flat", "coq")

		letters, weights := LetterBuckets(channels)

		require.Equal(t, []rune{'A', 'B', 'C'}, letters)
		require.Equal(t, []int{2, 1, 3}, weights)
	})

	t.Run("buckets stay sorted regardless of input order", func(t *testing.T) {
		channels := namedChannels("zig", "ada", "miranda", "Zephyr", "agda")

		letters, weights := LetterBuckets(channels)

		require.Equal(t, []rune{'A', 'M', 'Z'}, letters)
		require.Equal(t, []int{2, 1, 2}, weights)
	})

	t.Run("empty input yields no buckets", func(t *testing.T) {
		letters, weights := LetterBuckets(nil)

		require.Empty(t, letters)
		require.Empty(t, weights)
	})
}

func TestSegments(t *testing.T) {
	t.Run("converts boundaries to channel index ranges", func(t *testing.T) {
		weights := []int{5, 3, 3, 5}

		segments := Segments(weights, []int{2})

		require.Equal(t, []Segment{{Start: 0, End: 8}, {Start: 8, End: 16}}, segments)
	})

	t.Run("handles empty leading segment", func(t *testing.T) {
		weights := []int{0, 6, 6}

		segments := Segments(weights, []int{0, 2})

		require.Equal(t, []Segment{{Start: 0, End: 0}, {Start: 0, End: 6}, {Start: 6, End: 12}}, segments)
		require.Equal(t, 0, segments[0].Len())
	})

	t.Run("no boundaries produces one covering segment", func(t *testing.T) {
		segments := Segments([]int{2, 2, 2}, nil)

		require.Equal(t, []Segment{{Start: 0, End: 6}}, segments)
	})
}
