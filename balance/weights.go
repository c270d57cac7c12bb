package balance

import (
	"sort"

	"github.com/UberPyro/ChannelSorter2/types"
)

// Segment is a half-open range of channel indices belonging to one group.
//
// Start and End index the flattened, name-sorted channel list, not the weight
// sequence. An empty segment (Start == End) is valid and means every letter
// bucket assigned to the group was empty.
type Segment struct {
	Start int
	End   int
}

// Len returns the number of channels in the segment.
func (s Segment) Len() int { return s.End - s.Start }

// LetterBuckets derives the partitioner's weight sequence from a name-sorted
// channel list: one bucket per distinct leading letter (uppercased), buckets
// ordered by letter, each weight the number of channels starting with that
// letter.
//
// Parameters:
//   - channels: Channels sorted by display name
//
// Returns:
//   - []rune: Distinct leading letters, ascending
//   - []int: Channel count per letter, aligned with the letters slice
func LetterBuckets(channels []types.Channel) ([]rune, []int) {
	counts := make(map[rune]int, 26)
	for _, ch := range channels {
		counts[ch.FirstLetter()]++
	}

	letters := make([]rune, 0, len(counts))
	for r := range counts {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	weights := make([]int, len(letters))
	for i, r := range letters {
		weights[i] = counts[r]
	}

	return letters, weights
}

// Segments converts boundary indices on the weight sequence into channel
// index ranges: group i receives the channels covered by its letter buckets.
//
// Parameters:
//   - weights: The weight sequence the boundaries were computed over
//   - boundaries: Strictly increasing boundary indices from a Partitioner
//
// Returns:
//   - []Segment: len(boundaries)+1 channel ranges covering [0, sum(weights))
func Segments(weights []int, boundaries []int) []Segment {
	segments := make([]Segment, 0, len(boundaries)+1)
	channelIdx := 0
	bucket := 0
	for _, b := range boundaries {
		start := channelIdx
		for ; bucket < b; bucket++ {
			channelIdx += weights[bucket]
		}
		segments = append(segments, Segment{Start: start, End: channelIdx})
	}

	start := channelIdx
	for ; bucket < len(weights); bucket++ {
		channelIdx += weights[bucket]
	}

	return append(segments, Segment{Start: start, End: channelIdx})
}
