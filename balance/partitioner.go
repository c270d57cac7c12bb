package balance

import (
	"fmt"

	"github.com/UberPyro/ChannelSorter2/types"
)

// Partitioner computes segment boundaries for a weight sequence.
type Partitioner interface {
	// Boundaries returns groupCount-1 strictly increasing indices into the
	// weight sequence, partitioning it into groupCount contiguous segments
	// with minimal sum-of-squares cost. Segment i spans weight indices
	// [boundaries[i-1], boundaries[i]), with implicit boundaries 0 and
	// len(weights) at the ends. A segment may be empty when a boundary sits
	// at index 0 or coincides conceptually with an end; callers must
	// tolerate empty segments.
	//
	// Parameters:
	//   - weights: Ordered non-negative weights, one per bucket
	//   - groupCount: Number of segments, 1 <= groupCount <= len(weights)+1
	//
	// Returns:
	//   - []int: groupCount-1 boundary indices (empty for groupCount == 1)
	//   - error: types.ErrInvalidGroupCount for degenerate requests
	Boundaries(weights []int, groupCount int) ([]int, error)
}

// validateRequest rejects degenerate partition requests up front instead of
// silently truncating them.
func validateRequest(bucketCount, groupCount int) error {
	if groupCount <= 0 {
		return fmt.Errorf("%w: %d", types.ErrInvalidGroupCount, groupCount)
	}
	if groupCount-1 > bucketCount {
		return fmt.Errorf("%w: %d groups over %d buckets", types.ErrInvalidGroupCount, groupCount, bucketCount)
	}

	return nil
}

// prefixSums returns the running sums of weights; prefix[i] is the sum of
// weights[:i], so a segment [a, b) sums to prefix[b]-prefix[a].
func prefixSums(weights []int) []int64 {
	prefix := make([]int64, len(weights)+1)
	for i, w := range weights {
		prefix[i+1] = prefix[i] + int64(w)
	}

	return prefix
}

// boundaryCost scores a complete boundary set as the sum of squared segment sums.
func boundaryCost(prefix []int64, boundaries []int) int64 {
	n := len(prefix) - 1
	var cost int64
	start := 0
	for _, b := range boundaries {
		sum := prefix[b] - prefix[start]
		cost += sum * sum
		start = b
	}
	last := prefix[n] - prefix[start]

	return cost + last*last
}

// SegmentSums slices weights at the given boundaries and returns each
// segment's sum. Exposed for callers that want to inspect or log the balance
// a boundary set achieves.
func SegmentSums(weights []int, boundaries []int) []int64 {
	prefix := prefixSums(weights)
	sums := make([]int64, 0, len(boundaries)+1)
	start := 0
	for _, b := range boundaries {
		sums = append(sums, prefix[b]-prefix[start])
		start = b
	}

	return append(sums, prefix[len(weights)]-prefix[start])
}
