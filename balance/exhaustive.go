package balance

import "math"

// Exhaustive implements exact partitioning by enumerating every valid
// boundary set.
//
// Complexity is combinatorial in the number of buckets and groups, which is
// acceptable only because both stay small in the motivating use case (at most
// a few dozen letter buckets, single-digit group counts). Use
// DynamicProgramming beyond that regime.
type Exhaustive struct{}

var _ Partitioner = (*Exhaustive)(nil)

// NewExhaustive creates a new exhaustive partitioner.
//
// Returns:
//   - *Exhaustive: Initialized partitioner
//
// Example:
//
//	part := balance.NewExhaustive()
//	boundaries, err := part.Boundaries([]int{5, 3, 3, 5}, 2)
//	// boundaries == []int{2}
func NewExhaustive() *Exhaustive {
	return &Exhaustive{}
}

// Boundaries returns the minimum-cost boundary set for the weight sequence.
//
// The search enumerates strictly increasing boundary tuples in ascending
// lexicographic order and keeps the first minimum seen, so ties resolve to
// the lexicographically smallest optimal boundary set.
func (e *Exhaustive) Boundaries(weights []int, groupCount int) ([]int, error) {
	if err := validateRequest(len(weights), groupCount); err != nil {
		return nil, err
	}

	dividers := groupCount - 1
	if dividers == 0 {
		return []int{}, nil
	}

	prefix := prefixSums(weights)
	best, _ := searchBoundaries(prefix, len(weights), dividers, 0, nil, nil, math.MaxInt64)

	return best, nil
}

// searchBoundaries recursively places the remaining dividers, each at an
// index no smaller than next, and returns the best complete boundary set seen
// so far together with its cost. The best-so-far accumulator travels through
// return values rather than shared captured state.
func searchBoundaries(prefix []int64, n, remaining, next int, current, best []int, bestCost int64) ([]int, int64) {
	if remaining == 0 {
		if cost := boundaryCost(prefix, current); cost < bestCost {
			return append([]int(nil), current...), cost
		}

		return best, bestCost
	}

	for i := next; i < n; i++ {
		best, bestCost = searchBoundaries(prefix, n, remaining-1, i+1, append(current, i), best, bestCost)
	}

	return best, bestCost
}
