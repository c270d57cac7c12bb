package balance

// DynamicProgramming implements exact partitioning in O(n² · groupCount).
//
// It produces output identical to Exhaustive, including the tie-break rule:
// among equal-cost boundary sets the lexicographically smallest is returned.
// Prefer it when the bucket count grows beyond the exhaustive search's
// comfortable range.
type DynamicProgramming struct{}

var _ Partitioner = (*DynamicProgramming)(nil)

// NewDynamicProgramming creates a new dynamic-programming partitioner.
//
// Returns:
//   - *DynamicProgramming: Initialized partitioner
func NewDynamicProgramming() *DynamicProgramming {
	return &DynamicProgramming{}
}

// Boundaries returns the minimum-cost boundary set for the weight sequence.
//
// The recurrence works over suffixes: cost[m][lo] is the minimal cost of
// placing m more dividers, each at index >= lo, over the tail of the weight
// sequence whose open segment starts at lo-1 (or 0 when no divider has been
// placed yet). Reconstruction picks, at every level, the smallest divider
// index achieving the optimum, which yields the lexicographically smallest
// optimal boundary set.
func (d *DynamicProgramming) Boundaries(weights []int, groupCount int) ([]int, error) {
	if err := validateRequest(len(weights), groupCount); err != nil {
		return nil, err
	}

	dividers := groupCount - 1
	if dividers == 0 {
		return []int{}, nil
	}

	n := len(weights)
	prefix := prefixSums(weights)

	// segStart maps a divider lower bound to the start of the open segment.
	segStart := func(lo int) int {
		if lo == 0 {
			return 0
		}

		return lo - 1
	}

	// cost[m][lo], filled bottom-up over m.
	cost := make([][]int64, dividers+1)
	for m := range cost {
		cost[m] = make([]int64, n+1)
	}
	for lo := 0; lo <= n; lo++ {
		tail := prefix[n] - prefix[segStart(lo)]
		cost[0][lo] = tail * tail
	}
	for m := 1; m <= dividers; m++ {
		// With m dividers still to place at indices >= lo, the last one can
		// sit at n-1, so lo beyond n-m has no valid placement.
		for lo := n - m; lo >= 0; lo-- {
			best := int64(-1)
			start := segStart(lo)
			for b := lo; b <= n-m; b++ {
				seg := prefix[b] - prefix[start]
				total := seg*seg + cost[m-1][b+1]
				if best < 0 || total < best {
					best = total
				}
			}
			cost[m][lo] = best
		}
	}

	// Reconstruct the boundary set, preferring the smallest divider index at
	// every level (strict improvement only).
	boundaries := make([]int, 0, dividers)
	lo := 0
	for m := dividers; m >= 1; m-- {
		start := segStart(lo)
		chosen := -1
		var chosenCost int64
		for b := lo; b <= n-m; b++ {
			seg := prefix[b] - prefix[start]
			total := seg*seg + cost[m-1][b+1]
			if chosen < 0 || total < chosenCost {
				chosen = b
				chosenCost = total
			}
		}
		boundaries = append(boundaries, chosen)
		lo = chosen + 1
	}

	return boundaries, nil
}
